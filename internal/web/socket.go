package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"
)

// wsEnvelope frames every message in both directions: a type tag plus
// loosely typed contents decoded per message type.
type wsEnvelope struct {
	Type     string         `json:"type"`
	Contents map[string]any `json:"contents,omitempty"`
}

// wsReply is the outgoing frame; contents are pre-encoded.
type wsReply struct {
	Type     string          `json:"type"`
	Contents json.RawMessage `json:"contents,omitempty"`
}

type wsPlayRequest struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

type wsJoined struct {
	Player string `json:"player"`
	Seat   string `json:"seat"`
}

// socket upgrades the request and plays a game over a single connection:
// incoming "join" and "play" envelopes, outgoing "joined", "played",
// "state" and "error" frames. Every accepted move reaches the client via
// the game's broadcast subscription.
func (h *handlers) socket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("game", id).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	pid := r.URL.Query().Get("player")
	if pid == "" {
		pid = uuid.NewString()
	}

	// Replies and broadcast forwards share the connection; gorilla allows
	// one concurrent writer only.
	var writeMu sync.Mutex
	send := func(typ string, contents any) {
		data, err := json.Marshal(contents)
		if err != nil {
			return
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(wsReply{Type: typ, Contents: data}); err != nil {
			log.Debug().Err(err).Str("game", id).Msg("websocket write failed")
		}
	}
	sendRaw := func(typ string, contents []byte) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(wsReply{Type: typ, Contents: contents}); err != nil {
			log.Debug().Err(err).Str("game", id).Msg("websocket write failed")
		}
	}
	sendErr := func(reason string) { send("error", errorResponse{Reason: reason}) }

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	ch, unsub := h.svc.Subscribe(ctx, id)
	defer unsub()
	go func() {
		for payload := range ch {
			sendRaw("state", payload)
		}
	}()

	for {
		var env wsEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("game", id).Msg("websocket closed unexpectedly")
			}
			return
		}
		switch env.Type {
		case "join":
			seat, _, err := h.svc.Join(id, pid)
			if err != nil {
				sendErr("NotFound")
				continue
			}
			send("joined", wsJoined{Player: pid, Seat: seat.String()})
		case "play":
			var req wsPlayRequest
			if err := mapstructure.Decode(env.Contents, &req); err != nil {
				sendErr("InvalidFormat")
				continue
			}
			_, outcome, err := h.svc.Play(id, pid, req.From, req.To)
			if err != nil {
				sendErr(rejectionReason(err))
				continue
			}
			send("played", playResponse{Captured: outcome.Captured, Status: outcome.Status.String()})
		default:
			sendErr("UnknownType")
		}
	}
}
