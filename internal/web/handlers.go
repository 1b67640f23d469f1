package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jaminalder/hasami-shogi/internal/app"
	"github.com/jaminalder/hasami-shogi/internal/domain"
)

type handlers struct {
	svc       *app.Service
	upgrader  websocket.Upgrader
	heartbeat time.Duration
}

type playRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type playResponse struct {
	Captured int      `json:"captured"`
	Status   string   `json:"status"`
	Game     Snapshot `json:"game"`
}

type joinResponse struct {
	Seat string   `json:"seat"`
	Game Snapshot `json:"game"`
}

type errorResponse struct {
	Reason string `json:"reason"`
}

// rejectionReason maps service and domain errors onto stable wire codes.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidFormat):
		return "InvalidFormat"
	case errors.Is(err, domain.ErrOutOfBounds):
		return "OutOfBounds"
	case errors.Is(err, domain.ErrIllegalDirection):
		return "IllegalDirection"
	case errors.Is(err, domain.ErrNotOwned):
		return "NotOwnedBySource"
	case errors.Is(err, domain.ErrDestinationOccupied):
		return "DestinationOccupied"
	case errors.Is(err, domain.ErrPathBlocked):
		return "PathBlocked"
	case errors.Is(err, domain.ErrGameOver):
		return "GameAlreadyOver"
	case errors.Is(err, app.ErrNotYourTurn):
		return "NotYourTurn"
	case errors.Is(err, app.ErrNotAPlayer):
		return "NotAPlayer"
	default:
		return "Invalid"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	pid := ensurePlayerCookie(w, r)
	gs, err := h.svc.CreateGame()
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	// The creator takes the Black seat.
	seat, gs, err := h.svc.Join(gs.ID, pid)
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, joinResponse{Seat: seat.String(), Game: makeSnapshot(*gs)})
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gs, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, makeSnapshot(*gs))
}

func (h *handlers) join(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid := ensurePlayerCookie(w, r)
	seat, gs, err := h.svc.Join(id, pid)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, joinResponse{Seat: seat.String(), Game: makeSnapshot(*gs)})
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid := ensurePlayerCookie(w, r)
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Reason: "InvalidFormat"})
		return
	}
	gs, outcome, err := h.svc.Play(id, pid, req.From, req.To)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNotFound):
			http.NotFound(w, r)
		case errors.Is(err, app.ErrNotAPlayer):
			writeJSON(w, http.StatusForbidden, errorResponse{Reason: rejectionReason(err)})
		default:
			writeJSON(w, http.StatusConflict, errorResponse{Reason: rejectionReason(err)})
		}
		return
	}
	writeJSON(w, http.StatusOK, playResponse{
		Captured: outcome.Captured,
		Status:   outcome.Status.String(),
		Game:     makeSnapshot(*gs),
	})
}

const defaultHeartbeat = 15 * time.Second

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return.
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub := h.svc.Subscribe(ctx, id)
	defer unsub()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			_, _ = fmt.Fprintf(w, "event: state\n")
			_, _ = fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}

// ensurePlayerCookie returns the caller's player ID, minting one if absent.
func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie("player_id"); err == nil && c.Value != "" {
		return c.Value
	}
	v := uuid.NewString()
	http.SetCookie(w, &http.Cookie{Name: "player_id", Value: v, Path: "/"})
	return v
}
