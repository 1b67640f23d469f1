// Package web exposes the game service over HTTP: a JSON API for moves and
// snapshots, a server-sent-events stream and a websocket for live play. It
// holds no game rules of its own.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/jaminalder/hasami-shogi/internal/app"
)

// Options tune the transport layer. The zero value is usable: every
// websocket origin is allowed and the default heartbeat applies.
type Options struct {
	// CheckOrigin guards websocket upgrades; nil allows every origin.
	CheckOrigin func(r *http.Request) bool
	// Heartbeat is the SSE keep-alive interval.
	Heartbeat time.Duration
}

// NewServer wires routes and returns an http.Handler.
func NewServer(s *app.Service, opts Options) http.Handler {
	s.SetRenderer(renderSnapshot)
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = defaultHeartbeat
	}
	h := &handlers{
		svc:       s,
		upgrader:  websocket.Upgrader{CheckOrigin: opts.CheckOrigin},
		heartbeat: opts.Heartbeat,
	}
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.state)
		r.Post("/join", h.join)
		r.Post("/play", h.play)
		r.Get("/events", h.events)
		r.Get("/ws", h.socket)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
