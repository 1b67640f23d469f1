// Command hasamid serves Hasami Shogi games over HTTP, SSE and websockets.
package main

import (
	"flag"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jaminalder/hasami-shogi/internal/app"
	"github.com/jaminalder/hasami-shogi/internal/config"
	"github.com/jaminalder/hasami-shogi/internal/web"
)

var (
	port       = flag.String("port", os.Getenv("PORT"), "Port to host the server on")
	configPath = flag.String("config", os.Getenv("CONFIG"), "Path to the yaml config file")
	pretty     = flag.Bool("pretty", false, "Human-readable log output")
)

func main() {
	flag.Parse()
	if *pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if *port != "" {
		cfg.Port = *port
	}

	var checkOrigin func(r *http.Request) bool
	if cfg.FrontendHost != "" {
		host := cfg.FrontendHost
		checkOrigin = func(r *http.Request) bool {
			return strings.Contains(r.Header.Get("Origin"), host)
		}
	}

	handler := web.NewServer(app.NewService(), web.Options{
		CheckOrigin: checkOrigin,
		Heartbeat:   cfg.Heartbeat(),
	})

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
