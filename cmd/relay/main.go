// Command relay runs the dumb WebSocket fan-out server (spec §5): it holds
// no game state of its own, only a concurrent map of rooms and their
// subscribed peer connections.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/efreeman/polite-betrayal/api/internal/config"
	"github.com/efreeman/polite-betrayal/api/internal/logger"
	"github.com/efreeman/polite-betrayal/api/internal/middleware"
	"github.com/efreeman/polite-betrayal/api/internal/relay"
)

func main() {
	logger.Init()
	cfg := config.Load()

	hub := relay.NewHub()
	wsHandler := relay.NewHandler(hub)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("GET /api/rooms", func(w http.ResponseWriter, r *http.Request) {
		ids := hub.RoomIDs()
		rooms := make([]map[string]any, 0, len(ids))
		for _, id := range ids {
			rooms = append(rooms, map[string]any{
				"roomId":      id,
				"subscribers": hub.RoomSubscriberCount(id),
			})
		}
		json.NewEncoder(w).Encode(rooms)
	})

	mux.HandleFunc("GET /api/ws", wsHandler.ServeWS)

	root := middleware.Chain(mux, middleware.Logger, middleware.CORS("*"), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("relay listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("relay server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down relay")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("relay shutdown error")
	}
	log.Info().Msg("relay stopped")
}
