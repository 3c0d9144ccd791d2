package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventsync/internal/api"
	"eventsync/internal/config"
	"eventsync/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	cfg.NATS.ClientID = "eventsync-event-service"

	server, err := api.NewEventServer(cfg)
	if err != nil {
		logger.Fatal("Failed to create event service", "error", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.EventServicePort,
		Handler: server.Router(),
	}

	go func() {
		slog.Info("Starting event service", "port", cfg.EventServicePort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start event service", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down event service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	server.Cleanup()
	slog.Info("Event service stopped")
}
