package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"eventsync/internal/config"
	"eventsync/internal/consumers"
	"eventsync/internal/external"
	"eventsync/internal/logger"
	"eventsync/internal/messaging"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Consumers need a live broker; there is no disabled mode here.
	cfg.NATS.ClientID = "eventsync-consumers"
	cfg.NATS.Enabled = true

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	eventClient := external.NewEventServiceClient(cfg.EventService)

	svc := consumers.New(natsClient, eventClient)
	if err := svc.Start(); err != nil {
		logger.Fatal("Failed to start consumers", "error", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down consumers...")

	svc.Stop()
	if err := natsClient.Close(); err != nil {
		slog.Error("Failed to close NATS connection", "error", err)
	}

	slog.Info("Consumers stopped")
}
