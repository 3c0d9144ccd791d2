package api

import (
	"log/slog"

	"eventsync/internal/cache"
	"eventsync/internal/config"
	"eventsync/internal/database"
	"eventsync/internal/handlers"
	"eventsync/internal/messaging"
	"eventsync/internal/middleware"
	"eventsync/internal/monitoring"
	"eventsync/internal/repository"
	"eventsync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EventServer is the event service: event and venue CRUD plus the atomic
// ticket adjustment endpoint that the ticket service calls.
type EventServer struct {
	router *gin.Engine
	db     *database.DB
	nats   *messaging.NATSClient
	cache  *cache.Client
	config *config.Config
}

func NewEventServer(cfg *config.Config) (*EventServer, error) {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.EventDB)
	if err != nil {
		return nil, err
	}

	if err := db.RunEventMigrations(); err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	var cacheClient *cache.Client
	if cfg.Cache.Enabled {
		cacheClient, err = cache.New(cfg.Cache)
		if err != nil {
			// The cache is an optimization; the service answers from the
			// database without it.
			slog.Warn("Cache unavailable, serving uncached", "error", err)
			cacheClient = nil
		}
	}

	repos := repository.NewEventRepositories(db)
	eventService := service.NewEventService(repos.Events, natsClient)
	venueService := service.NewVenueService(repos.Venues)
	h := handlers.NewEventHandlers(eventService, venueService, cacheClient)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(monitoring.HTTPMetrics("event-service"))

	router.GET("/health", handlers.Health("event-service"))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/events", h.ListEvents)
	router.POST("/events", h.CreateEvent)
	router.GET("/events/:id", h.GetEvent)
	router.PUT("/events/:id", h.UpdateEvent)
	router.DELETE("/events/:id", h.DeleteEvent)
	router.PUT("/events/:id/tickets", h.AdjustTickets)

	router.GET("/venues", h.ListVenues)
	router.POST("/venues", h.CreateVenue)
	router.GET("/venues/:id", h.GetVenue)

	return &EventServer{
		router: router,
		db:     db,
		nats:   natsClient,
		cache:  cacheClient,
		config: cfg,
	}, nil
}

func (s *EventServer) Router() *gin.Engine {
	return s.router
}

func (s *EventServer) Run() error {
	addr := ":" + s.config.EventServicePort
	slog.Info("Event service listening", "addr", addr)
	return s.router.Run(addr)
}

func (s *EventServer) Cleanup() {
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			slog.Error("Failed to close cache connection", "error", err)
		}
	}
	if err := s.nats.Close(); err != nil {
		slog.Error("Failed to close NATS connection", "error", err)
	}
	if err := s.db.Close(); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}
}
