package api

import (
	"log/slog"

	"eventsync/internal/config"
	"eventsync/internal/database"
	"eventsync/internal/external"
	"eventsync/internal/handlers"
	"eventsync/internal/messaging"
	"eventsync/internal/middleware"
	"eventsync/internal/monitoring"
	"eventsync/internal/repository"
	"eventsync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TicketServer is the ticket service: purchase orchestration over its own
// database, with all event data fetched live from the event service.
type TicketServer struct {
	router *gin.Engine
	db     *database.DB
	nats   *messaging.NATSClient
	config *config.Config
}

func NewTicketServer(cfg *config.Config) (*TicketServer, error) {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.TicketDB)
	if err != nil {
		return nil, err
	}

	if err := db.RunTicketMigrations(); err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	repos := repository.NewTicketRepositories(db)
	eventClient := external.NewEventServiceClient(cfg.EventService)
	ticketService := service.NewTicketService(repos.Tickets, eventClient, natsClient)
	h := handlers.NewTicketHandlers(ticketService)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(monitoring.HTTPMetrics("ticket-service"))

	router.GET("/health", handlers.Health("ticket-service"))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/tickets", h.CreateTicket)
	router.GET("/tickets", h.ListTickets)
	router.GET("/tickets/:id", h.GetTicket)
	router.PUT("/tickets/:id/status", h.UpdateTicketStatus)
	router.DELETE("/tickets/:id", h.DeleteTicket)

	return &TicketServer{
		router: router,
		db:     db,
		nats:   natsClient,
		config: cfg,
	}, nil
}

func (s *TicketServer) Router() *gin.Engine {
	return s.router
}

func (s *TicketServer) Run() error {
	addr := ":" + s.config.TicketServicePort
	slog.Info("Ticket service listening", "addr", addr)
	return s.router.Run(addr)
}

func (s *TicketServer) Cleanup() {
	if err := s.nats.Close(); err != nil {
		slog.Error("Failed to close NATS connection", "error", err)
	}
	if err := s.db.Close(); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}
}
