package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"eventsync/internal/apperrors"
	"eventsync/internal/cache"
	"eventsync/internal/service"

	"github.com/gin-gonic/gin"
)

// EventHandlers serves the event service's HTTP surface.
type EventHandlers struct {
	events *service.EventService
	venues *service.VenueService
	cache  *cache.Client
}

// NewEventHandlers wires the event-side handlers. cache may be nil, which
// disables the read cache entirely.
func NewEventHandlers(events *service.EventService, venues *service.VenueService, cacheClient *cache.Client) *EventHandlers {
	return &EventHandlers{events: events, venues: venues, cache: cacheClient}
}

// TicketHandlers serves the ticket service's HTTP surface.
type TicketHandlers struct {
	tickets *service.TicketService
}

func NewTicketHandlers(tickets *service.TicketService) *TicketHandlers {
	return &TicketHandlers{tickets: tickets}
}

// respondError maps an error to its wire status and body. Internal failures
// are logged with the operation that hit them; their detail never reaches
// the client.
func respondError(c *gin.Context, op string, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "operation", op, "error", err)
	}
	c.JSON(status, gin.H{"error": apperrors.Message(err)})
}

func parseID(c *gin.Context, notFound error) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(notFound), gin.H{"error": apperrors.Message(notFound)})
		return 0, false
	}
	return id, true
}

// Health reports liveness for either service.
func Health(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	}
}
