package service

import (
	"context"
	"log/slog"

	"eventsync/internal/messaging"
	"eventsync/internal/models"
)

// EventStore is the event service's persistence surface.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, id int64, upd models.EventUpdate) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
	AdjustAvailable(ctx context.Context, id int64, count int, op models.AdjustOperation) (*models.Event, error)
}

// VenueStore is the venue persistence surface.
type VenueStore interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int64) (*models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
}

// TicketStore is the ticket service's persistence surface.
type TicketStore interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id int64) (*models.Ticket, error)
	List(ctx context.Context, eventID *int64) ([]models.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status models.TicketStatus) error
	Delete(ctx context.Context, id int64) error
}

// InventoryClient is the ticket service's view of the event service: event
// lookups plus the single authoritative adjustment operation.
type InventoryClient interface {
	GetEvent(ctx context.Context, eventID int64) (*models.Event, error)
	AdjustTickets(ctx context.Context, eventID int64, count int, op models.AdjustOperation) (*models.AdjustTicketsResponse, error)
}

// publish sends a domain event without letting broker trouble fail the
// request. The write already happened; the stream is best-effort.
func publish(nats *messaging.NATSClient, subject string, payload interface{}) {
	if err := nats.Publish(subject, payload); err != nil {
		slog.Warn("Failed to publish domain event", "subject", subject, "error", err)
	}
}
