package consumers

import (
	"fmt"
	"log/slog"

	"eventsync/internal/external"
	"eventsync/internal/messaging"
	"eventsync/internal/models"

	"github.com/nats-io/stan.go"
)

const queueGroup = "consumers"

// Service runs the durable audit consumers. They subscribe to every domain
// subject with a shared queue group, so running extra instances spreads the
// load instead of duplicating it.
type Service struct {
	nats   *messaging.NATSClient
	events *external.EventServiceClient
	subs   []stan.Subscription
}

func New(nats *messaging.NATSClient, events *external.EventServiceClient) *Service {
	return &Service{nats: nats, events: events}
}

func (s *Service) Start() error {
	subjects := map[string]stan.MsgHandler{
		models.EventCreated:       s.handleEventLifecycle,
		models.EventUpdated:       s.handleEventLifecycle,
		models.EventDeleted:       s.handleEventLifecycle,
		models.InventoryAdjusted:  s.handleInventoryAdjusted,
		models.InventoryDangling:  s.handleInventoryDangling,
		models.TicketCreated:      s.handleTicketCreated,
		models.TicketStatusChange: s.handleTicketStatusChanged,
		models.TicketCancelled:    s.handleTicketStatusChanged,
		models.TicketDeleted:      s.handleTicketDeleted,
	}

	for subject, handler := range subjects {
		sub, err := s.nats.SubscribeQueue(subject, queueGroup, handler)
		if err != nil {
			s.Stop()
			return fmt.Errorf("failed to start consumer for %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
	}

	slog.Info("Consumers started", "subjects", len(s.subs), "queue", queueGroup)
	return nil
}

func (s *Service) Stop() {
	for _, sub := range s.subs {
		if err := sub.Close(); err != nil {
			slog.Error("Failed to close subscription", "error", err)
		}
	}
	s.subs = nil
}
