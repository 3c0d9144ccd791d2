package service

import (
	"context"
	"time"

	"eventsync/internal/apperrors"
	"eventsync/internal/messaging"
	"eventsync/internal/models"
	"eventsync/internal/monitoring"
)

const defaultPricePerTicket = 100.00

// EventService owns event CRUD and the inventory adjustment path. All
// available_tickets mutations funnel through AdjustTickets.
type EventService struct {
	events EventStore
	nats   *messaging.NATSClient
}

func NewEventService(events EventStore, nats *messaging.NATSClient) *EventService {
	return &EventService{events: events, nats: nats}
}

func (s *EventService) CreateEvent(ctx context.Context, req models.CreateEventRequest) (*models.Event, error) {
	eventDate, err := models.ParseEventDate(req.EventDate)
	if err != nil {
		return nil, err
	}

	if req.TotalTickets <= 0 {
		return nil, apperrors.ErrInvalidTotalTickets
	}

	price := req.PricePerTicket
	if price < 0 {
		return nil, apperrors.ErrInvalidPrice
	}
	if price == 0 {
		price = defaultPricePerTicket
	}

	event := &models.Event{
		Name:             req.Name,
		Description:      optionalString(req.Description),
		EventDate:        eventDate,
		Venue:            req.Venue,
		TotalTickets:     req.TotalTickets,
		AvailableTickets: req.TotalTickets,
		PricePerTicket:   price,
		ImageURL:         optionalString(req.ImageURL),
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	publish(s.nats, models.EventCreated, models.EventLifecycleEvent{
		EventID:   event.ID,
		Name:      event.Name,
		Timestamp: time.Now().UTC(),
	})

	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.events.List(ctx)
}

func (s *EventService) UpdateEvent(ctx context.Context, id int64, req models.UpdateEventRequest) (*models.Event, error) {
	upd := models.EventUpdate{
		Name:           req.Name,
		Description:    req.Description,
		Venue:          req.Venue,
		TotalTickets:   req.TotalTickets,
		PricePerTicket: req.PricePerTicket,
		ImageURL:       req.ImageURL,
	}

	if req.EventDate != nil {
		eventDate, err := models.ParseEventDate(*req.EventDate)
		if err != nil {
			return nil, err
		}
		upd.EventDate = &eventDate
	}
	if req.TotalTickets != nil && *req.TotalTickets <= 0 {
		return nil, apperrors.ErrInvalidTotalTickets
	}
	if req.PricePerTicket != nil && *req.PricePerTicket <= 0 {
		return nil, apperrors.ErrInvalidPrice
	}

	event, err := s.events.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	publish(s.nats, models.EventUpdated, models.EventLifecycleEvent{
		EventID:   event.ID,
		Name:      event.Name,
		Timestamp: time.Now().UTC(),
	})

	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return apperrors.ErrEventNotFound
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}

	publish(s.nats, models.EventDeleted, models.EventLifecycleEvent{
		EventID:   event.ID,
		Name:      event.Name,
		Timestamp: time.Now().UTC(),
	})

	return nil
}

// AdjustTickets reserves or releases tickets against the live availability.
// The bound check and the write commit atomically in the store, so a success
// here is the authoritative answer for concurrent callers.
func (s *EventService) AdjustTickets(ctx context.Context, id int64, req models.AdjustTicketsRequest) (*models.AdjustTicketsResponse, error) {
	op, ok := models.ParseAdjustOperation(req.Operation)
	if !ok {
		return nil, apperrors.ErrInvalidOperation
	}

	count := *req.TicketCount
	if count < 1 {
		return nil, apperrors.ErrInvalidTicketCount
	}

	event, err := s.events.AdjustAvailable(ctx, id, count, op)
	if err != nil {
		monitoring.TrackAdjustment(string(op), "rejected")
		return nil, err
	}
	monitoring.TrackAdjustment(string(op), "committed")

	publish(s.nats, models.InventoryAdjusted, models.InventoryAdjustedEvent{
		EventID:          event.ID,
		Operation:        op,
		TicketCount:      count,
		AvailableTickets: event.AvailableTickets,
		TotalTickets:     event.TotalTickets,
		Timestamp:        time.Now().UTC(),
	})

	return &models.AdjustTicketsResponse{
		EventID:          event.ID,
		AvailableTickets: event.AvailableTickets,
		TotalTickets:     event.TotalTickets,
	}, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
