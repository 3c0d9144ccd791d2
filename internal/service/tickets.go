package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventsync/internal/apperrors"
	"eventsync/internal/messaging"
	"eventsync/internal/models"
	"eventsync/internal/monitoring"
)

// TicketService orchestrates purchases against the event service's live
// inventory. It never reads or writes event rows directly; every availability
// decision is delegated to the event service over HTTP.
type TicketService struct {
	tickets TicketStore
	events  InventoryClient
	nats    *messaging.NATSClient
}

func NewTicketService(tickets TicketStore, events InventoryClient, nats *messaging.NATSClient) *TicketService {
	return &TicketService{tickets: tickets, events: events, nats: nats}
}

// CreateTicket runs the purchase sequence: fetch the event, pre-check
// availability, snapshot the price, reserve remotely, then persist locally.
// The pre-check is advisory; the reservation call is the authoritative gate.
//
// If the local insert fails after the reservation committed, the reserved
// tickets are left dangling: no compensating release is attempted, because a
// release that cannot be proven necessary could hand the same tickets to two
// buyers. The window is surfaced for reconciliation instead.
func (s *TicketService) CreateTicket(ctx context.Context, req models.CreateTicketRequest) (*models.Ticket, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	event, err := s.events.GetEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if req.Quantity > event.AvailableTickets {
		return nil, apperrors.ErrInsufficientInventory
	}

	totalPrice := event.PricePerTicket * float64(req.Quantity)

	if _, err := s.events.AdjustTickets(ctx, req.EventID, req.Quantity, models.OpReserve); err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		EventID:       req.EventID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Quantity:      req.Quantity,
		TotalPrice:    totalPrice,
		Status:        models.StatusReserved,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		s.reportDangling(req.EventID, req.Quantity, models.OpReserve, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	publish(s.nats, models.TicketCreated, models.TicketCreatedEvent{
		TicketID:   ticket.ID,
		EventID:    ticket.EventID,
		Quantity:   ticket.Quantity,
		TotalPrice: ticket.TotalPrice,
		Timestamp:  time.Now().UTC(),
	})

	return ticket, nil
}

// GetTicket returns a ticket with its event embedded. When the event service
// cannot answer, the ticket is still served and the event field degrades to
// an error stub.
func (s *TicketService) GetTicket(ctx context.Context, id int64) (*models.TicketResponse, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperrors.ErrTicketNotFound
	}

	resp := &models.TicketResponse{Ticket: *ticket}

	event, err := s.events.GetEvent(ctx, ticket.EventID)
	if err != nil {
		resp.Event = map[string]string{"error": apperrors.Message(err)}
	} else {
		resp.Event = event
	}

	return resp, nil
}

func (s *TicketService) ListTickets(ctx context.Context, eventID *int64) ([]models.Ticket, error) {
	return s.tickets.List(ctx, eventID)
}

// UpdateTicketStatus moves a ticket along the lifecycle. Setting the current
// status again is a no-op and touches neither database nor inventory.
// Cancellation releases the quantity remotely before the local row changes,
// so a failed release leaves the ticket in its previous state.
func (s *TicketService) UpdateTicketStatus(ctx context.Context, id int64, req models.UpdateTicketStatusRequest) (*models.Ticket, error) {
	target, ok := models.ParseTicketStatus(req.Status)
	if !ok {
		return nil, apperrors.ErrInvalidStatus
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperrors.ErrTicketNotFound
	}

	if ticket.Status == target {
		return ticket, nil
	}

	if !ticket.Status.CanTransitionTo(target) {
		return nil, apperrors.ErrInvalidTransition
	}

	if target == models.StatusCancelled {
		if _, err := s.events.AdjustTickets(ctx, ticket.EventID, ticket.Quantity, models.OpRelease); err != nil {
			return nil, err
		}
	}

	oldStatus := ticket.Status
	if err := s.tickets.UpdateStatus(ctx, id, target); err != nil {
		if target == models.StatusCancelled {
			s.reportDangling(ticket.EventID, ticket.Quantity, models.OpRelease, err)
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		return nil, err
	}
	ticket.Status = target

	publish(s.nats, models.TicketStatusChange, models.TicketStatusChangedEvent{
		TicketID:  ticket.ID,
		EventID:   ticket.EventID,
		Quantity:  ticket.Quantity,
		OldStatus: oldStatus,
		NewStatus: target,
		Timestamp: time.Now().UTC(),
	})
	if target == models.StatusCancelled {
		publish(s.nats, models.TicketCancelled, models.TicketStatusChangedEvent{
			TicketID:  ticket.ID,
			EventID:   ticket.EventID,
			Quantity:  ticket.Quantity,
			OldStatus: oldStatus,
			NewStatus: target,
			Timestamp: time.Now().UTC(),
		})
	}

	return ticket, nil
}

// DeleteTicket removes a ticket row. A ticket that still holds inventory is
// cancelled first, so the quantity flows back before the record disappears.
func (s *TicketService) DeleteTicket(ctx context.Context, id int64) error {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ticket == nil {
		return apperrors.ErrTicketNotFound
	}

	if ticket.Status != models.StatusCancelled {
		if _, err := s.events.AdjustTickets(ctx, ticket.EventID, ticket.Quantity, models.OpRelease); err != nil {
			return err
		}
		if err := s.tickets.UpdateStatus(ctx, id, models.StatusCancelled); err != nil {
			s.reportDangling(ticket.EventID, ticket.Quantity, models.OpRelease, err)
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	}

	if err := s.tickets.Delete(ctx, id); err != nil {
		return err
	}

	publish(s.nats, models.TicketDeleted, models.TicketDeletedEvent{
		TicketID:  ticket.ID,
		EventID:   ticket.EventID,
		Timestamp: time.Now().UTC(),
	})

	return nil
}

// reportDangling makes an unmatched remote adjustment operator-visible: an
// ERROR log line, a counter bump, and a broker event for the reconciliation
// consumers. Nothing here retries or compensates.
func (s *TicketService) reportDangling(eventID int64, quantity int, op models.AdjustOperation, cause error) {
	slog.Error("Inventory adjustment left dangling by failed local write",
		"event_id", eventID,
		"quantity", quantity,
		"operation", op,
		"error", cause)

	monitoring.TrackDangling()

	publish(s.nats, models.InventoryDangling, models.InventoryDanglingEvent{
		EventID:     eventID,
		Operation:   op,
		TicketCount: quantity,
		Reason:      cause.Error(),
		Timestamp:   time.Now().UTC(),
	})
}
