package consumers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"eventsync/internal/models"

	"github.com/nats-io/stan.go"
)

const lookupTimeout = 5 * time.Second

func (s *Service) handleEventLifecycle(msg *stan.Msg) {
	var evt models.EventLifecycleEvent
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		slog.Error("Failed to decode event lifecycle message", "subject", msg.Subject, "error", err)
		return
	}

	slog.Info("Event lifecycle change",
		"subject", msg.Subject,
		"event_id", evt.EventID,
		"name", evt.Name)
}

func (s *Service) handleInventoryAdjusted(msg *stan.Msg) {
	var evt models.InventoryAdjustedEvent
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		slog.Error("Failed to decode inventory adjustment", "error", err)
		return
	}

	slog.Info("Inventory adjusted",
		"event_id", evt.EventID,
		"operation", evt.Operation,
		"ticket_count", evt.TicketCount,
		"available_tickets", evt.AvailableTickets,
		"total_tickets", evt.TotalTickets)
}

// handleInventoryDangling is the reconciliation hook: the adjustment already
// committed but no ticket row backs it. The current availability is read back
// so the operator sees the live count next to the stranded quantity.
func (s *Service) handleInventoryDangling(msg *stan.Msg) {
	var evt models.InventoryDanglingEvent
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		slog.Error("Failed to decode dangling adjustment", "error", err)
		return
	}

	fields := []any{
		"event_id", evt.EventID,
		"operation", evt.Operation,
		"ticket_count", evt.TicketCount,
		"reason", evt.Reason,
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	if event, err := s.events.GetEvent(ctx, evt.EventID); err == nil {
		fields = append(fields,
			"available_tickets", event.AvailableTickets,
			"total_tickets", event.TotalTickets)
	}

	slog.Error("DANGLING inventory adjustment, manual reconciliation required", fields...)
}

func (s *Service) handleTicketCreated(msg *stan.Msg) {
	var evt models.TicketCreatedEvent
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		slog.Error("Failed to decode ticket created message", "error", err)
		return
	}

	fields := []any{
		"ticket_id", evt.TicketID,
		"event_id", evt.EventID,
		"quantity", evt.Quantity,
		"total_price", evt.TotalPrice,
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	if event, err := s.events.GetEvent(ctx, evt.EventID); err == nil {
		fields = append(fields, "event_name", event.Name, "available_tickets", event.AvailableTickets)
	}

	slog.Info("Ticket purchased", fields...)
}

func (s *Service) handleTicketStatusChanged(msg *stan.Msg) {
	var evt models.TicketStatusChangedEvent
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		slog.Error("Failed to decode ticket status message", "subject", msg.Subject, "error", err)
		return
	}

	slog.Info("Ticket status changed",
		"subject", msg.Subject,
		"ticket_id", evt.TicketID,
		"event_id", evt.EventID,
		"quantity", evt.Quantity,
		"old_status", evt.OldStatus,
		"new_status", evt.NewStatus)
}

func (s *Service) handleTicketDeleted(msg *stan.Msg) {
	var evt models.TicketDeletedEvent
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		slog.Error("Failed to decode ticket deleted message", "error", err)
		return
	}

	slog.Info("Ticket deleted", "ticket_id", evt.TicketID, "event_id", evt.EventID)
}
