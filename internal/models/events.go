package models

import "time"

// NATS subjects
const (
	EventCreated       = "event.created"
	EventUpdated       = "event.updated"
	EventDeleted       = "event.deleted"
	InventoryAdjusted  = "inventory.adjusted"
	InventoryDangling  = "inventory.dangling"
	TicketCreated      = "ticket.created"
	TicketStatusChange = "ticket.status_changed"
	TicketCancelled    = "ticket.cancelled"
	TicketDeleted      = "ticket.deleted"
)

// EventLifecycleEvent covers event create/update/delete notifications
type EventLifecycleEvent struct {
	EventID   int64     `json:"event_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// InventoryAdjustedEvent records a committed reserve/release
type InventoryAdjustedEvent struct {
	EventID          int64           `json:"event_id"`
	Operation        AdjustOperation `json:"operation"`
	TicketCount      int             `json:"ticket_count"`
	AvailableTickets int             `json:"available_tickets"`
	TotalTickets     int             `json:"total_tickets"`
	Timestamp        time.Time       `json:"timestamp"`
}

// InventoryDanglingEvent flags an inventory adjustment that succeeded
// remotely while the corresponding local ticket write failed. There is no
// automatic compensation; consumers make the window operator-visible.
type InventoryDanglingEvent struct {
	EventID     int64           `json:"event_id"`
	Operation   AdjustOperation `json:"operation"`
	TicketCount int             `json:"ticket_count"`
	Reason      string          `json:"reason"`
	Timestamp   time.Time       `json:"timestamp"`
}

// TicketCreatedEvent records a successful purchase
type TicketCreatedEvent struct {
	TicketID   int64     `json:"ticket_id"`
	EventID    int64     `json:"event_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	Timestamp  time.Time `json:"timestamp"`
}

// TicketStatusChangedEvent records a status transition
type TicketStatusChangedEvent struct {
	TicketID  int64        `json:"ticket_id"`
	EventID   int64        `json:"event_id"`
	Quantity  int          `json:"quantity"`
	OldStatus TicketStatus `json:"old_status"`
	NewStatus TicketStatus `json:"new_status"`
	Timestamp time.Time    `json:"timestamp"`
}

// TicketDeletedEvent records a ticket row removal
type TicketDeletedEvent struct {
	TicketID  int64     `json:"ticket_id"`
	EventID   int64     `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
}
