package models

import (
	"time"

	"eventsync/internal/apperrors"
)

// eventDateLayouts mirrors the formats the original accepted: full RFC3339
// and the HTML datetime-local shape, with a seconds variant in between.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseEventDate parses an event date from any of the accepted layouts.
func ParseEventDate(s string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.ErrInvalidDate
}

// CreateEventRequest - payload for POST /events
type CreateEventRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	EventDate      string  `json:"event_date" binding:"required"`
	Venue          string  `json:"venue" binding:"required"`
	TotalTickets   int     `json:"total_tickets" binding:"required"`
	PricePerTicket float64 `json:"price_per_ticket"`
	ImageURL       string  `json:"image_url"`
}

// UpdateEventRequest - partial update payload for PUT /events/:id
type UpdateEventRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	EventDate      *string  `json:"event_date"`
	Venue          *string  `json:"venue"`
	TotalTickets   *int     `json:"total_tickets"`
	PricePerTicket *float64 `json:"price_per_ticket"`
	ImageURL       *string  `json:"image_url"`
}

// EventUpdate is the repository-level view of a partial update, with the
// date already parsed.
type EventUpdate struct {
	Name           *string
	Description    *string
	EventDate      *time.Time
	Venue          *string
	TotalTickets   *int
	PricePerTicket *float64
	ImageURL       *string
}

// AdjustTicketsRequest - payload for PUT /events/:id/tickets, the single
// mutation path for inventory counts.
type AdjustTicketsRequest struct {
	TicketCount *int   `json:"ticket_count" binding:"required"`
	Operation   string `json:"operation" binding:"required"`
}

// AdjustTicketsResponse - post-adjustment counts returned to the caller
type AdjustTicketsResponse struct {
	EventID          int64 `json:"event_id"`
	AvailableTickets int   `json:"available_tickets"`
	TotalTickets     int   `json:"total_tickets"`
}

// CreateVenueRequest - payload for POST /venues
type CreateVenueRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required"`
	Description string `json:"description"`
}

// CreateTicketRequest - payload for POST /tickets
type CreateTicketRequest struct {
	EventID       int64  `json:"event_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required"`
}

// UpdateTicketStatusRequest - payload for PUT /tickets/:id/status
type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TicketResponse is a ticket with the owning event embedded when the event
// service could be reached. Event degrades to an error stub otherwise.
type TicketResponse struct {
	Ticket
	Event any `json:"event,omitempty"`
}

// MessageResponse - trivial confirmation body for deletes
type MessageResponse struct {
	Message string `json:"message"`
}
