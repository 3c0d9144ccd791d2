package models

import (
	"time"
)

// Event represents an event with its ticket inventory. The event service is
// the only writer of available_tickets; everyone else observes it over HTTP.
type Event struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Description      *string   `json:"description" db:"description"`
	EventDate        time.Time `json:"event_date" db:"event_date"`
	Venue            string    `json:"venue" db:"venue"`
	TotalTickets     int       `json:"total_tickets" db:"total_tickets"`
	AvailableTickets int       `json:"available_tickets" db:"available_tickets"`
	PricePerTicket   float64   `json:"price_per_ticket" db:"price_per_ticket"`
	ImageURL         *string   `json:"image_url" db:"image_url"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// TicketsSold is the quantity currently accounted against capacity.
func (e *Event) TicketsSold() int {
	return e.TotalTickets - e.AvailableTickets
}

// Venue represents a venue where events take place
type Venue struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Address     string    `json:"address" db:"address"`
	City        string    `json:"city" db:"city"`
	Capacity    int       `json:"capacity" db:"capacity"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Ticket represents a customer purchase recorded by the ticket service.
// event_id references a row in the event service's database; it is resolved
// live over HTTP and never validated locally after creation.
type Ticket struct {
	ID            int64        `json:"id" db:"id"`
	EventID       int64        `json:"event_id" db:"event_id"`
	CustomerName  string       `json:"customer_name" db:"customer_name"`
	CustomerEmail string       `json:"customer_email" db:"customer_email"`
	Quantity      int          `json:"quantity" db:"quantity"`
	TotalPrice    float64      `json:"total_price" db:"total_price"`
	Status        TicketStatus `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}
