package repository

import (
	"eventsync/internal/database"
)

// EventRepositories bundles the stores owned by the event service.
type EventRepositories struct {
	Events *EventRepository
	Venues *VenueRepository
}

func NewEventRepositories(db *database.DB) *EventRepositories {
	return &EventRepositories{
		Events: NewEventRepository(db),
		Venues: NewVenueRepository(db),
	}
}

// TicketRepositories bundles the stores owned by the ticket service.
type TicketRepositories struct {
	Tickets *TicketRepository
}

func NewTicketRepositories(db *database.DB) *TicketRepositories {
	return &TicketRepositories{
		Tickets: NewTicketRepository(db),
	}
}
