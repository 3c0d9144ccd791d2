package database

import (
	"fmt"
	"log/slog"
)

// RunEventMigrations creates the schema owned by the event service.
func (db *DB) RunEventMigrations() error {
	return db.runMigrations("event-service", []string{
		createEventsTable,
		createVenuesTable,
		seedDefaultVenue,
	})
}

// RunTicketMigrations creates the schema owned by the ticket service. Note
// that tickets.event_id carries no foreign key: the event rows live in a
// different service's database and are only ever resolved over HTTP.
func (db *DB) RunTicketMigrations() error {
	return db.runMigrations("ticket-service", []string{
		createTicketsTable,
		createTicketsEventIndex,
	})
}

func (db *DB) runMigrations(owner string, migrations []string) error {
	slog.Info("Running database migrations...", "owner", owner)

	for i, migration := range migrations {
		slog.Info("Running migration", "owner", owner, "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully", "owner", owner)
	return nil
}

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    description TEXT,
    event_date TIMESTAMP NOT NULL,
    venue VARCHAR(100) NOT NULL,
    total_tickets INTEGER NOT NULL,
    available_tickets INTEGER NOT NULL,
    price_per_ticket DOUBLE PRECISION NOT NULL DEFAULT 100.00,
    image_url VARCHAR(255),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (total_tickets > 0),
    CHECK (available_tickets >= 0 AND available_tickets <= total_tickets)
);`

const createVenuesTable = `
CREATE TABLE IF NOT EXISTS venues (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    address VARCHAR(200) NOT NULL,
    city VARCHAR(100) NOT NULL,
    capacity INTEGER NOT NULL,
    description TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const seedDefaultVenue = `
INSERT INTO venues (name, address, city, capacity, description)
SELECT 'Main Hall', 'Jl. Sudirman No. 123', 'Jakarta', 1000, 'Our main event venue'
WHERE NOT EXISTS (SELECT 1 FROM venues);`

const createTicketsTable = `
CREATE TABLE IF NOT EXISTS tickets (
    id SERIAL PRIMARY KEY,
    event_id INTEGER NOT NULL,
    customer_name VARCHAR(100) NOT NULL,
    customer_email VARCHAR(100) NOT NULL,
    quantity INTEGER NOT NULL,
    total_price DOUBLE PRECISION NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'RESERVED',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (quantity > 0),
    CHECK (status IN ('RESERVED', 'CONFIRMED', 'CANCELLED'))
);`

const createTicketsEventIndex = `
CREATE INDEX IF NOT EXISTS tickets_event_id_idx ON tickets (event_id);`
