package repository

import (
	"context"
	"database/sql"
	"fmt"

	"eventsync/internal/apperrors"
	"eventsync/internal/database"
	"eventsync/internal/models"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, name, description, event_date, venue, total_tickets, available_tickets, price_per_ticket, image_url, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.EventDate,
		&event.Venue,
		&event.TotalTickets,
		&event.AvailableTickets,
		&event.PricePerTicket,
		&event.ImageURL,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (name, description, event_date, venue, total_tickets, available_tickets, price_per_ticket, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		event.Name,
		event.Description,
		event.EventDate,
		event.Venue,
		event.TotalTickets,
		event.AvailableTickets,
		event.PricePerTicket,
		event.ImageURL,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return event, err
}

func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY id`, eventColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}

	return events, rows.Err()
}

// Update applies a partial update under the row lock. A total_tickets change
// recomputes availability with the sold quantity held fixed, so the update
// cannot race with an in-flight adjustment.
func (r *EventRepository) Update(ctx context.Context, id int64, upd models.EventUpdate) (*models.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	lockQuery := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1 FOR UPDATE`, eventColumns)
	event, err := scanEvent(tx.QueryRowContext(ctx, lockQuery, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		event.Name = *upd.Name
	}
	if upd.Description != nil {
		event.Description = upd.Description
	}
	if upd.EventDate != nil {
		event.EventDate = *upd.EventDate
	}
	if upd.Venue != nil {
		event.Venue = *upd.Venue
	}
	if upd.TotalTickets != nil {
		event.AvailableTickets = models.RecomputeAvailable(*upd.TotalTickets, event.TotalTickets, event.AvailableTickets)
		event.TotalTickets = *upd.TotalTickets
	}
	if upd.PricePerTicket != nil {
		event.PricePerTicket = *upd.PricePerTicket
	}
	if upd.ImageURL != nil {
		event.ImageURL = upd.ImageURL
	}

	updateQuery := `
		UPDATE events
		SET name = $1, description = $2, event_date = $3, venue = $4,
		    total_tickets = $5, available_tickets = $6, price_per_ticket = $7,
		    image_url = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at`

	err = tx.QueryRowContext(ctx, updateQuery,
		event.Name,
		event.Description,
		event.EventDate,
		event.Venue,
		event.TotalTickets,
		event.AvailableTickets,
		event.PricePerTicket,
		event.ImageURL,
		id,
	).Scan(&event.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// AdjustAvailable executes the bounded reserve/release as one atomic unit:
// the row lock holds from the bound check to the write, so concurrent
// adjustments on the same event serialize while other events proceed freely.
func (r *EventRepository) AdjustAvailable(ctx context.Context, id int64, count int, op models.AdjustOperation) (*models.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	lockQuery := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1 FOR UPDATE`, eventColumns)
	event, err := scanEvent(tx.QueryRowContext(ctx, lockQuery, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	newAvailable, err := models.ApplyAdjustment(event.AvailableTickets, event.TotalTickets, count, op)
	if err != nil {
		return nil, err
	}

	updateQuery := `UPDATE events SET available_tickets = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`
	if err := tx.QueryRowContext(ctx, updateQuery, newAvailable, id).Scan(&event.UpdatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	event.AvailableTickets = newAvailable
	return event, nil
}
