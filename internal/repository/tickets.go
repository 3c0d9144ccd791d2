package repository

import (
	"context"
	"database/sql"

	"eventsync/internal/database"
	"eventsync/internal/models"
)

type TicketRepository struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (event_id, customer_name, customer_email, quantity, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		ticket.EventID,
		ticket.CustomerName,
		ticket.CustomerEmail,
		ticket.Quantity,
		ticket.TotalPrice,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	query := `
		SELECT id, event_id, customer_name, customer_email, quantity, total_price, status, created_at, updated_at
		FROM tickets
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.CustomerName,
		&ticket.CustomerEmail,
		&ticket.Quantity,
		&ticket.TotalPrice,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return ticket, err
}

func (r *TicketRepository) List(ctx context.Context, eventID *int64) ([]models.Ticket, error) {
	query := `
		SELECT id, event_id, customer_name, customer_email, quantity, total_price, status, created_at, updated_at
		FROM tickets`
	var args []interface{}

	if eventID != nil {
		query += ` WHERE event_id = $1`
		args = append(args, *eventID)
	}

	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var ticket models.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.EventID,
			&ticket.CustomerName,
			&ticket.CustomerEmail,
			&ticket.Quantity,
			&ticket.TotalPrice,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id int64, status models.TicketStatus) error {
	query := `UPDATE tickets SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

func (r *TicketRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	return err
}
