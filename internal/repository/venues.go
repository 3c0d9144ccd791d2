package repository

import (
	"context"
	"database/sql"

	"eventsync/internal/database"
	"eventsync/internal/models"
)

type VenueRepository struct {
	db *database.DB
}

func NewVenueRepository(db *database.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `
		INSERT INTO venues (name, address, city, capacity, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		venue.Name,
		venue.Address,
		venue.City,
		venue.Capacity,
		venue.Description,
	).Scan(&venue.ID, &venue.CreatedAt)
}

func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*models.Venue, error) {
	venue := &models.Venue{}
	query := `
		SELECT id, name, address, city, capacity, description, created_at
		FROM venues
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Address,
		&venue.City,
		&venue.Capacity,
		&venue.Description,
		&venue.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return venue, err
}

func (r *VenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	query := `
		SELECT id, name, address, city, capacity, description, created_at
		FROM venues
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		var venue models.Venue
		err := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Address,
			&venue.City,
			&venue.Capacity,
			&venue.Description,
			&venue.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}

	return venues, rows.Err()
}
