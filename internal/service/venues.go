package service

import (
	"context"

	"eventsync/internal/apperrors"
	"eventsync/internal/models"
)

type VenueService struct {
	venues VenueStore
}

func NewVenueService(venues VenueStore) *VenueService {
	return &VenueService{venues: venues}
}

func (s *VenueService) CreateVenue(ctx context.Context, req models.CreateVenueRequest) (*models.Venue, error) {
	if req.Capacity <= 0 {
		return nil, apperrors.ErrValidation
	}

	venue := &models.Venue{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Capacity:    req.Capacity,
		Description: optionalString(req.Description),
	}

	if err := s.venues.Create(ctx, venue); err != nil {
		return nil, err
	}

	return venue, nil
}

func (s *VenueService) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, apperrors.ErrVenueNotFound
	}
	return venue, nil
}

func (s *VenueService) ListVenues(ctx context.Context) ([]models.Venue, error) {
	return s.venues.List(ctx)
}
