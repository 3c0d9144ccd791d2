package handlers

import (
	"net/http"

	"eventsync/internal/apperrors"
	"eventsync/internal/models"

	"github.com/gin-gonic/gin"
)

// ListVenues handles GET /venues
func (h *EventHandlers) ListVenues(c *gin.Context) {
	venues, err := h.venues.ListVenues(c.Request.Context())
	if err != nil {
		respondError(c, "list venues", err)
		return
	}
	if venues == nil {
		venues = []models.Venue{}
	}

	c.JSON(http.StatusOK, venues)
}

// GetVenue handles GET /venues/:id
func (h *EventHandlers) GetVenue(c *gin.Context) {
	id, ok := parseID(c, apperrors.ErrVenueNotFound)
	if !ok {
		return
	}

	venue, err := h.venues.GetVenue(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get venue", err)
		return
	}

	c.JSON(http.StatusOK, venue)
}

// CreateVenue handles POST /venues
func (h *EventHandlers) CreateVenue(c *gin.Context) {
	var req models.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, address, city, capacity"})
		return
	}

	venue, err := h.venues.CreateVenue(c.Request.Context(), req)
	if err != nil {
		respondError(c, "create venue", err)
		return
	}

	c.JSON(http.StatusCreated, venue)
}
