package handlers

import (
	"net/http"

	"eventsync/internal/apperrors"
	"eventsync/internal/models"

	"github.com/gin-gonic/gin"
)

// ListEvents handles GET /events
func (h *EventHandlers) ListEvents(c *gin.Context) {
	if h.cache != nil {
		if raw, err := h.cache.GetEventsListRaw(c.Request.Context()); err == nil {
			c.Data(http.StatusOK, "application/json", raw)
			return
		}
	}

	events, err := h.events.ListEvents(c.Request.Context())
	if err != nil {
		respondError(c, "list events", err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	if h.cache != nil {
		h.cache.SetEventsList(c.Request.Context(), events)
	}

	c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /events/:id
func (h *EventHandlers) GetEvent(c *gin.Context) {
	id, ok := parseID(c, apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	if h.cache != nil {
		if raw, err := h.cache.GetEventRaw(c.Request.Context(), id); err == nil {
			c.Data(http.StatusOK, "application/json", raw)
			return
		}
	}

	event, err := h.events.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get event", err)
		return
	}

	if h.cache != nil {
		h.cache.SetEvent(c.Request.Context(), id, event)
	}

	c.JSON(http.StatusOK, event)
}

// CreateEvent handles POST /events
func (h *EventHandlers) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, event_date, venue, total_tickets"})
		return
	}

	event, err := h.events.CreateEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, "create event", err)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), event.ID)
	}

	c.JSON(http.StatusCreated, event)
}

// UpdateEvent handles PUT /events/:id
func (h *EventHandlers) UpdateEvent(c *gin.Context) {
	id, ok := parseID(c, apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	event, err := h.events.UpdateEvent(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "update event", err)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), id)
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent handles DELETE /events/:id
func (h *EventHandlers) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c, apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	if err := h.events.DeleteEvent(c.Request.Context(), id); err != nil {
		respondError(c, "delete event", err)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), id)
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Event deleted successfully"})
}

// AdjustTickets handles PUT /events/:id/tickets, the single write path for
// availability. Success means the new counts are already committed.
func (h *EventHandlers) AdjustTickets(c *gin.Context) {
	id, ok := parseID(c, apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	var req models.AdjustTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.Message(apperrors.ErrInvalidTicketCount)})
		return
	}

	result, err := h.events.AdjustTickets(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "adjust tickets", err)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), id)
	}

	c.JSON(http.StatusOK, result)
}
