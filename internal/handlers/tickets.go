package handlers

import (
	"net/http"
	"strconv"

	"eventsync/internal/apperrors"
	"eventsync/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateTicket handles POST /tickets, the purchase entry point.
func (h *TicketHandlers) CreateTicket(c *gin.Context) {
	var req models.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: event_id, customer_name, customer_email, quantity"})
		return
	}

	ticket, err := h.tickets.CreateTicket(c.Request.Context(), req)
	if err != nil {
		respondError(c, "create ticket", err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// ListTickets handles GET /tickets with an optional event_id filter.
func (h *TicketHandlers) ListTickets(c *gin.Context) {
	var eventID *int64
	if raw := c.Query("event_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event_id must be an integer"})
			return
		}
		eventID = &id
	}

	tickets, err := h.tickets.ListTickets(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, "list tickets", err)
		return
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}

	c.JSON(http.StatusOK, tickets)
}

// GetTicket handles GET /tickets/:id with the owning event embedded.
func (h *TicketHandlers) GetTicket(c *gin.Context) {
	id, ok := parseID(c, apperrors.ErrTicketNotFound)
	if !ok {
		return
	}

	resp, err := h.tickets.GetTicket(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get ticket", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateTicketStatus handles PUT /tickets/:id/status
func (h *TicketHandlers) UpdateTicketStatus(c *gin.Context) {
	id, ok := parseID(c, apperrors.ErrTicketNotFound)
	if !ok {
		return
	}

	var req models.UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.Message(apperrors.ErrInvalidStatus)})
		return
	}

	ticket, err := h.tickets.UpdateTicketStatus(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "update ticket status", err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// DeleteTicket handles DELETE /tickets/:id
func (h *TicketHandlers) DeleteTicket(c *gin.Context) {
	id, ok := parseID(c, apperrors.ErrTicketNotFound)
	if !ok {
		return
	}

	if err := h.tickets.DeleteTicket(c.Request.Context(), id); err != nil {
		respondError(c, "delete ticket", err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Ticket deleted successfully"})
}
