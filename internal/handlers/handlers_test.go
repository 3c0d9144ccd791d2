package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"eventsync/internal/apperrors"
	"eventsync/internal/messaging"
	"eventsync/internal/models"
	"eventsync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memEventStore struct {
	mu     sync.Mutex
	events map[int64]models.Event
	nextID int64
}

func (m *memEventStore) Create(ctx context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	event.ID = m.nextID
	m.events[event.ID] = *event
	return nil
}

func (m *memEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	return &event, nil
}

func (m *memEventStore) List(ctx context.Context) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Event
	for _, e := range m.events {
		out = append(out, e)
	}
	return out, nil
}

func (m *memEventStore) Update(ctx context.Context, id int64, upd models.EventUpdate) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	if upd.Name != nil {
		event.Name = *upd.Name
	}
	if upd.TotalTickets != nil {
		event.AvailableTickets = models.RecomputeAvailable(*upd.TotalTickets, event.TotalTickets, event.AvailableTickets)
		event.TotalTickets = *upd.TotalTickets
	}
	m.events[id] = event
	return &event, nil
}

func (m *memEventStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *memEventStore) AdjustAvailable(ctx context.Context, id int64, count int, op models.AdjustOperation) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	newAvailable, err := models.ApplyAdjustment(event.AvailableTickets, event.TotalTickets, count, op)
	if err != nil {
		return nil, err
	}
	event.AvailableTickets = newAvailable
	m.events[id] = event
	return &event, nil
}

type memVenueStore struct {
	mu     sync.Mutex
	venues map[int64]models.Venue
	nextID int64
}

func (m *memVenueStore) Create(ctx context.Context, venue *models.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	venue.ID = m.nextID
	m.venues[venue.ID] = *venue
	return nil
}

func (m *memVenueStore) GetByID(ctx context.Context, id int64) (*models.Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	venue, ok := m.venues[id]
	if !ok {
		return nil, nil
	}
	return &venue, nil
}

func (m *memVenueStore) List(ctx context.Context) ([]models.Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Venue
	for _, v := range m.venues {
		out = append(out, v)
	}
	return out, nil
}

type memTicketStore struct {
	mu      sync.Mutex
	tickets map[int64]models.Ticket
	nextID  int64
}

func (m *memTicketStore) Create(ctx context.Context, ticket *models.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ticket.ID = m.nextID
	m.tickets[ticket.ID] = *ticket
	return nil
}

func (m *memTicketStore) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket, ok := m.tickets[id]
	if !ok {
		return nil, nil
	}
	return &ticket, nil
}

func (m *memTicketStore) List(ctx context.Context, eventID *int64) ([]models.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Ticket
	for _, t := range m.tickets {
		if eventID == nil || t.EventID == *eventID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTicketStore) UpdateStatus(ctx context.Context, id int64, status models.TicketStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket := m.tickets[id]
	ticket.Status = status
	m.tickets[id] = ticket
	return nil
}

func (m *memTicketStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tickets, id)
	return nil
}

// localInventory routes the ticket service's inventory calls straight into an
// in-process event service, exercising the same adjust path a remote call
// would hit.
type localInventory struct {
	events *service.EventService
}

func (l *localInventory) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	return l.events.GetEvent(ctx, eventID)
}

func (l *localInventory) AdjustTickets(ctx context.Context, eventID int64, count int, op models.AdjustOperation) (*models.AdjustTicketsResponse, error) {
	return l.events.AdjustTickets(ctx, eventID, models.AdjustTicketsRequest{
		TicketCount: &count,
		Operation:   string(op),
	})
}

type fixture struct {
	eventRouter  *gin.Engine
	ticketRouter *gin.Engine
}

func newFixture() *fixture {
	nats := &messaging.NATSClient{}

	eventService := service.NewEventService(&memEventStore{events: make(map[int64]models.Event)}, nats)
	venueService := service.NewVenueService(&memVenueStore{venues: make(map[int64]models.Venue)})
	eh := NewEventHandlers(eventService, venueService, nil)

	ticketService := service.NewTicketService(
		&memTicketStore{tickets: make(map[int64]models.Ticket)},
		&localInventory{events: eventService},
		nats)
	th := NewTicketHandlers(ticketService)

	eventRouter := gin.New()
	eventRouter.GET("/health", Health("event-service"))
	eventRouter.GET("/events", eh.ListEvents)
	eventRouter.POST("/events", eh.CreateEvent)
	eventRouter.GET("/events/:id", eh.GetEvent)
	eventRouter.PUT("/events/:id", eh.UpdateEvent)
	eventRouter.DELETE("/events/:id", eh.DeleteEvent)
	eventRouter.PUT("/events/:id/tickets", eh.AdjustTickets)
	eventRouter.GET("/venues", eh.ListVenues)
	eventRouter.POST("/venues", eh.CreateVenue)
	eventRouter.GET("/venues/:id", eh.GetVenue)

	ticketRouter := gin.New()
	ticketRouter.POST("/tickets", th.CreateTicket)
	ticketRouter.GET("/tickets", th.ListTickets)
	ticketRouter.GET("/tickets/:id", th.GetTicket)
	ticketRouter.PUT("/tickets/:id/status", th.UpdateTicketStatus)
	ticketRouter.DELETE("/tickets/:id", th.DeleteTicket)

	return &fixture{eventRouter: eventRouter, ticketRouter: ticketRouter}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func (f *fixture) createEvent(t *testing.T, total int, price float64) models.Event {
	t.Helper()
	w := doJSON(t, f.eventRouter, http.MethodPost, "/events", gin.H{
		"name":             "Go Conference",
		"event_date":       "2026-10-01T19:00:00",
		"venue":            "Main Hall",
		"total_tickets":    total,
		"price_per_ticket": price,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var event models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	return event
}

func TestEventEndpoints(t *testing.T) {
	t.Run("create returns the stored event", func(t *testing.T) {
		f := newFixture()
		event := f.createEvent(t, 100, 25)
		assert.Equal(t, 100, event.AvailableTickets)
	})

	t.Run("create with missing fields", func(t *testing.T) {
		f := newFixture()
		w := doJSON(t, f.eventRouter, http.MethodPost, "/events", gin.H{"name": "incomplete"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create with bad date", func(t *testing.T) {
		f := newFixture()
		w := doJSON(t, f.eventRouter, http.MethodPost, "/events", gin.H{
			"name": "x", "event_date": "whenever", "venue": "v", "total_tickets": 10,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrInvalidDate.Error(), errorBody(t, w))
	})

	t.Run("get unknown event", func(t *testing.T) {
		f := newFixture()
		w := doJSON(t, f.eventRouter, http.MethodGet, "/events/42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Event not found", errorBody(t, w))
	})

	t.Run("non-numeric id reads as not found", func(t *testing.T) {
		f := newFixture()
		w := doJSON(t, f.eventRouter, http.MethodGet, "/events/abc", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list includes created events", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 100, 25)

		w := doJSON(t, f.eventRouter, http.MethodGet, "/events", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var events []models.Event
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
		assert.Len(t, events, 1)
	})

	t.Run("delete then get", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 100, 25)

		w := doJSON(t, f.eventRouter, http.MethodDelete, "/events/1", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, f.eventRouter, http.MethodGet, "/events/1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdjustTicketsEndpoint(t *testing.T) {
	t.Run("reserve returns the committed counts", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 100, 25)

		w := doJSON(t, f.eventRouter, http.MethodPut, "/events/1/tickets", gin.H{
			"ticket_count": 30, "operation": "reserve",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.AdjustTicketsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 70, resp.AvailableTickets)
		assert.Equal(t, 100, resp.TotalTickets)
	})

	t.Run("over-reserve rejected with no state change", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 10, 25)

		w := doJSON(t, f.eventRouter, http.MethodPut, "/events/1/tickets", gin.H{
			"ticket_count": 11, "operation": "reserve",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Not enough tickets available", errorBody(t, w))

		g := doJSON(t, f.eventRouter, http.MethodGet, "/events/1", nil)
		var event models.Event
		require.NoError(t, json.Unmarshal(g.Body.Bytes(), &event))
		assert.Equal(t, 10, event.AvailableTickets)
	})

	t.Run("over-release rejected", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 10, 25)

		w := doJSON(t, f.eventRouter, http.MethodPut, "/events/1/tickets", gin.H{
			"ticket_count": 1, "operation": "release",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Cannot release more tickets than the total", errorBody(t, w))
	})

	t.Run("unknown operation", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 10, 25)

		w := doJSON(t, f.eventRouter, http.MethodPut, "/events/1/tickets", gin.H{
			"ticket_count": 1, "operation": "hoard",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrInvalidOperation.Error(), errorBody(t, w))
	})

	t.Run("missing ticket_count", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 10, 25)

		w := doJSON(t, f.eventRouter, http.MethodPut, "/events/1/tickets", gin.H{"operation": "reserve"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newFixture()
		w := doJSON(t, f.eventRouter, http.MethodPut, "/events/9/tickets", gin.H{
			"ticket_count": 1, "operation": "reserve",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTicketEndpoints(t *testing.T) {
	purchase := func(t *testing.T, f *fixture, quantity int) models.Ticket {
		t.Helper()
		w := doJSON(t, f.ticketRouter, http.MethodPost, "/tickets", gin.H{
			"event_id":       1,
			"customer_name":  "Alice",
			"customer_email": "alice@example.com",
			"quantity":       quantity,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var ticket models.Ticket
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ticket))
		return ticket
	}

	t.Run("purchase reserves inventory and snapshots price", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 100, 25)

		ticket := purchase(t, f, 4)
		assert.Equal(t, models.StatusReserved, ticket.Status)
		assert.Equal(t, 100.0, ticket.TotalPrice)

		g := doJSON(t, f.eventRouter, http.MethodGet, "/events/1", nil)
		var event models.Event
		require.NoError(t, json.Unmarshal(g.Body.Bytes(), &event))
		assert.Equal(t, 96, event.AvailableTickets)
	})

	t.Run("purchase beyond availability", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 3, 25)

		w := doJSON(t, f.ticketRouter, http.MethodPost, "/tickets", gin.H{
			"event_id": 1, "customer_name": "Alice", "customer_email": "a@b.c", "quantity": 4,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Not enough tickets available", errorBody(t, w))
	})

	t.Run("purchase for unknown event", func(t *testing.T) {
		f := newFixture()
		w := doJSON(t, f.ticketRouter, http.MethodPost, "/tickets", gin.H{
			"event_id": 9, "customer_name": "Alice", "customer_email": "a@b.c", "quantity": 1,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get embeds the event", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 100, 25)
		ticket := purchase(t, f, 2)

		w := doJSON(t, f.ticketRouter, http.MethodGet, "/tickets/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			models.Ticket
			Event models.Event `json:"event"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ticket.ID, resp.ID)
		assert.Equal(t, "Go Conference", resp.Event.Name)
	})

	t.Run("status transitions over HTTP", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 10, 25)
		purchase(t, f, 4)

		w := doJSON(t, f.ticketRouter, http.MethodPut, "/tickets/1/status", gin.H{"status": "CONFIRMED"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, f.ticketRouter, http.MethodPut, "/tickets/1/status", gin.H{"status": "RESERVED"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid status transition", errorBody(t, w))

		// Cancelling the confirmed ticket releases its quantity.
		w = doJSON(t, f.ticketRouter, http.MethodPut, "/tickets/1/status", gin.H{"status": "CANCELLED"})
		require.Equal(t, http.StatusOK, w.Code)

		g := doJSON(t, f.eventRouter, http.MethodGet, "/events/1", nil)
		var event models.Event
		require.NoError(t, json.Unmarshal(g.Body.Bytes(), &event))
		assert.Equal(t, 10, event.AvailableTickets)
	})

	t.Run("invalid status text", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 10, 25)
		purchase(t, f, 1)

		w := doJSON(t, f.ticketRouter, http.MethodPut, "/tickets/1/status", gin.H{"status": "MAYBE"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete active ticket restores inventory", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 10, 25)
		purchase(t, f, 4)

		w := doJSON(t, f.ticketRouter, http.MethodDelete, "/tickets/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		g := doJSON(t, f.eventRouter, http.MethodGet, "/events/1", nil)
		var event models.Event
		require.NoError(t, json.Unmarshal(g.Body.Bytes(), &event))
		assert.Equal(t, 10, event.AvailableTickets)

		w = doJSON(t, f.ticketRouter, http.MethodGet, "/tickets/1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list filters by event_id", func(t *testing.T) {
		f := newFixture()
		f.createEvent(t, 10, 25)
		purchase(t, f, 1)
		purchase(t, f, 2)

		w := doJSON(t, f.ticketRouter, http.MethodGet, "/tickets?event_id=1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var tickets []models.Ticket
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tickets))
		assert.Len(t, tickets, 2)

		w = doJSON(t, f.ticketRouter, http.MethodGet, "/tickets?event_id=7", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tickets))
		assert.Empty(t, tickets)
	})
}

func TestHealthEndpoint(t *testing.T) {
	f := newFixture()
	w := doJSON(t, f.eventRouter, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "event-service", body["service"])
}
