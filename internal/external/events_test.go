package external

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventsync/internal/apperrors"
	"eventsync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEvent(t *testing.T) {
	t.Run("decodes a found event", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/events/7", r.URL.Path)
			json.NewEncoder(w).Encode(models.Event{
				ID: 7, Name: "Go Conference", TotalTickets: 100, AvailableTickets: 60, PricePerTicket: 25,
			})
		}))
		defer srv.Close()

		client := NewEventServiceClient(Config{BaseURL: srv.URL})
		event, err := client.GetEvent(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "Go Conference", event.Name)
		assert.Equal(t, 60, event.AvailableTickets)
	})

	t.Run("maps 404 to the not found sentinel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Event not found"})
		}))
		defer srv.Close()

		client := NewEventServiceClient(Config{BaseURL: srv.URL})
		_, err := client.GetEvent(context.Background(), 7)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})

	t.Run("connection refused is an upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client := NewEventServiceClient(Config{BaseURL: srv.URL})
		_, err := client.GetEvent(context.Background(), 7)
		assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	})

	t.Run("timeout is an upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client := NewEventServiceClient(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
		_, err := client.GetEvent(context.Background(), 7)
		assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	})

	t.Run("5xx is an upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewEventServiceClient(Config{BaseURL: srv.URL})
		_, err := client.GetEvent(context.Background(), 7)
		assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	})
}

func TestAdjustTickets(t *testing.T) {
	t.Run("sends the adjustment and decodes the counts", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/events/7/tickets", r.URL.Path)

			var req models.AdjustTicketsRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotNil(t, req.TicketCount)
			assert.Equal(t, 3, *req.TicketCount)
			assert.Equal(t, "reserve", req.Operation)

			json.NewEncoder(w).Encode(models.AdjustTicketsResponse{
				EventID: 7, AvailableTickets: 57, TotalTickets: 100,
			})
		}))
		defer srv.Close()

		client := NewEventServiceClient(Config{BaseURL: srv.URL})
		resp, err := client.AdjustTickets(context.Background(), 7, 3, models.OpReserve)
		require.NoError(t, err)
		assert.Equal(t, 57, resp.AvailableTickets)
	})

	t.Run("400 body maps back to the matching sentinel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Not enough tickets available"})
		}))
		defer srv.Close()

		client := NewEventServiceClient(Config{BaseURL: srv.URL})
		_, err := client.AdjustTickets(context.Background(), 7, 500, models.OpReserve)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientInventory)
	})

	t.Run("unrecognized 400 body surfaces verbatim", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "tickets are in the cellar"})
		}))
		defer srv.Close()

		client := NewEventServiceClient(Config{BaseURL: srv.URL})
		_, err := client.AdjustTickets(context.Background(), 7, 1, models.OpReserve)
		require.Error(t, err)
		assert.EqualError(t, err, "tickets are in the cellar")
	})

	t.Run("missing event", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewEventServiceClient(Config{BaseURL: srv.URL})
		_, err := client.AdjustTickets(context.Background(), 7, 1, models.OpRelease)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}
