package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"eventsync/internal/apperrors"
	"eventsync/internal/models"
)

// EventServiceClient is the ticket service's only path to event data. Calls
// are synchronous with a bounded timeout; once a request is sent the caller
// waits for a definitive response or the timeout, then treats the operation
// as failed. No retries happen inside a request.
type EventServiceClient struct {
	baseURL    string
	httpClient *http.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type errorBody struct {
	Error string `json:"error"`
}

func NewEventServiceClient(cfg Config) *EventServiceClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	return &EventServiceClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// GetEvent fetches a single event, including its live availability.
func (ec *EventServiceClient) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	url := fmt.Sprintf("%s/events/%d", ec.baseURL, eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := ec.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, apperrors.ErrEventNotFound
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d", apperrors.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var event models.Event
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	return &event, nil
}

// AdjustTickets asks the event service to reserve or release count tickets.
// The bound check runs authoritatively on the event service; a 400 here is
// the inventory's answer, not a transport problem, and is mapped back to the
// matching sentinel.
func (ec *EventServiceClient) AdjustTickets(ctx context.Context, eventID int64, count int, op models.AdjustOperation) (*models.AdjustTicketsResponse, error) {
	body, err := json.Marshal(models.AdjustTicketsRequest{
		TicketCount: &count,
		Operation:   string(op),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/events/%d/tickets", ec.baseURL, eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ec.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, apperrors.ErrEventNotFound
	case http.StatusBadRequest:
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil || eb.Error == "" {
			return nil, fmt.Errorf("%w: adjustment rejected", apperrors.ErrUpstreamUnavailable)
		}
		return nil, apperrors.FromMessage(eb.Error)
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d", apperrors.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var result models.AdjustTicketsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	return &result, nil
}
