package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel errors for the reservation protocol. The messages double as the
// wire-level error bodies, so the texts the event service serves must stay in
// sync with what FromMessage recognizes on the ticket service side.
var (
	ErrEventNotFound  = errors.New("Event not found")
	ErrTicketNotFound = errors.New("Ticket not found")
	ErrVenueNotFound  = errors.New("Venue not found")

	ErrInsufficientInventory = errors.New("Not enough tickets available")
	ErrOverRelease           = errors.New("Cannot release more tickets than the total")
	ErrInvalidOperation      = errors.New(`Invalid operation. Use "reserve" or "release"`)
	ErrInvalidTicketCount    = errors.New("ticket_count must be greater than zero")

	ErrInvalidQuantity   = errors.New("Quantity must be greater than zero")
	ErrInvalidStatus     = errors.New("Invalid status. Must be one of: RESERVED, CONFIRMED, CANCELLED")
	ErrInvalidTransition = errors.New("Invalid status transition")

	ErrValidation          = errors.New("validation failed")
	ErrInvalidTotalTickets = errors.New("Total tickets must be greater than zero")
	ErrInvalidPrice        = errors.New("Price must be greater than zero")
	ErrInvalidDate         = errors.New("Invalid date format. Use ISO format (YYYY-MM-DDTHH:MM:SS).")

	// ErrUpstreamUnavailable means the call to the sibling service errored or
	// timed out before a definitive answer arrived.
	ErrUpstreamUnavailable = errors.New("Error connecting to Event Service")

	// ErrPersistence means a local write failed after a remote inventory
	// adjustment already succeeded. The adjustment is left dangling on
	// purpose; there is no automatic compensation.
	ErrPersistence = errors.New("Failed to save ticket after inventory was adjusted")
)

var sentinels = []error{
	ErrEventNotFound,
	ErrTicketNotFound,
	ErrVenueNotFound,
	ErrInsufficientInventory,
	ErrOverRelease,
	ErrInvalidOperation,
	ErrInvalidTicketCount,
	ErrInvalidQuantity,
	ErrInvalidStatus,
	ErrInvalidTransition,
	ErrValidation,
	ErrInvalidTotalTickets,
	ErrInvalidPrice,
	ErrInvalidDate,
	ErrUpstreamUnavailable,
	ErrPersistence,
}

// HTTPStatus maps an error to the status code it should be served with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEventNotFound),
		errors.Is(err, ErrTicketNotFound),
		errors.Is(err, ErrVenueNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInsufficientInventory),
		errors.Is(err, ErrOverRelease),
		errors.Is(err, ErrInvalidOperation),
		errors.Is(err, ErrInvalidTicketCount),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidTotalTickets),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing text for err: the sentinel's text when err
// wraps one, a generic message otherwise. Internal detail added with %w
// wrapping stays in the logs and out of response bodies.
func Message(err error) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "Internal server error"
}

// FromMessage maps an error body received from the sibling service back to
// the sentinel it was produced from. Unrecognized texts come back as a plain
// error so the caller still sees the upstream message.
func FromMessage(msg string) error {
	for _, s := range sentinels {
		if s.Error() == msg {
			return s
		}
	}
	return errors.New(msg)
}
