package models

import "strings"

// TicketStatus is the ticket lifecycle state.
type TicketStatus string

const (
	StatusReserved  TicketStatus = "RESERVED"
	StatusConfirmed TicketStatus = "CONFIRMED"
	StatusCancelled TicketStatus = "CANCELLED"
)

// ParseTicketStatus accepts any casing, matching the original wire behavior.
func ParseTicketStatus(s string) (TicketStatus, bool) {
	switch TicketStatus(strings.ToUpper(s)) {
	case StatusReserved:
		return StatusReserved, true
	case StatusConfirmed:
		return StatusConfirmed, true
	case StatusCancelled:
		return StatusCancelled, true
	default:
		return "", false
	}
}

// ticketTransitions is the full set of legal edges. Confirmation never touches
// inventory; cancellation is terminal and must be preceded by a release.
var ticketTransitions = map[TicketStatus]map[TicketStatus]bool{
	StatusReserved: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCancelled: true,
	},
	StatusCancelled: {},
}

// CanTransitionTo reports whether the edge from s to target is legal.
// Same-state is handled by callers as a no-op, not a transition.
func (s TicketStatus) CanTransitionTo(target TicketStatus) bool {
	return ticketTransitions[s][target]
}

// Terminal reports whether no further transitions are possible.
func (s TicketStatus) Terminal() bool {
	return len(ticketTransitions[s]) == 0
}

// AdjustOperation selects the direction of an inventory adjustment.
type AdjustOperation string

const (
	OpReserve AdjustOperation = "reserve"
	OpRelease AdjustOperation = "release"
)

func ParseAdjustOperation(s string) (AdjustOperation, bool) {
	switch AdjustOperation(s) {
	case OpReserve:
		return OpReserve, true
	case OpRelease:
		return OpRelease, true
	default:
		return "", false
	}
}
