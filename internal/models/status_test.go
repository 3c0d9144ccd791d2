package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicketStatus(t *testing.T) {
	tests := []struct {
		in   string
		want TicketStatus
		ok   bool
	}{
		{"RESERVED", StatusReserved, true},
		{"confirmed", StatusConfirmed, true},
		{"Cancelled", StatusCancelled, true},
		{"PENDING", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseTicketStatus(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestTicketTransitions(t *testing.T) {
	assert.True(t, StatusReserved.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusReserved.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCancelled))

	assert.False(t, StatusConfirmed.CanTransitionTo(StatusReserved))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusReserved))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))

	assert.False(t, StatusReserved.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestParseAdjustOperation(t *testing.T) {
	op, ok := ParseAdjustOperation("reserve")
	assert.True(t, ok)
	assert.Equal(t, OpReserve, op)

	op, ok = ParseAdjustOperation("release")
	assert.True(t, ok)
	assert.Equal(t, OpRelease, op)

	// Casing matters for operations, unlike statuses.
	_, ok = ParseAdjustOperation("Reserve")
	assert.False(t, ok)

	_, ok = ParseAdjustOperation("refund")
	assert.False(t, ok)
}
