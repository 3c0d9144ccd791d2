package models

import "eventsync/internal/apperrors"

// ApplyAdjustment computes the new available_tickets for a bounded
// reserve/release. It is the single place the inventory bound is checked;
// the repository runs it inside a row-locked transaction so the check and the
// write are observed together.
func ApplyAdjustment(available, total, count int, op AdjustOperation) (int, error) {
	if count < 1 {
		return available, apperrors.ErrInvalidTicketCount
	}

	switch op {
	case OpReserve:
		if count > available {
			return available, apperrors.ErrInsufficientInventory
		}
		return available - count, nil
	case OpRelease:
		if available+count > total {
			return available, apperrors.ErrOverRelease
		}
		return available + count, nil
	default:
		return available, apperrors.ErrInvalidOperation
	}
}

// RecomputeAvailable applies the resize rule: capacity changes keep the sold
// quantity fixed and re-derive availability from the new total.
func RecomputeAvailable(newTotal, oldTotal, oldAvailable int) int {
	sold := oldTotal - oldAvailable
	if newTotal-sold < 0 {
		return 0
	}
	return newTotal - sold
}
