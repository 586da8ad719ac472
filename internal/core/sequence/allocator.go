// Package sequence derives the next OCR reference number for a new record.
//
// Allocation reads the most recent stored record and adds one. It is not safe
// against concurrent writers: two allocations that observe the same prior
// record compute the same number. The violations table carries a UNIQUE
// constraint on reference_number, so the second insert fails with
// apperrors.ErrDuplicate instead of silently reusing a number. Callers do not
// retry.
package sequence

import (
	"math"
	"strconv"
	"strings"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
)

// DefaultFloor is the first reference number handed out on an empty store.
const DefaultFloor int64 = 10000

// NextReferenceNumber returns the reference number to assign to the next record.
// A missing prior record, or one whose reference is not a non-negative integer,
// yields floor.
func NextReferenceNumber(prev *domain.ViolationRecord, floor int64) int64 {
	if prev == nil {
		return floor
	}
	n, err := strconv.ParseInt(strings.TrimSpace(prev.ReferenceNumber), 10, 64)
	if err != nil || n < 0 || n == math.MaxInt64 {
		return floor
	}
	return n + 1
}

// Format renders a reference number the way it is stored and printed.
func Format(n int64) string {
	return strconv.FormatInt(n, 10)
}
