// Package paymentstatus derives the payment state of a violation record.
package paymentstatus

import (
	"time"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
)

// DueAfterDays is the payment period printed on the receipt.
const DueAfterDays = 8

const day = 24 * time.Hour

// DueDate is the creation time plus the payment period.
func DueDate(rec domain.ViolationRecord) time.Time {
	return rec.CreatedAt.AddDate(0, 0, DueAfterDays)
}

// Derive returns the explicit override when one is set, otherwise overdue once
// now is past the due date and unpaid before that.
func Derive(rec domain.ViolationRecord, now time.Time) domain.PaymentStatus {
	if rec.PaymentStatus != nil && rec.PaymentStatus.IsValid() {
		return *rec.PaymentStatus
	}
	if now.After(DueDate(rec)) {
		return domain.PaymentOverdue
	}
	return domain.PaymentUnpaid
}

// DaysUntilDue counts whole days between now and the due date, rounding away
// from zero: any time left counts as a day, and any time past due counts as a
// day overdue. Positive before the due date, negative after, zero only exactly
// at it.
func DaysUntilDue(rec domain.ViolationRecord, now time.Time) int {
	diff := DueDate(rec).Sub(now)
	days := diff / day
	switch rem := diff % day; {
	case rem > 0:
		days++
	case rem < 0:
		days--
	}
	return int(days)
}
