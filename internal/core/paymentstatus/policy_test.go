package paymentstatus_test

import (
	"testing"
	"time"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	"github.com/SscSPs/kontrollavgift/internal/core/paymentstatus"
	"github.com/stretchr/testify/assert"
)

func statusPtr(s domain.PaymentStatus) *domain.PaymentStatus {
	return &s
}

var created = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDerive_NoOverride(t *testing.T) {
	rec := domain.ViolationRecord{CreatedAt: created}

	tests := []struct {
		name string
		now  time.Time
		want domain.PaymentStatus
	}{
		{name: "just created", now: created, want: domain.PaymentUnpaid},
		{name: "last second before due", now: time.Date(2024, 1, 8, 23, 59, 59, 0, time.UTC), want: domain.PaymentUnpaid},
		{name: "exactly due", now: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), want: domain.PaymentUnpaid},
		{name: "one second past due", now: time.Date(2024, 1, 9, 0, 0, 1, 0, time.UTC), want: domain.PaymentOverdue},
		{name: "months later", now: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), want: domain.PaymentOverdue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paymentstatus.Derive(rec, tt.now))
		})
	}
}

func TestDerive_OverrideAlwaysWins(t *testing.T) {
	statuses := []domain.PaymentStatus{
		domain.PaymentUnpaid, domain.PaymentPaid, domain.PaymentCollections, domain.PaymentOverdue,
	}
	times := []time.Time{created, created.AddDate(0, 0, 7), created.AddDate(0, 0, 30)}
	for _, s := range statuses {
		for _, now := range times {
			rec := domain.ViolationRecord{CreatedAt: created, PaymentStatus: statusPtr(s)}
			assert.Equal(t, s, paymentstatus.Derive(rec, now), "status %s at %s", s, now)
		}
	}
}

func TestDerive_InvalidOverrideIsIgnored(t *testing.T) {
	rec := domain.ViolationRecord{CreatedAt: created, PaymentStatus: statusPtr("bogus")}
	assert.Equal(t, domain.PaymentUnpaid, paymentstatus.Derive(rec, created))
}

func TestDaysUntilDue(t *testing.T) {
	rec := domain.ViolationRecord{CreatedAt: created}

	assert.Equal(t, 8, paymentstatus.DaysUntilDue(rec, created))
	assert.Equal(t, 1, paymentstatus.DaysUntilDue(rec, time.Date(2024, 1, 8, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, 0, paymentstatus.DaysUntilDue(rec, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, paymentstatus.DaysUntilDue(rec, time.Date(2024, 1, 9, 0, 0, 1, 0, time.UTC)))
	assert.Equal(t, -3, paymentstatus.DaysUntilDue(rec, time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)))
}

func TestDaysUntilDue_MonotonicAndSignFlipsAtDueDate(t *testing.T) {
	rec := domain.ViolationRecord{CreatedAt: created}
	due := paymentstatus.DueDate(rec)

	prev := paymentstatus.DaysUntilDue(rec, created)
	for now := created; now.Before(due.AddDate(0, 0, 10)); now = now.Add(37 * time.Minute) {
		d := paymentstatus.DaysUntilDue(rec, now)
		assert.LessOrEqual(t, d, prev, "not monotonic at %s", now)
		if now.Before(due) {
			assert.Positive(t, d, "expected positive before due at %s", now)
		}
		if now.After(due) {
			assert.Negative(t, d, "expected negative after due at %s", now)
		}
		prev = d
	}
}

func TestDueDate_IsEightCalendarDays(t *testing.T) {
	rec := domain.ViolationRecord{CreatedAt: created}
	assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), paymentstatus.DueDate(rec))
}
