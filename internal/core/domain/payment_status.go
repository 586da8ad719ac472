package domain

import "strings"

// PaymentStatus is the payment state of a violation record.
type PaymentStatus string

const (
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentPaid        PaymentStatus = "paid"
	PaymentCollections PaymentStatus = "collections"
	PaymentOverdue     PaymentStatus = "overdue"
)

// legacyPaymentLabels maps the Swedish labels written by the previous frontend.
var legacyPaymentLabels = map[string]PaymentStatus{
	"ej betald": PaymentUnpaid,
	"betald":    PaymentPaid,
	"inkasso":   PaymentCollections,
	"förfallen": PaymentOverdue,
}

// IsValid reports whether s is one of the four known statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentCollections, PaymentOverdue:
		return true
	}
	return false
}

// ParsePaymentStatus accepts the enum values and the legacy Swedish labels.
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if s := PaymentStatus(v); s.IsValid() {
		return s, true
	}
	s, ok := legacyPaymentLabels[v]
	return s, ok
}
