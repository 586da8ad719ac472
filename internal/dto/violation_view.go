package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	"github.com/SscSPs/kontrollavgift/internal/core/paymentstatus"
)

const defaultStatusColor = "#95a5a6"

var statusLabels = map[domain.PaymentStatus]string{
	domain.PaymentUnpaid:      "ej betald",
	domain.PaymentPaid:        "betald",
	domain.PaymentCollections: "inkasso",
	domain.PaymentOverdue:     "förfallen",
}

var statusColors = map[domain.PaymentStatus]string{
	domain.PaymentPaid:        "#27ae60",
	domain.PaymentCollections: "#e74c3c",
	domain.PaymentOverdue:     "#e67e22",
	domain.PaymentUnpaid:      "#f39c12",
}

// StatusLabel returns the Swedish label shown for a payment status.
func StatusLabel(s domain.PaymentStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// StatusColor returns the badge colour for a payment status.
func StatusColor(s domain.PaymentStatus) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return defaultStatusColor
}

// DueText describes the due date relative to now. It is empty unless the
// record is unpaid and not yet due, or overdue.
func DueText(status domain.PaymentStatus, daysUntilDue int) string {
	switch {
	case status == domain.PaymentUnpaid && daysUntilDue > 0:
		return fmt.Sprintf("Förfaller om %d %s", daysUntilDue, dayWord(daysUntilDue))
	case status == domain.PaymentOverdue:
		n := daysUntilDue
		if n < 0 {
			n = -n
		}
		return fmt.Sprintf("Förfallen för %d %s sedan", n, dayWord(n))
	}
	return ""
}

func dayWord(n int) string {
	if n == 1 {
		return "dag"
	}
	return "dagar"
}

// ToViolationResponse converts a domain.ViolationRecord to ViolationResponse DTO,
// deriving the payment status at now.
func ToViolationResponse(rec domain.ViolationRecord, now time.Time) ViolationResponse {
	status := paymentstatus.Derive(rec, now)
	days := paymentstatus.DaysUntilDue(rec, now)
	return ViolationResponse{
		ID:                 rec.ID,
		Company:            rec.Company,
		ReferenceNumber:    rec.ReferenceNumber,
		IssuerName:         rec.IssuerName,
		VehiclePlate:       rec.VehiclePlate,
		VehicleMake:        rec.VehicleMake,
		PeriodStart:        rec.PeriodStart,
		PeriodEnd:          rec.PeriodEnd,
		Location:           rec.Location,
		Amount:             rec.Amount,
		ViolationType:      rec.ViolationType,
		RoadMarkingChecked: rec.RoadMarkingChecked,
		RoadSignChecked:    rec.RoadSignChecked,
		PhotoTaken:         rec.PhotoTaken,
		CreatedAt:          rec.CreatedAt,
		PrintStatus:        rec.PrintStatus,
		PaymentStatus:      status,
		PaymentStatusSet:   rec.PaymentStatus != nil && rec.PaymentStatus.IsValid(),
		StatusLabel:        StatusLabel(status),
		StatusColor:        StatusColor(status),
		DueDate:            paymentstatus.DueDate(rec),
		DaysUntilDue:       days,
		DueText:            DueText(status, days),
		CreatedByUserID:    rec.CreatedByUserID,
		CreatedByEmail:     rec.CreatedByEmail,
	}
}
