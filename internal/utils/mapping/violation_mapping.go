package mapping

import (
	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	"github.com/SscSPs/kontrollavgift/internal/models"
)

// ToModelViolation converts a domain ViolationRecord to a model Violation
func ToModelViolation(d domain.ViolationRecord) models.Violation {
	m := models.Violation{
		ID:                 d.ID,
		Company:            d.Company,
		ReferenceNumber:    d.ReferenceNumber,
		IssuerName:         d.IssuerName,
		VehiclePlate:       d.VehiclePlate,
		VehicleMake:        d.VehicleMake,
		PeriodStart:        d.PeriodStart,
		PeriodEnd:          d.PeriodEnd,
		Location:           d.Location,
		Amount:             d.Amount,
		ViolationType:      d.ViolationType,
		RoadMarkingChecked: string(d.RoadMarkingChecked),
		RoadSignChecked:    string(d.RoadSignChecked),
		PhotoTaken:         string(d.PhotoTaken),
		CreatedAt:          d.CreatedAt,
		PrintStatus:        d.PrintStatus,
		CreatedByUserID:    d.CreatedByUserID,
		CreatedByEmail:     d.CreatedByEmail,
	}
	if d.PaymentStatus != nil {
		s := string(*d.PaymentStatus)
		m.PaymentStatus = &s
	}
	return m
}

// ToDomainViolation converts a model Violation to a domain ViolationRecord.
// A stored payment status is coerced to the enum, legacy labels included.
// droppedStatus is true when a stored status was not recognised and left unset.
func ToDomainViolation(m models.Violation) (rec domain.ViolationRecord, droppedStatus bool) {
	rec = domain.ViolationRecord{
		ID:                 m.ID,
		Company:            m.Company,
		ReferenceNumber:    m.ReferenceNumber,
		IssuerName:         m.IssuerName,
		VehiclePlate:       m.VehiclePlate,
		VehicleMake:        m.VehicleMake,
		PeriodStart:        m.PeriodStart,
		PeriodEnd:          m.PeriodEnd,
		Location:           m.Location,
		Amount:             m.Amount,
		ViolationType:      m.ViolationType,
		RoadMarkingChecked: domain.CheckFlag(m.RoadMarkingChecked),
		RoadSignChecked:    domain.CheckFlag(m.RoadSignChecked),
		PhotoTaken:         domain.CheckFlag(m.PhotoTaken),
		CreatedAt:          m.CreatedAt,
		PrintStatus:        m.PrintStatus,
		CreatedByUserID:    m.CreatedByUserID,
		CreatedByEmail:     m.CreatedByEmail,
	}
	if m.PaymentStatus != nil && *m.PaymentStatus != "" {
		s, ok := domain.ParsePaymentStatus(*m.PaymentStatus)
		if !ok {
			return rec, true
		}
		rec.PaymentStatus = &s
	}
	return rec, false
}
