package repositories

import (
	"context"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
)

// ViolationReader defines read operations for violation records.
type ViolationReader interface {
	// FindViolationByID retrieves a record by id; apperrors.ErrNotFound when absent.
	FindViolationByID(ctx context.Context, id string) (*domain.ViolationRecord, error)

	// FindLatestViolation returns the most recently created record, or nil on an empty store.
	FindLatestViolation(ctx context.Context) (*domain.ViolationRecord, error)

	// ListViolations returns records matching filter, newest first.
	ListViolations(ctx context.Context, filter domain.ListFilter) ([]domain.ViolationRecord, error)
}

// ViolationWriter defines write operations for violation records.
type ViolationWriter interface {
	// SaveViolation inserts a new record. A reused reference number yields apperrors.ErrDuplicate.
	SaveViolation(ctx context.Context, rec domain.ViolationRecord) error

	// UpdatePaymentStatus sets the explicit payment status override.
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error

	// DeleteViolation permanently removes a record.
	DeleteViolation(ctx context.Context, id string) error
}

// ViolationRepositoryFacade combines all violation repository interfaces.
type ViolationRepositoryFacade interface {
	ViolationReader
	ViolationWriter
}
