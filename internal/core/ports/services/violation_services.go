package services

import (
	"context"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	"github.com/SscSPs/kontrollavgift/internal/dto"
)

// ViolationReaderSvc defines read operations for violation records.
type ViolationReaderSvc interface {
	// GetFormDefaults returns the values the issuing form starts with, including
	// the next reference number. It never fails: a store read error yields the
	// configured floor.
	GetFormDefaults(ctx context.Context) domain.FormDefaults

	// GetViolationByID retrieves a single record.
	GetViolationByID(ctx context.Context, id string) (*domain.ViolationRecord, error)

	// ListViolations lists records newest first. A store read error yields an
	// empty, degraded listing instead of an error.
	ListViolations(ctx context.Context, filter domain.ListFilter) domain.ViolationList
}

// ViolationWriterSvc defines write operations for violation records.
type ViolationWriterSvc interface {
	// IssueViolation allocates a reference number, stores the record and hands
	// the rendered receipt to the printer bridge.
	IssueViolation(ctx context.Context, req dto.CreateViolationRequest, issuer domain.Identity, returnURL string) (*domain.ViolationRecord, *domain.PrintDispatch, error)

	// UpdatePaymentStatus sets the explicit payment status override.
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, userID string) (*domain.ViolationRecord, error)

	// DeleteViolation permanently removes a record.
	DeleteViolation(ctx context.Context, id string, userID string) error
}

// ViolationPrinterSvc defines receipt operations on stored records.
type ViolationPrinterSvc interface {
	// ReprintViolation renders a stored record again and hands it to the printer bridge.
	ReprintViolation(ctx context.Context, id string, returnURL string) (*domain.PrintDispatch, error)

	// RenderDocument returns the receipt document of a stored record.
	RenderDocument(ctx context.Context, id string) (string, error)
}

// ViolationSvcFacade combines all violation-related service interfaces.
type ViolationSvcFacade interface {
	ViolationReaderSvc
	ViolationWriterSvc
	ViolationPrinterSvc
}
