package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/kontrollavgift/internal/apperrors"
	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	portsrepo "github.com/SscSPs/kontrollavgift/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
	"github.com/SscSPs/kontrollavgift/internal/core/sequence"
	"github.com/SscSPs/kontrollavgift/internal/dto"
	"github.com/SscSPs/kontrollavgift/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// periodLayout is how the form shows the start and end of the parking period.
const periodLayout = "2006-01-02 15:04"

// DocumentBuilder renders the receipt document of a record.
type DocumentBuilder interface {
	BuildDocument(rec domain.ViolationRecord) string
}

// ViolationDefaults are the values a new record starts with.
type ViolationDefaults struct {
	Company       string
	Amount        string
	SequenceFloor int64
	Location      *time.Location
}

// DefaultViolationDefaults returns the defaults of the original issuing form.
func DefaultViolationDefaults() ViolationDefaults {
	return ViolationDefaults{
		Company:       "Säby Kulle Backe ekonomisk förening",
		Amount:        "700",
		SequenceFloor: sequence.DefaultFloor,
		Location:      time.UTC,
	}
}

type violationService struct {
	BaseService
	repo     portsrepo.ViolationRepositoryFacade
	builder  DocumentBuilder
	printer  portssvc.PrinterBridge
	metrics  *metrics.Metrics
	defaults ViolationDefaults
	now      func() time.Time
}

// ViolationServiceOption is a functional option for configuring the violation service
type ViolationServiceOption func(*violationService)

// WithViolationDefaults overrides the form defaults.
func WithViolationDefaults(d ViolationDefaults) ViolationServiceOption {
	return func(s *violationService) {
		if d.Location == nil {
			d.Location = time.UTC
		}
		s.defaults = d
	}
}

// WithViolationMetrics records issuing activity.
func WithViolationMetrics(m *metrics.Metrics) ViolationServiceOption {
	return func(s *violationService) {
		s.metrics = m
	}
}

// WithViolationClock replaces time.Now.
func WithViolationClock(now func() time.Time) ViolationServiceOption {
	return func(s *violationService) {
		s.now = now
	}
}

// NewViolationService creates a violation service. The same builder renders
// documents for issuing and for reprints.
func NewViolationService(repo portsrepo.ViolationRepositoryFacade, builder DocumentBuilder, printer portssvc.PrinterBridge, options ...ViolationServiceOption) portssvc.ViolationSvcFacade {
	s := &violationService{
		repo:     repo,
		builder:  builder,
		printer:  printer,
		defaults: DefaultViolationDefaults(),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.ViolationSvcFacade = (*violationService)(nil)

func (s *violationService) GetFormDefaults(ctx context.Context) domain.FormDefaults {
	nowText := s.now().In(s.defaults.Location).Format(periodLayout)
	return domain.FormDefaults{
		Company:            s.defaults.Company,
		ReferenceNumber:    sequence.Format(s.nextReferenceNumber(ctx)),
		Amount:             s.defaults.Amount,
		PeriodStart:        nowText,
		PeriodEnd:          nowText,
		RoadMarkingChecked: domain.CheckYes,
		RoadSignChecked:    domain.CheckYes,
		PhotoTaken:         domain.CheckYes,
		ViolationTypes:     domain.ViolationTypes,
	}
}

// nextReferenceNumber allocates from the latest record. A failed read yields the floor.
func (s *violationService) nextReferenceNumber(ctx context.Context) int64 {
	latest, err := s.repo.FindLatestViolation(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read latest violation, using sequence floor",
			slog.Int64("floor", s.defaults.SequenceFloor))
		s.metrics.IncReadFallback("next_reference")
		latest = nil
	}
	return sequence.NextReferenceNumber(latest, s.defaults.SequenceFloor)
}

func (s *violationService) GetViolationByID(ctx context.Context, id string) (*domain.ViolationRecord, error) {
	rec, err := s.repo.FindViolationByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("violation %s: %w", id, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to get violation", slog.String("violation_id", id))
		return nil, fmt.Errorf("failed to get violation: %w", err)
	}
	return rec, nil
}

func (s *violationService) ListViolations(ctx context.Context, filter domain.ListFilter) domain.ViolationList {
	records, err := s.repo.ListViolations(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list violations, returning empty list")
		s.metrics.IncReadFallback("list")
		return domain.ViolationList{Records: []domain.ViolationRecord{}, Degraded: true}
	}
	return domain.ViolationList{Records: records}
}

func (s *violationService) IssueViolation(ctx context.Context, req dto.CreateViolationRequest, issuer domain.Identity, returnURL string) (*domain.ViolationRecord, *domain.PrintDispatch, error) {
	rec, err := s.newRecord(req, issuer)
	if err != nil {
		return nil, nil, err
	}
	rec.ReferenceNumber = sequence.Format(s.nextReferenceNumber(ctx))

	if err := s.repo.SaveViolation(ctx, rec); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.metrics.IncSaveFailure("duplicate")
			s.LogWarn(ctx, "Reference number already issued", slog.String("reference_number", rec.ReferenceNumber))
			return nil, nil, fmt.Errorf("failed to save violation: %w", err)
		}
		if errors.Is(err, apperrors.ErrValidation) {
			s.metrics.IncSaveFailure("invalid")
			s.LogWarn(ctx, "Violation rejected by store", slog.String("error", err.Error()))
			return nil, nil, fmt.Errorf("failed to save violation: %w", err)
		}
		s.metrics.IncSaveFailure("error")
		s.LogError(ctx, err, "Failed to save violation", slog.String("reference_number", rec.ReferenceNumber))
		return nil, nil, fmt.Errorf("failed to save violation: %w", err)
	}
	s.metrics.IncViolationsIssued(rec.Company)
	s.LogInfo(ctx, "Violation issued",
		slog.String("violation_id", rec.ID),
		slog.String("reference_number", rec.ReferenceNumber))

	dispatch := s.dispatch(rec, returnURL, "issue")
	return &rec, &dispatch, nil
}

// newRecord validates the form and applies defaults. The reference number is left empty.
func (s *violationService) newRecord(req dto.CreateViolationRequest, issuer domain.Identity) (domain.ViolationRecord, error) {
	if strings.TrimSpace(req.VehiclePlate) == "" {
		return domain.ViolationRecord{}, fmt.Errorf("vehicle plate is required: %w", apperrors.ErrValidation)
	}
	if !domain.IsViolationType(req.ViolationType) {
		return domain.ViolationRecord{}, fmt.Errorf("unknown violation type %q: %w", req.ViolationType, apperrors.ErrValidation)
	}

	amount := strings.TrimSpace(req.Amount)
	if amount == "" {
		amount = s.defaults.Amount
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil || !parsed.IsInteger() || !parsed.IsPositive() {
		return domain.ViolationRecord{}, fmt.Errorf("amount must be a positive whole number: %w", apperrors.ErrValidation)
	}

	company := strings.TrimSpace(req.Company)
	if company == "" {
		company = s.defaults.Company
	}

	return domain.ViolationRecord{
		ID:                 uuid.NewString(),
		Company:            company,
		IssuerName:         req.IssuerName,
		VehiclePlate:       req.VehiclePlate,
		VehicleMake:        req.VehicleMake,
		PeriodStart:        req.PeriodStart,
		PeriodEnd:          req.PeriodEnd,
		Location:           req.Location,
		Amount:             parsed.String(),
		ViolationType:      req.ViolationType,
		RoadMarkingChecked: flagOrYes(req.RoadMarkingChecked),
		RoadSignChecked:    flagOrYes(req.RoadSignChecked),
		PhotoTaken:         flagOrYes(req.PhotoTaken),
		CreatedAt:          s.now().UTC(),
		PrintStatus:        domain.DefaultPrintStatus,
		CreatedByUserID:    issuer.UserID,
		CreatedByEmail:     issuer.Email,
	}, nil
}

func flagOrYes(f domain.CheckFlag) domain.CheckFlag {
	if f == domain.CheckNo {
		return domain.CheckNo
	}
	return domain.CheckYes
}

func (s *violationService) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, userID string) (*domain.ViolationRecord, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown payment status %q: %w", status, apperrors.ErrValidation)
	}
	if err := s.repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update payment status", slog.String("violation_id", id))
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	s.LogInfo(ctx, "Payment status updated",
		slog.String("violation_id", id),
		slog.String("payment_status", string(status)),
		slog.String("user_id", userID))
	return s.GetViolationByID(ctx, id)
}

func (s *violationService) DeleteViolation(ctx context.Context, id string, userID string) error {
	if err := s.repo.DeleteViolation(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete violation", slog.String("violation_id", id))
		return fmt.Errorf("failed to delete violation: %w", err)
	}
	s.LogInfo(ctx, "Violation deleted", slog.String("violation_id", id), slog.String("user_id", userID))
	return nil
}

func (s *violationService) ReprintViolation(ctx context.Context, id string, returnURL string) (*domain.PrintDispatch, error) {
	rec, err := s.GetViolationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dispatch := s.dispatch(*rec, returnURL, "reprint")
	return &dispatch, nil
}

func (s *violationService) RenderDocument(ctx context.Context, id string) (string, error) {
	rec, err := s.GetViolationByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.builder.BuildDocument(*rec), nil
}

func (s *violationService) dispatch(rec domain.ViolationRecord, returnURL, kind string) domain.PrintDispatch {
	s.metrics.IncPrintDispatch(kind)
	return s.printer.Dispatch(s.builder.BuildDocument(rec), returnURL)
}
