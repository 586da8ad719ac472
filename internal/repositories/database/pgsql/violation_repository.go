package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/kontrollavgift/internal/apperrors"
	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	portsrepo "github.com/SscSPs/kontrollavgift/internal/core/ports/repositories"
	"github.com/SscSPs/kontrollavgift/internal/middleware"
	"github.com/SscSPs/kontrollavgift/internal/models"
	"github.com/SscSPs/kontrollavgift/internal/utils/mapping"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const violationColumns = `id, company, reference_number, issuer_name, vehicle_plate, vehicle_make,
	period_start, period_end, location, amount, violation_type,
	road_marking_checked, road_sign_checked, photo_taken,
	created_at, print_status, payment_status, created_by_user_id, created_by_email`

type PgxViolationRepository struct {
	BaseRepository
	validate *validator.Validate
}

func newPgxViolationRepository(db *pgxpool.Pool) portsrepo.ViolationRepositoryFacade {
	return &PgxViolationRepository{
		BaseRepository: BaseRepository{Pool: db},
		validate:       validator.New(),
	}
}

// Ensure PgxViolationRepository implements portsrepo.ViolationRepositoryFacade
var _ portsrepo.ViolationRepositoryFacade = (*PgxViolationRepository)(nil)

func (r *PgxViolationRepository) SaveViolation(ctx context.Context, rec domain.ViolationRecord) error {
	m := mapping.ToModelViolation(rec)
	query := `INSERT INTO violations (` + violationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`

	_, err := r.Pool.Exec(ctx, query,
		m.ID,
		m.Company,
		m.ReferenceNumber,
		m.IssuerName,
		m.VehiclePlate,
		m.VehicleMake,
		m.PeriodStart,
		m.PeriodEnd,
		m.Location,
		m.Amount,
		m.ViolationType,
		m.RoadMarkingChecked,
		m.RoadSignChecked,
		m.PhotoTaken,
		m.CreatedAt,
		m.PrintStatus,
		m.PaymentStatus,
		m.CreatedByUserID,
		m.CreatedByEmail,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("reference number %s already issued: %w", m.ReferenceNumber, apperrors.ErrDuplicate)
		}
		if isValueTooLong(err) {
			return fmt.Errorf("violation field exceeds column length: %w", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save violation: %w", err)
	}
	return nil
}

func (r *PgxViolationRepository) FindViolationByID(ctx context.Context, id string) (*domain.ViolationRecord, error) {
	query := `SELECT ` + violationColumns + ` FROM violations WHERE id = $1;`
	m, err := scanViolation(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find violation by ID %s: %w", id, err)
	}
	rec, ok := r.toDomain(ctx, m)
	if !ok {
		// malformed rows are skipped on read, so they behave as absent
		return nil, fmt.Errorf("violation %s is malformed: %w", id, apperrors.ErrNotFound)
	}
	return &rec, nil
}

func (r *PgxViolationRepository) FindLatestViolation(ctx context.Context) (*domain.ViolationRecord, error) {
	query := `SELECT ` + violationColumns + ` FROM violations ORDER BY created_at DESC LIMIT 1;`
	m, err := scanViolation(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest violation: %w", err)
	}
	// A malformed latest row still carries a reference number for the allocator.
	rec, _ := mapping.ToDomainViolation(m)
	return &rec, nil
}

func (r *PgxViolationRepository) ListViolations(ctx context.Context, filter domain.ListFilter) ([]domain.ViolationRecord, error) {
	query := `SELECT ` + violationColumns + ` FROM violations`
	args := []any{}
	if filter.Since != nil {
		query += ` WHERE created_at >= $1`
		args = append(args, *filter.Since)
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer rows.Close()

	records := []domain.ViolationRecord{}
	for rows.Next() {
		m, err := scanViolation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan violation row: %w", err)
		}
		if rec, ok := r.toDomain(ctx, m); ok {
			records = append(records, rec)
		}
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating violation rows: %w", rows.Err())
	}
	return records, nil
}

func (r *PgxViolationRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE violations SET payment_status = $1 WHERE id = $2;`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("violation %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxViolationRepository) DeleteViolation(ctx context.Context, id string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM violations WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete violation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("violation %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// toDomain validates a stored row and maps it. Rows that fail validation are
// logged and reported as not ok.
func (r *PgxViolationRepository) toDomain(ctx context.Context, m models.Violation) (domain.ViolationRecord, bool) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		logger = slog.Default()
	}
	if err := r.validate.Struct(m); err != nil {
		logger.Warn("Skipping malformed violation row", slog.String("violation_id", m.ID), slog.String("error", err.Error()))
		return domain.ViolationRecord{}, false
	}
	rec, dropped := mapping.ToDomainViolation(m)
	if dropped {
		logger.Warn("Ignoring unknown payment status", slog.String("violation_id", m.ID), slog.String("payment_status", *m.PaymentStatus))
	}
	return rec, true
}

func scanViolation(row pgx.Row) (models.Violation, error) {
	var m models.Violation
	err := row.Scan(
		&m.ID,
		&m.Company,
		&m.ReferenceNumber,
		&m.IssuerName,
		&m.VehiclePlate,
		&m.VehicleMake,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.Location,
		&m.Amount,
		&m.ViolationType,
		&m.RoadMarkingChecked,
		&m.RoadSignChecked,
		&m.PhotoTaken,
		&m.CreatedAt,
		&m.PrintStatus,
		&m.PaymentStatus,
		&m.CreatedByUserID,
		&m.CreatedByEmail,
	)
	return m, err
}
