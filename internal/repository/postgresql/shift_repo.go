package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/repository"

	"github.com/lib/pq"
)

type pgShiftRepository struct {
	db *sql.DB
}

func NewPgShiftRepository(db *sql.DB) repository.ShiftRepository {
	return &pgShiftRepository{db: db}
}

const shiftColumns = `id, code, name, description, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), status,
	created_at, created_by, updated_at, updated_by, deleted_at, deleted_by`

func (r *pgShiftRepository) scanShift(row interface{ Scan(...any) error }) (*domain.Shift, error) {
	shift := &domain.Shift{}
	var description sql.NullString
	err := row.Scan(
		&shift.ID, &shift.Code, &shift.Name, &description, &shift.StartTime, &shift.EndTime, &shift.Status,
		&shift.CreatedAt, &shift.CreatedBy, &shift.UpdatedAt, &shift.UpdatedBy, &shift.DeletedAt, &shift.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		shift.Description = description.String
	}
	shift.CreatedAt = shift.CreatedAt.In(time.UTC)
	shift.UpdatedAt = shift.UpdatedAt.In(time.UTC)
	return shift, nil
}

func (r *pgShiftRepository) Create(ctx context.Context, shift *domain.Shift) (*domain.Shift, error) {
	query := `INSERT INTO shifts (code, name, description, start_time, end_time, status, created_at, created_by, updated_at, updated_by)
	           VALUES ($1, $2, $3, $4::time, $5::time, $6, $7, $8, $9, $10)
	           RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		shift.Code, shift.Name, sql.NullString{String: shift.Description, Valid: shift.Description != ""},
		shift.StartTime, shift.EndTime, shift.Status,
		shift.CreatedAt, shift.CreatedBy, shift.UpdatedAt, shift.UpdatedBy,
	).Scan(&shift.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: shift code '%s' already exists", repository.ErrDuplicateEntry, shift.Code)
		}
		return nil, fmt.Errorf("ShiftRepository.Create: %w", err)
	}
	return shift, nil
}

func (r *pgShiftRepository) FindByID(ctx context.Context, id int) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1 AND deleted_at IS NULL`
	shift, err := r.scanShift(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ShiftRepository.FindByID: %w", err)
	}
	return shift, nil
}

func (r *pgShiftRepository) FindByIDAny(ctx context.Context, id int) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`
	shift, err := r.scanShift(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ShiftRepository.FindByIDAny: %w", err)
	}
	return shift, nil
}

func (r *pgShiftRepository) FindAll(ctx context.Context) ([]domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE deleted_at IS NULL ORDER BY start_time, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ShiftRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var shifts []domain.Shift
	for rows.Next() {
		shift, err := r.scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("ShiftRepository.FindAll (scanning row): %w", err)
		}
		shifts = append(shifts, *shift)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ShiftRepository.FindAll (rows error): %w", err)
	}
	return shifts, nil
}

func (r *pgShiftRepository) Update(ctx context.Context, shift *domain.Shift) (*domain.Shift, error) {
	query := `UPDATE shifts
	           SET code = $1, name = $2, description = $3, start_time = $4::time, end_time = $5::time, status = $6,
	               updated_at = $7, updated_by = $8, deleted_at = $9, deleted_by = $10
	           WHERE id = $11
	           RETURNING id`
	var id int
	err := r.db.QueryRowContext(ctx, query,
		shift.Code, shift.Name, sql.NullString{String: shift.Description, Valid: shift.Description != ""},
		shift.StartTime, shift.EndTime, shift.Status,
		shift.UpdatedAt, shift.UpdatedBy, shift.DeletedAt, shift.DeletedBy, shift.ID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: shift code '%s' already exists", repository.ErrDuplicateEntry, shift.Code)
		}
		return nil, fmt.Errorf("ShiftRepository.Update: %w", err)
	}
	return shift, nil
}
