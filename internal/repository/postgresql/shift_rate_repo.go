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

type pgShiftRateConfigRepository struct {
	db *sql.DB
}

func NewPgShiftRateConfigRepository(db *sql.DB) repository.ShiftRateConfigRepository {
	return &pgShiftRateConfigRepository{db: db}
}

const shiftRateColumns = `id, parking_id, shift_id, rate_id, status,
	created_at, created_by, updated_at, updated_by, deleted_at, deleted_by`

func (r *pgShiftRateConfigRepository) scanConfig(row interface{ Scan(...any) error }) (*domain.ShiftRateConfig, error) {
	cfg := &domain.ShiftRateConfig{}
	err := row.Scan(
		&cfg.ID, &cfg.ParkingID, &cfg.ShiftID, &cfg.RateID, &cfg.Status,
		&cfg.CreatedAt, &cfg.CreatedBy, &cfg.UpdatedAt, &cfg.UpdatedBy, &cfg.DeletedAt, &cfg.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	cfg.CreatedAt = cfg.CreatedAt.In(time.UTC)
	cfg.UpdatedAt = cfg.UpdatedAt.In(time.UTC)
	return cfg, nil
}

// mapTxError translates lock/serialization failures into ErrConflict so the
// service can surface a retryable conflict instead of a plain 500.
func mapTxError(op string, err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code.Name() {
		case "serialization_failure", "deadlock_detected", "lock_not_available":
			return fmt.Errorf("%w: %s", repository.ErrConflict, op)
		case "unique_violation":
			return fmt.Errorf("%w: %s", repository.ErrDuplicateEntry, op)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ReplaceForParking swaps the whole shift-rate matrix of one parking.
// The transaction takes pg_advisory_xact_lock(parking_id) first, so
// concurrent replaces of the same parking serialize and the survivor set
// always comes from exactly one request. Previous rows are soft-deleted to
// keep the configuration history.
func (r *pgShiftRateConfigRepository) ReplaceForParking(ctx context.Context, parkingID int, configs []domain.ShiftRateConfig) ([]domain.ShiftRateConfig, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ShiftRateConfigRepository.ReplaceForParking (begin): %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, parkingID); err != nil {
		return nil, mapTxError("ShiftRateConfigRepository.ReplaceForParking (lock)", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE parking_shift_rates
		  SET deleted_at = $1, updated_at = $1
		  WHERE parking_id = $2 AND deleted_at IS NULL`,
		now, parkingID,
	)
	if err != nil {
		return nil, mapTxError("ShiftRateConfigRepository.ReplaceForParking (retire)", err)
	}

	insertQuery := `INSERT INTO parking_shift_rates (parking_id, shift_id, rate_id, status, created_at, created_by, updated_at, updated_by)
	                 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	                 RETURNING id`
	saved := make([]domain.ShiftRateConfig, 0, len(configs))
	for _, cfg := range configs {
		err = tx.QueryRowContext(ctx, insertQuery,
			parkingID, cfg.ShiftID, cfg.RateID, cfg.Status,
			cfg.CreatedAt, cfg.CreatedBy, cfg.UpdatedAt, cfg.UpdatedBy,
		).Scan(&cfg.ID)
		if err != nil {
			return nil, mapTxError("ShiftRateConfigRepository.ReplaceForParking (insert)", err)
		}
		cfg.ParkingID = parkingID
		saved = append(saved, cfg)
	}

	if err = tx.Commit(); err != nil {
		return nil, mapTxError("ShiftRateConfigRepository.ReplaceForParking (commit)", err)
	}
	return saved, nil
}

func (r *pgShiftRateConfigRepository) FindByParkingID(ctx context.Context, parkingID int) ([]domain.ShiftRateConfig, error) {
	query := `SELECT ` + shiftRateColumns + ` FROM parking_shift_rates
	           WHERE parking_id = $1 AND deleted_at IS NULL ORDER BY shift_id`
	rows, err := r.db.QueryContext(ctx, query, parkingID)
	if err != nil {
		return nil, fmt.Errorf("ShiftRateConfigRepository.FindByParkingID: %w", err)
	}
	defer rows.Close()

	var configs []domain.ShiftRateConfig
	for rows.Next() {
		cfg, err := r.scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("ShiftRateConfigRepository.FindByParkingID (scanning row): %w", err)
		}
		configs = append(configs, *cfg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ShiftRateConfigRepository.FindByParkingID (rows error): %w", err)
	}
	return configs, nil
}

func (r *pgShiftRateConfigRepository) FindByID(ctx context.Context, id int) (*domain.ShiftRateConfig, error) {
	query := `SELECT ` + shiftRateColumns + ` FROM parking_shift_rates WHERE id = $1 AND deleted_at IS NULL`
	cfg, err := r.scanConfig(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ShiftRateConfigRepository.FindByID: %w", err)
	}
	return cfg, nil
}

func (r *pgShiftRateConfigRepository) FindActive(ctx context.Context, parkingID int, shiftID int) (*domain.ShiftRateConfig, error) {
	query := `SELECT ` + shiftRateColumns + ` FROM parking_shift_rates
	           WHERE parking_id = $1 AND shift_id = $2 AND status = TRUE AND deleted_at IS NULL`
	cfg, err := r.scanConfig(r.db.QueryRowContext(ctx, query, parkingID, shiftID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ShiftRateConfigRepository.FindActive: %w", err)
	}
	return cfg, nil
}

func (r *pgShiftRateConfigRepository) Update(ctx context.Context, config *domain.ShiftRateConfig) (*domain.ShiftRateConfig, error) {
	query := `UPDATE parking_shift_rates
	           SET shift_id = $1, rate_id = $2, status = $3,
	               updated_at = $4, updated_by = $5, deleted_at = $6, deleted_by = $7
	           WHERE id = $8
	           RETURNING id`
	var id int
	err := r.db.QueryRowContext(ctx, query,
		config.ShiftID, config.RateID, config.Status,
		config.UpdatedAt, config.UpdatedBy, config.DeletedAt, config.DeletedBy, config.ID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapTxError("ShiftRateConfigRepository.Update", err)
	}
	return config, nil
}
