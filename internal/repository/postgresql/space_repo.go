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

type pgSpaceRepository struct {
	db *sql.DB
}

func NewPgSpaceRepository(db *sql.DB) repository.SpaceRepository {
	return &pgSpaceRepository{db: db}
}

const spaceColumns = `id, zone_id, code, type, status, sensor_id, last_sensor_at,
	created_at, created_by, updated_at, updated_by, deleted_at, deleted_by`

func (r *pgSpaceRepository) scanSpace(row interface{ Scan(...any) error }) (*domain.Space, error) {
	space := &domain.Space{}
	err := row.Scan(
		&space.ID, &space.ZoneID, &space.Code, &space.Type, &space.Status, &space.SensorID, &space.LastSensorAt,
		&space.CreatedAt, &space.CreatedBy, &space.UpdatedAt, &space.UpdatedBy, &space.DeletedAt, &space.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	space.CreatedAt = space.CreatedAt.In(time.UTC)
	space.UpdatedAt = space.UpdatedAt.In(time.UTC)
	return space, nil
}

func (r *pgSpaceRepository) Create(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	query := `INSERT INTO spaces (zone_id, code, type, status, sensor_id, created_at, created_by, updated_at, updated_by)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	           RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		space.ZoneID, space.Code, space.Type, space.Status, space.SensorID,
		space.CreatedAt, space.CreatedBy, space.UpdatedAt, space.UpdatedBy,
	).Scan(&space.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: space code '%s' already exists in zone %d", repository.ErrDuplicateEntry, space.Code, space.ZoneID)
		}
		return nil, fmt.Errorf("SpaceRepository.Create: %w", err)
	}
	return space, nil
}

func (r *pgSpaceRepository) FindByID(ctx context.Context, id int) (*domain.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE id = $1 AND deleted_at IS NULL`
	space, err := r.scanSpace(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("SpaceRepository.FindByID: %w", err)
	}
	return space, nil
}

func (r *pgSpaceRepository) FindByZoneID(ctx context.Context, zoneID int) ([]domain.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE zone_id = $1 AND deleted_at IS NULL ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query, zoneID)
	if err != nil {
		return nil, fmt.Errorf("SpaceRepository.FindByZoneID: %w", err)
	}
	defer rows.Close()

	var spaces []domain.Space
	for rows.Next() {
		space, err := r.scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("SpaceRepository.FindByZoneID (scanning row): %w", err)
		}
		spaces = append(spaces, *space)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("SpaceRepository.FindByZoneID (rows error): %w", err)
	}
	return spaces, nil
}

func (r *pgSpaceRepository) FindBySensorAndCode(ctx context.Context, sensorID string, code string) (*domain.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE sensor_id = $1 AND code = $2 AND deleted_at IS NULL`
	space, err := r.scanSpace(r.db.QueryRowContext(ctx, query, sensorID, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("SpaceRepository.FindBySensorAndCode: %w", err)
	}
	return space, nil
}

func (r *pgSpaceRepository) UpdateStatus(ctx context.Context, id int, status domain.SpaceStatus, sensorAt *time.Time) error {
	query := `UPDATE spaces
	           SET status = $1, last_sensor_at = $2, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $3 AND deleted_at IS NULL`
	var eventTime sql.NullTime
	if sensorAt != nil {
		eventTime = sql.NullTime{Time: *sensorAt, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, status, eventTime, id)
	if err != nil {
		return fmt.Errorf("SpaceRepository.UpdateStatus: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("SpaceRepository.UpdateStatus (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgSpaceRepository) Update(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	query := `UPDATE spaces
	           SET code = $1, type = $2, status = $3, sensor_id = $4, last_sensor_at = $5,
	               updated_at = $6, updated_by = $7, deleted_at = $8, deleted_by = $9
	           WHERE id = $10
	           RETURNING id`
	var id int
	err := r.db.QueryRowContext(ctx, query,
		space.Code, space.Type, space.Status, space.SensorID, space.LastSensorAt,
		space.UpdatedAt, space.UpdatedBy, space.DeletedAt, space.DeletedBy, space.ID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: space code '%s' already exists in zone %d", repository.ErrDuplicateEntry, space.Code, space.ZoneID)
		}
		return nil, fmt.Errorf("SpaceRepository.Update: %w", err)
	}
	return space, nil
}
