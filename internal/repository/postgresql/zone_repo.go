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

type pgZoneRepository struct {
	db *sql.DB
}

func NewPgZoneRepository(db *sql.DB) repository.ZoneRepository {
	return &pgZoneRepository{db: db}
}

const zoneColumns = `id, parking_id, code, name, latitude, longitude, camera_id, camera_url, status,
	created_at, created_by, updated_at, updated_by, deleted_at, deleted_by`

func (r *pgZoneRepository) scanZone(row interface{ Scan(...any) error }) (*domain.Zone, error) {
	zone := &domain.Zone{}
	var lat, lng sql.NullFloat64
	err := row.Scan(
		&zone.ID, &zone.ParkingID, &zone.Code, &zone.Name, &lat, &lng, &zone.CameraID, &zone.CameraURL, &zone.Status,
		&zone.CreatedAt, &zone.CreatedBy, &zone.UpdatedAt, &zone.UpdatedBy, &zone.DeletedAt, &zone.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	if lat.Valid {
		zone.Latitude = lat.Float64
	}
	if lng.Valid {
		zone.Longitude = lng.Float64
	}
	zone.CreatedAt = zone.CreatedAt.In(time.UTC)
	zone.UpdatedAt = zone.UpdatedAt.In(time.UTC)
	return zone, nil
}

func (r *pgZoneRepository) Create(ctx context.Context, zone *domain.Zone) (*domain.Zone, error) {
	query := `INSERT INTO zones (parking_id, code, name, latitude, longitude, camera_id, camera_url, status, created_at, created_by, updated_at, updated_by)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	           RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		zone.ParkingID, zone.Code, zone.Name, zone.Latitude, zone.Longitude,
		zone.CameraID, zone.CameraURL, zone.Status,
		zone.CreatedAt, zone.CreatedBy, zone.UpdatedAt, zone.UpdatedBy,
	).Scan(&zone.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: zone code '%s' already exists in parking %d", repository.ErrDuplicateEntry, zone.Code, zone.ParkingID)
		}
		return nil, fmt.Errorf("ZoneRepository.Create: %w", err)
	}
	return zone, nil
}

func (r *pgZoneRepository) FindByID(ctx context.Context, id int) (*domain.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones WHERE id = $1 AND deleted_at IS NULL`
	zone, err := r.scanZone(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ZoneRepository.FindByID: %w", err)
	}
	return zone, nil
}

func (r *pgZoneRepository) FindByParkingID(ctx context.Context, parkingID int) ([]domain.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones WHERE parking_id = $1 AND deleted_at IS NULL ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query, parkingID)
	if err != nil {
		return nil, fmt.Errorf("ZoneRepository.FindByParkingID: %w", err)
	}
	defer rows.Close()

	var zones []domain.Zone
	for rows.Next() {
		zone, err := r.scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("ZoneRepository.FindByParkingID (scanning row): %w", err)
		}
		zones = append(zones, *zone)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ZoneRepository.FindByParkingID (rows error): %w", err)
	}
	return zones, nil
}

func (r *pgZoneRepository) Update(ctx context.Context, zone *domain.Zone) (*domain.Zone, error) {
	query := `UPDATE zones
	           SET code = $1, name = $2, latitude = $3, longitude = $4, camera_id = $5, camera_url = $6, status = $7,
	               updated_at = $8, updated_by = $9, deleted_at = $10, deleted_by = $11
	           WHERE id = $12
	           RETURNING id`
	var id int
	err := r.db.QueryRowContext(ctx, query,
		zone.Code, zone.Name, zone.Latitude, zone.Longitude, zone.CameraID, zone.CameraURL, zone.Status,
		zone.UpdatedAt, zone.UpdatedBy, zone.DeletedAt, zone.DeletedBy, zone.ID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: zone code '%s' already exists in parking %d", repository.ErrDuplicateEntry, zone.Code, zone.ParkingID)
		}
		return nil, fmt.Errorf("ZoneRepository.Update: %w", err)
	}
	return zone, nil
}
