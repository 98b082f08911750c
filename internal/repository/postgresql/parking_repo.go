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

type pgParkingRepository struct {
	db *sql.DB
}

func NewPgParkingRepository(db *sql.DB) repository.ParkingRepository {
	return &pgParkingRepository{db: db}
}

const parkingColumns = `id, code, name, address, latitude, longitude, manager_id, status,
	created_at, created_by, updated_at, updated_by, deleted_at, deleted_by`

func (r *pgParkingRepository) scanParking(row interface{ Scan(...any) error }) (*domain.Parking, error) {
	parking := &domain.Parking{}
	var address sql.NullString
	var lat, lng sql.NullFloat64
	err := row.Scan(
		&parking.ID, &parking.Code, &parking.Name, &address, &lat, &lng, &parking.ManagerID, &parking.Status,
		&parking.CreatedAt, &parking.CreatedBy, &parking.UpdatedAt, &parking.UpdatedBy, &parking.DeletedAt, &parking.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	if address.Valid {
		parking.Address = address.String
	}
	if lat.Valid {
		parking.Latitude = lat.Float64
	}
	if lng.Valid {
		parking.Longitude = lng.Float64
	}
	parking.CreatedAt = parking.CreatedAt.In(time.UTC)
	parking.UpdatedAt = parking.UpdatedAt.In(time.UTC)
	return parking, nil
}

func (r *pgParkingRepository) Create(ctx context.Context, parking *domain.Parking) (*domain.Parking, error) {
	query := `INSERT INTO parkings (code, name, address, latitude, longitude, manager_id, status, created_at, created_by, updated_at, updated_by)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	           RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		parking.Code, parking.Name, sql.NullString{String: parking.Address, Valid: parking.Address != ""},
		parking.Latitude, parking.Longitude, parking.ManagerID, parking.Status,
		parking.CreatedAt, parking.CreatedBy, parking.UpdatedAt, parking.UpdatedBy,
	).Scan(&parking.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: parking code '%s' already exists", repository.ErrDuplicateEntry, parking.Code)
		}
		return nil, fmt.Errorf("ParkingRepository.Create: %w", err)
	}
	return parking, nil
}

func (r *pgParkingRepository) FindByID(ctx context.Context, id int) (*domain.Parking, error) {
	query := `SELECT ` + parkingColumns + ` FROM parkings WHERE id = $1 AND deleted_at IS NULL`
	parking, err := r.scanParking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingRepository.FindByID: %w", err)
	}
	return parking, nil
}

func (r *pgParkingRepository) FindAll(ctx context.Context) ([]domain.Parking, error) {
	query := `SELECT ` + parkingColumns + ` FROM parkings WHERE deleted_at IS NULL ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ParkingRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var parkings []domain.Parking
	for rows.Next() {
		parking, err := r.scanParking(rows)
		if err != nil {
			return nil, fmt.Errorf("ParkingRepository.FindAll (scanning row): %w", err)
		}
		parkings = append(parkings, *parking)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingRepository.FindAll (rows error): %w", err)
	}
	return parkings, nil
}

func (r *pgParkingRepository) Update(ctx context.Context, parking *domain.Parking) (*domain.Parking, error) {
	query := `UPDATE parkings
	           SET code = $1, name = $2, address = $3, latitude = $4, longitude = $5, manager_id = $6, status = $7,
	               updated_at = $8, updated_by = $9, deleted_at = $10, deleted_by = $11
	           WHERE id = $12
	           RETURNING id`
	var id int
	err := r.db.QueryRowContext(ctx, query,
		parking.Code, parking.Name, sql.NullString{String: parking.Address, Valid: parking.Address != ""},
		parking.Latitude, parking.Longitude, parking.ManagerID, parking.Status,
		parking.UpdatedAt, parking.UpdatedBy, parking.DeletedAt, parking.DeletedBy, parking.ID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: parking code '%s' already exists", repository.ErrDuplicateEntry, parking.Code)
		}
		return nil, fmt.Errorf("ParkingRepository.Update: %w", err)
	}
	return parking, nil
}
