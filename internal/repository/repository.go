package repository

import (
	"context"
	"errors"
	"time"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")

// ErrConflict signals a concurrent-modification failure (serialization or
// lock contention); the caller may retry the operation.
var ErrConflict = errors.New("concurrent modification conflict")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

// ShiftRepository persists the shift catalog. Find methods exclude
// soft-deleted rows; FindByIDAny includes them (restore, historical views).
type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) (*domain.Shift, error)
	FindByID(ctx context.Context, id int) (*domain.Shift, error)
	FindByIDAny(ctx context.Context, id int) (*domain.Shift, error)
	FindAll(ctx context.Context) ([]domain.Shift, error)
	Update(ctx context.Context, shift *domain.Shift) (*domain.Shift, error)
}

type RateRepository interface {
	Create(ctx context.Context, rate *domain.Rate) (*domain.Rate, error)
	FindByID(ctx context.Context, id int) (*domain.Rate, error)
	FindByIDAny(ctx context.Context, id int) (*domain.Rate, error)
	FindAll(ctx context.Context) ([]domain.Rate, error)
	Update(ctx context.Context, rate *domain.Rate) (*domain.Rate, error)
}

type ParkingRepository interface {
	Create(ctx context.Context, parking *domain.Parking) (*domain.Parking, error)
	FindByID(ctx context.Context, id int) (*domain.Parking, error)
	FindAll(ctx context.Context) ([]domain.Parking, error)
	Update(ctx context.Context, parking *domain.Parking) (*domain.Parking, error)
}

type ZoneRepository interface {
	Create(ctx context.Context, zone *domain.Zone) (*domain.Zone, error)
	FindByID(ctx context.Context, id int) (*domain.Zone, error)
	FindByParkingID(ctx context.Context, parkingID int) ([]domain.Zone, error)
	Update(ctx context.Context, zone *domain.Zone) (*domain.Zone, error)
}

type SpaceRepository interface {
	Create(ctx context.Context, space *domain.Space) (*domain.Space, error)
	FindByID(ctx context.Context, id int) (*domain.Space, error)
	FindByZoneID(ctx context.Context, zoneID int) ([]domain.Space, error)
	FindBySensorAndCode(ctx context.Context, sensorID string, code string) (*domain.Space, error)
	UpdateStatus(ctx context.Context, id int, status domain.SpaceStatus, sensorAt *time.Time) error
	Update(ctx context.Context, space *domain.Space) (*domain.Space, error)
}

// ShiftRateConfigRepository persists the per-parking shift-rate matrix.
// ReplaceForParking swaps a parking's whole configuration in one
// transaction serialized per parking; it returns ErrConflict when a
// concurrent replace wins.
type ShiftRateConfigRepository interface {
	ReplaceForParking(ctx context.Context, parkingID int, configs []domain.ShiftRateConfig) ([]domain.ShiftRateConfig, error)
	FindByParkingID(ctx context.Context, parkingID int) ([]domain.ShiftRateConfig, error)
	FindByID(ctx context.Context, id int) (*domain.ShiftRateConfig, error)
	FindActive(ctx context.Context, parkingID int, shiftID int) (*domain.ShiftRateConfig, error)
	Update(ctx context.Context, config *domain.ShiftRateConfig) (*domain.ShiftRateConfig, error)
}
