package service

import (
	"context"
	"sync"
	"time"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/repository"
)

// In-memory repository fakes. All of them are mutex-guarded so concurrency
// tests can hammer them from several goroutines.

type fakeShiftRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]domain.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{rows: make(map[int]domain.Shift)}
}

func (f *fakeShiftRepo) Create(_ context.Context, shift *domain.Shift) (*domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	shift.ID = f.nextID
	f.rows[shift.ID] = *shift
	return shift, nil
}

func (f *fakeShiftRepo) FindByID(_ context.Context, id int) (*domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (f *fakeShiftRepo) FindByIDAny(_ context.Context, id int) (*domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (f *fakeShiftRepo) FindAll(_ context.Context) ([]domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Shift
	for _, row := range f.rows {
		if !row.IsDeleted() {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) Update(_ context.Context, shift *domain.Shift) (*domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[shift.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	f.rows[shift.ID] = *shift
	return shift, nil
}

type fakeRateRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]domain.Rate
}

func newFakeRateRepo() *fakeRateRepo {
	return &fakeRateRepo{rows: make(map[int]domain.Rate)}
}

func (f *fakeRateRepo) Create(_ context.Context, rate *domain.Rate) (*domain.Rate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	rate.ID = f.nextID
	f.rows[rate.ID] = *rate
	return rate, nil
}

func (f *fakeRateRepo) FindByID(_ context.Context, id int) (*domain.Rate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (f *fakeRateRepo) FindByIDAny(_ context.Context, id int) (*domain.Rate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (f *fakeRateRepo) FindAll(_ context.Context) ([]domain.Rate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Rate
	for _, row := range f.rows {
		if !row.IsDeleted() {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeRateRepo) Update(_ context.Context, rate *domain.Rate) (*domain.Rate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[rate.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	f.rows[rate.ID] = *rate
	return rate, nil
}

type fakeParkingRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]domain.Parking
}

func newFakeParkingRepo() *fakeParkingRepo {
	return &fakeParkingRepo{rows: make(map[int]domain.Parking)}
}

func (f *fakeParkingRepo) Create(_ context.Context, parking *domain.Parking) (*domain.Parking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	parking.ID = f.nextID
	f.rows[parking.ID] = *parking
	return parking, nil
}

func (f *fakeParkingRepo) FindByID(_ context.Context, id int) (*domain.Parking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (f *fakeParkingRepo) FindAll(_ context.Context) ([]domain.Parking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Parking
	for _, row := range f.rows {
		if !row.IsDeleted() {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeParkingRepo) Update(_ context.Context, parking *domain.Parking) (*domain.Parking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[parking.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	f.rows[parking.ID] = *parking
	return parking, nil
}

type fakeZoneRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]domain.Zone
}

func newFakeZoneRepo() *fakeZoneRepo {
	return &fakeZoneRepo{rows: make(map[int]domain.Zone)}
}

func (f *fakeZoneRepo) Create(_ context.Context, zone *domain.Zone) (*domain.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	zone.ID = f.nextID
	f.rows[zone.ID] = *zone
	return zone, nil
}

func (f *fakeZoneRepo) FindByID(_ context.Context, id int) (*domain.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (f *fakeZoneRepo) FindByParkingID(_ context.Context, parkingID int) ([]domain.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Zone
	for _, row := range f.rows {
		if row.ParkingID == parkingID && !row.IsDeleted() {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeZoneRepo) Update(_ context.Context, zone *domain.Zone) (*domain.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[zone.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	f.rows[zone.ID] = *zone
	return zone, nil
}

type fakeSpaceRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]domain.Space
}

func newFakeSpaceRepo() *fakeSpaceRepo {
	return &fakeSpaceRepo{rows: make(map[int]domain.Space)}
}

func (f *fakeSpaceRepo) Create(_ context.Context, space *domain.Space) (*domain.Space, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	space.ID = f.nextID
	f.rows[space.ID] = *space
	return space, nil
}

func (f *fakeSpaceRepo) FindByID(_ context.Context, id int) (*domain.Space, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (f *fakeSpaceRepo) FindByZoneID(_ context.Context, zoneID int) ([]domain.Space, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Space
	for _, row := range f.rows {
		if row.ZoneID == zoneID && !row.IsDeleted() {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeSpaceRepo) FindBySensorAndCode(_ context.Context, sensorID string, code string) (*domain.Space, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.SensorID.Valid && row.SensorID.String == sensorID && row.Code == code && !row.IsDeleted() {
			return &row, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSpaceRepo) UpdateStatus(_ context.Context, id int, status domain.SpaceStatus, sensorAt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.IsDeleted() {
		return repository.ErrNotFound
	}
	row.Status = status
	if sensorAt != nil {
		row.LastSensorAt.SetValid(*sensorAt)
	}
	f.rows[id] = row
	return nil
}

func (f *fakeSpaceRepo) Update(_ context.Context, space *domain.Space) (*domain.Space, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[space.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	f.rows[space.ID] = *space
	return space, nil
}

type fakeShiftRateConfigRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]domain.ShiftRateConfig
}

func newFakeShiftRateConfigRepo() *fakeShiftRateConfigRepo {
	return &fakeShiftRateConfigRepo{rows: make(map[int]domain.ShiftRateConfig)}
}

func (f *fakeShiftRateConfigRepo) ReplaceForParking(_ context.Context, parkingID int, configs []domain.ShiftRateConfig) ([]domain.ShiftRateConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	for id, row := range f.rows {
		if row.ParkingID == parkingID && !row.IsDeleted() {
			row.DeletedAt.SetValid(now)
			f.rows[id] = row
		}
	}
	saved := make([]domain.ShiftRateConfig, 0, len(configs))
	for _, cfg := range configs {
		f.nextID++
		cfg.ID = f.nextID
		cfg.ParkingID = parkingID
		f.rows[cfg.ID] = cfg
		saved = append(saved, cfg)
	}
	return saved, nil
}

func (f *fakeShiftRateConfigRepo) FindByParkingID(_ context.Context, parkingID int) ([]domain.ShiftRateConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ShiftRateConfig
	for _, row := range f.rows {
		if row.ParkingID == parkingID && !row.IsDeleted() {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeShiftRateConfigRepo) FindByID(_ context.Context, id int) (*domain.ShiftRateConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (f *fakeShiftRateConfigRepo) FindActive(_ context.Context, parkingID int, shiftID int) (*domain.ShiftRateConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ParkingID == parkingID && row.ShiftID == shiftID && row.Status && !row.IsDeleted() {
			return &row, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeShiftRateConfigRepo) Update(_ context.Context, config *domain.ShiftRateConfig) (*domain.ShiftRateConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[config.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	f.rows[config.ID] = *config
	return config, nil
}

// fakeNotifier records occupancy broadcasts.
type fakeNotifier struct {
	mu        sync.Mutex
	snapshots []domain.ZoneOccupancy
}

func (f *fakeNotifier) BroadcastZoneOccupancy(occ domain.ZoneOccupancy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, occ)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.snapshots)
}
