package service

import (
	"context"
	"testing"
	"time"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"
)

type occupancyFixture struct {
	svc         *OccupancyService
	parkingRepo *fakeParkingRepo
	zoneRepo    *fakeZoneRepo
	spaceRepo   *fakeSpaceRepo
	parking     *domain.Parking
}

func newOccupancyFixture(t *testing.T) *occupancyFixture {
	t.Helper()
	f := &occupancyFixture{
		parkingRepo: newFakeParkingRepo(),
		zoneRepo:    newFakeZoneRepo(),
		spaceRepo:   newFakeSpaceRepo(),
	}
	f.svc = NewOccupancyService(f.parkingRepo, f.zoneRepo, f.spaceRepo)

	parking := &domain.Parking{Code: "P-01", Name: "Central", Status: true}
	parking.MarkCreated(time.Now().UTC(), null.Int{})
	f.parking, _ = f.parkingRepo.Create(context.Background(), parking)
	return f
}

func (f *occupancyFixture) addZone(t *testing.T, code string) *domain.Zone {
	t.Helper()
	zone := &domain.Zone{ParkingID: f.parking.ID, Code: code, Name: code, Status: true}
	zone.MarkCreated(time.Now().UTC(), null.Int{})
	zone, err := f.zoneRepo.Create(context.Background(), zone)
	require.NoError(t, err)
	return zone
}

func (f *occupancyFixture) addSpaces(t *testing.T, zoneID int, statuses ...domain.SpaceStatus) {
	t.Helper()
	for i, st := range statuses {
		space := &domain.Space{
			ZoneID: zoneID,
			Code:   string(rune('A' + i)),
			Type:   domain.SpaceTypeCar,
			Status: st,
		}
		space.MarkCreated(time.Now().UTC(), null.Int{})
		_, err := f.spaceRepo.Create(context.Background(), space)
		require.NoError(t, err)
	}
}

func TestComputeZoneOccupancy(t *testing.T) {
	f := newOccupancyFixture(t)
	zone := f.addZone(t, "Z-A")
	f.addSpaces(t, zone.ID,
		domain.SpaceStatusOccupied, domain.SpaceStatusOccupied,
		domain.SpaceStatusFree, domain.SpaceStatusReserved,
	)

	occ, err := f.svc.ComputeZoneOccupancy(context.Background(), zone.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, occ.TotalSpaces)
	assert.Equal(t, 1, occ.AvailableSpaces)
	assert.InDelta(t, 75.0, occ.OccupancyPercentage, 0.0001)
}

func TestComputeZoneOccupancyEmptyZone(t *testing.T) {
	f := newOccupancyFixture(t)
	zone := f.addZone(t, "Z-EMPTY")

	occ, err := f.svc.ComputeZoneOccupancy(context.Background(), zone.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, occ.TotalSpaces)
	assert.Equal(t, 0.0, occ.OccupancyPercentage)
}

func TestComputeZoneOccupancyUnknownZone(t *testing.T) {
	f := newOccupancyFixture(t)
	_, err := f.svc.ComputeZoneOccupancy(context.Background(), 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestComputeParkingOccupancy(t *testing.T) {
	f := newOccupancyFixture(t)
	zoneA := f.addZone(t, "Z-A")
	zoneB := f.addZone(t, "Z-B")
	f.addZone(t, "Z-C") // no spaces

	f.addSpaces(t, zoneA.ID,
		domain.SpaceStatusOccupied, domain.SpaceStatusOccupied, domain.SpaceStatusOccupied,
		domain.SpaceStatusFree, domain.SpaceStatusFree, domain.SpaceStatusFree, domain.SpaceStatusFree,
		domain.SpaceStatusFree, domain.SpaceStatusFree, domain.SpaceStatusFree,
	)
	f.addSpaces(t, zoneB.ID,
		domain.SpaceStatusOccupied, domain.SpaceStatusOccupied, domain.SpaceStatusOccupied,
		domain.SpaceStatusOccupied, domain.SpaceStatusOccupied,
	)

	occ, err := f.svc.ComputeParkingOccupancy(context.Background(), f.parking.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, occ.TotalZones)
	assert.Equal(t, 15, occ.TotalSpaces)
	assert.Equal(t, 7, occ.AvailableSpaces)
	assert.InDelta(t, 53.3333, occ.OccupancyPercentage, 0.001)
}

func TestComputeParkingOccupancyNoZones(t *testing.T) {
	f := newOccupancyFixture(t)

	occ, err := f.svc.ComputeParkingOccupancy(context.Background(), f.parking.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, occ.TotalZones)
	assert.Equal(t, 0.0, occ.OccupancyPercentage)
}

func TestComputeParkingOccupancyUnknownParking(t *testing.T) {
	f := newOccupancyFixture(t)
	_, err := f.svc.ComputeParkingOccupancy(context.Background(), 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
