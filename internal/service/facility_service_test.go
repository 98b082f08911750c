package service

import (
	"context"
	"testing"
	"time"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"
)

type facilityFixture struct {
	svc       *FacilityService
	spaceRepo *fakeSpaceRepo
	notifier  *fakeNotifier
}

func newFacilityFixture(t *testing.T) *facilityFixture {
	t.Helper()
	f := &facilityFixture{
		spaceRepo: newFakeSpaceRepo(),
		notifier:  &fakeNotifier{},
	}
	f.svc = NewFacilityService(newFakeParkingRepo(), newFakeZoneRepo(), f.spaceRepo, f.notifier, zap.NewNop())
	return f
}

func (f *facilityFixture) seedHierarchy(t *testing.T) (*domain.Parking, *domain.Zone) {
	t.Helper()
	ctx := context.Background()
	parking, err := f.svc.CreateParking(ctx, domain.ParkingDTO{Code: "P-01", Name: "Central"}, null.IntFrom(1))
	require.NoError(t, err)
	zone, err := f.svc.CreateZone(ctx, parking.ID, domain.ZoneDTO{Code: "Z-A", Name: "Level A"}, null.IntFrom(1))
	require.NoError(t, err)
	return parking, zone
}

func (f *facilityFixture) seedSensorSpace(t *testing.T, zoneID int, sensorID, code string) *domain.Space {
	t.Helper()
	space, err := f.svc.CreateSpace(context.Background(), zoneID, domain.SpaceDTO{
		Code:     code,
		Type:     domain.SpaceTypeCar,
		SensorID: null.StringFrom(sensorID),
	}, null.IntFrom(1))
	require.NoError(t, err)
	return space
}

func TestCreateZoneRequiresParking(t *testing.T) {
	f := newFacilityFixture(t)
	_, err := f.svc.CreateZone(context.Background(), 999, domain.ZoneDTO{Code: "Z-A", Name: "x"}, null.Int{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateSpaceValidation(t *testing.T) {
	f := newFacilityFixture(t)
	_, zone := f.seedHierarchy(t)
	ctx := context.Background()

	_, err := f.svc.CreateSpace(ctx, 999, domain.SpaceDTO{Code: "A1", Type: domain.SpaceTypeCar}, null.Int{})
	assert.ErrorIs(t, err, repository.ErrNotFound, "zone must exist")

	_, err = f.svc.CreateSpace(ctx, zone.ID, domain.SpaceDTO{Code: "A1", Type: "truck"}, null.Int{})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "type", ve.Field)

	created, err := f.svc.CreateSpace(ctx, zone.ID, domain.SpaceDTO{Code: "A1", Type: domain.SpaceTypeCar}, null.Int{})
	require.NoError(t, err)
	assert.Equal(t, domain.SpaceStatusFree, created.Status, "new spaces start free")
}

func TestDeleteParkingBlockedByZones(t *testing.T) {
	f := newFacilityFixture(t)
	parking, zone := f.seedHierarchy(t)
	ctx := context.Background()

	err := f.svc.DeleteParking(ctx, parking.ID, null.Int{})
	_, ok := AsValidationError(err)
	assert.True(t, ok, "parking with zones cannot be deleted")

	require.NoError(t, f.svc.DeleteZone(ctx, zone.ID, null.Int{}))
	assert.NoError(t, f.svc.DeleteParking(ctx, parking.ID, null.Int{}))

	_, err = f.svc.GetParking(ctx, parking.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteZoneBlockedBySpaces(t *testing.T) {
	f := newFacilityFixture(t)
	_, zone := f.seedHierarchy(t)
	ctx := context.Background()

	space := f.seedSensorSpace(t, zone.ID, "sensor-1", "A1")

	err := f.svc.DeleteZone(ctx, zone.ID, null.Int{})
	_, ok := AsValidationError(err)
	assert.True(t, ok, "zone with spaces cannot be deleted")

	require.NoError(t, f.svc.DeleteSpace(ctx, space.ID, null.Int{}))
	assert.NoError(t, f.svc.DeleteZone(ctx, zone.ID, null.Int{}))
}

func TestUpdateSpaceStatusBroadcasts(t *testing.T) {
	f := newFacilityFixture(t)
	_, zone := f.seedHierarchy(t)
	space := f.seedSensorSpace(t, zone.ID, "sensor-1", "A1")
	ctx := context.Background()

	before := f.notifier.count()
	updated, err := f.svc.UpdateSpaceStatus(ctx, space.ID, domain.SpaceStatusReserved)
	require.NoError(t, err)
	assert.Equal(t, domain.SpaceStatusReserved, updated.Status)
	assert.Equal(t, before+1, f.notifier.count(), "status change must broadcast zone occupancy")

	_, err = f.svc.UpdateSpaceStatus(ctx, space.ID, "parked")
	_, ok := AsValidationError(err)
	assert.True(t, ok)

	_, err = f.svc.UpdateSpaceStatus(ctx, 999, domain.SpaceStatusFree)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplySensorEvent(t *testing.T) {
	f := newFacilityFixture(t)
	_, zone := f.seedHierarchy(t)
	space := f.seedSensorSpace(t, zone.ID, "sensor-1", "A1")
	ctx := context.Background()
	now := time.Now().UTC()

	err := f.svc.ApplySensorEvent(ctx, domain.SpaceSensorEvent{
		DeviceID: "sensor-1", SpaceCode: "A1", Occupied: true, Timestamp: now,
	})
	require.NoError(t, err)

	stored, err := f.spaceRepo.FindByID(ctx, space.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SpaceStatusOccupied, stored.Status)
	assert.True(t, stored.LastSensorAt.Valid)
	assert.Equal(t, 1, f.notifier.count())
}

func TestApplySensorEventSkipsStale(t *testing.T) {
	f := newFacilityFixture(t)
	_, zone := f.seedHierarchy(t)
	space := f.seedSensorSpace(t, zone.ID, "sensor-1", "A1")
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, f.svc.ApplySensorEvent(ctx, domain.SpaceSensorEvent{
		DeviceID: "sensor-1", SpaceCode: "A1", Occupied: true, Timestamp: now,
	}))

	// a redelivered older event must not roll the space back to free
	require.NoError(t, f.svc.ApplySensorEvent(ctx, domain.SpaceSensorEvent{
		DeviceID: "sensor-1", SpaceCode: "A1", Occupied: false, Timestamp: now.Add(-time.Minute),
	}))

	stored, err := f.spaceRepo.FindByID(ctx, space.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SpaceStatusOccupied, stored.Status)
	assert.Equal(t, 1, f.notifier.count(), "skipped events must not broadcast")

	// same timestamp counts as stale too
	require.NoError(t, f.svc.ApplySensorEvent(ctx, domain.SpaceSensorEvent{
		DeviceID: "sensor-1", SpaceCode: "A1", Occupied: false, Timestamp: now,
	}))
	stored, _ = f.spaceRepo.FindByID(ctx, space.ID)
	assert.Equal(t, domain.SpaceStatusOccupied, stored.Status)
}

func TestApplySensorEventUnknownSpaceIsDropped(t *testing.T) {
	f := newFacilityFixture(t)
	f.seedHierarchy(t)

	err := f.svc.ApplySensorEvent(context.Background(), domain.SpaceSensorEvent{
		DeviceID: "ghost", SpaceCode: "Z9", Occupied: true, Timestamp: time.Now().UTC(),
	})
	assert.NoError(t, err, "unknown spaces are logged and dropped, not retried")
	assert.Equal(t, 0, f.notifier.count())
}

func TestApplySensorEventIgnoresOutOfService(t *testing.T) {
	f := newFacilityFixture(t)
	_, zone := f.seedHierarchy(t)
	space := f.seedSensorSpace(t, zone.ID, "sensor-1", "A1")
	ctx := context.Background()

	_, err := f.svc.UpdateSpaceStatus(ctx, space.ID, domain.SpaceStatusOutOfService)
	require.NoError(t, err)
	before := f.notifier.count()

	require.NoError(t, f.svc.ApplySensorEvent(ctx, domain.SpaceSensorEvent{
		DeviceID: "sensor-1", SpaceCode: "A1", Occupied: true, Timestamp: time.Now().UTC(),
	}))

	stored, err := f.spaceRepo.FindByID(ctx, space.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SpaceStatusOutOfService, stored.Status, "sensors never override out_of_service")
	assert.Equal(t, before, f.notifier.count())
}
