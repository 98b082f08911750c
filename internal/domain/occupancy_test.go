package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gopkg.in/guregu/null.v4"
)

func makeSpaces(zoneID int, statuses ...SpaceStatus) []Space {
	spaces := make([]Space, 0, len(statuses))
	for i, st := range statuses {
		spaces = append(spaces, Space{ID: i + 1, ZoneID: zoneID, Status: st})
	}
	return spaces
}

func TestAggregateZone(t *testing.T) {
	// 10 spaces, 3 occupied -> 30%
	spaces := makeSpaces(1,
		SpaceStatusOccupied, SpaceStatusOccupied, SpaceStatusOccupied,
		SpaceStatusFree, SpaceStatusFree, SpaceStatusFree, SpaceStatusFree,
		SpaceStatusFree, SpaceStatusFree, SpaceStatusFree,
	)

	occ := AggregateZone(1, spaces)
	assert.Equal(t, 1, occ.ZoneID)
	assert.Equal(t, 10, occ.TotalSpaces)
	assert.Equal(t, 7, occ.AvailableSpaces)
	assert.InDelta(t, 30.0, occ.OccupancyPercentage, 0.0001)
}

func TestAggregateZoneEmpty(t *testing.T) {
	occ := AggregateZone(5, nil)
	assert.Equal(t, 0, occ.TotalSpaces)
	assert.Equal(t, 0, occ.AvailableSpaces)
	assert.Equal(t, 0.0, occ.OccupancyPercentage)
}

func TestAggregateZoneReservedAndOutOfServiceAreUnavailable(t *testing.T) {
	spaces := makeSpaces(2, SpaceStatusFree, SpaceStatusReserved, SpaceStatusOutOfService, SpaceStatusOccupied)

	occ := AggregateZone(2, spaces)
	assert.Equal(t, 4, occ.TotalSpaces)
	assert.Equal(t, 1, occ.AvailableSpaces)
	assert.InDelta(t, 75.0, occ.OccupancyPercentage, 0.0001)
}

func TestAggregateZoneSkipsDeletedSpaces(t *testing.T) {
	spaces := makeSpaces(3, SpaceStatusFree, SpaceStatusOccupied)
	spaces[1].DeletedAt = null.TimeFrom(time.Now())

	occ := AggregateZone(3, spaces)
	assert.Equal(t, 1, occ.TotalSpaces)
	assert.Equal(t, 1, occ.AvailableSpaces)
	assert.Equal(t, 0.0, occ.OccupancyPercentage)
}

func TestAggregateParking(t *testing.T) {
	zones := []ZoneOccupancy{
		{ZoneID: 1, TotalSpaces: 10, AvailableSpaces: 7},
		{ZoneID: 2, TotalSpaces: 5, AvailableSpaces: 0},
		{ZoneID: 3, TotalSpaces: 0, AvailableSpaces: 0},
	}

	occ := AggregateParking(9, zones)
	assert.Equal(t, 9, occ.ParkingID)
	assert.Equal(t, 3, occ.TotalZones)
	assert.Equal(t, 15, occ.TotalSpaces)
	assert.Equal(t, 7, occ.AvailableSpaces)
	// 8/15, recomputed from totals rather than averaging zone percentages
	assert.InDelta(t, 53.3333, occ.OccupancyPercentage, 0.001)
}

func TestAggregateParkingNoZones(t *testing.T) {
	occ := AggregateParking(4, nil)
	assert.Equal(t, 0, occ.TotalZones)
	assert.Equal(t, 0.0, occ.OccupancyPercentage)
}
