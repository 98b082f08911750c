package domain

// ZoneOccupancy is a derived snapshot, never persisted.
type ZoneOccupancy struct {
	ZoneID              int     `json:"zone_id"`
	TotalSpaces         int     `json:"total_spaces"`
	AvailableSpaces     int     `json:"available_spaces"`
	OccupancyPercentage float64 `json:"occupancy_percentage"`
}

// ParkingOccupancy rolls zone snapshots up to the facility level.
type ParkingOccupancy struct {
	ParkingID           int     `json:"parking_id"`
	TotalZones          int     `json:"total_zones"`
	TotalSpaces         int     `json:"total_spaces"`
	AvailableSpaces     int     `json:"available_spaces"`
	OccupancyPercentage float64 `json:"occupancy_percentage"`
}

// AggregateZone computes a zone snapshot from its spaces. Only spaces with
// status "free" count as available; reserved and out-of-service stalls are
// unavailable like occupied ones.
func AggregateZone(zoneID int, spaces []Space) ZoneOccupancy {
	occ := ZoneOccupancy{ZoneID: zoneID}
	for _, sp := range spaces {
		if sp.IsDeleted() {
			continue
		}
		occ.TotalSpaces++
		if sp.Status == SpaceStatusFree {
			occ.AvailableSpaces++
		}
	}
	occ.OccupancyPercentage = OccupancyPercent(occ.TotalSpaces, occ.AvailableSpaces)
	return occ
}

// AggregateParking rolls up zone snapshots. The percentage is recomputed
// from the summed totals, not averaged over zones.
func AggregateParking(parkingID int, zones []ZoneOccupancy) ParkingOccupancy {
	occ := ParkingOccupancy{ParkingID: parkingID, TotalZones: len(zones)}
	for _, z := range zones {
		occ.TotalSpaces += z.TotalSpaces
		occ.AvailableSpaces += z.AvailableSpaces
	}
	occ.OccupancyPercentage = OccupancyPercent(occ.TotalSpaces, occ.AvailableSpaces)
	return occ
}

// OccupancyPercent returns (total-available)/total*100, or 0 for an empty set.
func OccupancyPercent(total, available int) float64 {
	if total == 0 {
		return 0
	}
	return float64(total-available) / float64(total) * 100
}
