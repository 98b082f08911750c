package service

import (
	"context"
	"fmt"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/repository"
)

// OccupancyService computes zone and parking occupancy on demand. Snapshots
// are derived from the current space statuses and never persisted.
type OccupancyService struct {
	parkingRepo repository.ParkingRepository
	zoneRepo    repository.ZoneRepository
	spaceRepo   repository.SpaceRepository
}

func NewOccupancyService(
	parkingRepo repository.ParkingRepository,
	zoneRepo repository.ZoneRepository,
	spaceRepo repository.SpaceRepository,
) *OccupancyService {
	return &OccupancyService{
		parkingRepo: parkingRepo,
		zoneRepo:    zoneRepo,
		spaceRepo:   spaceRepo,
	}
}

func (s *OccupancyService) ComputeZoneOccupancy(ctx context.Context, zoneID int) (*domain.ZoneOccupancy, error) {
	if _, err := s.zoneRepo.FindByID(ctx, zoneID); err != nil {
		return nil, err
	}
	spaces, err := s.spaceRepo.FindByZoneID(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("loading spaces of zone %d: %w", zoneID, err)
	}
	occ := domain.AggregateZone(zoneID, spaces)
	return &occ, nil
}

func (s *OccupancyService) ComputeParkingOccupancy(ctx context.Context, parkingID int) (*domain.ParkingOccupancy, error) {
	if _, err := s.parkingRepo.FindByID(ctx, parkingID); err != nil {
		return nil, err
	}
	zones, err := s.zoneRepo.FindByParkingID(ctx, parkingID)
	if err != nil {
		return nil, fmt.Errorf("loading zones of parking %d: %w", parkingID, err)
	}

	zoneOccs := make([]domain.ZoneOccupancy, 0, len(zones))
	for _, zone := range zones {
		spaces, err := s.spaceRepo.FindByZoneID(ctx, zone.ID)
		if err != nil {
			return nil, fmt.Errorf("loading spaces of zone %d: %w", zone.ID, err)
		}
		zoneOccs = append(zoneOccs, domain.AggregateZone(zone.ID, spaces))
	}
	occ := domain.AggregateParking(parkingID, zoneOccs)
	return &occ, nil
}
