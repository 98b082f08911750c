package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/repository"

	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"
)

// OccupancyNotifier pushes zone occupancy snapshots to connected clients.
// Implemented by the websocket hub.
type OccupancyNotifier interface {
	BroadcastZoneOccupancy(occ domain.ZoneOccupancy)
}

// FacilityService owns the parking -> zone -> space hierarchy and the space
// status transitions, whether they come from the API or from sensors.
type FacilityService struct {
	parkingRepo repository.ParkingRepository
	zoneRepo    repository.ZoneRepository
	spaceRepo   repository.SpaceRepository
	notifier    OccupancyNotifier
	log         *zap.Logger
}

func NewFacilityService(
	parkingRepo repository.ParkingRepository,
	zoneRepo repository.ZoneRepository,
	spaceRepo repository.SpaceRepository,
	notifier OccupancyNotifier,
	log *zap.Logger,
) *FacilityService {
	return &FacilityService{
		parkingRepo: parkingRepo,
		zoneRepo:    zoneRepo,
		spaceRepo:   spaceRepo,
		notifier:    notifier,
		log:         log,
	}
}

// --- Parkings ---

func (s *FacilityService) CreateParking(ctx context.Context, dto domain.ParkingDTO, actor null.Int) (*domain.Parking, error) {
	status := true
	if dto.Status != nil {
		status = *dto.Status
	}
	parking := &domain.Parking{
		Code:      dto.Code,
		Name:      dto.Name,
		Address:   dto.Address,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
		ManagerID: dto.ManagerID,
		Status:    status,
	}
	parking.MarkCreated(time.Now().UTC(), actor)

	created, err := s.parkingRepo.Create(ctx, parking)
	if err != nil {
		return nil, err
	}
	s.log.Info("parking created", zap.Int("parking_id", created.ID), zap.String("code", created.Code))
	return created, nil
}

func (s *FacilityService) GetParking(ctx context.Context, id int) (*domain.Parking, error) {
	return s.parkingRepo.FindByID(ctx, id)
}

func (s *FacilityService) ListParkings(ctx context.Context) ([]domain.Parking, error) {
	return s.parkingRepo.FindAll(ctx)
}

func (s *FacilityService) UpdateParking(ctx context.Context, id int, dto domain.ParkingDTO, actor null.Int) (*domain.Parking, error) {
	parking, err := s.parkingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	parking.Code = dto.Code
	parking.Name = dto.Name
	parking.Address = dto.Address
	parking.Latitude = dto.Latitude
	parking.Longitude = dto.Longitude
	parking.ManagerID = dto.ManagerID
	if dto.Status != nil {
		parking.Status = *dto.Status
	}
	parking.Touch(time.Now().UTC(), actor)
	return s.parkingRepo.Update(ctx, parking)
}

func (s *FacilityService) DeleteParking(ctx context.Context, id int, actor null.Int) error {
	parking, err := s.parkingRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	zones, err := s.zoneRepo.FindByParkingID(ctx, id)
	if err != nil {
		return fmt.Errorf("checking zones of parking %d: %w", id, err)
	}
	if len(zones) > 0 {
		return NewValidationError("id", "parking %d still has %d zone(s)", id, len(zones))
	}
	parking.MarkDeleted(time.Now().UTC(), actor)
	parking.Status = false
	if _, err = s.parkingRepo.Update(ctx, parking); err != nil {
		return err
	}
	s.log.Info("parking deleted", zap.Int("parking_id", id))
	return nil
}

// --- Zones ---

func (s *FacilityService) CreateZone(ctx context.Context, parkingID int, dto domain.ZoneDTO, actor null.Int) (*domain.Zone, error) {
	if _, err := s.parkingRepo.FindByID(ctx, parkingID); err != nil {
		return nil, err
	}

	status := true
	if dto.Status != nil {
		status = *dto.Status
	}
	zone := &domain.Zone{
		ParkingID: parkingID,
		Code:      dto.Code,
		Name:      dto.Name,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
		CameraID:  dto.CameraID,
		CameraURL: dto.CameraURL,
		Status:    status,
	}
	zone.MarkCreated(time.Now().UTC(), actor)

	created, err := s.zoneRepo.Create(ctx, zone)
	if err != nil {
		return nil, err
	}
	s.log.Info("zone created", zap.Int("zone_id", created.ID), zap.Int("parking_id", parkingID))
	return created, nil
}

func (s *FacilityService) GetZone(ctx context.Context, id int) (*domain.Zone, error) {
	return s.zoneRepo.FindByID(ctx, id)
}

func (s *FacilityService) ListZonesByParking(ctx context.Context, parkingID int) ([]domain.Zone, error) {
	if _, err := s.parkingRepo.FindByID(ctx, parkingID); err != nil {
		return nil, err
	}
	return s.zoneRepo.FindByParkingID(ctx, parkingID)
}

func (s *FacilityService) UpdateZone(ctx context.Context, id int, dto domain.ZoneDTO, actor null.Int) (*domain.Zone, error) {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	zone.Code = dto.Code
	zone.Name = dto.Name
	zone.Latitude = dto.Latitude
	zone.Longitude = dto.Longitude
	zone.CameraID = dto.CameraID
	zone.CameraURL = dto.CameraURL
	if dto.Status != nil {
		zone.Status = *dto.Status
	}
	zone.Touch(time.Now().UTC(), actor)
	return s.zoneRepo.Update(ctx, zone)
}

func (s *FacilityService) DeleteZone(ctx context.Context, id int, actor null.Int) error {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	spaces, err := s.spaceRepo.FindByZoneID(ctx, id)
	if err != nil {
		return fmt.Errorf("checking spaces of zone %d: %w", id, err)
	}
	if len(spaces) > 0 {
		return NewValidationError("id", "zone %d still has %d space(s)", id, len(spaces))
	}
	zone.MarkDeleted(time.Now().UTC(), actor)
	zone.Status = false
	if _, err = s.zoneRepo.Update(ctx, zone); err != nil {
		return err
	}
	s.log.Info("zone deleted", zap.Int("zone_id", id))
	return nil
}

// --- Spaces ---

func (s *FacilityService) CreateSpace(ctx context.Context, zoneID int, dto domain.SpaceDTO, actor null.Int) (*domain.Space, error) {
	if _, err := s.zoneRepo.FindByID(ctx, zoneID); err != nil {
		return nil, err
	}
	if !domain.ValidSpaceType(dto.Type) {
		return nil, NewValidationError("type", "unknown space type '%s'", dto.Type)
	}
	status := domain.SpaceStatusFree
	if dto.Status != "" {
		if !domain.ValidSpaceStatus(dto.Status) {
			return nil, NewValidationError("status", "unknown space status '%s'", dto.Status)
		}
		status = dto.Status
	}

	space := &domain.Space{
		ZoneID:   zoneID,
		Code:     dto.Code,
		Type:     dto.Type,
		Status:   status,
		SensorID: dto.SensorID,
	}
	space.MarkCreated(time.Now().UTC(), actor)

	created, err := s.spaceRepo.Create(ctx, space)
	if err != nil {
		return nil, err
	}
	s.log.Info("space created", zap.Int("space_id", created.ID), zap.Int("zone_id", zoneID))
	return created, nil
}

func (s *FacilityService) GetSpace(ctx context.Context, id int) (*domain.Space, error) {
	return s.spaceRepo.FindByID(ctx, id)
}

func (s *FacilityService) ListSpacesByZone(ctx context.Context, zoneID int) ([]domain.Space, error) {
	if _, err := s.zoneRepo.FindByID(ctx, zoneID); err != nil {
		return nil, err
	}
	return s.spaceRepo.FindByZoneID(ctx, zoneID)
}

func (s *FacilityService) UpdateSpace(ctx context.Context, id int, dto domain.SpaceDTO, actor null.Int) (*domain.Space, error) {
	space, err := s.spaceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.ValidSpaceType(dto.Type) {
		return nil, NewValidationError("type", "unknown space type '%s'", dto.Type)
	}
	space.Code = dto.Code
	space.Type = dto.Type
	space.SensorID = dto.SensorID
	if dto.Status != "" {
		if !domain.ValidSpaceStatus(dto.Status) {
			return nil, NewValidationError("status", "unknown space status '%s'", dto.Status)
		}
		space.Status = dto.Status
	}
	space.Touch(time.Now().UTC(), actor)
	return s.spaceRepo.Update(ctx, space)
}

func (s *FacilityService) DeleteSpace(ctx context.Context, id int, actor null.Int) error {
	space, err := s.spaceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	space.MarkDeleted(time.Now().UTC(), actor)
	if _, err = s.spaceRepo.Update(ctx, space); err != nil {
		return err
	}
	s.log.Info("space deleted", zap.Int("space_id", id))
	s.notifyZone(ctx, space.ZoneID)
	return nil
}

// UpdateSpaceStatus handles operator-driven status changes from the API.
func (s *FacilityService) UpdateSpaceStatus(ctx context.Context, id int, status domain.SpaceStatus) (*domain.Space, error) {
	if !domain.ValidSpaceStatus(status) {
		return nil, NewValidationError("status", "unknown space status '%s'", status)
	}
	space, err := s.spaceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = s.spaceRepo.UpdateStatus(ctx, id, status, nil); err != nil {
		return nil, err
	}
	space.Status = status
	s.notifyZone(ctx, space.ZoneID)
	return space, nil
}

// ApplySensorEvent maps a sensor report to its space and applies the status
// change. Events older than the last applied one are skipped, so delayed
// SQS redeliveries never roll a space backwards.
func (s *FacilityService) ApplySensorEvent(ctx context.Context, event domain.SpaceSensorEvent) error {
	space, err := s.spaceRepo.FindBySensorAndCode(ctx, event.DeviceID, event.SpaceCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("sensor event for unknown space",
				zap.String("device_id", event.DeviceID), zap.String("space_code", event.SpaceCode))
			return nil
		}
		return fmt.Errorf("finding space for sensor event: %w", err)
	}

	if space.LastSensorAt.Valid && !event.Timestamp.After(space.LastSensorAt.Time) {
		s.log.Debug("stale sensor event skipped",
			zap.Int("space_id", space.ID), zap.Time("event_time", event.Timestamp))
		return nil
	}

	newStatus := domain.SpaceStatusFree
	if event.Occupied {
		newStatus = domain.SpaceStatusOccupied
	}
	// out-of-service stalls are not driven by sensors
	if space.Status == domain.SpaceStatusOutOfService {
		return nil
	}

	eventTime := event.Timestamp.UTC()
	if err = s.spaceRepo.UpdateStatus(ctx, space.ID, newStatus, &eventTime); err != nil {
		return fmt.Errorf("applying sensor event to space %d: %w", space.ID, err)
	}
	s.log.Info("space status updated from sensor",
		zap.Int("space_id", space.ID), zap.String("status", string(newStatus)))

	s.notifyZone(ctx, space.ZoneID)
	return nil
}

func (s *FacilityService) notifyZone(ctx context.Context, zoneID int) {
	if s.notifier == nil {
		return
	}
	spaces, err := s.spaceRepo.FindByZoneID(ctx, zoneID)
	if err != nil {
		s.log.Warn("could not compute occupancy for broadcast", zap.Int("zone_id", zoneID), zap.Error(err))
		return
	}
	s.notifier.BroadcastZoneOccupancy(domain.AggregateZone(zoneID, spaces))
}
