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

// PricingService owns the per-parking shift-rate matrix and the rate
// resolver built on top of it.
type PricingService struct {
	configRepo  repository.ShiftRateConfigRepository
	parkingRepo repository.ParkingRepository
	zoneRepo    repository.ZoneRepository
	spaceRepo   repository.SpaceRepository
	shiftRepo   repository.ShiftRepository
	rateRepo    repository.RateRepository
	log         *zap.Logger
}

func NewPricingService(
	configRepo repository.ShiftRateConfigRepository,
	parkingRepo repository.ParkingRepository,
	zoneRepo repository.ZoneRepository,
	spaceRepo repository.SpaceRepository,
	shiftRepo repository.ShiftRepository,
	rateRepo repository.RateRepository,
	log *zap.Logger,
) *PricingService {
	return &PricingService{
		configRepo:  configRepo,
		parkingRepo: parkingRepo,
		zoneRepo:    zoneRepo,
		spaceRepo:   spaceRepo,
		shiftRepo:   shiftRepo,
		rateRepo:    rateRepo,
		log:         log,
	}
}

// ConfigureShiftRates validates and atomically replaces the whole shift-rate
// matrix of one parking. Partial application is impossible: either every
// entry is persisted or the previous configuration stays untouched.
func (s *PricingService) ConfigureShiftRates(ctx context.Context, parkingID int, entries []domain.ShiftRateEntryDTO, actor null.Int) ([]domain.ShiftRateView, error) {
	if _, err := s.parkingRepo.FindByID(ctx, parkingID); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, NewValidationError("configurations", "at least one configuration is required")
	}

	seen := make(map[int]bool, len(entries))
	shifts := make(map[int]*domain.Shift, len(entries))
	rates := make(map[int]*domain.Rate, len(entries))
	now := time.Now().UTC()
	configs := make([]domain.ShiftRateConfig, 0, len(entries))

	for _, entry := range entries {
		if seen[entry.ShiftID] {
			return nil, NewValidationError("shift_id", "shift %d appears more than once", entry.ShiftID)
		}
		seen[entry.ShiftID] = true

		shift, err := s.shiftRepo.FindByID(ctx, entry.ShiftID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewValidationError("shift_id", "shift %d does not exist", entry.ShiftID)
			}
			return nil, fmt.Errorf("checking shift %d: %w", entry.ShiftID, err)
		}
		if !shift.Status {
			return nil, NewValidationError("shift_id", "shift %d is inactive", entry.ShiftID)
		}
		shifts[shift.ID] = shift

		rate, err := s.rateRepo.FindByID(ctx, entry.RateID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewValidationError("rate_id", "rate %d does not exist", entry.RateID)
			}
			return nil, fmt.Errorf("checking rate %d: %w", entry.RateID, err)
		}
		if !rate.Status {
			return nil, NewValidationError("rate_id", "rate %d is inactive", entry.RateID)
		}
		rates[rate.ID] = rate

		status := true
		if entry.Status != nil {
			status = *entry.Status
		}
		cfg := domain.ShiftRateConfig{
			ParkingID: parkingID,
			ShiftID:   entry.ShiftID,
			RateID:    entry.RateID,
			Status:    status,
		}
		cfg.MarkCreated(now, actor)
		configs = append(configs, cfg)
	}

	saved, err := s.configRepo.ReplaceForParking(ctx, parkingID, configs)
	if err != nil {
		return nil, err
	}
	s.log.Info("shift rates configured",
		zap.Int("parking_id", parkingID), zap.Int("entries", len(saved)))

	views := make([]domain.ShiftRateView, 0, len(saved))
	for _, cfg := range saved {
		views = append(views, buildShiftRateView(cfg, shifts[cfg.ShiftID], rates[cfg.RateID]))
	}
	return views, nil
}

// GetParkingShiftRates lists the live configuration of a parking, joined
// with shift and rate names for display.
func (s *PricingService) GetParkingShiftRates(ctx context.Context, parkingID int) ([]domain.ShiftRateView, error) {
	if _, err := s.parkingRepo.FindByID(ctx, parkingID); err != nil {
		return nil, err
	}
	configs, err := s.configRepo.FindByParkingID(ctx, parkingID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.ShiftRateView, 0, len(configs))
	for _, cfg := range configs {
		// FindByIDAny so names still render when a shift or rate was
		// deleted after being configured
		shift, err := s.shiftRepo.FindByIDAny(ctx, cfg.ShiftID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("loading shift %d: %w", cfg.ShiftID, err)
		}
		rate, err := s.rateRepo.FindByIDAny(ctx, cfg.RateID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("loading rate %d: %w", cfg.RateID, err)
		}
		views = append(views, buildShiftRateView(cfg, shift, rate))
	}
	return views, nil
}

func (s *PricingService) DeleteShiftRateConfig(ctx context.Context, configID int, actor null.Int) error {
	cfg, err := s.configRepo.FindByID(ctx, configID)
	if err != nil {
		return err
	}
	cfg.MarkDeleted(time.Now().UTC(), actor)
	if _, err = s.configRepo.Update(ctx, cfg); err != nil {
		return err
	}
	s.log.Info("shift rate config deleted", zap.Int("config_id", configID))
	return nil
}

func (s *PricingService) ToggleShiftRateStatus(ctx context.Context, configID int, actor null.Int) (*domain.ShiftRateConfig, error) {
	cfg, err := s.configRepo.FindByID(ctx, configID)
	if err != nil {
		return nil, err
	}
	cfg.Toggle()
	cfg.Touch(time.Now().UTC(), actor)
	updated, err := s.configRepo.Update(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.log.Info("shift rate config toggled",
		zap.Int("config_id", configID), zap.Bool("status", updated.Status))
	return updated, nil
}

// ResolveRate answers "what does parking P charge during shift S". Zone and
// space ids are validated for ownership when given but pricing is defined
// at the parking level, so they never change the answer. The resolver reads
// committed state on every call; a configuration change is visible to the
// next resolve immediately.
func (s *PricingService) ResolveRate(ctx context.Context, parkingID int, shiftID int, zoneID *int, spaceID *int) (*domain.ResolvedRate, error) {
	if _, err := s.parkingRepo.FindByID(ctx, parkingID); err != nil {
		return nil, err
	}

	if zoneID != nil {
		zone, err := s.zoneRepo.FindByID(ctx, *zoneID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewValidationError("zone_id", "zone %d does not exist", *zoneID)
			}
			return nil, err
		}
		if zone.ParkingID != parkingID {
			return nil, NewValidationError("zone_id", "zone %d does not belong to parking %d", *zoneID, parkingID)
		}
	}
	if spaceID != nil {
		space, err := s.spaceRepo.FindByID(ctx, *spaceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewValidationError("space_id", "space %d does not exist", *spaceID)
			}
			return nil, err
		}
		if zoneID != nil && space.ZoneID != *zoneID {
			return nil, NewValidationError("space_id", "space %d does not belong to zone %d", *spaceID, *zoneID)
		}
		if zoneID == nil {
			zone, err := s.zoneRepo.FindByID(ctx, space.ZoneID)
			if err != nil {
				return nil, fmt.Errorf("loading zone of space %d: %w", *spaceID, err)
			}
			if zone.ParkingID != parkingID {
				return nil, NewValidationError("space_id", "space %d does not belong to parking %d", *spaceID, parkingID)
			}
		}
	}

	cfg, err := s.configRepo.FindActive(ctx, parkingID, shiftID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotConfigured
		}
		return nil, err
	}

	// a config pointing at a deleted or deactivated shift/rate is unusable
	shift, err := s.shiftRepo.FindByID(ctx, cfg.ShiftID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotConfigured
		}
		return nil, err
	}
	rate, err := s.rateRepo.FindByID(ctx, cfg.RateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotConfigured
		}
		return nil, err
	}
	if !shift.Status || !rate.Status {
		return nil, ErrNotConfigured
	}

	return &domain.ResolvedRate{
		ConfigID:  cfg.ID,
		ParkingID: parkingID,
		ShiftID:   shift.ID,
		ShiftCode: shift.Code,
		ShiftName: shift.Name,
		RateID:    rate.ID,
		RateName:  rate.Name,
		Amount:    rate.Amount,
		Currency:  rate.Currency,
	}, nil
}

func buildShiftRateView(cfg domain.ShiftRateConfig, shift *domain.Shift, rate *domain.Rate) domain.ShiftRateView {
	view := domain.ShiftRateView{
		ID:        cfg.ID,
		ParkingID: cfg.ParkingID,
		ShiftID:   cfg.ShiftID,
		RateID:    cfg.RateID,
		Status:    cfg.Status,
	}
	if shift != nil {
		view.ShiftCode = shift.Code
		view.ShiftName = shift.Name
	}
	if rate != nil {
		view.RateName = rate.Name
		view.Amount = rate.Amount
		view.Currency = rate.Currency
	}
	return view
}
