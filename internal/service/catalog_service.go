package service

import (
	"context"
	"strings"
	"time"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/repository"

	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"
)

// CatalogService owns the shift and rate reference data the pricing matrix
// is built from.
type CatalogService struct {
	shiftRepo repository.ShiftRepository
	rateRepo  repository.RateRepository
	log       *zap.Logger
}

func NewCatalogService(shiftRepo repository.ShiftRepository, rateRepo repository.RateRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{shiftRepo: shiftRepo, rateRepo: rateRepo, log: log}
}

// --- Shifts ---

func validateShiftWindow(startTime, endTime string) error {
	start, err := domain.MinutesOfDay(startTime)
	if err != nil {
		return NewValidationError("start_time", "%v", err)
	}
	end, err := domain.MinutesOfDay(endTime)
	if err != nil {
		return NewValidationError("end_time", "%v", err)
	}
	if start == end {
		return NewValidationError("end_time", "shift window cannot be empty (start equals end)")
	}
	return nil
}

func (s *CatalogService) CreateShift(ctx context.Context, dto domain.ShiftDTO, actor null.Int) (*domain.Shift, error) {
	if err := validateShiftWindow(dto.StartTime, dto.EndTime); err != nil {
		return nil, err
	}

	status := true
	if dto.Status != nil {
		status = *dto.Status
	}

	shift := &domain.Shift{
		Code:        dto.Code,
		Name:        dto.Name,
		Description: dto.Description,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		Status:      status,
	}
	shift.MarkCreated(time.Now().UTC(), actor)

	created, err := s.shiftRepo.Create(ctx, shift)
	if err != nil {
		return nil, err
	}
	s.log.Info("shift created", zap.Int("shift_id", created.ID), zap.String("code", created.Code))
	return created, nil
}

func (s *CatalogService) GetShift(ctx context.Context, id int) (*domain.Shift, error) {
	return s.shiftRepo.FindByID(ctx, id)
}

func (s *CatalogService) ListShifts(ctx context.Context) ([]domain.Shift, error) {
	return s.shiftRepo.FindAll(ctx)
}

func (s *CatalogService) UpdateShift(ctx context.Context, id int, dto domain.ShiftDTO, actor null.Int) (*domain.Shift, error) {
	if err := validateShiftWindow(dto.StartTime, dto.EndTime); err != nil {
		return nil, err
	}

	shift, err := s.shiftRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shift.Code = dto.Code
	shift.Name = dto.Name
	shift.Description = dto.Description
	shift.StartTime = dto.StartTime
	shift.EndTime = dto.EndTime
	if dto.Status != nil {
		shift.Status = *dto.Status
	}
	shift.Touch(time.Now().UTC(), actor)
	return s.shiftRepo.Update(ctx, shift)
}

func (s *CatalogService) DeleteShift(ctx context.Context, id int, actor null.Int) error {
	shift, err := s.shiftRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	shift.MarkDeleted(time.Now().UTC(), actor)
	shift.Status = false
	if _, err = s.shiftRepo.Update(ctx, shift); err != nil {
		return err
	}
	s.log.Info("shift deleted", zap.Int("shift_id", id))
	return nil
}

func (s *CatalogService) RestoreShift(ctx context.Context, id int, actor null.Int) (*domain.Shift, error) {
	shift, err := s.shiftRepo.FindByIDAny(ctx, id)
	if err != nil {
		return nil, err
	}
	if !shift.IsDeleted() {
		return shift, nil
	}
	shift.Restore(time.Now().UTC(), actor)
	shift.Status = true
	restored, err := s.shiftRepo.Update(ctx, shift)
	if err != nil {
		return nil, err
	}
	s.log.Info("shift restored", zap.Int("shift_id", id))
	return restored, nil
}

// --- Rates ---

func (s *CatalogService) CreateRate(ctx context.Context, dto domain.RateDTO, actor null.Int) (*domain.Rate, error) {
	if dto.Amount <= 0 {
		return nil, NewValidationError("amount", "amount must be greater than zero")
	}
	currency := strings.ToUpper(strings.TrimSpace(dto.Currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	if len(currency) != 3 {
		return nil, NewValidationError("currency", "currency must be a 3-letter code")
	}

	status := true
	if dto.Status != nil {
		status = *dto.Status
	}

	rate := &domain.Rate{
		Name:        dto.Name,
		Description: dto.Description,
		Amount:      dto.Amount,
		Currency:    currency,
		Status:      status,
	}
	rate.MarkCreated(time.Now().UTC(), actor)

	created, err := s.rateRepo.Create(ctx, rate)
	if err != nil {
		return nil, err
	}
	s.log.Info("rate created", zap.Int("rate_id", created.ID), zap.Float64("amount", created.Amount))
	return created, nil
}

func (s *CatalogService) GetRate(ctx context.Context, id int) (*domain.Rate, error) {
	return s.rateRepo.FindByID(ctx, id)
}

func (s *CatalogService) ListRates(ctx context.Context) ([]domain.Rate, error) {
	return s.rateRepo.FindAll(ctx)
}

func (s *CatalogService) UpdateRate(ctx context.Context, id int, dto domain.RateDTO, actor null.Int) (*domain.Rate, error) {
	if dto.Amount <= 0 {
		return nil, NewValidationError("amount", "amount must be greater than zero")
	}

	rate, err := s.rateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rate.Name = dto.Name
	rate.Description = dto.Description
	rate.Amount = dto.Amount
	if dto.Currency != "" {
		currency := strings.ToUpper(strings.TrimSpace(dto.Currency))
		if len(currency) != 3 {
			return nil, NewValidationError("currency", "currency must be a 3-letter code")
		}
		rate.Currency = currency
	}
	if dto.Status != nil {
		rate.Status = *dto.Status
	}
	rate.Touch(time.Now().UTC(), actor)
	return s.rateRepo.Update(ctx, rate)
}

func (s *CatalogService) DeleteRate(ctx context.Context, id int, actor null.Int) error {
	rate, err := s.rateRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	rate.MarkDeleted(time.Now().UTC(), actor)
	rate.Status = false
	if _, err = s.rateRepo.Update(ctx, rate); err != nil {
		return err
	}
	s.log.Info("rate deleted", zap.Int("rate_id", id))
	return nil
}

func (s *CatalogService) RestoreRate(ctx context.Context, id int, actor null.Int) (*domain.Rate, error) {
	rate, err := s.rateRepo.FindByIDAny(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rate.IsDeleted() {
		return rate, nil
	}
	rate.Restore(time.Now().UTC(), actor)
	rate.Status = true
	restored, err := s.rateRepo.Update(ctx, rate)
	if err != nil {
		return nil, err
	}
	s.log.Info("rate restored", zap.Int("rate_id", id))
	return restored, nil
}
