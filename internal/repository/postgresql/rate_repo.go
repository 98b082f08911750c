package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/repository"
)

type pgRateRepository struct {
	db *sql.DB
}

func NewPgRateRepository(db *sql.DB) repository.RateRepository {
	return &pgRateRepository{db: db}
}

const rateColumns = `id, name, description, amount, currency, status,
	created_at, created_by, updated_at, updated_by, deleted_at, deleted_by`

func (r *pgRateRepository) scanRate(row interface{ Scan(...any) error }) (*domain.Rate, error) {
	rate := &domain.Rate{}
	var description sql.NullString
	err := row.Scan(
		&rate.ID, &rate.Name, &description, &rate.Amount, &rate.Currency, &rate.Status,
		&rate.CreatedAt, &rate.CreatedBy, &rate.UpdatedAt, &rate.UpdatedBy, &rate.DeletedAt, &rate.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		rate.Description = description.String
	}
	rate.CreatedAt = rate.CreatedAt.In(time.UTC)
	rate.UpdatedAt = rate.UpdatedAt.In(time.UTC)
	return rate, nil
}

func (r *pgRateRepository) Create(ctx context.Context, rate *domain.Rate) (*domain.Rate, error) {
	query := `INSERT INTO rates (name, description, amount, currency, status, created_at, created_by, updated_at, updated_by)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	           RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		rate.Name, sql.NullString{String: rate.Description, Valid: rate.Description != ""},
		rate.Amount, rate.Currency, rate.Status,
		rate.CreatedAt, rate.CreatedBy, rate.UpdatedAt, rate.UpdatedBy,
	).Scan(&rate.ID)
	if err != nil {
		return nil, fmt.Errorf("RateRepository.Create: %w", err)
	}
	return rate, nil
}

func (r *pgRateRepository) FindByID(ctx context.Context, id int) (*domain.Rate, error) {
	query := `SELECT ` + rateColumns + ` FROM rates WHERE id = $1 AND deleted_at IS NULL`
	rate, err := r.scanRate(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("RateRepository.FindByID: %w", err)
	}
	return rate, nil
}

func (r *pgRateRepository) FindByIDAny(ctx context.Context, id int) (*domain.Rate, error) {
	query := `SELECT ` + rateColumns + ` FROM rates WHERE id = $1`
	rate, err := r.scanRate(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("RateRepository.FindByIDAny: %w", err)
	}
	return rate, nil
}

func (r *pgRateRepository) FindAll(ctx context.Context) ([]domain.Rate, error) {
	query := `SELECT ` + rateColumns + ` FROM rates WHERE deleted_at IS NULL ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("RateRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var rates []domain.Rate
	for rows.Next() {
		rate, err := r.scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("RateRepository.FindAll (scanning row): %w", err)
		}
		rates = append(rates, *rate)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("RateRepository.FindAll (rows error): %w", err)
	}
	return rates, nil
}

func (r *pgRateRepository) Update(ctx context.Context, rate *domain.Rate) (*domain.Rate, error) {
	query := `UPDATE rates
	           SET name = $1, description = $2, amount = $3, currency = $4, status = $5,
	               updated_at = $6, updated_by = $7, deleted_at = $8, deleted_by = $9
	           WHERE id = $10
	           RETURNING id`
	var id int
	err := r.db.QueryRowContext(ctx, query,
		rate.Name, sql.NullString{String: rate.Description, Valid: rate.Description != ""},
		rate.Amount, rate.Currency, rate.Status,
		rate.UpdatedAt, rate.UpdatedBy, rate.DeletedAt, rate.DeletedBy, rate.ID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("RateRepository.Update: %w", err)
	}
	return rate, nil
}
