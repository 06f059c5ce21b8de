package pricing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/pkg/dbmetrics"
	"github.com/m1shk4/AquaWash-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг и версионированного прайс-листа
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория прайс-листа
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает активную услугу каталога по ID
func (r *Repository) GetService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetEffectivePrice получает цену услуги для типа автомобиля, действующую
// на момент asOf: строка прайс-листа с наибольшим valid_from, не позже asOf.
func (r *Repository) GetEffectivePrice(ctx context.Context, serviceID int64, vehicleType domain.VehicleType, asOf time.Time) (*domain.ServicePrice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"vehicle_type",
		"base_price",
		"discount_pct",
		"duration_minutes",
		"valid_from",
	).
		From("service_prices").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"vehicle_type": vehicleType}).
		Where(squirrel.LtOrEq{"valid_from": asOf}).
		OrderBy("valid_from DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetEffectivePrice - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.ServicePrice
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.ServiceID,
		&p.VehicleType,
		&p.BasePrice,
		&p.DiscountPct,
		&p.DurationMinutes,
		&p.ValidFrom,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPriceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEffectivePrice - scan price: %v", ErrScanRow, err)
	}

	return &p, nil
}
