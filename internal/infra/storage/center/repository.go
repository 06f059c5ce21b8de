package center

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/pkg/dbmetrics"
	"github.com/m1shk4/AquaWash-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с центрами мойки
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория центров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает центр по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Center, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"address",
		"phone",
		"is_active",
		"capacity",
		"open_time",
		"close_time",
		"time_slot_interval",
		"created_at",
		"updated_at",
	).
		From("centers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Center
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.Phone,
		&c.IsActive,
		&c.Capacity,
		&c.OpenTime,
		&c.CloseTime,
		&c.TimeSlotInterval,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCenterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan center: %v", ErrScanRow, err)
	}

	return &c, nil
}
