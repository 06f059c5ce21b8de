package customer

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

// Repository репозиторий для работы с клиентами сети
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"full_name",
		"phone",
		"email",
		"loyalty_points",
		"total_spent",
		"total_bookings",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.UserID,
		&c.FullName,
		&c.Phone,
		&c.Email,
		&c.LoyaltyPoints,
		&c.TotalSpent,
		&c.TotalBookings,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	return &c, nil
}

// IncrementTotalBookings увеличивает счетчик бронирований клиента.
// Выполняется в транзакции создания бронирования.
func (r *Repository) IncrementTotalBookings(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("total_bookings", squirrel.Expr("total_bookings + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementTotalBookings - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementTotalBookings - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementTotalBookings - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// ApplyLoyalty начисляет клиенту баллы и сумму завершенного бронирования.
// Выполняется в транзакции завершения, ровно один раз на бронирование.
func (r *Repository) ApplyLoyalty(ctx context.Context, id int64, points int, spent float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("loyalty_points", squirrel.Expr("loyalty_points + ?", points)).
		Set("total_spent", squirrel.Expr("total_spent + ?", spent)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ApplyLoyalty - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ApplyLoyalty - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ApplyLoyalty - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}
