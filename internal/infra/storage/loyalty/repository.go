package loyalty

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/pkg/dbmetrics"
	"github.com/m1shk4/AquaWash-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий журнала начислений баллов лояльности.
// Журнал append-only: записи никогда не обновляются и не удаляются.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория лояльности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись о начислении баллов.
// Вызывается в транзакции завершения бронирования.
func (r *Repository) Append(ctx context.Context, entry *domain.LoyaltyEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("loyalty_history").
		Columns(
			"customer_id",
			"booking_id",
			"points",
			"description",
		).
		Values(
			entry.CustomerID,
			entry.BookingID,
			entry.Points,
			entry.Description,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByCustomer получает историю начислений клиента, новые записи первыми
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64) ([]*domain.LoyaltyEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_id",
		"booking_id",
		"points",
		"description",
		"created_at",
	).
		From("loyalty_history").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.LoyaltyEntry, 0)
	for rows.Next() {
		var e domain.LoyaltyEntry
		err := rows.Scan(
			&e.ID,
			&e.CustomerID,
			&e.BookingID,
			&e.Points,
			&e.Description,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByCustomer - scan entry: %v", ErrScanRow, err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
