package staff

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/pkg/dbmetrics"
	"github.com/m1shk4/AquaWash-BookingService/pkg/psqlbuilder"
)

var staffColumns = []string{
	"id",
	"center_id",
	"full_name",
	"position",
	"is_active",
	"total_jobs",
	"completed_jobs",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сотрудниками центров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs получает сотрудников по списку идентификаторов.
// Отсутствующие в БД идентификаторы в результат не попадают,
// вызывающий код сверяет размер выборки.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Staff, error) {
	if len(ids) == 0 {
		return []*domain.Staff{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]*domain.Staff, 0, len(ids))
	for rows.Next() {
		var s domain.Staff
		err := rows.Scan(
			&s.ID,
			&s.CenterID,
			&s.FullName,
			&s.Position,
			&s.IsActive,
			&s.TotalJobs,
			&s.CompletedJobs,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan staff: %v", ErrScanRow, err)
		}
		members = append(members, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return members, nil
}

// IncrementTotalJobs увеличивает счетчик назначений для набора сотрудников.
// Выполняется в транзакции создания бронирования или назначения сотрудников.
func (r *Repository) IncrementTotalJobs(ctx context.Context, ids []int64) error {
	return r.incrementCounter(ctx, "IncrementTotalJobs", "total_jobs", ids)
}

// IncrementCompletedJobs увеличивает счетчик завершенных работ для набора
// сотрудников. Выполняется в транзакции завершения бронирования.
func (r *Repository) IncrementCompletedJobs(ctx context.Context, ids []int64) error {
	return r.incrementCounter(ctx, "IncrementCompletedJobs", "completed_jobs", ids)
}

func (r *Repository) incrementCounter(ctx context.Context, op, column string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff").
		Set(column, squirrel.Expr(column+" + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	return nil
}
