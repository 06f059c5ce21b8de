// Package sequence хранит счетчики номеров бронирований по дням.
//
// Номер бронирования имеет вид BK-YYYYMMDD-NNNN, где NNNN сквозной
// в пределах дня по всей сети. Upsert c RETURNING выдает следующий номер
// атомарно: конкурентные транзакции сериализуются на строке дня.
package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/m1shk4/AquaWash-BookingService/pkg/dbmetrics"
	"github.com/m1shk4/AquaWash-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий счетчиков номеров бронирований
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетчиков
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// NextBookingNumber выдает следующий номер бронирования для даты.
// Вызывается внутри транзакции создания: откат транзакции возвращает
// и номер, дыры в нумерации при этом допустимы.
func (r *Repository) NextBookingNumber(ctx context.Context, date time.Time) (string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := date.Format("20060102")

	query, args, err := psqlbuilder.Insert("booking_number_seq").
		Columns("day", "last_value").
		Values(day, 1).
		Suffix("ON CONFLICT (day) DO UPDATE SET last_value = booking_number_seq.last_value + 1 RETURNING last_value").
		ToSql()

	if err != nil {
		return "", fmt.Errorf("%w: NextBookingNumber - build upsert query: %v", ErrBuildQuery, err)
	}

	var seq int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&seq); err != nil {
		return "", fmt.Errorf("%w: NextBookingNumber - execute upsert: %v", ErrExecQuery, err)
	}

	return fmt.Sprintf("BK-%s-%04d", day, seq), nil
}
