package transition_status

import (
	"context"
	"time"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusGuarded(ctx context.Context, id int64, from, to domain.BookingStatus) error
	MarkInProgress(ctx context.Context, id int64, from domain.BookingStatus, startedAt time.Time) error
	MarkCompleted(ctx context.Context, id int64, from domain.BookingStatus, finishedAt time.Time) error
	MarkCancelled(ctx context.Context, id int64, from, to domain.BookingStatus, reason *string) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	ApplyLoyalty(ctx context.Context, id int64, points int, spent float64) error
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	IncrementCompletedJobs(ctx context.Context, ids []int64) error
}

// LoyaltyRepository интерфейс журнала начислений баллов
type LoyaltyRepository interface {
	Append(ctx context.Context, entry *domain.LoyaltyEntry) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс публикации событий бронирований
type Notifier interface {
	Notify(ctx context.Context, event notifier.Event) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
