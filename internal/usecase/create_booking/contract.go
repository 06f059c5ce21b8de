package create_booking

import (
	"context"
	"time"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByCenterAndDate(ctx context.Context, centerID int64, date time.Time) ([]*domain.Booking, error)
	GetActiveByVehicleAndDate(ctx context.Context, vehicleID int64, date time.Time) ([]*domain.Booking, error)
	AddStaff(ctx context.Context, bookingID int64, staffIDs []int64) error
}

// CenterRepository интерфейс репозитория центров
type CenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Center, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	IncrementTotalBookings(ctx context.Context, id int64) error
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Staff, error)
	IncrementTotalJobs(ctx context.Context, ids []int64) error
}

// PricingRepository интерфейс каталога услуг и прайс-листа
type PricingRepository interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
	GetEffectivePrice(ctx context.Context, serviceID int64, vehicleType domain.VehicleType, asOf time.Time) (*domain.ServicePrice, error)
}

// SequenceRepository интерфейс генератора номеров бронирований
type SequenceRepository interface {
	NextBookingNumber(ctx context.Context, date time.Time) (string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
