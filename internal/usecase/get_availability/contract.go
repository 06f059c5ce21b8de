package get_availability

import (
	"context"
	"time"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByCenterAndDate(ctx context.Context, centerID int64, date time.Time) ([]*domain.Booking, error)
}

// CenterRepository интерфейс репозитория центров
type CenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Center, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
