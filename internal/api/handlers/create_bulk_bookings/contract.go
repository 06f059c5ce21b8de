package create_bulk_bookings

import (
	"context"

	createBooking "github.com/m1shk4/AquaWash-BookingService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	ExecuteBulk(ctx context.Context, reqs []*createBooking.Request) []createBooking.BulkResult
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
