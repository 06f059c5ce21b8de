package check_slot

import (
	"context"

	getAvailability "github.com/m1shk4/AquaWash-BookingService/internal/usecase/get_availability"
)

type CheckSlotUseCase interface {
	CheckSlot(ctx context.Context, req *getAvailability.CheckRequest) (*getAvailability.CheckResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
