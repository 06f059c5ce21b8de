package assign_staff

import (
	"context"

	"github.com/m1shk4/AquaWash-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	AssignStaff(ctx context.Context, req *models.AssignStaffRequest) (*models.StaffAssignmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
