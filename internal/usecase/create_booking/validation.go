package create_booking

import (
	"fmt"
	"time"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.CenterID <= 0 {
		return fmt.Errorf("%w: centerID must be positive", ErrInvalidInput)
	}

	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	for _, serviceID := range req.ServiceIDs {
		if serviceID <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	for _, staffID := range req.StaffIDs {
		if staffID <= 0 {
			return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// validateSlot проверяет, что время начала лежит на сетке слотов центра:
// кратно интервалу относительно открытия и слот целиком внутри рабочих часов.
func validateSlot(center *domain.Center, startTime types.TimeString) error {
	if startTime.IsBefore(center.OpenTime) {
		return fmt.Errorf("%w: %s is before opening time %s", ErrInvalidTimeSlot, startTime, center.OpenTime)
	}

	startMinutes, err := startTime.TotalMinutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	openMinutes, err := center.OpenTime.TotalMinutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	if (startMinutes-openMinutes)%center.TimeSlotInterval != 0 {
		return fmt.Errorf("%w: %s is not aligned to %d-minute grid", ErrInvalidTimeSlot, startTime, center.TimeSlotInterval)
	}

	slotEnd, err := startTime.AddMinutes(center.TimeSlotInterval)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if slotEnd.IsAfter(center.CloseTime) {
		return fmt.Errorf("%w: slot at %s does not fit working hours", ErrInvalidTimeSlot, startTime)
	}

	return nil
}

// checkVehicleOverlap проверяет, что ни одно активное бронирование автомобиля
// не пересекается с запрошенным окном
func checkVehicleOverlap(bookings []*domain.Booking, startTime types.TimeString, durationMinutes int) error {
	for _, b := range bookings {
		overlaps, err := b.Overlaps(startTime, durationMinutes)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if overlaps {
			return fmt.Errorf("%w: conflicts with booking %s", ErrVehicleDoubleBooking, b.BookingNumber)
		}
	}
	return nil
}
