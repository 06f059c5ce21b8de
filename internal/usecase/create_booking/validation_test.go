package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

func TestValidateSlot(t *testing.T) {
	center := &domain.Center{
		Capacity:         4,
		OpenTime:         "08:00",
		CloseTime:        "20:00",
		TimeSlotInterval: 30,
	}

	tests := []struct {
		name      string
		startTime types.TimeString
		wantErr   error
	}{
		{"opening slot", "08:00", nil},
		{"grid slot", "14:30", nil},
		{"last slot of the day", "19:30", nil},
		{"off grid", "08:15", ErrInvalidTimeSlot},
		{"before opening", "07:30", ErrInvalidTimeSlot},
		{"at closing time", "20:00", ErrInvalidTimeSlot},
		{"after closing", "21:00", ErrInvalidTimeSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSlot(center, tt.startTime)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSlot_HourlyGrid(t *testing.T) {
	center := &domain.Center{
		OpenTime:         "09:00",
		CloseTime:        "18:00",
		TimeSlotInterval: 60,
	}

	assert.NoError(t, validateSlot(center, "09:00"))
	assert.NoError(t, validateSlot(center, "17:00"))
	assert.ErrorIs(t, validateSlot(center, "09:30"), ErrInvalidTimeSlot)
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	assert.NoError(t, validateDate(now, now))
	assert.NoError(t, validateDate(now.AddDate(0, 0, 1), now))
	assert.ErrorIs(t, validateDate(now.AddDate(0, 0, -1), now), ErrInvalidDate)
}

func TestValidateRequest(t *testing.T) {
	valid := func() *Request {
		return &Request{
			CustomerID: 1,
			CenterID:   2,
			VehicleID:  3,
			ServiceIDs: []int64{10},
			Date:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			StartTime:  "10:00",
		}
	}

	assert.NoError(t, validateRequest(valid()))

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero customer", func(r *Request) { r.CustomerID = 0 }},
		{"zero center", func(r *Request) { r.CenterID = 0 }},
		{"zero vehicle", func(r *Request) { r.VehicleID = 0 }},
		{"no services", func(r *Request) { r.ServiceIDs = nil }},
		{"negative service", func(r *Request) { r.ServiceIDs = []int64{-1} }},
		{"zero staff id", func(r *Request) { r.StaffIDs = []int64{0} }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"malformed start time", func(r *Request) { r.StartTime = "25:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}
}

func TestCheckVehicleOverlap(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking(1, "10:00", 60),
	}

	assert.ErrorIs(t, checkVehicleOverlap(bookings, "10:30", 30), ErrVehicleDoubleBooking)
	assert.NoError(t, checkVehicleOverlap(bookings, "11:00", 30))
	assert.NoError(t, checkVehicleOverlap(nil, "10:00", 30))
}
