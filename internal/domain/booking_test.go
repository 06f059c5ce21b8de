package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		StatusPending:    {StatusConfirmed, StatusCancelled, StatusNoShow},
		StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
		StatusInProgress: {StatusCompleted, StatusNoShow},
		StatusCompleted:  {},
		StatusCancelled:  {},
		StatusNoShow:     {},
	}

	all := []BookingStatus{
		StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow,
	}

	for from, targets := range allowed {
		allowedSet := make(map[BookingStatus]bool, len(targets))
		for _, to := range targets {
			allowedSet[to] = true
		}
		for _, to := range all {
			got := from.CanTransitionTo(to)
			assert.Equalf(t, allowedSet[to], got, "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_CanTransitionTo_UnknownStatus(t *testing.T) {
	assert.False(t, StatusPending.CanTransitionTo("paused"))
	assert.False(t, BookingStatus("paused").CanTransitionTo(StatusConfirmed))
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestBooking_IsActive(t *testing.T) {
	for _, status := range ActiveStatuses {
		b := Booking{Status: status}
		assert.Truef(t, b.IsActive(), "status %s", status)
	}
	for _, status := range []BookingStatus{StatusCompleted, StatusCancelled, StatusNoShow} {
		b := Booking{Status: status}
		assert.Falsef(t, b.IsActive(), "status %s", status)
	}
}

func TestBooking_Overlaps(t *testing.T) {
	booking := Booking{
		ScheduledTime:     types.TimeString("08:00"),
		EstimatedDuration: 45,
	}

	tests := []struct {
		name     string
		start    types.TimeString
		duration int
		want     bool
	}{
		{"same slot", "08:00", 30, true},
		{"window inside booking", "08:15", 15, true},
		{"booking tail covers next slot", "08:30", 30, true},
		{"starts exactly at booking end", "08:45", 30, false},
		{"ends exactly at booking start", "07:30", 30, false},
		{"well after", "10:00", 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := booking.Overlaps(tt.start, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBooking_EndTime(t *testing.T) {
	b := Booking{ScheduledTime: types.TimeString("09:30"), EstimatedDuration: 90}

	end, err := b.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), end)
}

func TestLoyaltyPointsFor(t *testing.T) {
	tests := []struct {
		amount float64
		want   int
	}{
		{45.90, 4},
		{100, 10},
		{9.99, 0},
		{10, 1},
		{0, 0},
		{-50, 0},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, LoyaltyPointsFor(tt.amount), "amount %.2f", tt.amount)
	}
}

func TestCenter_Validate(t *testing.T) {
	valid := Center{
		Capacity:         4,
		OpenTime:         "08:00",
		CloseTime:        "20:00",
		TimeSlotInterval: 30,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Center)
		wantErr error
	}{
		{"zero capacity", func(c *Center) { c.Capacity = 0 }, ErrInvalidCapacity},
		{"negative capacity", func(c *Center) { c.Capacity = -1 }, ErrInvalidCapacity},
		{"interval not on grid", func(c *Center) { c.TimeSlotInterval = 45 }, ErrInvalidSlotInterval},
		{"zero interval", func(c *Center) { c.TimeSlotInterval = 0 }, ErrInvalidSlotInterval},
		{"open after close", func(c *Center) { c.OpenTime, c.CloseTime = "20:00", "08:00" }, ErrInvalidWorkingHours},
		{"open equals close", func(c *Center) { c.CloseTime = c.OpenTime }, ErrInvalidWorkingHours},
		{"malformed open time", func(c *Center) { c.OpenTime = "8am" }, ErrInvalidWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), tt.wantErr)
		})
	}
}

func TestVehicleType_IsValid(t *testing.T) {
	for _, vt := range []VehicleType{VehicleSedan, VehicleSUV, VehicleHatchback, VehicleVan, VehiclePickup, VehicleMotorcycle} {
		assert.Truef(t, vt.IsValid(), "type %s", vt)
	}
	assert.False(t, VehicleType("truck").IsValid())
}

func TestServicePrice_FinalPrice(t *testing.T) {
	p := ServicePrice{BasePrice: 200, DiscountPct: 15}
	assert.InDelta(t, 170.0, p.FinalPrice(), 1e-9)

	noDiscount := ServicePrice{BasePrice: 99.5}
	assert.InDelta(t, 99.5, noDiscount.FinalPrice(), 1e-9)
}
