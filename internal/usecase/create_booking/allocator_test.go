package create_booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/pkg/ptr"
	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

func activeBooking(bay int, start types.TimeString, duration int) *domain.Booking {
	return &domain.Booking{
		BayNumber:         bay,
		ScheduledTime:     start,
		EstimatedDuration: duration,
		Status:            domain.StatusConfirmed,
	}
}

func TestAllocateBay_LowestFreeBay(t *testing.T) {
	dayBookings := []*domain.Booking{
		activeBooking(1, "10:00", 30),
		activeBooking(2, "10:00", 30),
	}

	bay, err := allocateBay(dayBookings, "10:00", 30, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, bay)
}

func TestAllocateBay_FreedBayReused(t *testing.T) {
	dayBookings := []*domain.Booking{
		activeBooking(2, "10:00", 30),
	}

	bay, err := allocateBay(dayBookings, "10:00", 30, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, bay)
}

func TestAllocateBay_DurationBlocksLaterSlot(t *testing.T) {
	// 45-минутное бронирование в 08:00 занимает пост 1 и в слоте 08:30
	dayBookings := []*domain.Booking{
		activeBooking(1, "08:00", 45),
	}

	bay, err := allocateBay(dayBookings, "08:30", 30, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, bay)

	_, err = allocateBay(dayBookings, "08:30", 30, 1, nil)
	assert.ErrorIs(t, err, ErrCenterFullyBooked)
}

func TestAllocateBay_BoundaryTouchIsNotConflict(t *testing.T) {
	dayBookings := []*domain.Booking{
		activeBooking(1, "08:00", 45),
	}

	bay, err := allocateBay(dayBookings, "08:45", 30, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, bay)
}

func TestAllocateBay_RequestedBay(t *testing.T) {
	dayBookings := []*domain.Booking{
		activeBooking(2, "10:00", 30),
	}

	bay, err := allocateBay(dayBookings, "10:00", 30, 4, ptr.Ptr(3))
	require.NoError(t, err)
	assert.Equal(t, 3, bay)

	_, err = allocateBay(dayBookings, "10:00", 30, 4, ptr.Ptr(2))
	assert.ErrorIs(t, err, ErrSlotConflict)

	_, err = allocateBay(dayBookings, "10:00", 30, 4, ptr.Ptr(5))
	assert.ErrorIs(t, err, ErrBayOutOfRange)

	_, err = allocateBay(dayBookings, "10:00", 30, 4, ptr.Ptr(0))
	assert.ErrorIs(t, err, ErrBayOutOfRange)
}

func TestAllocateBay_FullyBooked(t *testing.T) {
	dayBookings := []*domain.Booking{
		activeBooking(1, "10:00", 30),
		activeBooking(2, "10:00", 30),
	}

	_, err := allocateBay(dayBookings, "10:00", 30, 2, nil)
	assert.ErrorIs(t, err, ErrCenterFullyBooked)
}
