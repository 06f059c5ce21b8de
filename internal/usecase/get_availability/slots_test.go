package get_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

func TestGenerateTimeSlots(t *testing.T) {
	tests := []struct {
		name     string
		open     types.TimeString
		close    types.TimeString
		interval int
		want     []types.TimeString
	}{
		{
			name: "one hour by 30", open: "08:00", close: "09:00", interval: 30,
			want: []types.TimeString{"08:00", "08:30"},
		},
		{
			name: "trailing partial slot dropped", open: "08:00", close: "09:15", interval: 30,
			want: []types.TimeString{"08:00", "08:30"},
		},
		{
			name: "hourly grid", open: "09:00", close: "12:00", interval: 60,
			want: []types.TimeString{"09:00", "10:00", "11:00"},
		},
		{
			name: "window shorter than interval", open: "08:00", close: "08:15", interval: 30,
			want: []types.TimeString{},
		},
		{
			name: "open equals close", open: "08:00", close: "08:00", interval: 15,
			want: []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generateTimeSlots(tt.open, tt.close, tt.interval)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateTimeSlots_InvalidInterval(t *testing.T) {
	_, err := generateTimeSlots("08:00", "20:00", 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = generateTimeSlots("08:00", "20:00", -15)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestBayStatuses_DurationAwareOccupancy(t *testing.T) {
	// 45-минутное бронирование в 08:00 на посту 1 занимает его
	// и в слоте 08:00, и в слоте 08:30
	dayBookings := []*domain.Booking{
		{ID: 100, BayNumber: 1, ScheduledTime: "08:00", EstimatedDuration: 45, Status: domain.StatusConfirmed},
	}

	statuses, err := bayStatuses(dayBookings, "08:00", 30, 2)
	require.NoError(t, err)
	assert.False(t, statuses[0].Available)
	require.NotNil(t, statuses[0].BookingID)
	assert.Equal(t, int64(100), *statuses[0].BookingID)
	assert.True(t, statuses[1].Available)

	statuses, err = bayStatuses(dayBookings, "08:30", 30, 2)
	require.NoError(t, err)
	assert.False(t, statuses[0].Available)
	assert.True(t, statuses[1].Available)

	statuses, err = bayStatuses(dayBookings, "09:00", 30, 2)
	require.NoError(t, err)
	assert.True(t, statuses[0].Available)
	assert.True(t, statuses[1].Available)
}
