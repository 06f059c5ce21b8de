package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:30", wantErr: false},
		{name: "valid midnight", input: "00:00", wantErr: false},
		{name: "valid end of day", input: "23:59", wantErr: false},
		{name: "missing leading zero", input: "9:30", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minute", input: "10:61", wantErr: true},
		{name: "with seconds", input: "10:00:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
	}{
		{name: "within hour", start: "10:00", minutes: 30, want: "10:30"},
		{name: "crosses hour", start: "10:45", minutes: 30, want: "11:15"},
		{name: "zero minutes", start: "10:00", minutes: 0, want: "10:00"},
		{name: "to midnight boundary", start: "23:30", minutes: 30, want: "24:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("negative minutes", func(t *testing.T) {
		_, err := TimeString("10:00").AddMinutes(-5)
		assert.ErrorIs(t, err, ErrNegativeMinutes)
	})

	t.Run("invalid base", func(t *testing.T) {
		_, err := TimeString("bad").AddMinutes(10)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("08:30"))
	assert.False(t, TimeString("08:30").IsBefore("08:30"))
	assert.True(t, TimeString("09:00").IsAfter("08:59"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))

	// "24:00" из AddMinutes корректно сравнивается с любым временем суток
	assert.True(t, TimeString("24:00").IsAfter("23:59"))
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 14, 9, 5, 59, 0, time.UTC)
	assert.Equal(t, TimeString("09:05"), NewTimeString(moment))
}
