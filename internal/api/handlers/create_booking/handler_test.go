package create_booking

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	createBooking "github.com/m1shk4/AquaWash-BookingService/internal/usecase/create_booking"
)

func TestMapUseCaseError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{createBooking.ErrInvalidInput, http.StatusBadRequest},
		{createBooking.ErrInvalidDate, http.StatusBadRequest},
		{createBooking.ErrInvalidTimeSlot, http.StatusBadRequest},
		{createBooking.ErrBayOutOfRange, http.StatusBadRequest},
		{createBooking.ErrCenterInactive, http.StatusBadRequest},
		{createBooking.ErrVehicleNotOwned, http.StatusForbidden},
		{createBooking.ErrCenterNotFound, http.StatusNotFound},
		{createBooking.ErrCustomerNotFound, http.StatusNotFound},
		{createBooking.ErrVehicleNotFound, http.StatusNotFound},
		{createBooking.ErrServiceNotFound, http.StatusNotFound},
		{createBooking.ErrStaffNotFound, http.StatusNotFound},
		{createBooking.ErrPricingUnavailable, http.StatusUnprocessableEntity},
		{createBooking.ErrVehicleDoubleBooking, http.StatusConflict},
		{createBooking.ErrSlotConflict, http.StatusConflict},
		{createBooking.ErrCenterFullyBooked, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, message := MapUseCaseError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.NotEmpty(t, message)
		})
	}
}

func TestMapUseCaseError_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("%w: bay 5 is taken", createBooking.ErrSlotConflict)

	status, _ := MapUseCaseError(wrapped)

	assert.Equal(t, http.StatusConflict, status)
}

func TestMapUseCaseError_UnknownErrorIsInternal(t *testing.T) {
	status, message := MapUseCaseError(fmt.Errorf("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Empty(t, message)
}
