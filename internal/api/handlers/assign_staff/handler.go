package assign_staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m1shk4/AquaWash-BookingService/internal/api/handlers"
	"github.com/m1shk4/AquaWash-BookingService/internal/service/bookings"
	"github.com/m1shk4/AquaWash-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные"
	msgBookingNotFound    = "бронирование не найдено"
	msgStaffNotFound      = "сотрудник не найден в центре"
	msgBookingFinished    = "бронирование уже завершено"
)

// AssignStaffRequest HTTP request model
type AssignStaffRequest struct {
	StaffIDs []int64 `json:"staffIds"`
}

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AssignStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/%d/staff - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AssignStaff(r.Context(), &models.AssignStaffRequest{
		BookingID: bookingID,
		StaffIDs:  req.StaffIDs,
	})
	if err != nil {
		h.respondError(w, bookingID, err)
		return
	}

	h.logger.Info("PUT /bookings/%d/staff - Staff assigned: %v", bookingID, result.StaffIDs)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, bookingID int64, err error) {
	switch {
	case errors.Is(err, bookings.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("PUT /bookings/%d/staff - Booking not found", bookingID)
		handlers.RespondNotFound(w, msgBookingNotFound)
	case errors.Is(err, bookings.ErrStaffNotFound):
		h.logger.Warn("PUT /bookings/%d/staff - Staff not found", bookingID)
		handlers.RespondNotFound(w, msgStaffNotFound)
	case errors.Is(err, bookings.ErrBookingFinished):
		h.logger.Warn("PUT /bookings/%d/staff - Booking already finished", bookingID)
		handlers.RespondError(w, http.StatusConflict, msgBookingFinished)
	default:
		h.logger.Error("PUT /bookings/%d/staff - Failed to assign staff: %v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
