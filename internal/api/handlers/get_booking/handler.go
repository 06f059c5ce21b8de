package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m1shk4/AquaWash-BookingService/internal/api/handlers"
	"github.com/m1shk4/AquaWash-BookingService/internal/api/middleware"
	"github.com/m1shk4/AquaWash-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgUnauthorized     = "пользователь не аутентифицирован"
	msgAccessDenied     = "доступ к бронированию запрещен"
	msgBookingNotFound  = "бронирование не найдено"
)

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

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		h.respondError(w, bookingID, userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}

func (h *Handler) respondError(w http.ResponseWriter, bookingID, userID int64, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("GET /bookings/%d - Booking not found", bookingID)
		handlers.RespondNotFound(w, msgBookingNotFound)
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/%d - Access denied for user_id=%d", bookingID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
	default:
		h.logger.Error("GET /bookings/%d - Failed to get booking: %v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
