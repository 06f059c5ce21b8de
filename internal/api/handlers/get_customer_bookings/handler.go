package get_customer_bookings

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
	msgInvalidCustomerID = "некорректный ID клиента"
	msgInvalidInput      = "некорректные входные данные"
	msgInvalidStatus     = "некорректный статус"
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

// Handle GET /api/v1/customers/{customerId}/bookings?status=completed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil || customerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.GetCustomerBookings(r.Context(), &models.GetCustomerBookingsRequest{
		CustomerID: customerID,
		Status:     status,
	})
	if err != nil {
		h.respondError(w, customerID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, customerID int64, err error) {
	switch {
	case errors.Is(err, bookings.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, bookings.ErrInvalidStatus):
		handlers.RespondBadRequest(w, msgInvalidStatus)
	default:
		h.logger.Error("GET /customers/%d/bookings - Failed to get bookings: %v", customerID, err)
		handlers.RespondInternalError(w)
	}
}
