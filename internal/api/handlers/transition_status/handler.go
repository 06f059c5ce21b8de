package transition_status

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m1shk4/AquaWash-BookingService/internal/api/handlers"
	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	transitionStatus "github.com/m1shk4/AquaWash-BookingService/internal/usecase/transition_status"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные"
	msgInvalidStatus      = "некорректный статус"
	msgBookingNotFound    = "бронирование не найдено"
	msgInvalidTransition  = "переход статуса недопустим"
	msgConcurrentUpdate   = "бронирование было изменено параллельно, повторите запрос"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// TransitionResponse обновленное бронирование вместе с итогами перехода
type TransitionResponse struct {
	ID                int64      `json:"id"`
	BookingNumber     string     `json:"bookingNumber"`
	CenterID          int64      `json:"centerId"`
	CustomerID        int64      `json:"customerId"`
	VehicleID         int64      `json:"vehicleId"`
	ScheduledDate     string     `json:"scheduledDate"`
	ScheduledTime     string     `json:"scheduledTime"`
	BayNumber         int        `json:"bayNumber"`
	EstimatedDuration int        `json:"estimatedDuration"`
	TotalAmount       float64    `json:"totalAmount"`
	FinalAmount       float64    `json:"finalAmount"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"paymentStatus"`
	OldStatus         string     `json:"oldStatus"`
	PointsAwarded     int        `json:"pointsAwarded"`
	CancelReason      *string    `json:"cancelReason,omitempty"`
	ActualStartTime   *time.Time `json:"actualStartTime,omitempty"`
	ActualEndTime     *time.Time `json:"actualEndTime,omitempty"`
	UpdatedAt         string     `json:"updatedAt"`
}

type Handler struct {
	useCase TransitionStatusUseCase
	logger  Logger
}

func NewHandler(useCase TransitionStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%d/status - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transitionStatus.Request{
		BookingID: bookingID,
		NewStatus: req.Status,
		Reason:    req.Reason,
	})
	if err != nil {
		h.respondError(w, bookingID, req.Status, err)
		return
	}

	h.logger.Info("PATCH /bookings/%d/status - Status changed: %s -> %s",
		bookingID, result.OldStatus, result.Status)
	handlers.RespondJSON(w, http.StatusOK, &TransitionResponse{
		ID:                result.ID,
		BookingNumber:     result.BookingNumber,
		CenterID:          result.CenterID,
		CustomerID:        result.CustomerID,
		VehicleID:         result.VehicleID,
		ScheduledDate:     result.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime:     result.ScheduledTime.String(),
		BayNumber:         result.BayNumber,
		EstimatedDuration: result.EstimatedDuration,
		TotalAmount:       result.TotalAmount,
		FinalAmount:       result.FinalAmount,
		Status:            result.Status,
		PaymentStatus:     result.PaymentStatus,
		OldStatus:         result.OldStatus,
		PointsAwarded:     result.PointsAwarded,
		CancelReason:      result.CancelReason,
		ActualStartTime:   result.ActualStartTime,
		ActualEndTime:     result.ActualEndTime,
		UpdatedAt:         result.UpdatedAt.Format(time.RFC3339),
	})
}

func (h *Handler) respondError(w http.ResponseWriter, bookingID int64, status string, err error) {
	switch {
	case errors.Is(err, transitionStatus.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, transitionStatus.ErrInvalidStatus):
		handlers.RespondBadRequest(w, msgInvalidStatus)
	case errors.Is(err, transitionStatus.ErrBookingNotFound):
		h.logger.Warn("PATCH /bookings/%d/status - Booking not found", bookingID)
		handlers.RespondNotFound(w, msgBookingNotFound)
	case errors.Is(err, transitionStatus.ErrInvalidTransition):
		h.logger.Warn("PATCH /bookings/%d/status - Invalid transition to %s", bookingID, status)
		handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)
	case errors.Is(err, transitionStatus.ErrConcurrentUpdate):
		h.logger.Warn("PATCH /bookings/%d/status - Concurrent update", bookingID)
		handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)
	default:
		h.logger.Error("PATCH /bookings/%d/status - Failed to transition status: %v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
