package create_booking

import (
	"errors"
	"net/http"

	"github.com/m1shk4/AquaWash-BookingService/internal/api/handlers"
	createBooking "github.com/m1shk4/AquaWash-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput         = "некорректные входные данные"
	msgCenterNotFound       = "центр не найден"
	msgCenterInactive       = "центр не принимает бронирования"
	msgCustomerNotFound     = "клиент не найден"
	msgVehicleNotFound      = "автомобиль не найден"
	msgVehicleNotOwned      = "автомобиль принадлежит другому клиенту"
	msgServiceNotFound      = "услуга не найдена"
	msgPricingUnavailable   = "для услуги нет действующей цены"
	msgInvalidDate          = "некорректная дата бронирования"
	msgInvalidTimeSlot      = "некорректный временной слот"
	msgVehicleDoubleBooking = "автомобиль уже записан на пересекающееся время"
	msgBayOutOfRange        = "некорректный номер поста"
	msgSlotConflict         = "выбранный пост занят в это время"
	msgCenterFullyBooked    = "на выбранное время нет свободных постов"
	msgStaffNotFound        = "сотрудник не найден в центре"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		RespondUseCaseError(w, h.logger, "POST /bookings", &req, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, number=%s, customer_id=%d",
		result.ID, result.BookingNumber, req.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// RespondUseCaseError транслирует ошибки use case создания в HTTP-ответ.
// Используется также пакетным обработчиком для кодов отдельных элементов.
func RespondUseCaseError(w http.ResponseWriter, logger Logger, op string, req *CreateBookingRequest, err error) {
	status, message := MapUseCaseError(err)

	switch status {
	case http.StatusInternalServerError:
		logger.Error("%s - Failed to create booking: customer_id=%d, center_id=%d, error=%v",
			op, req.CustomerID, req.CenterID, err)
		handlers.RespondInternalError(w)
	default:
		logger.Warn("%s - %s: customer_id=%d, center_id=%d", op, message, req.CustomerID, req.CenterID)
		handlers.RespondError(w, status, message)
	}
}

// MapUseCaseError возвращает HTTP-статус и сообщение для ошибки use case
func MapUseCaseError(err error) (int, string) {
	switch {
	case errors.Is(err, createBooking.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidInput
	case errors.Is(err, createBooking.ErrInvalidDate):
		return http.StatusBadRequest, msgInvalidDate
	case errors.Is(err, createBooking.ErrInvalidTimeSlot):
		return http.StatusBadRequest, msgInvalidTimeSlot
	case errors.Is(err, createBooking.ErrBayOutOfRange):
		return http.StatusBadRequest, msgBayOutOfRange
	case errors.Is(err, createBooking.ErrCenterInactive):
		return http.StatusBadRequest, msgCenterInactive
	case errors.Is(err, createBooking.ErrVehicleNotOwned):
		return http.StatusForbidden, msgVehicleNotOwned
	case errors.Is(err, createBooking.ErrCenterNotFound):
		return http.StatusNotFound, msgCenterNotFound
	case errors.Is(err, createBooking.ErrCustomerNotFound):
		return http.StatusNotFound, msgCustomerNotFound
	case errors.Is(err, createBooking.ErrVehicleNotFound):
		return http.StatusNotFound, msgVehicleNotFound
	case errors.Is(err, createBooking.ErrServiceNotFound):
		return http.StatusNotFound, msgServiceNotFound
	case errors.Is(err, createBooking.ErrStaffNotFound):
		return http.StatusNotFound, msgStaffNotFound
	case errors.Is(err, createBooking.ErrPricingUnavailable):
		return http.StatusUnprocessableEntity, msgPricingUnavailable
	case errors.Is(err, createBooking.ErrVehicleDoubleBooking):
		return http.StatusConflict, msgVehicleDoubleBooking
	case errors.Is(err, createBooking.ErrSlotConflict):
		return http.StatusConflict, msgSlotConflict
	case errors.Is(err, createBooking.ErrCenterFullyBooked):
		return http.StatusConflict, msgCenterFullyBooked
	default:
		return http.StatusInternalServerError, ""
	}
}
