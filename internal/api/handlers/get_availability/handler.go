package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m1shk4/AquaWash-BookingService/internal/api/handlers"
	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	getAvailability "github.com/m1shk4/AquaWash-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidCenterID = "некорректный ID центра"
	msgInvalidDate     = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность"
	msgInvalidInput    = "некорректные входные данные"
	msgInvalidInterval = "некорректный интервал слотов центра"
	msgCenterNotFound  = "центр не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/centers/{centerId}/availability?date=YYYY-MM-DD&duration=45
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	centerID, err := strconv.ParseInt(vars["centerId"], 10, 64)
	if err != nil || centerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidCenterID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	duration := 0
	if raw := r.URL.Query().Get("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration <= 0 {
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		CenterID:        centerID,
		Date:            date,
		DurationMinutes: duration,
	})
	if err != nil {
		h.respondError(w, centerID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, centerID int64, err error) {
	switch {
	case errors.Is(err, getAvailability.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, getAvailability.ErrInvalidInterval):
		handlers.RespondBadRequest(w, msgInvalidInterval)
	case errors.Is(err, getAvailability.ErrCenterNotFound):
		h.logger.Warn("GET /centers/%d/availability - Center not found", centerID)
		handlers.RespondNotFound(w, msgCenterNotFound)
	default:
		h.logger.Error("GET /centers/%d/availability - Failed to get availability: %v", centerID, err)
		handlers.RespondInternalError(w)
	}
}
