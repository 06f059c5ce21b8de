package check_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m1shk4/AquaWash-BookingService/internal/api/handlers"
	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	getAvailability "github.com/m1shk4/AquaWash-BookingService/internal/usecase/get_availability"
	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

const (
	msgInvalidCenterID = "некорректный ID центра"
	msgInvalidDate     = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgInvalidTime     = "некорректное время, ожидается формат HH:MM"
	msgInvalidDuration = "некорректная длительность"
	msgInvalidInput    = "некорректные входные данные"
	msgInvalidTimeSlot = "время не попадает в сетку слотов центра"
	msgCenterNotFound  = "центр не найден"
)

// SlotCheckResponse HTTP response model
type SlotCheckResponse struct {
	CenterID        int64  `json:"centerId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Capacity        int    `json:"capacity"`
	FreeCount       int    `json:"freeCount"`
	Available       bool   `json:"available"`
	AvailableBays   []int  `json:"availableBays"`
}

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/centers/{centerId}/slot-check?date=YYYY-MM-DD&time=HH:MM&duration=45
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

	startTime, err := types.NewTimeStringFromString(r.URL.Query().Get("time"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
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

	result, err := h.useCase.CheckSlot(r.Context(), &getAvailability.CheckRequest{
		CenterID:        centerID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: duration,
	})
	if err != nil {
		h.respondError(w, centerID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &SlotCheckResponse{
		CenterID:        result.CenterID,
		Date:            result.Date.Format(domain.DateFormat),
		StartTime:       result.StartTime.String(),
		DurationMinutes: result.DurationMinutes,
		Capacity:        result.Capacity,
		FreeCount:       result.FreeCount,
		Available:       result.Available,
		AvailableBays:   result.AvailableBays,
	})
}

func (h *Handler) respondError(w http.ResponseWriter, centerID int64, err error) {
	switch {
	case errors.Is(err, getAvailability.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, getAvailability.ErrInvalidTimeSlot):
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)
	case errors.Is(err, getAvailability.ErrCenterNotFound):
		h.logger.Warn("GET /centers/%d/slot-check - Center not found", centerID)
		handlers.RespondNotFound(w, msgCenterNotFound)
	default:
		h.logger.Error("GET /centers/%d/slot-check - Failed to check slot: %v", centerID, err)
		handlers.RespondInternalError(w)
	}
}
