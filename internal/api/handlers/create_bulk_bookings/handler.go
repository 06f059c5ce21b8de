package create_bulk_bookings

import (
	"net/http"

	"github.com/m1shk4/AquaWash-BookingService/internal/api/handlers"
	createBookingHandler "github.com/m1shk4/AquaWash-BookingService/internal/api/handlers/create_booking"
	createBooking "github.com/m1shk4/AquaWash-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyBatch         = "пакет бронирований пуст"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInternalItemError  = "внутренняя ошибка сервера"

	maxBatchSize = 50
)

// BulkRequest HTTP request model
type BulkRequest struct {
	Bookings []createBookingHandler.CreateBookingRequest `json:"bookings"`
}

// BulkItemResponse результат одного элемента пакета
type BulkItemResponse struct {
	Index   int                                   `json:"index"`
	Booking *createBookingHandler.BookingResponse `json:"booking,omitempty"`
	Error   *string                               `json:"error,omitempty"`
}

// BulkResponse HTTP response model
type BulkResponse struct {
	Results []BulkItemResponse `json:"results"`
	Created int                `json:"created"`
	Failed  int                `json:"failed"`
}

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

// Handle POST /api/v1/bookings/bulk
//
// Пакет обрабатывается поэлементно: отказ одного бронирования не влияет
// на остальные, ответ сохраняет порядок элементов запроса.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BulkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if len(req.Bookings) == 0 {
		handlers.RespondBadRequest(w, msgEmptyBatch)
		return
	}
	if len(req.Bookings) > maxBatchSize {
		h.logger.Warn("POST /bookings/bulk - Batch too large: %d items", len(req.Bookings))
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Парсим все элементы до выполнения; ошибки парсинга становятся
	// ошибками соответствующих элементов ответа
	useCaseReqs := make([]*createBooking.Request, len(req.Bookings))
	parseErrors := make(map[int]string)
	for i := range req.Bookings {
		ucReq, err := req.Bookings[i].ToUseCaseRequest()
		if err != nil {
			parseErrors[i] = msgInvalidDateTime
			continue
		}
		useCaseReqs[i] = ucReq
	}

	executable := make([]*createBooking.Request, 0, len(useCaseReqs))
	executableIdx := make([]int, 0, len(useCaseReqs))
	for i, ucReq := range useCaseReqs {
		if ucReq != nil {
			executable = append(executable, ucReq)
			executableIdx = append(executableIdx, i)
		}
	}

	bulkResults := h.useCase.ExecuteBulk(r.Context(), executable)

	results := make([]BulkItemResponse, len(req.Bookings))
	created, failed := 0, 0

	for i := range req.Bookings {
		if message, bad := parseErrors[i]; bad {
			msg := message
			results[i] = BulkItemResponse{Index: i, Error: &msg}
			failed++
		}
	}

	for j, res := range bulkResults {
		i := executableIdx[j]
		if res.Err != nil {
			_, message := createBookingHandler.MapUseCaseError(res.Err)
			if message == "" {
				h.logger.Error("POST /bookings/bulk - Item %d failed: %v", i, res.Err)
				message = msgInternalItemError
			}
			results[i] = BulkItemResponse{Index: i, Error: &message}
			failed++
			continue
		}
		results[i] = BulkItemResponse{
			Index:   i,
			Booking: createBookingHandler.FromUseCaseResponse(res.Booking),
		}
		created++
	}

	h.logger.Info("POST /bookings/bulk - Batch processed: created=%d, failed=%d", created, failed)
	handlers.RespondJSON(w, http.StatusMultiStatus, BulkResponse{
		Results: results,
		Created: created,
		Failed:  failed,
	})
}
