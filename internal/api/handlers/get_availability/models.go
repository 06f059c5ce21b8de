package get_availability

import (
	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	getAvailability "github.com/m1shk4/AquaWash-BookingService/internal/usecase/get_availability"
)

// BayStatusResponse статус поста в слоте
type BayStatusResponse struct {
	BayNumber int    `json:"bayNumber"`
	Available bool   `json:"available"`
	BookingID *int64 `json:"bookingId,omitempty"`
}

// SlotResponse слот расписания с доступностью постов
type SlotResponse struct {
	StartTime     string              `json:"startTime"`
	AvailableBays int                 `json:"availableBays"`
	Bays          []BayStatusResponse `json:"bays"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	CenterID        int64          `json:"centerId"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	TotalBays       int            `json:"totalBays"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		bays := make([]BayStatusResponse, 0, len(slot.Bays))
		for _, bay := range slot.Bays {
			bays = append(bays, BayStatusResponse{
				BayNumber: bay.BayNumber,
				Available: bay.Available,
				BookingID: bay.BookingID,
			})
		}
		slots = append(slots, SlotResponse{
			StartTime:     slot.StartTime.String(),
			AvailableBays: slot.AvailableBays,
			Bays:          bays,
		})
	}

	return &AvailabilityResponse{
		CenterID:        resp.CenterID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		TotalBays:       resp.TotalBays,
		Slots:           slots,
	}
}
