package create_booking

import (
	"time"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	createBooking "github.com/m1shk4/AquaWash-BookingService/internal/usecase/create_booking"
	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerID    int64   `json:"customerId"`
	CenterID      int64   `json:"centerId"`
	VehicleID     int64   `json:"vehicleId"`
	ServiceIDs    []int64 `json:"serviceIds"`
	ScheduledDate string  `json:"scheduledDate"` // "2026-08-31"
	ScheduledTime string  `json:"scheduledTime"` // "10:00"
	BayNumber     *int    `json:"bayNumber,omitempty"`
	StaffIDs      []int64 `json:"staffIds,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Recurrence    *string `json:"recurrence,omitempty"`
}

// BookingItemResponse позиция услуги в HTTP-ответе
type BookingItemResponse struct {
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	Price           float64 `json:"price"`
	FinalPrice      float64 `json:"finalPrice"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64                 `json:"id"`
	BookingNumber     string                `json:"bookingNumber"`
	CenterID          int64                 `json:"centerId"`
	CustomerID        int64                 `json:"customerId"`
	VehicleID         int64                 `json:"vehicleId"`
	ScheduledDate     string                `json:"scheduledDate"`
	ScheduledTime     string                `json:"scheduledTime"`
	BayNumber         int                   `json:"bayNumber"`
	EstimatedDuration int                   `json:"estimatedDuration"`
	TotalAmount       float64               `json:"totalAmount"`
	FinalAmount       float64               `json:"finalAmount"`
	Status            string                `json:"status"`
	PaymentStatus     string                `json:"paymentStatus"`
	Items             []BookingItemResponse `json:"items"`
	StaffIDs          []int64               `json:"staffIds,omitempty"`
	Notes             *string               `json:"notes,omitempty"`
	Recurrence        *string               `json:"recurrence,omitempty"`
	CreatedAt         string                `json:"createdAt"`
	UpdatedAt         string                `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	scheduledDate, err := time.Parse(domain.DateFormat, r.ScheduledDate)
	if err != nil {
		return nil, err
	}

	scheduledTime, err := types.NewTimeStringFromString(r.ScheduledTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID: r.CustomerID,
		CenterID:   r.CenterID,
		VehicleID:  r.VehicleID,
		ServiceIDs: r.ServiceIDs,
		Date:       scheduledDate,
		StartTime:  scheduledTime,
		BayNumber:  r.BayNumber,
		StaffIDs:   r.StaffIDs,
		Notes:      r.Notes,
		Recurrence: r.Recurrence,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	items := make([]BookingItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, BookingItemResponse{
			ServiceID:       item.ServiceID,
			ServiceName:     item.ServiceName,
			Price:           item.Price,
			FinalPrice:      item.FinalPrice,
			DurationMinutes: item.DurationMinutes,
		})
	}

	return &BookingResponse{
		ID:                resp.ID,
		BookingNumber:     resp.BookingNumber,
		CenterID:          resp.CenterID,
		CustomerID:        resp.CustomerID,
		VehicleID:         resp.VehicleID,
		ScheduledDate:     resp.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime:     resp.ScheduledTime.String(),
		BayNumber:         resp.BayNumber,
		EstimatedDuration: resp.EstimatedDuration,
		TotalAmount:       resp.TotalAmount,
		FinalAmount:       resp.FinalAmount,
		Status:            resp.Status,
		PaymentStatus:     resp.PaymentStatus,
		Items:             items,
		StaffIDs:          resp.StaffIDs,
		Notes:             resp.Notes,
		Recurrence:        resp.Recurrence,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
