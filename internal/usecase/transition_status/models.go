package transition_status

import (
	"time"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

// Request модель запроса на смену статуса бронирования
type Request struct {
	BookingID int64
	NewStatus string
	Reason    *string // причина для cancelled и no_show
}

// Response обновленное бронирование после смены статуса
type Response struct {
	ID                int64
	BookingNumber     string
	CenterID          int64
	CustomerID        int64
	VehicleID         int64
	ScheduledDate     time.Time
	ScheduledTime     types.TimeString
	BayNumber         int
	EstimatedDuration int
	TotalAmount       float64
	FinalAmount       float64
	Status            string
	PaymentStatus     string
	OldStatus         string
	PointsAwarded     int // баллы, начисленные при завершении
	CancelReason      *string
	ActualStartTime   *time.Time
	ActualEndTime     *time.Time
	UpdatedAt         time.Time
}

func toResponse(b *domain.Booking, oldStatus domain.BookingStatus, pointsAwarded int) *Response {
	return &Response{
		ID:                b.ID,
		BookingNumber:     b.BookingNumber,
		CenterID:          b.CenterID,
		CustomerID:        b.CustomerID,
		VehicleID:         b.VehicleID,
		ScheduledDate:     b.ScheduledDate,
		ScheduledTime:     b.ScheduledTime,
		BayNumber:         b.BayNumber,
		EstimatedDuration: b.EstimatedDuration,
		TotalAmount:       b.TotalAmount,
		FinalAmount:       b.FinalAmount,
		Status:            string(b.Status),
		PaymentStatus:     string(b.PaymentStatus),
		OldStatus:         string(oldStatus),
		PointsAwarded:     pointsAwarded,
		CancelReason:      b.CancelReason,
		ActualStartTime:   b.ActualStartTime,
		ActualEndTime:     b.ActualEndTime,
		UpdatedAt:         b.UpdatedAt,
	}
}
