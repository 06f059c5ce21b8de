package models

import (
	"errors"
	"time"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// AssignStaffRequest запрос на назначение сотрудников
type AssignStaffRequest struct {
	BookingID int64   `json:"bookingId"`
	StaffIDs  []int64 `json:"staffIds"`
}

// Response модели

// BookingItemResponse позиция услуги бронирования
type BookingItemResponse struct {
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	Price           float64 `json:"price"`
	FinalPrice      float64 `json:"finalPrice"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64  `json:"id"`
	BookingNumber string `json:"bookingNumber"`
	CenterID      int64  `json:"centerId"`
	CustomerID    int64  `json:"customerId"`
	VehicleID     int64  `json:"vehicleId"`

	ScheduledDate     string `json:"scheduledDate"` // "2026-08-31"
	ScheduledTime     string `json:"scheduledTime"` // "10:00"
	BayNumber         int    `json:"bayNumber"`
	EstimatedDuration int    `json:"estimatedDuration"`

	TotalAmount float64 `json:"totalAmount"`
	FinalAmount float64 `json:"finalAmount"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	Items    []BookingItemResponse `json:"items"`
	StaffIDs []int64               `json:"staffIds,omitempty"`

	Notes        *string `json:"notes,omitempty"`
	CancelReason *string `json:"cancelReason,omitempty"`
	Recurrence   *string `json:"recurrence,omitempty"`

	ActualStartTime *time.Time `json:"actualStartTime,omitempty"`
	ActualEndTime   *time.Time `json:"actualEndTime,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StaffAssignmentResponse ответ после назначения сотрудников
type StaffAssignmentResponse struct {
	BookingID int64   `json:"bookingId"`
	StaffIDs  []int64 `json:"staffIds"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	items := make([]BookingItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, BookingItemResponse{
			ServiceID:       item.ServiceID,
			ServiceName:     item.ServiceName,
			Price:           item.Price,
			FinalPrice:      item.FinalPrice,
			DurationMinutes: item.DurationMinutes,
		})
	}

	return &BookingResponse{
		ID:                b.ID,
		BookingNumber:     b.BookingNumber,
		CenterID:          b.CenterID,
		CustomerID:        b.CustomerID,
		VehicleID:         b.VehicleID,
		ScheduledDate:     b.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime:     b.ScheduledTime.String(),
		BayNumber:         b.BayNumber,
		EstimatedDuration: b.EstimatedDuration,
		TotalAmount:       b.TotalAmount,
		FinalAmount:       b.FinalAmount,
		Status:            string(b.Status),
		PaymentStatus:     string(b.PaymentStatus),
		Items:             items,
		StaffIDs:          b.StaffIDs,
		Notes:             b.Notes,
		CancelReason:      b.CancelReason,
		Recurrence:        b.Recurrence,
		ActualStartTime:   b.ActualStartTime,
		ActualEndTime:     b.ActualEndTime,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// FromDomainBookings конвертирует список domain моделей в DTO
func FromDomainBookings(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result}
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
