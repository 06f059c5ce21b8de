package domain

import (
	"time"

	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a bay reservation at a wash center
type Booking struct {
	ID            int64
	BookingNumber string // human-readable, globally unique: BK-YYYYMMDD-NNNN
	CenterID      int64
	CustomerID    int64
	VehicleID     int64

	ScheduledDate     time.Time        // date only
	ScheduledTime     types.TimeString // must be a slot generated from the center's schedule
	BayNumber         int              // 1..center.Capacity
	EstimatedDuration int              // minutes, sum of line item durations

	TotalAmount float64 // sum of base prices
	FinalAmount float64 // sum of discounted prices; loyalty points derive from this

	Status        BookingStatus
	PaymentStatus PaymentStatus

	Notes        *string
	CancelReason *string

	ActualStartTime *time.Time
	ActualEndTime   *time.Time

	// Recurrence is stored as opaque metadata and never expanded into child bookings
	Recurrence *string

	Items    []BookingItem
	StaffIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingItem is a single ordered service on a booking,
// denormalized at creation time from the pricing catalog
type BookingItem struct {
	ID              int64
	BookingID       int64
	ServiceID       int64
	ServiceName     string
	Price           float64 // base price at booking time
	FinalPrice      float64 // price after discount
	DurationMinutes int
}

// IsActive returns true if the booking occupies its bay
// (pending, confirmed and in-progress bookings block the slot window)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// IsTerminal returns true if the status admits no further transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// IsValid returns true if s is one of the known booking statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the status machine allows moving from s to next.
//
// The lifecycle is strict:
//
//	pending -> confirmed -> in_progress -> completed
//	pending|confirmed    -> cancelled
//	any non-terminal     -> no_show
//
// Terminal states (completed, cancelled, no_show) admit nothing, which is what
// makes completion side effects (loyalty, staff counters) fire exactly once.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if !next.IsValid() || s.IsTerminal() {
		return false
	}

	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusNoShow
	case StatusConfirmed:
		return next == StatusInProgress || next == StatusCancelled || next == StatusNoShow
	case StatusInProgress:
		return next == StatusCompleted || next == StatusNoShow
	default:
		return false
	}
}

// EndTime returns the scheduled end of the booking (start + estimated duration)
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.ScheduledTime.AddMinutes(b.EstimatedDuration)
}

// Overlaps reports whether the booking's scheduled window overlaps the
// [start, start+durationMinutes) window on the same date. Boundary touches
// (one window ending exactly where the other starts) do not overlap.
func (b *Booking) Overlaps(start types.TimeString, durationMinutes int) (bool, error) {
	windowEnd, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false, err
	}
	bookingEnd, err := b.EndTime()
	if err != nil {
		return false, err
	}
	return b.ScheduledTime.IsBefore(windowEnd) && bookingEnd.IsAfter(start), nil
}
