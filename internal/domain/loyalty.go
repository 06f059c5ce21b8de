package domain

import "time"

// LoyaltyEntry is one append-only record of a points accrual.
// Booking completions are written exactly once, in the same transaction
// as the customer counter update. BookingID is nil for accruals that
// are not tied to a booking (promotions, manual adjustments).
type LoyaltyEntry struct {
	ID          int64
	CustomerID  int64
	BookingID   *int64
	Points      int
	Description string
	CreatedAt   time.Time
}
