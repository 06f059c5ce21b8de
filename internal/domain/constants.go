package domain

const (
	// DateFormat is the wire and storage format for scheduled dates
	DateFormat = "2006-01-02"

	// TimeFormat is the wire format for slot times
	TimeFormat = "15:04"
)

// AllowedSlotIntervals are the slot grid steps a center may be configured with
var AllowedSlotIntervals = []int{15, 30, 60}

// ActiveStatuses are the statuses that occupy a bay and participate
// in conflict detection
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress}

// loyaltyPointsDivisor: one point per this many currency units of final amount
const loyaltyPointsDivisor = 10

// LoyaltyPointsFor returns the points earned for a completed booking.
// Fractions are truncated, negative amounts earn nothing.
func LoyaltyPointsFor(finalAmount float64) int {
	if finalAmount <= 0 {
		return 0
	}
	return int(finalAmount / loyaltyPointsDivisor)
}
