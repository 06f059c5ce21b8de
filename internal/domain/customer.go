package domain

import "time"

// Customer is a registered client of the chain.
// Aggregate counters (points, spend, booking totals) are maintained by the
// booking lifecycle and only ever mutated inside booking transactions.
type Customer struct {
	ID       int64
	UserID   int64 // identity in the auth system
	FullName string
	Phone    string
	Email    string

	LoyaltyPoints int
	TotalSpent    float64
	TotalBookings int

	CreatedAt time.Time
	UpdatedAt time.Time
}
