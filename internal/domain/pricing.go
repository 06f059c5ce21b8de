package domain

import "time"

// Service is a catalog entry (exterior wash, interior detailing, waxing...)
type Service struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
}

// ServicePrice is one row of the versioned price list for a service.
// The price effective at a moment is the row with the latest ValidFrom
// not after that moment.
type ServicePrice struct {
	ID              int64
	ServiceID       int64
	VehicleType     VehicleType
	BasePrice       float64
	DiscountPct     float64 // 0..100
	DurationMinutes int
	ValidFrom       time.Time
}

// FinalPrice returns the base price with the discount applied
func (p *ServicePrice) FinalPrice() float64 {
	return p.BasePrice * (1 - p.DiscountPct/100)
}
