package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

var (
	ErrInvalidCapacity     = errors.New("domain: center capacity must be positive")
	ErrInvalidSlotInterval = errors.New("domain: time slot interval must be 15, 30 or 60 minutes")
	ErrInvalidWorkingHours = errors.New("domain: center opening time must precede closing time")
)

// Center is a wash location with a fixed number of interchangeable bays
type Center struct {
	ID       int64
	Name     string
	Address  string
	Phone    string
	IsActive bool

	Capacity int // number of bays, bays are numbered 1..Capacity

	OpenTime         types.TimeString
	CloseTime        types.TimeString
	TimeSlotInterval int // minutes, grid step for bookable slots

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks center schedule invariants
func (c *Center) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, c.Capacity)
	}
	if !isAllowedSlotInterval(c.TimeSlotInterval) {
		return fmt.Errorf("%w: got %d", ErrInvalidSlotInterval, c.TimeSlotInterval)
	}
	if err := c.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidWorkingHours, err)
	}
	if err := c.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidWorkingHours, err)
	}
	if !c.OpenTime.IsBefore(c.CloseTime) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidWorkingHours, c.OpenTime, c.CloseTime)
	}
	return nil
}

func isAllowedSlotInterval(interval int) bool {
	for _, allowed := range AllowedSlotIntervals {
		if interval == allowed {
			return true
		}
	}
	return false
}
