package create_booking

import (
	"fmt"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

// allocateBay подбирает пост для бронирования среди активных бронирований дня.
//
// Если пост запрошен явно, проверяется диапазон и занятость именно этого поста.
// Иначе возвращается свободный пост с наименьшим номером: детерминированный
// выбор дает одинаковый результат при повторе сериализуемой транзакции.
func allocateBay(
	dayBookings []*domain.Booking,
	startTime types.TimeString,
	durationMinutes int,
	capacity int,
	requested *int,
) (int, error) {
	occupied, err := occupiedBays(dayBookings, startTime, durationMinutes)
	if err != nil {
		return 0, err
	}

	if requested != nil {
		bay := *requested
		if bay < 1 || bay > capacity {
			return 0, fmt.Errorf("%w: bay %d, center has %d bays", ErrBayOutOfRange, bay, capacity)
		}
		if occupied[bay] {
			return 0, fmt.Errorf("%w: bay %d at %s", ErrSlotConflict, bay, startTime)
		}
		return bay, nil
	}

	for bay := 1; bay <= capacity; bay++ {
		if !occupied[bay] {
			return bay, nil
		}
	}

	return 0, fmt.Errorf("%w: all %d bays taken at %s", ErrCenterFullyBooked, capacity, startTime)
}

// occupiedBays возвращает множество постов, занятых в окне
// [startTime, startTime+durationMinutes)
func occupiedBays(dayBookings []*domain.Booking, startTime types.TimeString, durationMinutes int) (map[int]bool, error) {
	occupied := make(map[int]bool)
	for _, b := range dayBookings {
		overlaps, err := b.Overlaps(startTime, durationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if overlaps {
			occupied[b.BayNumber] = true
		}
	}
	return occupied, nil
}
