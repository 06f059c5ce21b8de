package get_availability

import (
	"fmt"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

// generateTimeSlots генерирует сетку слотов рабочего дня с фиксированным шагом.
// Последний неполный слот отбрасывается: слот входит в сетку только если
// целиком помещается до закрытия.
//
// Пример: 08:00 - 09:00 с шагом 30 дает ["08:00", "08:30"].
func generateTimeSlots(openTime, closeTime types.TimeString, interval int) ([]types.TimeString, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidInterval, interval)
	}

	slots := make([]types.TimeString, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		slotEnd, err := current.AddMinutes(interval)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if slotEnd.IsAfter(closeTime) {
			break
		}

		slots = append(slots, current)
		current = slotEnd
	}

	return slots, nil
}

// bayStatuses вычисляет состояние каждого поста центра в окне
// [startTime, startTime+durationMinutes). Бронирование занимает пост во всех
// слотах, которые пересекает его длительность, границы окон не считаются
// пересечением.
func bayStatuses(
	dayBookings []*domain.Booking,
	startTime types.TimeString,
	durationMinutes int,
	capacity int,
) ([]BayStatus, error) {
	occupiedBy := make(map[int]int64)
	for _, b := range dayBookings {
		overlaps, err := b.Overlaps(startTime, durationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if overlaps {
			occupiedBy[b.BayNumber] = b.ID
		}
	}

	statuses := make([]BayStatus, 0, capacity)
	for bay := 1; bay <= capacity; bay++ {
		if bookingID, taken := occupiedBy[bay]; taken {
			id := bookingID
			statuses = append(statuses, BayStatus{BayNumber: bay, Available: false, BookingID: &id})
		} else {
			statuses = append(statuses, BayStatus{BayNumber: bay, Available: true})
		}
	}

	return statuses, nil
}
