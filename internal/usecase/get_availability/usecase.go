package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	centerRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/center"
	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

// UseCase use case для расчета доступности слотов центра
type UseCase struct {
	bookingRepo BookingRepository
	centerRepo  CenterRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, centerRepo CenterRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		centerRepo:  centerRepo,
		logger:      logger,
	}
}

// Execute возвращает доступность всех слотов центра на дату:
// для каждого слота сетки состояние каждого поста
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: center=%d, date=%s", req.CenterID, req.Date.Format(domain.DateFormat))

	if req.CenterID <= 0 {
		return nil, fmt.Errorf("%w: centerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	center, err := uc.getCenter(ctx, req.CenterID)
	if err != nil {
		return nil, err
	}

	slots, err := generateTimeSlots(center.OpenTime, center.CloseTime, center.TimeSlotInterval)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate slots: %v", err)
		return nil, err
	}

	dayBookings, err := uc.bookingRepo.GetActiveByCenterAndDate(ctx, req.CenterID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	result := make([]Slot, 0, len(slots))
	for _, slotStart := range slots {
		statuses, err := bayStatuses(dayBookings, slotStart, center.TimeSlotInterval, center.Capacity)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to compute bay statuses: %v", err)
			return nil, err
		}

		available := 0
		for _, s := range statuses {
			if s.Available {
				available++
			}
		}

		result = append(result, Slot{
			StartTime:     slotStart,
			AvailableBays: available,
			Bays:          statuses,
		})
	}

	return &Response{
		CenterID:        req.CenterID,
		Date:            req.Date,
		DurationMinutes: center.TimeSlotInterval,
		TotalBays:       center.Capacity,
		Slots:           result,
	}, nil
}

// CheckSlot проверяет доступность конкретного слота и возвращает свободные
// посты. Результат информационный: к моменту создания бронирования слот
// может быть уже занят, окончательную проверку делает создание.
func (uc *UseCase) CheckSlot(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	uc.logger.Info("CheckSlot: center=%d, date=%s, time=%s",
		req.CenterID, req.Date.Format(domain.DateFormat), req.StartTime)

	if req.CenterID <= 0 {
		return nil, fmt.Errorf("%w: centerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	center, err := uc.getCenter(ctx, req.CenterID)
	if err != nil {
		return nil, err
	}

	if err := uc.validateOnGrid(center, req.StartTime); err != nil {
		uc.logger.Warn("CheckSlot: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = center.TimeSlotInterval
	}

	dayBookings, err := uc.bookingRepo.GetActiveByCenterAndDate(ctx, req.CenterID, req.Date)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	statuses, err := bayStatuses(dayBookings, req.StartTime, duration, center.Capacity)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to compute bay statuses: %v", err)
		return nil, err
	}

	availableBays := make([]int, 0, center.Capacity)
	for _, s := range statuses {
		if s.Available {
			availableBays = append(availableBays, s.BayNumber)
		}
	}

	return &CheckResponse{
		CenterID:        req.CenterID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
		Capacity:        center.Capacity,
		FreeCount:       len(availableBays),
		Available:       len(availableBays) > 0,
		AvailableBays:   availableBays,
	}, nil
}

func (uc *UseCase) getCenter(ctx context.Context, centerID int64) (*domain.Center, error) {
	center, err := uc.centerRepo.GetByID(ctx, centerID)
	if err != nil {
		if errors.Is(err, centerRepo.ErrCenterNotFound) {
			uc.logger.Warn("GetAvailability: center id=%d not found", centerID)
			return nil, ErrCenterNotFound
		}
		uc.logger.Error("GetAvailability: failed to get center id=%d: %v", centerID, err)
		return nil, fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}
	return center, nil
}

// validateOnGrid проверяет, что время лежит на сетке слотов центра
func (uc *UseCase) validateOnGrid(center *domain.Center, startTime types.TimeString) error {
	if startTime.IsBefore(center.OpenTime) {
		return fmt.Errorf("%w: %s is before opening time %s", ErrInvalidTimeSlot, startTime, center.OpenTime)
	}

	startMinutes, err := startTime.TotalMinutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	openMinutes, err := center.OpenTime.TotalMinutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if (startMinutes-openMinutes)%center.TimeSlotInterval != 0 {
		return fmt.Errorf("%w: %s is not aligned to %d-minute grid", ErrInvalidTimeSlot, startTime, center.TimeSlotInterval)
	}

	slotEnd, err := startTime.AddMinutes(center.TimeSlotInterval)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if slotEnd.IsAfter(center.CloseTime) {
		return fmt.Errorf("%w: slot at %s does not fit working hours", ErrInvalidTimeSlot, startTime)
	}

	return nil
}
