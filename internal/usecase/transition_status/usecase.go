package transition_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	bookingRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/booking"
	"github.com/m1shk4/AquaWash-BookingService/internal/integrations/notifier"
	"github.com/m1shk4/AquaWash-BookingService/pkg/ptr"
)

// UseCase use case для перевода бронирования по жизненному циклу
type UseCase struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	staffRepo    StaffRepository
	loyaltyRepo  LoyaltyRepository
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	staffRepo StaffRepository,
	loyaltyRepo LoyaltyRepository,
	txManager TransactionManager,
	events Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		staffRepo:    staffRepo,
		loyaltyRepo:  loyaltyRepo,
		txManager:    txManager,
		notifier:     events,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит бронирование в новый статус.
//
// Чтение с блокировкой строки (FOR UPDATE) и guarded-обновление
// (WHERE status = from) вместе гарантируют, что из двух конкурентных
// переходов выигрывает ровно один, а side effects завершения
// (баллы лояльности, счетчики сотрудников) выполняются один раз.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionStatus: booking=%d, target=%s", req.BookingID, req.NewStatus)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	target := domain.BookingStatus(req.NewStatus)
	if !target.IsValid() {
		uc.logger.Warn("TransitionStatus: unknown status %q", req.NewStatus)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.NewStatus)
	}

	now := uc.timeProvider.Now()

	var (
		booking       *domain.Booking
		oldStatus     domain.BookingStatus
		pointsAwarded int
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("TransitionStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !b.Status.CanTransitionTo(target) {
			uc.logger.Warn("TransitionStatus: %s -> %s not allowed for booking id=%d",
				b.Status, target, req.BookingID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, target)
		}

		oldStatus = b.Status

		switch target {
		case domain.StatusConfirmed:
			err = uc.bookingRepo.UpdateStatusGuarded(txCtx, b.ID, b.Status, target)

		case domain.StatusInProgress:
			err = uc.bookingRepo.MarkInProgress(txCtx, b.ID, b.Status, now)

		case domain.StatusCompleted:
			err = uc.complete(txCtx, b, now, &pointsAwarded)

		case domain.StatusCancelled, domain.StatusNoShow:
			err = uc.bookingRepo.MarkCancelled(txCtx, b.ID, b.Status, target, req.Reason)
		}

		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				uc.logger.Warn("TransitionStatus: booking id=%d changed concurrently", b.ID)
				return ErrConcurrentUpdate
			}
			return err
		}

		// Отражаем запись в локальной копии, она уходит в ответ
		b.Status = target
		b.UpdatedAt = now
		switch target {
		case domain.StatusInProgress:
			if b.ActualStartTime == nil {
				b.ActualStartTime = &now
			}
		case domain.StatusCompleted:
			b.ActualEndTime = &now
		case domain.StatusCancelled, domain.StatusNoShow:
			b.CancelReason = req.Reason
		}

		booking = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("TransitionStatus: booking id=%d %s -> %s", booking.ID, oldStatus, target)

	// Уведомление best-effort, бизнес-операция уже зафиксирована
	if kind := eventKind(target); kind != "" {
		if err := uc.notifier.Notify(ctx, notifier.Event{
			Kind:          kind,
			BookingID:     booking.ID,
			BookingNumber: booking.BookingNumber,
			CustomerID:    booking.CustomerID,
			CenterID:      booking.CenterID,
		}); err != nil {
			uc.logger.Warn("TransitionStatus: failed to publish event: %v", err)
		}
	}

	return toResponse(booking, oldStatus, pointsAwarded), nil
}

// complete выполняет переход в completed вместе с side effects:
// запись в журнал лояльности, начисление клиенту, счетчики сотрудников.
// Guarded-обновление статуса идет первым: если оно не прошло,
// side effects не выполняются вовсе.
func (uc *UseCase) complete(txCtx context.Context, b *domain.Booking, now time.Time, pointsAwarded *int) error {
	if err := uc.bookingRepo.MarkCompleted(txCtx, b.ID, b.Status, now); err != nil {
		return err
	}

	points := domain.LoyaltyPointsFor(b.FinalAmount)
	*pointsAwarded = points

	entry := &domain.LoyaltyEntry{
		CustomerID:  b.CustomerID,
		BookingID:   ptr.Ptr(b.ID),
		Points:      points,
		Description: fmt.Sprintf("Booking %s completed", b.BookingNumber),
	}
	if err := uc.loyaltyRepo.Append(txCtx, entry); err != nil {
		uc.logger.Error("TransitionStatus: failed to append loyalty entry: %v", err)
		return fmt.Errorf("%w: failed to append loyalty entry: %v", ErrInternal, err)
	}

	if err := uc.customerRepo.ApplyLoyalty(txCtx, b.CustomerID, points, b.FinalAmount); err != nil {
		uc.logger.Error("TransitionStatus: failed to apply loyalty: %v", err)
		return fmt.Errorf("%w: failed to apply loyalty: %v", ErrInternal, err)
	}

	if len(b.StaffIDs) > 0 {
		if err := uc.staffRepo.IncrementCompletedJobs(txCtx, b.StaffIDs); err != nil {
			uc.logger.Error("TransitionStatus: failed to increment staff completed jobs: %v", err)
			return fmt.Errorf("%w: failed to increment staff completed jobs: %v", ErrInternal, err)
		}
	}

	return nil
}

func eventKind(status domain.BookingStatus) string {
	switch status {
	case domain.StatusConfirmed:
		return notifier.EventBookingConfirmed
	case domain.StatusInProgress:
		return notifier.EventBookingStarted
	case domain.StatusCompleted:
		return notifier.EventBookingCompleted
	case domain.StatusCancelled:
		return notifier.EventBookingCancelled
	case domain.StatusNoShow:
		return notifier.EventBookingNoShow
	default:
		return ""
	}
}
