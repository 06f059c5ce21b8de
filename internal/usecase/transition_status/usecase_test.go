package transition_status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	bookingRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/booking"
	"github.com/m1shk4/AquaWash-BookingService/internal/integrations/notifier"
	"github.com/m1shk4/AquaWash-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking *domain.Booking
}

func (f *fakeBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) UpdateStatusGuarded(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	return f.apply(from, to)
}

func (f *fakeBookingRepo) MarkInProgress(ctx context.Context, id int64, from domain.BookingStatus, startedAt time.Time) error {
	if err := f.apply(from, domain.StatusInProgress); err != nil {
		return err
	}
	if f.booking.ActualStartTime == nil {
		f.booking.ActualStartTime = &startedAt
	}
	return nil
}

func (f *fakeBookingRepo) MarkCompleted(ctx context.Context, id int64, from domain.BookingStatus, finishedAt time.Time) error {
	if err := f.apply(from, domain.StatusCompleted); err != nil {
		return err
	}
	f.booking.ActualEndTime = &finishedAt
	return nil
}

func (f *fakeBookingRepo) MarkCancelled(ctx context.Context, id int64, from, to domain.BookingStatus, reason *string) error {
	if err := f.apply(from, to); err != nil {
		return err
	}
	f.booking.CancelReason = reason
	return nil
}

func (f *fakeBookingRepo) apply(from, to domain.BookingStatus) error {
	if f.booking.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	f.booking.Status = to
	return nil
}

type fakeCustomerRepo struct {
	points int
	spent  float64
	calls  int
}

func (f *fakeCustomerRepo) ApplyLoyalty(ctx context.Context, id int64, points int, spent float64) error {
	f.points += points
	f.spent += spent
	f.calls++
	return nil
}

type fakeStaffRepo struct {
	completed [][]int64
}

func (f *fakeStaffRepo) IncrementCompletedJobs(ctx context.Context, ids []int64) error {
	f.completed = append(f.completed, ids)
	return nil
}

type fakeLoyaltyRepo struct {
	entries []*domain.LoyaltyEntry
}

func (f *fakeLoyaltyRepo) Append(ctx context.Context, entry *domain.LoyaltyEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	events []notifier.Event
	err    error
}

func (f *fakeNotifier) Notify(ctx context.Context, event notifier.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	customer *fakeCustomerRepo
	staff    *fakeStaffRepo
	loyalty  *fakeLoyaltyRepo
	events   *fakeNotifier
}

func newFixture(status domain.BookingStatus) *fixture {
	bookings := &fakeBookingRepo{booking: &domain.Booking{
		ID:            5,
		BookingNumber: "BK-20260831-0001",
		CenterID:      2,
		CustomerID:    1,
		FinalAmount:   45.90,
		Status:        status,
		StaffIDs:      []int64{7, 8},
	}}
	customer := &fakeCustomerRepo{}
	staff := &fakeStaffRepo{}
	loyalty := &fakeLoyaltyRepo{}
	events := &fakeNotifier{}

	uc := NewUseCase(bookings, customer, staff, loyalty, fakeTxManager{}, events, noopLogger{})
	return &fixture{uc: uc, bookings: bookings, customer: customer, staff: staff, loyalty: loyalty, events: events}
}

func TestExecute_Confirm(t *testing.T) {
	f := newFixture(domain.StatusPending)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "confirmed"})
	require.NoError(t, err)

	// В ответе обновленное бронирование целиком
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "BK-20260831-0001", resp.BookingNumber)
	assert.InDelta(t, 45.90, resp.FinalAmount, 1e-9)
	assert.Equal(t, "pending", resp.OldStatus)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, f.bookings.booking.Status)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, notifier.EventBookingConfirmed, f.events.events[0].Kind)
}

func TestExecute_CompleteAwardsPointsOnce(t *testing.T) {
	f := newFixture(domain.StatusInProgress)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "completed"})
	require.NoError(t, err)

	// 45.90 -> 4 балла, дробная часть отбрасывается
	assert.Equal(t, 4, resp.PointsAwarded)
	assert.Equal(t, "completed", resp.Status)
	assert.NotNil(t, resp.ActualEndTime)
	assert.Equal(t, 4, f.customer.points)
	assert.InDelta(t, 45.90, f.customer.spent, 1e-9)
	require.Len(t, f.loyalty.entries, 1)
	assert.Equal(t, 4, f.loyalty.entries[0].Points)
	require.NotNil(t, f.loyalty.entries[0].BookingID)
	assert.Equal(t, int64(5), *f.loyalty.entries[0].BookingID)
	assert.Equal(t, [][]int64{{7, 8}}, f.staff.completed)

	// Повторное завершение отклоняется, side effects не повторяются
	_, err = f.uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 1, f.customer.calls)
	assert.Len(t, f.loyalty.entries, 1)
}

func TestExecute_InvalidTransitions(t *testing.T) {
	tests := []struct {
		from domain.BookingStatus
		to   string
	}{
		{domain.StatusPending, "completed"},
		{domain.StatusPending, "in_progress"},
		{domain.StatusConfirmed, "completed"},
		{domain.StatusCompleted, "cancelled"},
		{domain.StatusCancelled, "confirmed"},
		{domain.StatusInProgress, "cancelled"},
		{domain.StatusNoShow, "no_show"},
	}

	for _, tt := range tests {
		f := newFixture(tt.from)
		_, err := f.uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: tt.to})
		assert.ErrorIsf(t, err, ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
	}
}

func TestExecute_UnknownStatus(t *testing.T) {
	f := newFixture(domain.StatusPending)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "paused"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture(domain.StatusPending)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 999, NewStatus: "confirmed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_CancelWithReason(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)
	reason := ptr.Ptr("customer request")

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "cancelled", Reason: reason})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, reason, resp.CancelReason)
	assert.Equal(t, reason, f.bookings.booking.CancelReason)
	assert.Zero(t, f.customer.calls)
	assert.Empty(t, f.loyalty.entries)
}

func TestExecute_NoShowFromAnyActive(t *testing.T) {
	for _, from := range []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress} {
		f := newFixture(from)
		resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "no_show"})
		require.NoErrorf(t, err, "from %s", from)
		assert.Equal(t, "no_show", resp.Status)
	}
}

func TestExecute_NotifyFailureDoesNotFail(t *testing.T) {
	f := newFixture(domain.StatusPending)
	f.events.err = errors.New("broker down")

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, f.bookings.booking.Status)
}
