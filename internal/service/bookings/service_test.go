package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	bookingRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/booking"
	"github.com/m1shk4/AquaWash-BookingService/internal/service/bookings/models"
	"github.com/m1shk4/AquaWash-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking  *domain.Booking
	byStatus map[domain.BookingStatus][]*domain.Booking
	all      []*domain.Booking
	replaced []int64
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeBookingRepo) GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if status != nil {
		return f.byStatus[*status], nil
	}
	return f.all, nil
}

func (f *fakeBookingRepo) ReplaceStaff(ctx context.Context, bookingID int64, staffIDs []int64) error {
	f.replaced = staffIDs
	f.booking.StaffIDs = staffIDs
	return nil
}

type fakeCustomerRepo struct {
	customer *domain.Customer
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return f.customer, nil
}

type fakeStaffRepo struct {
	members   []*domain.Staff
	jobsIncrs [][]int64
}

func (f *fakeStaffRepo) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Staff, error) {
	return f.members, nil
}

func (f *fakeStaffRepo) IncrementTotalJobs(ctx context.Context, ids []int64) error {
	f.jobsIncrs = append(f.jobsIncrs, ids)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func newService(booking *domain.Booking, staff *fakeStaffRepo) (*Service, *fakeBookingRepo) {
	bookings := &fakeBookingRepo{booking: booking}
	if staff == nil {
		staff = &fakeStaffRepo{}
	}
	svc := NewService(
		bookings,
		&fakeCustomerRepo{customer: &domain.Customer{ID: 1, UserID: 100}},
		staff,
		fakeTxManager{},
		noopLogger{},
	)
	return svc, bookings
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         5,
		CenterID:   2,
		CustomerID: 1,
		Status:     status,
	}
}

func TestGetByID_AccessControl(t *testing.T) {
	svc, _ := newService(testBooking(domain.StatusConfirmed), nil)

	resp, err := svc.GetByID(context.Background(), 5, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)

	_, err = svc.GetByID(context.Background(), 5, 200)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 999, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetCustomerBookings_StatusFilter(t *testing.T) {
	svc, bookings := newService(testBooking(domain.StatusConfirmed), nil)
	bookings.all = []*domain.Booking{testBooking(domain.StatusConfirmed), testBooking(domain.StatusCompleted)}
	bookings.byStatus = map[domain.BookingStatus][]*domain.Booking{
		domain.StatusCompleted: {testBooking(domain.StatusCompleted)},
	}

	resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 1,
		Status:     ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 1,
		Status:     ptr.Ptr("paused"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAssignStaff_CountsOnlyNewlyAdded(t *testing.T) {
	booking := testBooking(domain.StatusConfirmed)
	booking.StaffIDs = []int64{7}
	staff := &fakeStaffRepo{members: []*domain.Staff{
		{ID: 7, CenterID: 2, IsActive: true},
		{ID: 8, CenterID: 2, IsActive: true},
	}}
	svc, bookings := newService(booking, staff)

	resp, err := svc.AssignStaff(context.Background(), &models.AssignStaffRequest{
		BookingID: 5,
		StaffIDs:  []int64{7, 8},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{7, 8}, resp.StaffIDs)
	assert.Equal(t, []int64{7, 8}, bookings.replaced)
	// Сотрудник 7 уже был назначен, счетчик растет только у 8
	assert.Equal(t, [][]int64{{8}}, staff.jobsIncrs)
}

func TestAssignStaff_TerminalBooking(t *testing.T) {
	svc, _ := newService(testBooking(domain.StatusCompleted), nil)

	_, err := svc.AssignStaff(context.Background(), &models.AssignStaffRequest{
		BookingID: 5,
		StaffIDs:  []int64{7},
	})
	assert.ErrorIs(t, err, ErrBookingFinished)
}

func TestAssignStaff_WrongCenter(t *testing.T) {
	staff := &fakeStaffRepo{members: []*domain.Staff{
		{ID: 7, CenterID: 99, IsActive: true},
	}}
	svc, _ := newService(testBooking(domain.StatusPending), staff)

	_, err := svc.AssignStaff(context.Background(), &models.AssignStaffRequest{
		BookingID: 5,
		StaffIDs:  []int64{7},
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestAssignStaff_ClearAssignments(t *testing.T) {
	booking := testBooking(domain.StatusConfirmed)
	booking.StaffIDs = []int64{7}
	staff := &fakeStaffRepo{}
	svc, bookings := newService(booking, staff)

	resp, err := svc.AssignStaff(context.Background(), &models.AssignStaffRequest{
		BookingID: 5,
		StaffIDs:  []int64{},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.StaffIDs)
	assert.Empty(t, bookings.replaced)
	assert.Empty(t, staff.jobsIncrs)
}
