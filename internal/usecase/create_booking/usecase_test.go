package create_booking

import (
	"context"
	"errors"
	"fmt"
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
	dayBookings     []*domain.Booking
	vehicleBookings []*domain.Booking
	created         []*domain.Booking
	staffAssigned   map[int64][]int64
	nextID          int64
	createErr       error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	b.ID = f.nextID
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBookingRepo) GetActiveByCenterAndDate(ctx context.Context, centerID int64, date time.Time) ([]*domain.Booking, error) {
	return f.dayBookings, nil
}

func (f *fakeBookingRepo) GetActiveByVehicleAndDate(ctx context.Context, vehicleID int64, date time.Time) ([]*domain.Booking, error) {
	return f.vehicleBookings, nil
}

func (f *fakeBookingRepo) AddStaff(ctx context.Context, bookingID int64, staffIDs []int64) error {
	if f.staffAssigned == nil {
		f.staffAssigned = make(map[int64][]int64)
	}
	f.staffAssigned[bookingID] = staffIDs
	return nil
}

type fakeCenterRepo struct {
	center *domain.Center
	err    error
}

func (f *fakeCenterRepo) GetByID(ctx context.Context, id int64) (*domain.Center, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.center, nil
}

type fakeCustomerRepo struct {
	customer      *domain.Customer
	err           error
	bookingsIncrs int
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.customer, nil
}

func (f *fakeCustomerRepo) IncrementTotalBookings(ctx context.Context, id int64) error {
	f.bookingsIncrs++
	return nil
}

type fakeVehicleRepo struct {
	vehicle *domain.Vehicle
	err     error
}

func (f *fakeVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vehicle, nil
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

type fakePricingRepo struct {
	services map[int64]*domain.Service
	prices   map[int64]*domain.ServicePrice
	priceErr error
}

func (f *fakePricingRepo) GetService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	s, ok := f.services[serviceID]
	if !ok {
		return nil, errors.New("pricing.repository: service not found")
	}
	return s, nil
}

func (f *fakePricingRepo) GetEffectivePrice(ctx context.Context, serviceID int64, vehicleType domain.VehicleType, asOf time.Time) (*domain.ServicePrice, error) {
	if f.priceErr != nil {
		return nil, f.priceErr
	}
	p, ok := f.prices[serviceID]
	if !ok {
		return nil, errors.New("pricing.repository: no effective price")
	}
	return p, nil
}

type fakeSequenceRepo struct {
	counter int64
}

func (f *fakeSequenceRepo) NextBookingNumber(ctx context.Context, date time.Time) (string, error) {
	f.counter++
	return fmt.Sprintf("BK-%s-%04d", date.Format("20060102"), f.counter), nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	customer *fakeCustomerRepo
	staff    *fakeStaffRepo
	events   *fakeNotifier
}

func newFixture() *fixture {
	bookings := &fakeBookingRepo{}
	customers := &fakeCustomerRepo{customer: &domain.Customer{ID: 1}}
	staff := &fakeStaffRepo{}
	events := &fakeNotifier{}

	uc := NewUseCase(
		bookings,
		&fakeCenterRepo{center: &domain.Center{
			ID: 2, IsActive: true, Capacity: 2,
			OpenTime: "08:00", CloseTime: "20:00", TimeSlotInterval: 30,
		}},
		customers,
		&fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 3, CustomerID: 1, Type: domain.VehicleSedan}},
		staff,
		&fakePricingRepo{
			services: map[int64]*domain.Service{
				10: {ID: 10, Name: "Exterior Wash", IsActive: true},
				11: {ID: 11, Name: "Waxing", IsActive: true},
			},
			prices: map[int64]*domain.ServicePrice{
				10: {ServiceID: 10, BasePrice: 30, DiscountPct: 10, DurationMinutes: 30},
				11: {ServiceID: 11, BasePrice: 20, DurationMinutes: 15},
			},
		},
		&fakeSequenceRepo{},
		fakeTxManager{},
		events,
		noopLogger{},
	)
	uc.timeProvider = fixedTime{t: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, bookings: bookings, customer: customers, staff: staff, events: events}
}

func validRequest() *Request {
	return &Request{
		CustomerID: 1,
		CenterID:   2,
		VehicleID:  3,
		ServiceIDs: []int64{10, 11},
		Date:       time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	assert.Equal(t, 1, resp.BayNumber)
	assert.Equal(t, 45, resp.EstimatedDuration)
	assert.InDelta(t, 50.0, resp.TotalAmount, 1e-9)
	assert.InDelta(t, 47.0, resp.FinalAmount, 1e-9)
	assert.Len(t, resp.Items, 2)
	assert.NotEmpty(t, resp.BookingNumber)

	assert.Equal(t, 1, f.customer.bookingsIncrs)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, notifier.EventBookingCreated, f.events.events[0].Kind)
}

func TestExecute_AllocatesNextFreeBay(t *testing.T) {
	f := newFixture()
	f.bookings.dayBookings = []*domain.Booking{
		activeBooking(1, "10:00", 30),
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.BayNumber)
}

func TestExecute_CenterFullyBooked(t *testing.T) {
	f := newFixture()
	f.bookings.dayBookings = []*domain.Booking{
		activeBooking(1, "10:00", 30),
		activeBooking(2, "10:00", 30),
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCenterFullyBooked)
	assert.Empty(t, f.bookings.created)
}

func TestExecute_RequestedBayConflict(t *testing.T) {
	f := newFixture()
	f.bookings.dayBookings = []*domain.Booking{
		activeBooking(2, "10:00", 30),
	}

	req := validRequest()
	req.BayNumber = ptr.Ptr(2)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_VehicleDoubleBooking(t *testing.T) {
	f := newFixture()
	f.bookings.vehicleBookings = []*domain.Booking{
		activeBooking(1, "09:45", 30),
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVehicleDoubleBooking)
}

func TestExecute_SlotOffGrid(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = "10:10"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_VehicleOwnership(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.CustomerID = 1

	f.uc.vehicleRepo = &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 3, CustomerID: 99, Type: domain.VehicleSedan}}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVehicleNotOwned)
}

func TestExecute_StaffFromAnotherCenter(t *testing.T) {
	f := newFixture()
	f.staff.members = []*domain.Staff{
		{ID: 7, CenterID: 99, IsActive: true},
	}

	req := validRequest()
	req.StaffIDs = []int64{7}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_AssignsStaff(t *testing.T) {
	f := newFixture()
	f.staff.members = []*domain.Staff{
		{ID: 7, CenterID: 2, IsActive: true},
	}

	req := validRequest()
	req.StaffIDs = []int64{7}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, resp.StaffIDs)
	assert.Equal(t, [][]int64{{7}}, f.staff.jobsIncrs)
	assert.Equal(t, []int64{7}, f.bookings.staffAssigned[resp.ID])
}

func TestExecute_ConcurrentInsertHitsUniqueIndex(t *testing.T) {
	f := newFixture()
	// Подбор поста прошел, но конкурентная вставка успела занять тот же
	// слот: уникальный индекс активных бронирований отклоняет запись
	f.bookings.createErr = fmt.Errorf("%w: duplicate key", bookingRepo.ErrBayTaken)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, f.bookings.created)
	assert.Empty(t, f.events.events)
}

func TestExecute_NotifyFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.events.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestExecuteBulk_IsolatesFailures(t *testing.T) {
	f := newFixture()
	f.bookings.dayBookings = []*domain.Booking{
		activeBooking(1, "10:00", 30),
		activeBooking(2, "10:00", 30),
	}

	good := validRequest()
	good.StartTime = "12:00"
	bad := validRequest() // 10:00 занят полностью

	results := f.uc.ExecuteBulk(context.Background(), []*Request{bad, good})
	require.Len(t, results, 2)

	assert.ErrorIs(t, results[0].Err, ErrCenterFullyBooked)
	assert.Nil(t, results[0].Booking)

	require.NoError(t, results[1].Err)
	assert.Equal(t, 1, results[1].Index)
	assert.NotNil(t, results[1].Booking)
}
