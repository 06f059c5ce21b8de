package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	bookingRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/booking"
	"github.com/m1shk4/AquaWash-BookingService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и управления назначениями сотрудников
type Service struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	staffRepo    StaffRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		staffRepo:    staffRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только бронирования своих клиентских профилей.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента.
// Опционально фильтрует по статусу.
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookings(bookings), nil
}

// AssignStaff заменяет набор сотрудников бронирования.
// Счетчик total_jobs увеличивается только у впервые добавленных:
// перестановка уже назначенного сотрудника назначением не считается.
func (s *Service) AssignStaff(ctx context.Context, req *models.AssignStaffRequest) (*models.StaffAssignmentResponse, error) {
	s.logger.Info("AssignStaff: booking=%d, staff=%v", req.BookingID, req.StaffIDs)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	for _, staffID := range req.StaffIDs {
		if staffID <= 0 {
			return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
		}
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("AssignStaff: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("AssignStaff: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: AssignStaff - repository error: %v", ErrInternal, err)
		}

		if booking.Status.IsTerminal() {
			s.logger.Warn("AssignStaff: booking id=%d is %s", booking.ID, booking.Status)
			return ErrBookingFinished
		}

		if len(req.StaffIDs) > 0 {
			members, err := s.staffRepo.GetByIDs(txCtx, req.StaffIDs)
			if err != nil {
				s.logger.Error("AssignStaff: failed to get staff: %v", err)
				return fmt.Errorf("%w: AssignStaff - failed to get staff: %v", ErrInternal, err)
			}
			if len(members) != len(req.StaffIDs) {
				s.logger.Warn("AssignStaff: %d of %d staff members found", len(members), len(req.StaffIDs))
				return ErrStaffNotFound
			}
			for _, m := range members {
				if !m.IsActive || m.CenterID != booking.CenterID {
					s.logger.Warn("AssignStaff: staff id=%d is not active in center id=%d", m.ID, booking.CenterID)
					return ErrStaffNotFound
				}
			}
		}

		newlyAdded := diffStaff(req.StaffIDs, booking.StaffIDs)

		if err := s.bookingRepo.ReplaceStaff(txCtx, booking.ID, req.StaffIDs); err != nil {
			s.logger.Error("AssignStaff: failed to replace staff: %v", err)
			return fmt.Errorf("%w: AssignStaff - failed to replace staff: %v", ErrInternal, err)
		}

		if len(newlyAdded) > 0 {
			if err := s.staffRepo.IncrementTotalJobs(txCtx, newlyAdded); err != nil {
				s.logger.Error("AssignStaff: failed to increment staff jobs: %v", err)
				return fmt.Errorf("%w: AssignStaff - failed to increment staff jobs: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("AssignStaff: booking id=%d staff set to %v", req.BookingID, req.StaffIDs)

	return &models.StaffAssignmentResponse{
		BookingID: req.BookingID,
		StaffIDs:  req.StaffIDs,
	}, nil
}

// checkUserAccess проверяет, что бронирование принадлежит клиентскому
// профилю пользователя
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	customer, err := s.customerRepo.GetByID(ctx, booking.CustomerID)
	if err != nil {
		s.logger.Error("checkUserAccess: failed to get customer id=%d: %v", booking.CustomerID, err)
		return fmt.Errorf("%w: checkUserAccess - repository error: %v", ErrInternal, err)
	}
	if customer.UserID != userID {
		return ErrAccessDenied
	}
	return nil
}

// diffStaff возвращает элементы next, отсутствующие в current
func diffStaff(next, current []int64) []int64 {
	existing := make(map[int64]bool, len(current))
	for _, id := range current {
		existing[id] = true
	}

	added := make([]int64, 0, len(next))
	for _, id := range next {
		if !existing[id] {
			added = append(added, id)
		}
	}
	return added
}
