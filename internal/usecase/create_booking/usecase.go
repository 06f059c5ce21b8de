package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	bookingRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/booking"
	centerRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/center"
	customerRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/customer"
	pricingRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/pricing"
	vehicleRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/vehicle"
	"github.com/m1shk4/AquaWash-BookingService/internal/integrations/notifier"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	centerRepo   CenterRepository
	customerRepo CustomerRepository
	vehicleRepo  VehicleRepository
	staffRepo    StaffRepository
	pricingRepo  PricingRepository
	sequenceRepo SequenceRepository
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	centerRepo CenterRepository,
	customerRepo CustomerRepository,
	vehicleRepo VehicleRepository,
	staffRepo StaffRepository,
	pricingRepo PricingRepository,
	sequenceRepo SequenceRepository,
	txManager TransactionManager,
	events Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		centerRepo:   centerRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		staffRepo:    staffRepo,
		pricingRepo:  pricingRepo,
		sequenceRepo: sequenceRepo,
		txManager:    txManager,
		notifier:     events,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Подбор поста, генерация номера и запись выполняются в одной сериализуемой
// транзакции с блокировкой активных бронирований дня (FOR UPDATE).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, center=%d, vehicle=%d, date=%s, time=%s",
		req.CustomerID, req.CenterID, req.VehicleID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Валидация даты
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем центр и проверяем слот по его расписанию
	center, err := uc.centerRepo.GetByID(ctx, req.CenterID)
	if err != nil {
		if errors.Is(err, centerRepo.ErrCenterNotFound) {
			uc.logger.Warn("CreateBooking: center id=%d not found", req.CenterID)
			return nil, ErrCenterNotFound
		}
		uc.logger.Error("CreateBooking: failed to get center id=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}
	if !center.IsActive {
		uc.logger.Warn("CreateBooking: center id=%d is inactive", req.CenterID)
		return nil, ErrCenterInactive
	}
	if err := center.Validate(); err != nil {
		uc.logger.Error("CreateBooking: center id=%d has invalid schedule: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: invalid center schedule: %v", ErrInternal, err)
	}
	if err := validateSlot(center, req.StartTime); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем клиента
	if _, err := uc.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 5. Получаем автомобиль и проверяем принадлежность клиенту
	vehicle, err := uc.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("CreateBooking: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}
	if vehicle.CustomerID != req.CustomerID {
		uc.logger.Warn("CreateBooking: vehicle id=%d belongs to customer id=%d, not id=%d",
			req.VehicleID, vehicle.CustomerID, req.CustomerID)
		return nil, ErrVehicleNotOwned
	}

	// 6. Считаем позиции по действующему прайс-листу
	items, totalAmount, finalAmount, estimatedDuration, err := uc.buildItems(ctx, req, vehicle.Type)
	if err != nil {
		return nil, err
	}

	var result *domain.Booking

	// 7. Сериализуемая транзакция: блокировка дня, подбор поста, запись
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Блокируем активные бронирования центра на дату
		dayBookings, err := uc.bookingRepo.GetActiveByCenterAndDate(txCtx, req.CenterID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get day bookings: %v", err)
			return fmt.Errorf("%w: failed to get day bookings: %v", ErrInternal, err)
		}

		// 7.2. Автомобиль не может быть в двух местах одновременно,
		// проверка идет по всем центрам сети
		vehicleBookings, err := uc.bookingRepo.GetActiveByVehicleAndDate(txCtx, req.VehicleID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get vehicle bookings: %v", err)
			return fmt.Errorf("%w: failed to get vehicle bookings: %v", ErrInternal, err)
		}
		if err := checkVehicleOverlap(vehicleBookings, req.StartTime, estimatedDuration); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return err
		}

		// 7.3. Подбираем пост
		bay, err := allocateBay(dayBookings, req.StartTime, estimatedDuration, center.Capacity, req.BayNumber)
		if err != nil {
			uc.logger.Warn("CreateBooking: bay allocation failed: %v", err)
			return err
		}

		// 7.4. Генерируем номер бронирования
		number, err := uc.sequenceRepo.NextBookingNumber(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate booking number: %v", err)
			return fmt.Errorf("%w: failed to generate booking number: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			BookingNumber:     number,
			CenterID:          req.CenterID,
			CustomerID:        req.CustomerID,
			VehicleID:         req.VehicleID,
			ScheduledDate:     req.Date,
			ScheduledTime:     req.StartTime,
			BayNumber:         bay,
			EstimatedDuration: estimatedDuration,
			TotalAmount:       totalAmount,
			FinalAmount:       finalAmount,
			Status:            domain.StatusPending,
			PaymentStatus:     domain.PaymentPending,
			Notes:             req.Notes,
			Recurrence:        req.Recurrence,
			Items:             items,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Частичный уникальный индекс ловит гонку, которую не поймал
			// подбор поста: конкурентная вставка в тот же слот
			if errors.Is(err, bookingRepo.ErrBayTaken) {
				uc.logger.Warn("CreateBooking: bay %d taken concurrently: %v", bay, err)
				return fmt.Errorf("%w: bay %d", ErrSlotConflict, bay)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 7.5. Назначаем сотрудников (опционально)
		if len(req.StaffIDs) > 0 {
			if err := uc.assignStaff(txCtx, created, req); err != nil {
				return err
			}
		}

		// 7.6. Обновляем счетчик бронирований клиента
		if err := uc.customerRepo.IncrementTotalBookings(txCtx, req.CustomerID); err != nil {
			uc.logger.Error("CreateBooking: failed to increment customer bookings: %v", err)
			return fmt.Errorf("%w: failed to increment customer bookings: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d number=%s bay=%d",
		result.ID, result.BookingNumber, result.BayNumber)

	// Уведомление best-effort: ошибка публикации не отменяет бронирование
	if err := uc.notifier.Notify(ctx, notifier.Event{
		Kind:          notifier.EventBookingCreated,
		BookingID:     result.ID,
		BookingNumber: result.BookingNumber,
		CustomerID:    result.CustomerID,
		CenterID:      result.CenterID,
	}); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event: %v", err)
	}

	return toResponse(result), nil
}

// ExecuteBulk создает несколько бронирований из одного запроса.
// Каждый элемент обрабатывается независимо: ошибка одного не откатывает
// остальные, результат сохраняет порядок запроса.
func (uc *UseCase) ExecuteBulk(ctx context.Context, reqs []*Request) []BulkResult {
	results := make([]BulkResult, len(reqs))
	for i, req := range reqs {
		resp, err := uc.Execute(ctx, req)
		results[i] = BulkResult{Index: i, Booking: resp, Err: err}
	}
	return results
}

// buildItems собирает позиции бронирования по действующему прайс-листу
func (uc *UseCase) buildItems(ctx context.Context, req *Request, vehicleType domain.VehicleType) ([]domain.BookingItem, float64, float64, int, error) {
	now := uc.timeProvider.Now()

	items := make([]domain.BookingItem, 0, len(req.ServiceIDs))
	var totalAmount, finalAmount float64
	var estimatedDuration int

	for _, serviceID := range req.ServiceIDs {
		service, err := uc.pricingRepo.GetService(ctx, serviceID)
		if err != nil {
			if errors.Is(err, pricingRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%d not found", serviceID)
				return nil, 0, 0, 0, fmt.Errorf("%w: service id=%d", ErrServiceNotFound, serviceID)
			}
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", serviceID, err)
			return nil, 0, 0, 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		price, err := uc.pricingRepo.GetEffectivePrice(ctx, serviceID, vehicleType, now)
		if err != nil {
			if errors.Is(err, pricingRepo.ErrPriceNotFound) {
				uc.logger.Warn("CreateBooking: no price for service id=%d, vehicle type %s", serviceID, vehicleType)
				return nil, 0, 0, 0, fmt.Errorf("%w: service id=%d, vehicle type %s", ErrPricingUnavailable, serviceID, vehicleType)
			}
			uc.logger.Error("CreateBooking: failed to get price for service id=%d: %v", serviceID, err)
			return nil, 0, 0, 0, fmt.Errorf("%w: failed to get price: %v", ErrInternal, err)
		}

		items = append(items, domain.BookingItem{
			ServiceID:       serviceID,
			ServiceName:     service.Name,
			Price:           price.BasePrice,
			FinalPrice:      price.FinalPrice(),
			DurationMinutes: price.DurationMinutes,
		})
		totalAmount += price.BasePrice
		finalAmount += price.FinalPrice()
		estimatedDuration += price.DurationMinutes
	}

	return items, totalAmount, finalAmount, estimatedDuration, nil
}

// assignStaff проверяет и назначает сотрудников на созданное бронирование
func (uc *UseCase) assignStaff(txCtx context.Context, created *domain.Booking, req *Request) error {
	members, err := uc.staffRepo.GetByIDs(txCtx, req.StaffIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get staff: %v", err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if len(members) != len(req.StaffIDs) {
		uc.logger.Warn("CreateBooking: %d of %d staff members found", len(members), len(req.StaffIDs))
		return ErrStaffNotFound
	}
	for _, m := range members {
		if !m.IsActive || m.CenterID != req.CenterID {
			uc.logger.Warn("CreateBooking: staff id=%d is not active in center id=%d", m.ID, req.CenterID)
			return ErrStaffNotFound
		}
	}

	if err := uc.bookingRepo.AddStaff(txCtx, created.ID, req.StaffIDs); err != nil {
		uc.logger.Error("CreateBooking: failed to assign staff: %v", err)
		return fmt.Errorf("%w: failed to assign staff: %v", ErrInternal, err)
	}
	if err := uc.staffRepo.IncrementTotalJobs(txCtx, req.StaffIDs); err != nil {
		uc.logger.Error("CreateBooking: failed to increment staff jobs: %v", err)
		return fmt.Errorf("%w: failed to increment staff jobs: %v", ErrInternal, err)
	}

	created.StaffIDs = req.StaffIDs
	return nil
}

func toResponse(b *domain.Booking) *Response {
	items := make([]ItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, ItemResponse{
			ServiceID:       item.ServiceID,
			ServiceName:     item.ServiceName,
			Price:           item.Price,
			FinalPrice:      item.FinalPrice,
			DurationMinutes: item.DurationMinutes,
		})
	}

	return &Response{
		ID:                b.ID,
		BookingNumber:     b.BookingNumber,
		CenterID:          b.CenterID,
		CustomerID:        b.CustomerID,
		VehicleID:         b.VehicleID,
		ScheduledDate:     b.ScheduledDate,
		ScheduledTime:     b.ScheduledTime,
		BayNumber:         b.BayNumber,
		EstimatedDuration: b.EstimatedDuration,
		TotalAmount:       b.TotalAmount,
		FinalAmount:       b.FinalAmount,
		Status:            string(b.Status),
		PaymentStatus:     string(b.PaymentStatus),
		Items:             items,
		StaffIDs:          b.StaffIDs,
		Notes:             b.Notes,
		Recurrence:        b.Recurrence,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
