package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCenterNotFound возвращается, когда центр не найден
	ErrCenterNotFound = errors.New("create_booking: center not found")

	// ErrCenterInactive возвращается, когда центр не принимает бронирования
	ErrCenterInactive = errors.New("create_booking: center is not active")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("create_booking: vehicle not found")

	// ErrVehicleNotOwned возвращается, когда автомобиль принадлежит другому клиенту
	ErrVehicleNotOwned = errors.New("create_booking: vehicle belongs to another customer")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrPricingUnavailable возвращается, когда для услуги и типа автомобиля
	// нет действующей цены
	ErrPricingUnavailable = errors.New("create_booking: no effective price for service")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда время не лежит на сетке слотов
	// центра или выходит за рабочие часы
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrVehicleDoubleBooking возвращается, когда автомобиль уже записан
	// на пересекающееся время в любом центре сети
	ErrVehicleDoubleBooking = errors.New("create_booking: vehicle already booked for overlapping time")

	// ErrBayOutOfRange возвращается, когда запрошенный пост вне диапазона центра
	ErrBayOutOfRange = errors.New("create_booking: bay number out of range")

	// ErrSlotConflict возвращается, когда запрошенный пост занят в это время
	ErrSlotConflict = errors.New("create_booking: requested bay is not available")

	// ErrCenterFullyBooked возвращается, когда на слот не осталось свободных постов
	ErrCenterFullyBooked = errors.New("create_booking: no bays available for this slot")

	// ErrStaffNotFound возвращается, когда назначаемый сотрудник не найден,
	// неактивен или работает в другом центре
	ErrStaffNotFound = errors.New("create_booking: staff member not found in center")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
