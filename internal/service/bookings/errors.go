package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus возвращается при некорректном статусе в фильтре
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrBookingFinished возвращается при попытке изменить завершенное бронирование
	ErrBookingFinished = errors.New("booking is in a terminal status")

	// ErrStaffNotFound возвращается, когда назначаемый сотрудник не найден,
	// неактивен или работает в другом центре
	ErrStaffNotFound = errors.New("staff member not found in center")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
