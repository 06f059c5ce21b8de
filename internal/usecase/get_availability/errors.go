package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrCenterNotFound возвращается, когда центр не найден
	ErrCenterNotFound = errors.New("get_availability: center not found")

	// ErrInvalidInterval возвращается при неположительном шаге сетки слотов
	ErrInvalidInterval = errors.New("get_availability: slot interval must be positive")

	// ErrInvalidTimeSlot возвращается, когда проверяемое время не лежит
	// на сетке слотов центра
	ErrInvalidTimeSlot = errors.New("get_availability: invalid time slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
