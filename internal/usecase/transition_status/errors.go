package transition_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_status: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("transition_status: booking not found")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("transition_status: unknown booking status")

	// ErrInvalidTransition возвращается, когда переход запрещен машиной статусов
	ErrInvalidTransition = errors.New("transition_status: transition not allowed")

	// ErrConcurrentUpdate возвращается, когда статус изменился конкурентным
	// запросом между чтением и записью
	ErrConcurrentUpdate = errors.New("transition_status: booking was updated concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_status: internal error")
)
