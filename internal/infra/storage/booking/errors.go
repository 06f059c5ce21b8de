package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStatusConflict возвращается, когда guarded-обновление не затронуло
	// ни одной строки: статус изменился между чтением и записью
	ErrStatusConflict = errors.New("booking.repository: booking status changed concurrently")

	// ErrBayTaken возвращается при нарушении уникального индекса
	// активных бронирований (center, date, time, bay)
	ErrBayTaken = errors.New("booking.repository: bay already taken for this slot")

	// ErrNumberCollision возвращается при нарушении уникальности
	// booking_number
	ErrNumberCollision = errors.New("booking.repository: booking number already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
