package center

import "errors"

var (
	// ErrCenterNotFound возвращается, когда центр не найден
	ErrCenterNotFound = errors.New("center.repository: center not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("center.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("center.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("center.repository: failed to scan row")
)
