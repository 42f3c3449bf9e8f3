package inventory

import "errors"

var (
	// ErrUnitNotFound возвращается, когда единица инвентаря не найдена
	ErrUnitNotFound = errors.New("inventory.repository: unit not found")

	// ErrInsufficientStock возвращается, когда условное списание не затронуло ни одной строки
	ErrInsufficientStock = errors.New("inventory.repository: insufficient stock")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("inventory.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("inventory.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("inventory.repository: failed to scan row")
)
