package get_available_units

import "errors"

var (
	// ErrOfferNotFound возвращается, когда ценовой вариант не найден
	ErrOfferNotFound = errors.New("get_available_units: offer not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_units: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_units: internal error")
)
