package catalog

import "errors"

var (
	// ErrOfferingNotFound возвращается, когда предложение не найдено
	ErrOfferingNotFound = errors.New("service.catalog: offering not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.catalog: internal error")
)
