package create_booking

import "errors"

var (
	// ErrOfferNotFound возвращается, когда ценовой вариант не найден
	ErrOfferNotFound = errors.New("create_booking: offer not found")

	// ErrUnitNotFound возвращается, когда единица инвентаря не найдена или принадлежит другому варианту
	ErrUnitNotFound = errors.New("create_booking: inventory unit not found")

	// ErrOfferingExpired возвращается, когда период доступности предложения закончился
	ErrOfferingExpired = errors.New("create_booking: offering is no longer available")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом или вне окна доступности
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInsufficientStock возвращается, когда остатка уже не хватает на запрошенное количество
	ErrInsufficientStock = errors.New("create_booking: insufficient stock")

	// ErrForbidden возвращается, когда бронирует не клиент
	ErrForbidden = errors.New("create_booking: only customers can book")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
