package confirm_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_booking: booking not found")

	// ErrForbidden возвращается, когда исполнитель не владелец предложения
	ErrForbidden = errors.New("confirm_booking: forbidden")

	// ErrAlreadyConfirmed возвращается при повторном подтверждении
	ErrAlreadyConfirmed = errors.New("confirm_booking: booking already confirmed")

	// ErrInsufficientStock возвращается, когда хотя бы на одной единице не хватает остатка
	ErrInsufficientStock = errors.New("confirm_booking: insufficient stock")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
