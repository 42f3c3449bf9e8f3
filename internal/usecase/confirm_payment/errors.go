package confirm_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrForbidden возвращается, когда исполнитель не владелец предложения
	ErrForbidden = errors.New("confirm_payment: forbidden")

	// ErrAlreadyPaid возвращается при повторной отметке оплаты
	ErrAlreadyPaid = errors.New("confirm_payment: booking already paid")

	// ErrNotConfirmed возвращается, если оплата до подтверждения запрещена настройками
	ErrNotConfirmed = errors.New("confirm_payment: booking is not confirmed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
