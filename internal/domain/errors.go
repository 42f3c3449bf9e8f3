package domain

import "errors"

var (
	// ErrAlreadyConfirmed бронирование уже подтверждено
	ErrAlreadyConfirmed = errors.New("booking is already confirmed")

	// ErrAlreadyPaid бронирование уже оплачено
	ErrAlreadyPaid = errors.New("booking is already paid")

	// ErrNotConfirmed оплата до подтверждения запрещена настройками
	ErrNotConfirmed = errors.New("booking is not confirmed")

	// ErrInvalidBooking бронирование не согласовано с предложением
	ErrInvalidBooking = errors.New("booking is inconsistent with its offering")
)
