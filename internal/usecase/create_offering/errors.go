package create_offering

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах предложения
	ErrInvalidInput = errors.New("create_offering: invalid input data")

	// ErrForbidden возвращается, когда исполнитель не может создавать предложение
	ErrForbidden = errors.New("create_offering: forbidden")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_offering: internal error")
)
