package notificationservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notificationservice client: internal error")

	// ErrInvalidResponse возвращается при неуспешном ответе сервиса
	ErrInvalidResponse = errors.New("notificationservice client: invalid response")
)
