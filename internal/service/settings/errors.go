package settings

import "errors"

var (
	// ErrProviderNotFound возвращается, когда профиль провайдера не найден
	ErrProviderNotFound = errors.New("provider profile not found")

	// ErrNotAProvider возвращается, когда principal принадлежит не провайдеру
	ErrNotAProvider = errors.New("principal is not a provider")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
