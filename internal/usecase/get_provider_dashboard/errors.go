package get_provider_dashboard

import "errors"

var (
	// ErrAuthenticationRequired возвращается, когда principal вызывающего не установлен
	ErrAuthenticationRequired = errors.New("get_provider_dashboard: authentication required")

	// ErrProviderNotFound возвращается, когда профиль провайдера не найден
	ErrProviderNotFound = errors.New("get_provider_dashboard: provider profile not found")

	// ErrNotAProvider возвращается, когда вызывающий не является провайдером
	ErrNotAProvider = errors.New("get_provider_dashboard: principal is not a provider")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_provider_dashboard: invalid input data")

	// ErrRemoteCallFailed возвращается при сбое обращения к сервису
	// профилей - запрос можно повторить позже
	ErrRemoteCallFailed = errors.New("get_provider_dashboard: remote call failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_provider_dashboard: internal error")
)
