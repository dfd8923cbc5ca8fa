package bookings

import "errors"

var (
	// ErrAuthenticationRequired возвращается, когда запрос пришел без
	// разрешимого principal - операции отклоняются локально, без
	// обращения к хранилищу
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrPreconditionFailed возвращается, когда переход нарушает машину
	// состояний бронирования (например, accept не из статуса requested)
	ErrPreconditionFailed = errors.New("booking state precondition failed")

	// ErrOperationInProgress возвращается при попытке запустить переход,
	// который уже выполняется для этого бронирования
	ErrOperationInProgress = errors.New("operation already in progress for this booking")

	// ErrDisputeWindowExpired возвращается, когда окно спора истекло
	ErrDisputeWindowExpired = errors.New("dispute window has expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
