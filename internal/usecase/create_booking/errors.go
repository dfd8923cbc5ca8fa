package create_booking

import "errors"

var (
	// ErrClientNotFound возвращается, когда профиль клиента не найден
	ErrClientNotFound = errors.New("create_booking: client profile not found")

	// ErrProviderNotFound возвращается, когда профиль провайдера не найден
	ErrProviderNotFound = errors.New("create_booking: provider profile not found")

	// ErrNotAProvider возвращается, когда указанный principal не является провайдером
	ErrNotAProvider = errors.New("create_booking: principal is not a provider")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotOwnedByProvider возвращается, когда услуга принадлежит другому провайдеру
	ErrServiceNotOwnedByProvider = errors.New("create_booking: service is not owned by this provider")

	// ErrServiceInactive возвращается, когда услуга снята с публикации
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrPackageNotFound возвращается, когда пакет услуги не найден
	ErrPackageNotFound = errors.New("create_booking: service package not found")

	// ErrPackageMismatch возвращается, когда пакет относится к другой услуге
	ErrPackageMismatch = errors.New("create_booking: package does not belong to this service")

	// ErrDuplicateRequest возвращается, когда у клиента уже есть открытый
	// запрос к этому провайдеру на ту же услугу
	ErrDuplicateRequest = errors.New("create_booking: duplicate pending request")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid requested date")

	// ErrInvalidLocation возвращается при некорректном формате адреса
	ErrInvalidLocation = errors.New("create_booking: invalid location format")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrRemoteCallFailed возвращается при сбое обращения к коллаборатору
	// (профили, каталог) - запрос можно повторить позже
	ErrRemoteCallFailed = errors.New("create_booking: remote call failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
