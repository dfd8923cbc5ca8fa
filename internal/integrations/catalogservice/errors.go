package catalogservice

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrPackageNotFound возвращается, когда пакет услуги не найден
	ErrPackageNotFound = errors.New("service package not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что CatalogService недоступен и обогащение должно
	// продолжиться с незаполненными полями услуги
	ErrServiceDegraded = errors.New("catalogservice unavailable: graceful degradation applied")
)
