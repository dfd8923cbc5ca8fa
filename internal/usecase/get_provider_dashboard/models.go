package get_provider_dashboard

import (
	"time"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/enrichment"
)

// Request модель запроса на получение дашборда провайдера
type Request struct {
	Principal string // Principal вызывающего из контекста аутентификации
}

// Response модель ответа с агрегированным дашбордом
type Response struct {
	ProviderID  string                        // Principal провайдера
	Stats       domain.ProviderStats          // Аналитический снимок по всем бронированиям
	Bookings    []*enrichment.EnrichedBooking // Обогащённые бронирования
	GeneratedAt time.Time                     // Момент расчёта снимка
}
