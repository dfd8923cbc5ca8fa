package get_provider_dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	"github.com/m04kA/SMC-ProviderBookingService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/enrichment"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек провайдеров
type SettingsRepository interface {
	GetByProviderID(ctx context.Context, providerID string) (*domain.ProviderSettings, error)
}

// ProfileServiceClient интерфейс клиента ProfileService
type ProfileServiceClient interface {
	GetMyProfile(ctx context.Context, principal string) (*profileservice.Profile, error)
}

// Enricher интерфейс движка обогащения бронирований
type Enricher interface {
	EnrichBookings(ctx context.Context, bookings []*domain.Booking, now time.Time, disputeWindowDays int) []*enrichment.EnrichedBooking
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
