package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	"github.com/m04kA/SMC-ProviderBookingService/internal/notifications"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/enrichment"
)

// BookingRepository интерфейс репозитория бронирований
// Все переходные методы выполняют guarded-обновление и возвращают
// авторитетное состояние после перехода
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
	Accept(ctx context.Context, id int64, scheduledDate *time.Time) (*domain.Booking, error)
	Decline(ctx context.Context, id int64, reason *string) (*domain.Booking, error)
	Start(ctx context.Context, id int64) (*domain.Booking, error)
	Complete(ctx context.Context, id int64, finalPrice *float64) (*domain.Booking, error)
	Dispute(ctx context.Context, id int64, reason string) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) (*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек провайдеров
type SettingsRepository interface {
	GetByProviderID(ctx context.Context, providerID string) (*domain.ProviderSettings, error)
}

// Enricher интерфейс движка обогащения бронирований
type Enricher interface {
	EnrichBooking(ctx context.Context, b *domain.Booking, now time.Time, disputeWindowDays int) *enrichment.EnrichedBooking
	EnrichBookings(ctx context.Context, bookings []*domain.Booking, now time.Time, disputeWindowDays int) []*enrichment.EnrichedBooking
	Refresh()
}

// Notifier интерфейс хранилища уведомлений
type Notifier interface {
	Publish(n notifications.Notification) notifications.Notification
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
