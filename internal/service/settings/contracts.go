package settings

import (
	"context"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	"github.com/m04kA/SMC-ProviderBookingService/internal/integrations/profileservice"
)

// SettingsRepository интерфейс репозитория настроек провайдеров
type SettingsRepository interface {
	GetByProviderID(ctx context.Context, providerID string) (*domain.ProviderSettings, error)
	Upsert(ctx context.Context, settings *domain.ProviderSettings) (*domain.ProviderSettings, error)
}

// ProfileServiceClient интерфейс клиента ProfileService
type ProfileServiceClient interface {
	GetProfile(ctx context.Context, principal string) (*profileservice.Profile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
