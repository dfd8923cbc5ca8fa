package get_provider_settings

import (
	"context"

	"github.com/m04kA/SMC-ProviderBookingService/internal/service/settings/models"
)

type SettingsService interface {
	Get(ctx context.Context, providerID string) (*models.ProviderSettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
