package update_provider_settings

import (
	"context"

	"github.com/m04kA/SMC-ProviderBookingService/internal/service/settings/models"
)

type SettingsService interface {
	Update(ctx context.Context, req *models.UpdateProviderSettingsRequest) (*models.ProviderSettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
