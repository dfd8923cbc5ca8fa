package update_provider_settings

import (
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/settings/models"
)

// UpdateProviderSettingsRequest HTTP request model
type UpdateProviderSettingsRequest struct {
	AutoAcceptRequests bool `json:"autoAcceptRequests"`
	DisputeWindowDays  *int `json:"disputeWindowDays,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// ProviderID берется из аутентификационного контекста
func (r *UpdateProviderSettingsRequest) ToServiceRequest(providerID string) *models.UpdateProviderSettingsRequest {
	return &models.UpdateProviderSettingsRequest{
		ProviderID:         providerID,
		AutoAcceptRequests: r.AutoAcceptRequests,
		DisputeWindowDays:  r.DisputeWindowDays,
	}
}
