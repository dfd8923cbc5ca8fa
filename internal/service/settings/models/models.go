package models

import (
	"time"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
)

// Request модели

// UpdateProviderSettingsRequest запрос на обновление настроек провайдера
type UpdateProviderSettingsRequest struct {
	ProviderID         string `json:"providerId"`
	AutoAcceptRequests bool   `json:"autoAcceptRequests"`
	DisputeWindowDays  *int   `json:"disputeWindowDays,omitempty"` // nil = использовать значение сервиса
}

// Response модели

// ProviderSettingsResponse ответ с настройками провайдера
type ProviderSettingsResponse struct {
	ProviderID         string     `json:"providerId"`
	AutoAcceptRequests bool       `json:"autoAcceptRequests"`
	DisputeWindowDays  int        `json:"disputeWindowDays"` // Эффективное значение с учётом fallback
	HasWindowOverride  bool       `json:"hasWindowOverride"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
// defaultWindowDays подставляется, когда у провайдера нет переопределения
func FromDomainSettings(s *domain.ProviderSettings, providerID string, defaultWindowDays int) *ProviderSettingsResponse {
	if s == nil {
		// Настроек ещё нет - возвращаем значения по умолчанию
		return &ProviderSettingsResponse{
			ProviderID:        providerID,
			DisputeWindowDays: defaultWindowDays,
		}
	}

	resp := &ProviderSettingsResponse{
		ProviderID:         s.ProviderID,
		AutoAcceptRequests: s.AutoAcceptRequests,
		DisputeWindowDays:  s.EffectiveDisputeWindow(defaultWindowDays),
		HasWindowOverride:  s.HasDisputeWindowOverride(),
	}

	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
