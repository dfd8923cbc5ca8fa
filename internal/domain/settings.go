package domain

import "time"

// ProviderSettings represents per-provider booking behaviour overrides.
// Supports fallback hierarchy:
// 1. Provider-specific value (this record)
// 2. Service-wide default from configuration
type ProviderSettings struct {
	ID                 int64
	ProviderID         string
	AutoAcceptRequests bool // Автоматически принимать входящие запросы
	DisputeWindowDays  *int // NULL = использовать значение из конфигурации сервиса
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasDisputeWindowOverride returns true if the provider overrides the
// service-wide dispute window
func (s *ProviderSettings) HasDisputeWindowOverride() bool {
	return s.DisputeWindowDays != nil
}

// EffectiveDisputeWindow returns the dispute window in days, falling back
// to the given service-wide default
func (s *ProviderSettings) EffectiveDisputeWindow(defaultDays int) int {
	if s != nil && s.DisputeWindowDays != nil {
		return *s.DisputeWindowDays
	}
	return defaultDays
}
