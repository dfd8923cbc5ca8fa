package catalogservice

// Service модель услуги из CatalogService
type Service struct {
	ID          int64    `json:"id"`
	ProviderID  string   `json:"provider_id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"` // Базовая цена (может отсутствовать у пакетных услуг)
	IsActive    bool     `json:"is_active"`
}

// Package модель пакета услуги из CatalogService
type Package struct {
	ID          int64   `json:"id"`
	ServiceID   int64   `json:"service_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
