package complete_booking

import (
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings/models"
)

// CompleteBookingRequest HTTP request model
type CompleteBookingRequest struct {
	FinalPrice *float64 `json:"finalPrice,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// ProviderID берется из аутентификационного контекста
func (r *CompleteBookingRequest) ToServiceRequest(providerID string) *models.CompleteBookingRequest {
	return &models.CompleteBookingRequest{
		ProviderID: providerID,
		FinalPrice: r.FinalPrice,
	}
}
