package decline_booking

import (
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings/models"
)

// DeclineBookingRequest HTTP request model
type DeclineBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// ProviderID берется из аутентификационного контекста
func (r *DeclineBookingRequest) ToServiceRequest(providerID string) *models.DeclineBookingRequest {
	return &models.DeclineBookingRequest{
		ProviderID: providerID,
		Reason:     r.Reason,
	}
}
