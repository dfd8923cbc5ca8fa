package cancel_booking

import (
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// ClientID берется из аутентификационного контекста: отменять
// бронирование может только клиент
func (r *CancelBookingRequest) ToServiceRequest(clientID string) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		ClientID: clientID,
		Reason:   r.Reason,
	}
}
