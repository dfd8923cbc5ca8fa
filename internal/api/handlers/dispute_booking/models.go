package dispute_booking

import (
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings/models"
)

// DisputeBookingRequest HTTP request model
type DisputeBookingRequest struct {
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// CallerID берется из аутентификационного контекста: спор может
// открыть любая из сторон бронирования
func (r *DisputeBookingRequest) ToServiceRequest(callerID string) *models.DisputeBookingRequest {
	return &models.DisputeBookingRequest{
		CallerID: callerID,
		Reason:   r.Reason,
	}
}
