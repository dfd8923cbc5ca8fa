package accept_booking

import (
	"time"

	"github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings/models"
)

// AcceptBookingRequest HTTP request model
type AcceptBookingRequest struct {
	ScheduledDate *string `json:"scheduledDate,omitempty"` // ISO 8601
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// ProviderID берется из аутентификационного контекста
func (r *AcceptBookingRequest) ToServiceRequest(providerID string) (*models.AcceptBookingRequest, error) {
	req := &models.AcceptBookingRequest{
		ProviderID: providerID,
	}

	if r.ScheduledDate != nil {
		scheduled, err := time.Parse(time.RFC3339, *r.ScheduledDate)
		if err != nil {
			return nil, err
		}
		req.ScheduledDate = &scheduled
	}

	return req, nil
}
