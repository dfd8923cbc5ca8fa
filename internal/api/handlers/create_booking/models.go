package create_booking

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ProviderBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID    string          `json:"providerId"`
	ServiceID     *int64          `json:"serviceId,omitempty"`
	PackageID     *int64          `json:"packageId,omitempty"`
	RequestedDate string          `json:"requestedDate"` // "2025-10-15"
	Notes         *string         `json:"notes,omitempty"`
	Location      json.RawMessage `json:"location,omitempty"` // строка или объект адреса
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	ClientID      string  `json:"clientId"`
	ProviderID    string  `json:"providerId"`
	ServiceID     *int64  `json:"serviceId,omitempty"`
	PackageID     *int64  `json:"packageId,omitempty"`
	Price         float64 `json:"price"`
	RequestedDate string  `json:"requestedDate"`
	ScheduledDate *string `json:"scheduledDate,omitempty"`
	Status        string  `json:"status"`
	ServiceName   string  `json:"serviceName"`
	ServicePrice  float64 `json:"servicePrice"`
	Notes         *string `json:"notes,omitempty"`
	Location      *string `json:"location,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// ClientID берется из аутентификационного контекста, не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(clientID string) (*createBooking.Request, error) {
	requestedDate, err := time.Parse(domain.DateFormat, r.RequestedDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:      clientID,
		ProviderID:    r.ProviderID,
		ServiceID:     r.ServiceID,
		PackageID:     r.PackageID,
		RequestedDate: requestedDate,
		Notes:         r.Notes,
		Location:      r.Location,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	response := &BookingResponse{
		ID:            resp.ID,
		ClientID:      resp.ClientID,
		ProviderID:    resp.ProviderID,
		ServiceID:     resp.ServiceID,
		PackageID:     resp.PackageID,
		Price:         resp.Price,
		RequestedDate: resp.RequestedDate.Format(domain.DateFormat),
		Status:        resp.Status,
		ServiceName:   resp.ServiceName,
		ServicePrice:  resp.ServicePrice,
		Notes:         resp.Notes,
		Location:      resp.Location,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.ScheduledDate != nil {
		s := resp.ScheduledDate.Format(time.RFC3339)
		response.ScheduledDate = &s
	}

	return response
}
