package accept_booking

import (
	"context"

	"github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings/models"
)

type BookingService interface {
	Accept(ctx context.Context, bookingID int64, req *models.AcceptBookingRequest) (*models.EnrichedBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
