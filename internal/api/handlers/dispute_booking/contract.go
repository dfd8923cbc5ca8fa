package dispute_booking

import (
	"context"

	"github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings/models"
)

type BookingService interface {
	Dispute(ctx context.Context, bookingID int64, req *models.DisputeBookingRequest) (*models.EnrichedBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
