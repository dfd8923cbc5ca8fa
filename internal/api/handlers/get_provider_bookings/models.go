package get_provider_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings/models"
)

// ParseQuery собирает модель сервиса из query параметров запроса
// Поддерживаются view, status, startDate, endDate (YYYY-MM-DD)
// и includeInactive
func ParseQuery(providerID string, query url.Values) (*models.GetProviderBookingsRequest, error) {
	req := &models.GetProviderBookingsRequest{
		ProviderID: providerID,
	}

	if view := query.Get("view"); view != "" {
		req.View = &view
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if startDate := query.Get("startDate"); startDate != "" {
		parsed, err := time.Parse(domain.DateFormat, startDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &parsed
	}

	if endDate := query.Get("endDate"); endDate != "" {
		parsed, err := time.Parse(domain.DateFormat, endDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &parsed
	}

	if includeInactive := query.Get("includeInactive"); includeInactive != "" {
		parsed, err := strconv.ParseBool(includeInactive)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = parsed
	}

	return req, nil
}
