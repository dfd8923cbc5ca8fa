package get_provider_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ProviderBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings"
)

const (
	msgUnauthorized  = "требуется аутентификация"
	msgInvalidQuery  = "некорректные параметры запроса"
	msgInvalidFilter = "некорректный фильтр бронирований"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/me/bookings
// Бронирования вызывающего провайдера с фильтрами и именованными выборками
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := middleware.Principal(r.Context())

	serviceReq, err := ParseQuery(providerID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /providers/me/bookings - Invalid query: provider=%s: %v", providerID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetProviderBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAuthenticationRequired):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /providers/me/bookings - Invalid filter: provider=%s", providerID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /providers/me/bookings - Failed to get bookings: provider=%s, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/me/bookings - Fetched %d bookings for provider=%s",
		len(result.Bookings), providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
