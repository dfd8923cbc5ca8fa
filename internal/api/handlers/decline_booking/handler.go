package decline_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ProviderBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgUnauthorized        = "требуется аутентификация"
	msgNotFound            = "бронирование не найдено"
	msgForbidden           = "доступ запрещен"
	msgCannotDecline       = "запрос не может быть отклонен в текущем статусе"
	msgOperationInProgress = "операция над бронированием уже выполняется"
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

// Handle PATCH /api/v1/bookings/{bookingId}/decline
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/decline - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	providerID := middleware.Principal(r.Context())

	// Тело опционально: причина отклонения не обязательна
	var req DeclineBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PATCH /bookings/{id}/decline - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Decline(r.Context(), bookingID, req.ToServiceRequest(providerID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAuthenticationRequired):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/decline - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/decline - Access denied: booking_id=%d, provider=%s",
				bookingID, providerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrOperationInProgress):
			h.logger.Warn("PATCH /bookings/{id}/decline - Operation in progress: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgOperationInProgress)

		case errors.Is(err, bookings.ErrPreconditionFailed):
			h.logger.Warn("PATCH /bookings/{id}/decline - Cannot decline: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotDecline)

		default:
			h.logger.Error("PATCH /bookings/{id}/decline - Failed to decline booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/decline - Booking declined: booking_id=%d, provider=%s",
		bookingID, providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
