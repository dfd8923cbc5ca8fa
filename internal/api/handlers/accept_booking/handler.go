package accept_booking

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
	msgInvalidDate         = "некорректный формат даты, ожидается ISO 8601"
	msgUnauthorized        = "требуется аутентификация"
	msgNotFound            = "бронирование не найдено"
	msgForbidden           = "доступ запрещен"
	msgCannotAccept        = "запрос не может быть принят в текущем статусе"
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

// Handle PATCH /api/v1/bookings/{bookingId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/accept - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	providerID := middleware.Principal(r.Context())

	// Тело опционально: принятие без назначения даты допустимо
	var req AcceptBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PATCH /bookings/{id}/accept - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(providerID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/accept - Invalid scheduled date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Accept(r.Context(), bookingID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAuthenticationRequired):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/accept - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/accept - Access denied: booking_id=%d, provider=%s",
				bookingID, providerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrOperationInProgress):
			h.logger.Warn("PATCH /bookings/{id}/accept - Operation in progress: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgOperationInProgress)

		case errors.Is(err, bookings.ErrPreconditionFailed):
			h.logger.Warn("PATCH /bookings/{id}/accept - Cannot accept: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotAccept)

		default:
			h.logger.Error("PATCH /bookings/{id}/accept - Failed to accept booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/accept - Booking accepted: booking_id=%d, provider=%s",
		bookingID, providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
