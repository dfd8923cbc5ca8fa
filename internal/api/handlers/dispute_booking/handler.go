package dispute_booking

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
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgReasonRequired       = "необходимо указать причину спора"
	msgUnauthorized         = "требуется аутентификация"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotDispute        = "спор можно открыть только по завершенному бронированию"
	msgDisputeWindowExpired = "окно для открытия спора истекло"
	msgOperationInProgress  = "операция над бронированием уже выполняется"
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

// Handle PATCH /api/v1/bookings/{bookingId}/dispute
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/dispute - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	callerID := middleware.Principal(r.Context())

	var req DisputeBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/dispute - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Dispute(r.Context(), bookingID, req.ToServiceRequest(callerID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAuthenticationRequired):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/dispute - Missing reason: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/dispute - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/dispute - Access denied: booking_id=%d, caller=%s",
				bookingID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrOperationInProgress):
			h.logger.Warn("PATCH /bookings/{id}/dispute - Operation in progress: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgOperationInProgress)

		case errors.Is(err, bookings.ErrDisputeWindowExpired):
			h.logger.Warn("PATCH /bookings/{id}/dispute - Dispute window expired: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgDisputeWindowExpired)

		case errors.Is(err, bookings.ErrPreconditionFailed):
			h.logger.Warn("PATCH /bookings/{id}/dispute - Cannot dispute: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotDispute)

		default:
			h.logger.Error("PATCH /bookings/{id}/dispute - Failed to dispute booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/dispute - Dispute opened: booking_id=%d, caller=%s",
		bookingID, callerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
