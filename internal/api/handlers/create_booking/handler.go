package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ProviderBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ProviderBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnauthorized       = "требуется аутентификация"
	msgClientNotFound     = "профиль клиента не найден"
	msgProviderNotFound   = "провайдер не найден"
	msgNotAProvider       = "указанный получатель не является провайдером"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceNotOwned    = "услуга принадлежит другому провайдеру"
	msgServiceInactive    = "услуга недоступна для бронирования"
	msgPackageNotFound    = "пакет услуги не найден"
	msgPackageMismatch    = "пакет относится к другой услуге"
	msgDuplicateRequest   = "у вас уже есть открытый запрос на эту услугу"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgInvalidLocation    = "некорректный формат адреса"
	msgInvalidInput       = "некорректные входные данные"
	msgRemoteUnavailable  = "смежный сервис временно недоступен, повторите запрос позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.Principal(r.Context())
	if clientID == "" {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: client=%s", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrProviderNotFound):
			h.logger.Warn("POST /bookings - Provider not found: provider=%s", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createBooking.ErrNotAProvider):
			h.logger.Warn("POST /bookings - Not a provider: provider=%s", req.ProviderID)
			handlers.RespondBadRequest(w, msgNotAProvider)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: client=%s, provider=%s", clientID, req.ProviderID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceNotOwnedByProvider):
			h.logger.Warn("POST /bookings - Service not owned by provider: provider=%s", req.ProviderID)
			handlers.RespondBadRequest(w, msgServiceNotOwned)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: provider=%s", req.ProviderID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrPackageNotFound):
			h.logger.Warn("POST /bookings - Package not found: client=%s, provider=%s", clientID, req.ProviderID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, createBooking.ErrPackageMismatch):
			h.logger.Warn("POST /bookings - Package mismatch: client=%s, provider=%s", clientID, req.ProviderID)
			handlers.RespondBadRequest(w, msgPackageMismatch)

		case errors.Is(err, createBooking.ErrDuplicateRequest):
			h.logger.Warn("POST /bookings - Duplicate request: client=%s, provider=%s", clientID, req.ProviderID)
			handlers.RespondConflict(w, msgDuplicateRequest)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: client=%s", clientID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidLocation):
			h.logger.Warn("POST /bookings - Invalid location: client=%s", clientID)
			handlers.RespondBadRequest(w, msgInvalidLocation)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client=%s: %v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrRemoteCallFailed):
			h.logger.Error("POST /bookings - Remote call failed: client=%s, provider=%s, error=%v",
				clientID, req.ProviderID, err)
			handlers.RespondBadGateway(w, msgRemoteUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client=%s, provider=%s, error=%v",
				clientID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client=%s, provider=%s",
		result.ID, clientID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
