package update_provider_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ProviderBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/settings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные настройки"
	msgUnauthorized       = "требуется аутентификация"
	msgProviderNotFound   = "профиль провайдера не найден"
	msgNotAProvider       = "настройки доступны только провайдерам"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/providers/me/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := middleware.Principal(r.Context())
	if providerID == "" {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpdateProviderSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/me/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(providerID))
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /providers/me/settings - Invalid input: provider=%s: %v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, settings.ErrProviderNotFound):
			h.logger.Warn("PUT /providers/me/settings - Provider not found: provider=%s", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, settings.ErrNotAProvider):
			h.logger.Warn("PUT /providers/me/settings - Not a provider: provider=%s", providerID)
			handlers.RespondForbidden(w, msgNotAProvider)

		default:
			h.logger.Error("PUT /providers/me/settings - Failed to update settings: provider=%s, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/me/settings - Settings updated: provider=%s", providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
