package get_provider_dashboard

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ProviderBookingService/internal/api/middleware"
	getProviderDashboard "github.com/m04kA/SMC-ProviderBookingService/internal/usecase/get_provider_dashboard"
)

const (
	msgUnauthorized      = "требуется аутентификация"
	msgProviderNotFound  = "профиль провайдера не найден"
	msgNotAProvider      = "дашборд доступен только провайдерам"
	msgRemoteUnavailable = "сервис профилей временно недоступен, повторите запрос позже"
)

type Handler struct {
	useCase GetProviderDashboardUseCase
	logger  Logger
}

func NewHandler(useCase GetProviderDashboardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/me/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())

	result, err := h.useCase.Execute(r.Context(), &getProviderDashboard.Request{Principal: principal})
	if err != nil {
		switch {
		case errors.Is(err, getProviderDashboard.ErrAuthenticationRequired):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, getProviderDashboard.ErrProviderNotFound):
			h.logger.Warn("GET /providers/me/dashboard - Provider not found: principal=%s", principal)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getProviderDashboard.ErrNotAProvider):
			h.logger.Warn("GET /providers/me/dashboard - Not a provider: principal=%s", principal)
			handlers.RespondForbidden(w, msgNotAProvider)

		case errors.Is(err, getProviderDashboard.ErrRemoteCallFailed):
			h.logger.Error("GET /providers/me/dashboard - Remote call failed: principal=%s, error=%v",
				principal, err)
			handlers.RespondBadGateway(w, msgRemoteUnavailable)

		default:
			h.logger.Error("GET /providers/me/dashboard - Failed to build dashboard: principal=%s, error=%v",
				principal, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/me/dashboard - Dashboard built for provider=%s, bookings=%d",
		result.ProviderID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
