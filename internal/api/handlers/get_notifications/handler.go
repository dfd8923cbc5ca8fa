package get_notifications

import (
	"net/http"

	"github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ProviderBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ProviderBookingService/internal/notifications"
)

const msgUnauthorized = "требуется аутентификация"

// NotificationListResponse HTTP response model
type NotificationListResponse struct {
	Notifications []notifications.Notification `json:"notifications"`
	UnreadCount   int                          `json:"unreadCount"`
}

type Handler struct {
	store  NotificationStore
	logger Logger
}

func NewHandler(store NotificationStore, logger Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Handle GET /api/v1/notifications
// Уведомления вызывающего, сначала новые
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	recipient := middleware.Principal(r.Context())
	if recipient == "" {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	response := &NotificationListResponse{
		Notifications: h.store.List(recipient),
		UnreadCount:   h.store.UnreadCount(recipient),
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
