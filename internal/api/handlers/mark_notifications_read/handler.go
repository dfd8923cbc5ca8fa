package mark_notifications_read

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ProviderBookingService/internal/api/middleware"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgUnauthorized         = "требуется аутентификация"
	msgNotificationNotFound = "уведомление не найдено"
)

// MarkNotificationsReadRequest HTTP request model
// Без notificationId прочитанными помечаются все уведомления
type MarkNotificationsReadRequest struct {
	NotificationID *string `json:"notificationId,omitempty"`
}

// MarkNotificationsReadResponse HTTP response model
type MarkNotificationsReadResponse struct {
	MarkedCount int `json:"markedCount"`
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

// Handle PATCH /api/v1/notifications/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	recipient := middleware.Principal(r.Context())
	if recipient == "" {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Тело опционально: пустое тело означает "пометить все"
	var req MarkNotificationsReadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PATCH /notifications/read - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.NotificationID != nil {
		if !h.store.MarkRead(recipient, *req.NotificationID) {
			h.logger.Warn("PATCH /notifications/read - Notification not found: recipient=%s, id=%s",
				recipient, *req.NotificationID)
			handlers.RespondNotFound(w, msgNotificationNotFound)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, &MarkNotificationsReadResponse{MarkedCount: 1})
		return
	}

	marked := h.store.MarkAllRead(recipient)
	h.logger.Info("PATCH /notifications/read - Marked %d notifications read: recipient=%s", marked, recipient)
	handlers.RespondJSON(w, http.StatusOK, &MarkNotificationsReadResponse{MarkedCount: marked})
}
