package get_notifications

import (
	"github.com/m04kA/SMC-ProviderBookingService/internal/notifications"
)

type NotificationStore interface {
	List(recipient string) []notifications.Notification
	UnreadCount(recipient string) int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
