package mark_notifications_read

type NotificationStore interface {
	MarkRead(recipient, notificationID string) bool
	MarkAllRead(recipient string) int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
