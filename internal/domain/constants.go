package domain

// Default configuration values
const (
	DefaultDisputeWindowDays = 30 // Окно, в течение которого завершённое бронирование можно оспорить
)

// Business validation constants
const (
	MinDisputeWindowDays = 1
	MaxDisputeWindowDays = 365
	MaxNotesLength       = 500
	MaxReasonLength      = 500
	MaxLocationLength    = 300
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов бронирования
// Используется для фильтрации при выборке активных бронирований
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusDeclined,
	StatusDisputed,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusRequested,
	StatusAccepted,
	StatusInProgress,
}

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []BookingStatus{
	StatusRequested,
	StatusAccepted,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusDeclined,
	StatusDisputed,
}
