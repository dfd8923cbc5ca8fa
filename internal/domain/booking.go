package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusRequested  BookingStatus = "requested"
	StatusAccepted   BookingStatus = "accepted"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusDeclined   BookingStatus = "declined"
	StatusDisputed   BookingStatus = "disputed"
)

// Booking represents a client-to-provider service booking in the system
type Booking struct {
	ID         int64
	ClientID   string // Principal клиента (opaque идентификатор из ProfileService)
	ProviderID string // Principal провайдера
	ServiceID  *int64 // ID услуги в каталоге (опционально)
	PackageID  *int64 // ID пакета услуги (опционально)

	Price float64

	RequestedDate time.Time  // Дата, на которую клиент запросил услугу
	ScheduledDate *time.Time // Назначенная дата (выставляется при принятии)
	CompletedDate *time.Time // Дата завершения

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64

	Notes    *string
	Location *string // Нормализованная строка адреса (см. create_booking)

	Status BookingStatus

	DeclineReason      *string
	CancellationReason *string
	DisputeReason      *string
	DisputedAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the booking is in a terminal state.
// Completed остаётся условно-терминальным: единственный разрешённый
// переход из него - dispute в пределах окна спора.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted ||
		b.Status == StatusCancelled ||
		b.Status == StatusDeclined ||
		b.Status == StatusDisputed
}

// IsActive returns true if the booking is in an active (non-terminal) state
func (b *Booking) IsActive() bool {
	return b.Status == StatusRequested ||
		b.Status == StatusAccepted ||
		b.Status == StatusInProgress
}

// CanAccept returns true if the booking can be accepted by the provider
func (b *Booking) CanAccept() bool {
	return b.Status == StatusRequested
}

// CanDecline returns true if the booking can be declined by the provider
func (b *Booking) CanDecline() bool {
	return b.Status == StatusRequested
}

// CanStart returns true if work on the booking can be started.
// Если назначена дата, начать можно только когда она наступила.
func (b *Booking) CanStart(now time.Time) bool {
	if b.Status != StatusAccepted {
		return false
	}
	if b.ScheduledDate == nil {
		return true
	}
	return !b.ScheduledDate.After(now)
}

// CanComplete returns true if the booking can be completed
func (b *Booking) CanComplete() bool {
	return b.Status == StatusInProgress
}

// CanDispute returns true if the booking can be disputed within the given window.
// Окно отсчитывается от даты завершения; если она не записана, от updated_at.
func (b *Booking) CanDispute(now time.Time, windowDays int) bool {
	if b.Status != StatusCompleted {
		return false
	}
	completedAt := b.UpdatedAt
	if b.CompletedDate != nil {
		completedAt = *b.CompletedDate
	}
	return !now.After(completedAt.AddDate(0, 0, windowDays))
}

// CanBeCancelled returns true if the booking can be cancelled by the client
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// IsOverdue returns true if the booking was accepted but its scheduled date
// has already passed without the work being started.
// Для in_progress бронирований просроченность не определяется.
func (b *Booking) IsOverdue(now time.Time) bool {
	return b.Status == StatusAccepted &&
		b.ScheduledDate != nil &&
		b.ScheduledDate.Before(now)
}

// EstimatedRevenue returns the price while the booking is still active
func (b *Booking) EstimatedRevenue() float64 {
	if b.IsActive() {
		return b.Price
	}
	return 0
}

// ActualRevenue returns the price only once the booking is completed
func (b *Booking) ActualRevenue() float64 {
	if b.Status == StatusCompleted {
		return b.Price
	}
	return 0
}

// CanTransition validates a single edge of the booking state machine.
// Переходы монотонны: из терминального состояния разрешён только
// completed -> disputed (окно спора проверяется отдельно в CanDispute).
func CanTransition(from, to BookingStatus) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// transitions таблица допустимых переходов статусов
var transitions = map[BookingStatus][]BookingStatus{
	StatusRequested:  {StatusAccepted, StatusDeclined, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusDisputed},
	StatusCancelled:  {},
	StatusDeclined:   {},
	StatusDisputed:   {},
}

// ProviderBookingsFilter фильтр для получения бронирований провайдера
type ProviderBookingsFilter struct {
	ProviderID      string         // Обязательный параметр
	StartDate       *time.Time     // Начало периода по requested_date (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли терминальные бронирования
}
