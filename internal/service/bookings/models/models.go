package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/enrichment"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidView возвращается при некорректном имени выборки
	ErrInvalidView = errors.New("invalid bookings view")
)

// View именованная выборка бронирований провайдера
type View string

const (
	ViewAll       View = "all"
	ViewPending   View = "pending"   // Ожидающие решения запросы
	ViewUpcoming  View = "upcoming"  // Принятые с будущей датой
	ViewActive    View = "active"    // Принятые и выполняемые
	ViewCompleted View = "completed" // Завершённые
	ViewToday     View = "today"     // Назначенные на сегодня
	ViewOverdue   View = "overdue"   // Принятые с прошедшей датой
)

// Request модели

// AcceptBookingRequest запрос провайдера на принятие бронирования
type AcceptBookingRequest struct {
	ProviderID    string     `json:"providerId"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
}

// DeclineBookingRequest запрос провайдера на отклонение бронирования
type DeclineBookingRequest struct {
	ProviderID string  `json:"providerId"`
	Reason     *string `json:"reason,omitempty"`
}

// StartBookingRequest запрос провайдера на начало работ
type StartBookingRequest struct {
	ProviderID string `json:"providerId"`
}

// CompleteBookingRequest запрос провайдера на завершение работ
type CompleteBookingRequest struct {
	ProviderID string   `json:"providerId"`
	FinalPrice *float64 `json:"finalPrice,omitempty"`
}

// DisputeBookingRequest запрос на открытие спора
// Инициатором может быть и провайдер, и клиент бронирования
type DisputeBookingRequest struct {
	CallerID string `json:"callerId"`
	Reason   string `json:"reason"`
}

// CancelBookingRequest запрос клиента на отмену бронирования
type CancelBookingRequest struct {
	ClientID string `json:"clientId"`
	Reason   string `json:"reason"`
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	ClientID string  `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetProviderBookingsRequest запрос на получение бронирований провайдера
type GetProviderBookingsRequest struct {
	ProviderID      string     `json:"providerId"`
	View            *string    `json:"view,omitempty"`            // Именованная выборка (pending, upcoming, ...)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить терминальные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
// Именованные выборки применяются к результату после обогащения,
// в SQL уходит только фильтр по статусу и периоду
func (r *GetProviderBookingsRequest) ToDomainFilter() (domain.ProviderBookingsFilter, error) {
	filter := domain.ProviderBookingsFilter{
		ProviderID:      r.ProviderID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	// Выборки completed и overdue требуют данных, исключаемых фильтром
	// активных статусов по умолчанию
	if r.View != nil {
		switch View(*r.View) {
		case ViewCompleted:
			status := domain.StatusCompleted
			filter.Status = &status
		case ViewAll:
			filter.IncludeInactive = true
		}
	}

	return filter, nil
}

// ParseView валидирует именованную выборку
func ParseView(s string) (View, error) {
	v := View(s)
	switch v {
	case ViewAll, ViewPending, ViewUpcoming, ViewActive, ViewCompleted, ViewToday, ViewOverdue:
		return v, nil
	default:
		return "", ErrInvalidView
	}
}

// Response модели

// EnrichedBookingResponse ответ с обогащённым бронированием
type EnrichedBookingResponse struct {
	ID         int64   `json:"id"`
	ClientID   string  `json:"clientId"`
	ProviderID string  `json:"providerId"`
	ServiceID  *int64  `json:"serviceId,omitempty"`
	PackageID  *int64  `json:"packageId,omitempty"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`

	RequestedDate string  `json:"requestedDate"` // "2025-10-15"
	ScheduledDate *string `json:"scheduledDate,omitempty"`
	CompletedDate *string `json:"completedDate,omitempty"` // ISO 8601

	// Денормализованные данные
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	Notes    *string `json:"notes,omitempty"`
	Location string  `json:"location"`

	DeclineReason      *string `json:"declineReason,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	DisputeReason      *string `json:"disputeReason,omitempty"`

	// Обогащение: профиль клиента
	ClientName      *string `json:"clientName,omitempty"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	ClientAvatarURL *string `json:"clientAvatarUrl,omitempty"`
	ClientLoaded    bool    `json:"clientLoaded"`

	// Обогащение: данные каталога
	CatalogServiceName *string  `json:"catalogServiceName,omitempty"`
	ServiceDescription *string  `json:"serviceDescription,omitempty"`
	ServiceCategory    *string  `json:"serviceCategory,omitempty"`
	ServiceLoaded      bool     `json:"serviceLoaded"`
	PackageName        *string  `json:"packageName,omitempty"`
	PackagePrice       *float64 `json:"packagePrice,omitempty"`
	PackageLoaded      bool     `json:"packageLoaded"`

	// Производные флаги действий
	CanAccept   bool `json:"canAccept"`
	CanDecline  bool `json:"canDecline"`
	CanStart    bool `json:"canStart"`
	CanComplete bool `json:"canComplete"`
	CanDispute  bool `json:"canDispute"`
	IsOverdue   bool `json:"isOverdue"`

	// Производная выручка
	EstimatedRevenue float64 `json:"estimatedRevenue"`
	ActualRevenue    float64 `json:"actualRevenue"`

	TimeUntilService string `json:"timeUntilService,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EnrichedBookingListResponse ответ со списком обогащённых бронирований
type EnrichedBookingListResponse struct {
	Bookings []EnrichedBookingResponse `json:"bookings"`
}

// Методы конвертации

// FromEnrichedBooking конвертирует результат обогащения в DTO
func FromEnrichedBooking(e *enrichment.EnrichedBooking) *EnrichedBookingResponse {
	if e == nil {
		return nil
	}

	b := e.Booking

	resp := &EnrichedBookingResponse{
		ID:            b.ID,
		ClientID:      b.ClientID,
		ProviderID:    b.ProviderID,
		ServiceID:     b.ServiceID,
		PackageID:     b.PackageID,
		Price:         b.Price,
		Status:        string(b.Status),
		RequestedDate: b.RequestedDate.Format(domain.DateFormat),
		ServiceName:   b.ServiceName,
		ServicePrice:  b.ServicePrice,
		Notes:         b.Notes,
		Location:      e.LocationDisplay,

		DeclineReason:      b.DeclineReason,
		CancellationReason: b.CancellationReason,
		DisputeReason:      b.DisputeReason,

		ClientName:      e.ClientName,
		ClientPhone:     e.ClientPhone,
		ClientAvatarURL: e.ClientAvatarURL,
		ClientLoaded:    e.ClientLoaded,

		CatalogServiceName: e.ServiceName,
		ServiceDescription: e.ServiceDescription,
		ServiceCategory:    e.ServiceCategory,
		ServiceLoaded:      e.ServiceLoaded,
		PackageName:        e.PackageName,
		PackagePrice:       e.PackagePrice,
		PackageLoaded:      e.PackageLoaded,

		CanAccept:   e.CanAccept,
		CanDecline:  e.CanDecline,
		CanStart:    e.CanStart,
		CanComplete: e.CanComplete,
		CanDispute:  e.CanDispute,
		IsOverdue:   e.IsOverdue,

		EstimatedRevenue: e.EstimatedRevenue,
		ActualRevenue:    e.ActualRevenue,

		TimeUntilService: e.TimeUntilService,

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if b.ScheduledDate != nil {
		s := b.ScheduledDate.Format(time.RFC3339)
		resp.ScheduledDate = &s
	}
	if b.CompletedDate != nil {
		s := b.CompletedDate.Format(time.RFC3339)
		resp.CompletedDate = &s
	}

	return resp
}

// FromEnrichedBookingList конвертирует список результатов обогащения в DTO
func FromEnrichedBookingList(enriched []*enrichment.EnrichedBooking) *EnrichedBookingListResponse {
	resp := &EnrichedBookingListResponse{
		Bookings: make([]EnrichedBookingResponse, 0, len(enriched)),
	}

	for _, e := range enriched {
		if r := FromEnrichedBooking(e); r != nil {
			resp.Bookings = append(resp.Bookings, *r)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.AllStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
