package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ProviderBookingService/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-ProviderBookingService/internal/infra/storage/providersettings"
	"github.com/m04kA/SMC-ProviderBookingService/internal/notifications"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/enrichment"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/inflight"
)

// Операции жизненного цикла для реестра выполняющихся переходов
const (
	OpAccept   inflight.Operation = "accept"
	OpDecline  inflight.Operation = "decline"
	OpStart    inflight.Operation = "start"
	OpComplete inflight.Operation = "complete"
	OpDispute  inflight.Operation = "dispute"
	OpCancel   inflight.Operation = "cancel"
)

// Service сервис жизненного цикла бронирований
//
// Владеет машиной состояний: каждый переход валидируется по свежему
// состоянию из хранилища (никогда по локальной копии), конкурентные
// повторы одного перехода по одному бронированию сериализуются через
// реестр выполняющихся операций, а результат перехода - авторитетная
// строка, возвращённая guarded-обновлением хранилища.
type Service struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	enricher     Enricher
	notifier     Notifier
	inflight     *inflight.Registry
	timeProvider TimeProvider

	// Окно спора по умолчанию (дни); провайдер может переопределить своё
	disputeWindowDays int

	logger Logger
}

// NewService создает новый экземпляр сервиса жизненного цикла
func NewService(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	enricher Enricher,
	notifier Notifier,
	disputeWindowDays int,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:       bookingRepo,
		settingsRepo:      settingsRepo,
		enricher:          enricher,
		notifier:          notifier,
		inflight:          inflight.NewRegistry(),
		timeProvider:      &RealTimeProvider{},
		disputeWindowDays: disputeWindowDays,
		logger:            logger,
	}
}

// GetByID получает обогащённое бронирование по ID
// Доступно только сторонам бронирования - клиенту или провайдеру
func (s *Service) GetByID(ctx context.Context, id int64, callerID string) (*models.EnrichedBookingResponse, error) {
	if callerID == "" {
		return nil, ErrAuthenticationRequired
	}

	booking, err := s.loadBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.ClientID != callerID && booking.ProviderID != callerID {
		s.logger.Warn("GetByID: access denied for caller=%s to booking id=%d", callerID, id)
		return nil, ErrAccessDenied
	}

	enriched := s.enricher.EnrichBooking(ctx, booking, s.timeProvider.Now(), s.effectiveDisputeWindow(ctx, booking.ProviderID))
	return models.FromEnrichedBooking(enriched), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.EnrichedBookingListResponse, error) {
	if req.ClientID == "" {
		return nil, ErrAuthenticationRequired
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%s", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	// Список клиента может охватывать разных провайдеров - окно спора
	// резолвится для каждого из них, иначе флаг canDispute разойдётся
	// с реальным решением операции Dispute
	now := s.timeProvider.Now()
	windows := make(map[string]int)
	enriched := make([]*enrichment.EnrichedBooking, 0, len(bookings))
	for _, b := range bookings {
		window, ok := windows[b.ProviderID]
		if !ok {
			window = s.effectiveDisputeWindow(ctx, b.ProviderID)
			windows[b.ProviderID] = window
		}
		enriched = append(enriched, s.enricher.EnrichBooking(ctx, b, now, window))
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%s", len(bookings), req.ClientID)
	return models.FromEnrichedBookingList(enriched), nil
}

// GetProviderBookings получает обогащённые бронирования провайдера
//
// Поддерживает фильтрацию по статусу и периоду (в SQL) и именованные
// выборки (view), вычисляемые по производным флагам после обогащения:
// pending, upcoming, active, completed, today, overdue.
// Возвращаемый список - снимок: потребители получают копии и не могут
// повлиять на состояние сервиса.
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.EnrichedBookingListResponse, error) {
	if req.ProviderID == "" {
		return nil, ErrAuthenticationRequired
	}

	var view models.View = models.ViewAll
	if req.View != nil {
		parsed, err := models.ParseView(*req.View)
		if err != nil {
			s.logger.Warn("GetProviderBookings: invalid view=%s for provider=%s", *req.View, req.ProviderID)
			return nil, fmt.Errorf("%w: invalid view", ErrInvalidInput)
		}
		view = parsed
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	enriched := s.enricher.EnrichBookings(ctx, bookings, now, s.effectiveDisputeWindow(ctx, req.ProviderID))
	enriched = filterByView(enriched, view, now)

	s.logger.Info("GetProviderBookings: fetched %d bookings for provider=%s, view=%s",
		len(enriched), req.ProviderID, view)
	return models.FromEnrichedBookingList(enriched), nil
}

// Accept принимает запрос на бронирование (requested -> accepted)
// Опционально назначает дату выполнения
func (s *Service) Accept(ctx context.Context, bookingID int64, req *models.AcceptBookingRequest) (*models.EnrichedBookingResponse, error) {
	return s.transition(ctx, OpAccept, bookingID, req.ProviderID, func(booking *domain.Booking) error {
		if booking.ProviderID != req.ProviderID {
			return ErrAccessDenied
		}
		if !booking.CanAccept() {
			return fmt.Errorf("%w: cannot accept booking in status %s", ErrPreconditionFailed, booking.Status)
		}
		return nil
	}, func() (*domain.Booking, error) {
		return s.bookingRepo.Accept(ctx, bookingID, req.ScheduledDate)
	}, notifications.KindBookingAccepted)
}

// Decline отклоняет запрос на бронирование (requested -> declined)
func (s *Service) Decline(ctx context.Context, bookingID int64, req *models.DeclineBookingRequest) (*models.EnrichedBookingResponse, error) {
	return s.transition(ctx, OpDecline, bookingID, req.ProviderID, func(booking *domain.Booking) error {
		if booking.ProviderID != req.ProviderID {
			return ErrAccessDenied
		}
		if !booking.CanDecline() {
			return fmt.Errorf("%w: cannot decline booking in status %s", ErrPreconditionFailed, booking.Status)
		}
		return nil
	}, func() (*domain.Booking, error) {
		return s.bookingRepo.Decline(ctx, bookingID, req.Reason)
	}, notifications.KindBookingDeclined)
}

// Start начинает работу по бронированию (accepted -> in_progress)
// Если назначена дата, начать можно только когда она наступила
func (s *Service) Start(ctx context.Context, bookingID int64, req *models.StartBookingRequest) (*models.EnrichedBookingResponse, error) {
	return s.transition(ctx, OpStart, bookingID, req.ProviderID, func(booking *domain.Booking) error {
		if booking.ProviderID != req.ProviderID {
			return ErrAccessDenied
		}
		now := s.timeProvider.Now()
		if !booking.CanStart(now) {
			if booking.Status == domain.StatusAccepted {
				return fmt.Errorf("%w: scheduled date has not arrived yet", ErrPreconditionFailed)
			}
			return fmt.Errorf("%w: cannot start booking in status %s", ErrPreconditionFailed, booking.Status)
		}
		return nil
	}, func() (*domain.Booking, error) {
		return s.bookingRepo.Start(ctx, bookingID)
	}, notifications.KindBookingStarted)
}

// Complete завершает работу по бронированию (in_progress -> completed)
// Фиксирует дату завершения; финальная цена, если указана, перезаписывает цену
func (s *Service) Complete(ctx context.Context, bookingID int64, req *models.CompleteBookingRequest) (*models.EnrichedBookingResponse, error) {
	if req.FinalPrice != nil && *req.FinalPrice < 0 {
		return nil, fmt.Errorf("%w: final price must not be negative", ErrInvalidInput)
	}

	return s.transition(ctx, OpComplete, bookingID, req.ProviderID, func(booking *domain.Booking) error {
		if booking.ProviderID != req.ProviderID {
			return ErrAccessDenied
		}
		if !booking.CanComplete() {
			return fmt.Errorf("%w: cannot complete booking in status %s", ErrPreconditionFailed, booking.Status)
		}
		return nil
	}, func() (*domain.Booking, error) {
		return s.bookingRepo.Complete(ctx, bookingID, req.FinalPrice)
	}, notifications.KindBookingCompleted)
}

// Dispute открывает спор по завершённому бронированию (completed -> disputed)
// Инициатором может быть любая из сторон; окно спора - настройка сервиса,
// переопределяемая провайдером
func (s *Service) Dispute(ctx context.Context, bookingID int64, req *models.DisputeBookingRequest) (*models.EnrichedBookingResponse, error) {
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: dispute reason is required", ErrInvalidInput)
	}

	return s.transition(ctx, OpDispute, bookingID, req.CallerID, func(booking *domain.Booking) error {
		if booking.ClientID != req.CallerID && booking.ProviderID != req.CallerID {
			return ErrAccessDenied
		}
		if booking.Status != domain.StatusCompleted {
			return fmt.Errorf("%w: cannot dispute booking in status %s", ErrPreconditionFailed, booking.Status)
		}
		window := s.effectiveDisputeWindow(ctx, booking.ProviderID)
		if !booking.CanDispute(s.timeProvider.Now(), window) {
			return fmt.Errorf("%w: %d days", ErrDisputeWindowExpired, window)
		}
		return nil
	}, func() (*domain.Booking, error) {
		return s.bookingRepo.Dispute(ctx, bookingID, req.Reason)
	}, notifications.KindBookingDisputed)
}

// Cancel отменяет бронирование (любой нетерминальный статус -> cancelled)
// Доступно только клиенту бронирования
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.EnrichedBookingResponse, error) {
	return s.transition(ctx, OpCancel, bookingID, req.ClientID, func(booking *domain.Booking) error {
		if booking.ClientID != req.ClientID {
			return ErrAccessDenied
		}
		if !booking.CanBeCancelled() {
			return fmt.Errorf("%w: cannot cancel booking in status %s", ErrPreconditionFailed, booking.Status)
		}
		return nil
	}, func() (*domain.Booking, error) {
		return s.bookingRepo.Cancel(ctx, bookingID, req.Reason)
	}, notifications.KindBookingCancelled)
}

// IsOperationInProgress проверяет, выполняется ли сейчас операция над
// бронированием - позволяет потребителям блокировать повторные действия
func (s *Service) IsOperationInProgress(op inflight.Operation, bookingID int64) bool {
	return s.inflight.IsInProgress(inflight.Key{Operation: op, BookingID: bookingID})
}

// Refresh очищает кеши обогащения
// Следующее чтение заново получит справочные данные от коллабораторов
func (s *Service) Refresh() {
	s.enricher.Refresh()
}

// transition общий каркас перехода жизненного цикла:
// 1. проверка аутентификации вызывающего
// 2. захват слота (операция, бронирование) в реестре выполняющихся -
//    конкурентный повтор отклоняется
// 3. загрузка СВЕЖЕГО состояния из хранилища и локальная проверка
//    предусловий машины состояний
// 4. guarded-мутация хранилища; проигранная гонка статусов превращается
//    в ErrPreconditionFailed
// 5. обогащение авторитетного результата и уведомление второй стороны
// При любой ошибке локальное состояние не изменяется.
func (s *Service) transition(
	ctx context.Context,
	op inflight.Operation,
	bookingID int64,
	callerID string,
	check func(booking *domain.Booking) error,
	mutate func() (*domain.Booking, error),
	kind notifications.Kind,
) (*models.EnrichedBookingResponse, error) {
	if callerID == "" {
		return nil, ErrAuthenticationRequired
	}

	key := inflight.Key{Operation: op, BookingID: bookingID}
	if !s.inflight.TryBegin(key) {
		s.logger.Warn("%s: concurrent duplicate rejected for booking id=%d", op, bookingID)
		return nil, ErrOperationInProgress
	}
	defer s.inflight.End(key)

	booking, err := s.loadBooking(ctx, string(op), bookingID)
	if err != nil {
		return nil, err
	}

	if err := check(booking); err != nil {
		s.logger.Warn("%s: precondition failed for booking id=%d, caller=%s: %v", op, bookingID, callerID, err)
		return nil, err
	}

	updated, err := mutate()
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("%s: booking id=%d disappeared during transition", op, bookingID)
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			// Кто-то успел изменить статус между проверкой и мутацией
			s.logger.Warn("%s: lost status race for booking id=%d", op, bookingID)
			return nil, fmt.Errorf("%w: booking status changed concurrently", ErrPreconditionFailed)
		default:
			s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
			return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
	}

	s.notifyCounterparty(updated, callerID, kind)

	s.logger.Info("%s: booking id=%d transitioned to status=%s by caller=%s", op, bookingID, updated.Status, callerID)

	enriched := s.enricher.EnrichBooking(ctx, updated, s.timeProvider.Now(), s.effectiveDisputeWindow(ctx, updated.ProviderID))
	return models.FromEnrichedBooking(enriched), nil
}

// loadBooking загружает свежее состояние бронирования из хранилища
func (s *Service) loadBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// effectiveDisputeWindow возвращает окно спора с учётом переопределения
// провайдера; при любой ошибке чтения настроек используется значение
// из конфигурации сервиса
func (s *Service) effectiveDisputeWindow(ctx context.Context, providerID string) int {
	settings, err := s.settingsRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("effectiveDisputeWindow: settings lookup failed for provider=%s: %v", providerID, err)
		}
		return s.disputeWindowDays
	}
	return settings.EffectiveDisputeWindow(s.disputeWindowDays)
}

// notifyCounterparty публикует уведомление второй стороне перехода
func (s *Service) notifyCounterparty(booking *domain.Booking, actorID string, kind notifications.Kind) {
	recipient := booking.ClientID
	if actorID == booking.ClientID {
		recipient = booking.ProviderID
	}

	s.notifier.Publish(notifications.Notification{
		Recipient: recipient,
		BookingID: booking.ID,
		Kind:      kind,
		Message:   notificationMessage(booking, kind),
	})
}

// notificationMessage человекочитаемый текст уведомления
func notificationMessage(booking *domain.Booking, kind notifications.Kind) string {
	switch kind {
	case notifications.KindBookingAccepted:
		return fmt.Sprintf("Бронирование №%d принято", booking.ID)
	case notifications.KindBookingDeclined:
		return fmt.Sprintf("Бронирование №%d отклонено", booking.ID)
	case notifications.KindBookingStarted:
		return fmt.Sprintf("Работа по бронированию №%d начата", booking.ID)
	case notifications.KindBookingCompleted:
		return fmt.Sprintf("Бронирование №%d завершено", booking.ID)
	case notifications.KindBookingDisputed:
		return fmt.Sprintf("По бронированию №%d открыт спор", booking.ID)
	case notifications.KindBookingCancelled:
		return fmt.Sprintf("Бронирование №%d отменено", booking.ID)
	default:
		return fmt.Sprintf("Бронирование №%d обновлено", booking.ID)
	}
}

// filterByView применяет именованную выборку к обогащённому списку
func filterByView(enriched []*enrichment.EnrichedBooking, view models.View, now time.Time) []*enrichment.EnrichedBooking {
	if view == models.ViewAll {
		return enriched
	}

	result := make([]*enrichment.EnrichedBooking, 0, len(enriched))
	for _, e := range enriched {
		if matchesView(e, view, now) {
			result = append(result, e)
		}
	}
	return result
}

// matchesView проверяет попадание бронирования в именованную выборку
func matchesView(e *enrichment.EnrichedBooking, view models.View, now time.Time) bool {
	b := &e.Booking

	switch view {
	case models.ViewPending:
		return b.Status == domain.StatusRequested
	case models.ViewUpcoming:
		return b.Status == domain.StatusAccepted && !e.IsOverdue
	case models.ViewActive:
		return b.Status == domain.StatusAccepted || b.Status == domain.StatusInProgress
	case models.ViewCompleted:
		return b.Status == domain.StatusCompleted
	case models.ViewToday:
		if b.ScheduledDate == nil {
			return false
		}
		y1, m1, d1 := b.ScheduledDate.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case models.ViewOverdue:
		return e.IsOverdue
	default:
		return true
	}
}
