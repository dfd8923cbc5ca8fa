package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-ProviderBookingService/internal/infra/storage/providersettings"
	catalogClient "github.com/m04kA/SMC-ProviderBookingService/internal/integrations/catalogservice"
	profileClient "github.com/m04kA/SMC-ProviderBookingService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-ProviderBookingService/internal/notifications"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	settingsRepo  SettingsRepository
	profileClient ProfileServiceClient
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	notifier      Notifier
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	profileClient ProfileServiceClient,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		settingsRepo:  settingsRepo,
		profileClient: profileClient,
		catalogClient: catalogClient,
		txManager:     txManager,
		notifier:      notifier,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для защиты от дублирующихся запросов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s, provider=%s, date=%s",
		req.ClientID, req.ProviderID, req.RequestedDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(req.RequestedDate, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Нормализуем адрес в отображаемую строку
	location, err := normalizeLocation(req.Location)
	if err != nil {
		uc.logger.Warn("CreateBooking: location validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем существование клиента
	if _, err := uc.profileClient.GetProfile(ctx, req.ClientID); err != nil {
		if errors.Is(err, profileClient.ErrProfileNotFound) {
			uc.logger.Warn("CreateBooking: client profile not found: %s", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client profile %s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client profile: %v", ErrRemoteCallFailed, err)
	}

	// 5. Проверяем, что провайдер существует и действительно провайдер
	provider, err := uc.profileClient.GetProfile(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, profileClient.ErrProfileNotFound) {
			uc.logger.Warn("CreateBooking: provider profile not found: %s", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider profile %s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider profile: %v", ErrRemoteCallFailed, err)
	}

	if !provider.IsProvider() {
		uc.logger.Warn("CreateBooking: principal=%s is not a provider", req.ProviderID)
		return nil, ErrNotAProvider
	}

	// 6. Резолвим услугу и пакет, фиксируем цену на момент запроса
	serviceName := ""
	servicePrice := float64(0)
	price := float64(0)

	var service *catalogClient.Service
	if req.ServiceID != nil {
		service, err = uc.catalogClient.GetService(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrRemoteCallFailed, err)
		}

		if service.ProviderID != req.ProviderID {
			uc.logger.Warn("CreateBooking: service id=%d belongs to provider=%s, not %s",
				service.ID, service.ProviderID, req.ProviderID)
			return nil, ErrServiceNotOwnedByProvider
		}

		if !service.IsActive {
			uc.logger.Warn("CreateBooking: service id=%d is not active", service.ID)
			return nil, ErrServiceInactive
		}

		serviceName = service.Name
		if service.Price != nil {
			servicePrice = *service.Price
			price = *service.Price
		}
	}

	if req.PackageID != nil {
		pkg, err := uc.catalogClient.GetPackage(ctx, *req.PackageID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrPackageNotFound) {
				uc.logger.Warn("CreateBooking: package id=%d not found", *req.PackageID)
				return nil, ErrPackageNotFound
			}
			uc.logger.Error("CreateBooking: failed to get package id=%d: %v", *req.PackageID, err)
			return nil, fmt.Errorf("%w: failed to get package: %v", ErrRemoteCallFailed, err)
		}

		if pkg.ServiceID != *req.ServiceID {
			uc.logger.Warn("CreateBooking: package id=%d belongs to service id=%d, not %d",
				pkg.ID, pkg.ServiceID, *req.ServiceID)
			return nil, ErrPackageMismatch
		}

		// Цена пакета перекрывает базовую цену услуги
		price = pkg.Price
	}

	// 7. Получаем настройки провайдера (авто-принятие запросов)
	settings, err := uc.settingsRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		uc.logger.Error("CreateBooking: failed to get provider settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get provider settings: %v", ErrInternal, err)
	}

	autoAccept := settings != nil && settings.AutoAcceptRequests

	// Переменная для хранения результата
	var result *domain.Booking

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем открытые запросы провайдера с блокировкой (FOR UPDATE)
		filter := domain.ProviderBookingsFilter{
			ProviderID:      req.ProviderID,
			IncludeInactive: false,
		}

		active, err := uc.bookingRepo.GetByProviderWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get provider bookings: %v", err)
			return fmt.Errorf("%w: failed to get provider bookings: %v", ErrInternal, err)
		}

		// 8.2. Запрещаем дублирующий открытый запрос на ту же услугу
		if hasDuplicateRequest(active, req.ClientID, req.ServiceID) {
			uc.logger.Warn("CreateBooking: duplicate pending request from client=%s to provider=%s",
				req.ClientID, req.ProviderID)
			return ErrDuplicateRequest
		}

		// 8.3. Собираем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			ClientID:      req.ClientID,
			ProviderID:    req.ProviderID,
			ServiceID:     req.ServiceID,
			PackageID:     req.PackageID,
			Price:         price,
			RequestedDate: req.RequestedDate,
			Status:        domain.StatusRequested,
			ServiceName:   serviceName,
			ServicePrice:  servicePrice,
			Notes:         req.Notes,
			Location:      location,
		}

		// При включенном авто-принятии запрос сразу подтверждается
		// на запрошенную дату
		if autoAccept {
			booking.Status = domain.StatusAccepted
			scheduled := req.RequestedDate
			booking.ScheduledDate = &scheduled
		}

		// 8.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 9. Уведомляем стороны о новом запросе
	uc.notify(result, autoAccept)

	uc.logger.Info("CreateBooking: booking id=%d created with status=%s", result.ID, result.Status)
	return toResponse(result), nil
}

// notify публикует уведомления после создания бронирования.
// Провайдер узнает о новом запросе; при авто-принятии клиент сразу
// получает подтверждение.
func (uc *UseCase) notify(booking *domain.Booking, autoAccepted bool) {
	uc.notifier.Publish(notifications.Notification{
		Recipient: booking.ProviderID,
		BookingID: booking.ID,
		Kind:      notifications.KindBookingRequested,
		Message:   fmt.Sprintf("Новый запрос на бронирование «%s»", displayName(booking)),
	})

	if autoAccepted {
		uc.notifier.Publish(notifications.Notification{
			Recipient: booking.ClientID,
			BookingID: booking.ID,
			Kind:      notifications.KindBookingAccepted,
			Message:   fmt.Sprintf("Бронирование «%s» подтверждено автоматически", displayName(booking)),
		})
	}
}

// displayName человекочитаемое имя бронирования для уведомлений
func displayName(booking *domain.Booking) string {
	if booking.ServiceName != "" {
		return booking.ServiceName
	}
	return fmt.Sprintf("заявка №%d", booking.ID)
}

// toResponse преобразует доменную модель в модель ответа
func toResponse(booking *domain.Booking) *Response {
	return &Response{
		ID:            booking.ID,
		ClientID:      booking.ClientID,
		ProviderID:    booking.ProviderID,
		ServiceID:     booking.ServiceID,
		PackageID:     booking.PackageID,
		Price:         booking.Price,
		RequestedDate: booking.RequestedDate,
		ScheduledDate: booking.ScheduledDate,
		Status:        string(booking.Status),
		ServiceName:   booking.ServiceName,
		ServicePrice:  booking.ServicePrice,
		Notes:         booking.Notes,
		Location:      booking.Location,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
}
