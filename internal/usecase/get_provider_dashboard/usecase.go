package get_provider_dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-ProviderBookingService/internal/infra/storage/providersettings"
	profileClient "github.com/m04kA/SMC-ProviderBookingService/internal/integrations/profileservice"
)

// UseCase use case для получения дашборда провайдера: аналитический
// снимок по всем бронированиям плюс обогащённый список
type UseCase struct {
	bookingRepo       BookingRepository
	settingsRepo      SettingsRepository
	profileClient     ProfileServiceClient
	enricher          Enricher
	disputeWindowDays int // Значение сервиса по умолчанию
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	profileClient ProfileServiceClient,
	enricher Enricher,
	disputeWindowDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:       bookingRepo,
		settingsRepo:      settingsRepo,
		profileClient:     profileClient,
		enricher:          enricher,
		disputeWindowDays: disputeWindowDays,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute выполняет use case получения дашборда
// Снимок статистики всегда пересчитывается от полной коллекции
// бронирований провайдера, включая терминальные
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Резолвим вызывающего
	if req.Principal == "" {
		uc.logger.Warn("GetProviderDashboard: missing principal")
		return nil, ErrAuthenticationRequired
	}

	profile, err := uc.profileClient.GetMyProfile(ctx, req.Principal)
	if err != nil {
		if errors.Is(err, profileClient.ErrProfileNotFound) {
			uc.logger.Warn("GetProviderDashboard: profile not found for principal=%s", req.Principal)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetProviderDashboard: failed to resolve principal=%s: %v", req.Principal, err)
		return nil, fmt.Errorf("%w: failed to resolve principal: %v", ErrRemoteCallFailed, err)
	}

	// 2. Дашборд доступен только провайдерам
	if !profile.IsProvider() {
		uc.logger.Warn("GetProviderDashboard: principal=%s is not a provider", req.Principal)
		return nil, ErrNotAProvider
	}

	now := uc.timeProvider.Now()

	// 3. Загружаем все бронирования провайдера, включая терминальные
	bookings, err := uc.bookingRepo.GetByProviderWithFilter(ctx, domain.ProviderBookingsFilter{
		ProviderID:      profile.Principal,
		IncludeInactive: true,
	})
	if err != nil {
		uc.logger.Error("GetProviderDashboard: failed to get bookings for provider=%s: %v", profile.Principal, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Считаем снимок статистики
	stats := domain.ComputeProviderStats(bookings, now)

	// 5. Обогащаем список с учетом окна споров провайдера
	windowDays := uc.effectiveDisputeWindow(ctx, profile.Principal)
	enriched := uc.enricher.EnrichBookings(ctx, bookings, now, windowDays)

	uc.logger.Info("GetProviderDashboard: provider=%s, bookings=%d, pending=%d",
		profile.Principal, stats.TotalBookings, stats.PendingRequests)

	return &Response{
		ProviderID:  profile.Principal,
		Stats:       stats,
		Bookings:    enriched,
		GeneratedAt: now,
	}, nil
}

// effectiveDisputeWindow возвращает окно споров провайдера с учетом
// переопределения в настройках. Отказ репозитория настроек не фатален -
// используется значение сервиса по умолчанию.
func (uc *UseCase) effectiveDisputeWindow(ctx context.Context, providerID string) int {
	settings, err := uc.settingsRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("GetProviderDashboard: failed to get settings for provider=%s: %v", providerID, err)
		}
		return uc.disputeWindowDays
	}
	return settings.EffectiveDisputeWindow(uc.disputeWindowDays)
}
