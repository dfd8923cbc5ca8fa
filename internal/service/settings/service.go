package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-ProviderBookingService/internal/infra/storage/providersettings"
	profileClient "github.com/m04kA/SMC-ProviderBookingService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/settings/models"
)

// Service сервис для работы с настройками провайдеров
type Service struct {
	settingsRepo      SettingsRepository
	profileClient     ProfileServiceClient
	disputeWindowDays int // Значение сервиса по умолчанию
	logger            Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	profileClient ProfileServiceClient,
	disputeWindowDays int,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo:      settingsRepo,
		profileClient:     profileClient,
		disputeWindowDays: disputeWindowDays,
		logger:            logger,
	}
}

// Get получает настройки провайдера
// Если провайдер ещё ничего не настраивал, возвращает значения по умолчанию
func (s *Service) Get(ctx context.Context, providerID string) (*models.ProviderSettingsResponse, error) {
	settings, err := s.settingsRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Get: no settings for provider=%s, returning defaults", providerID)
			return models.FromDomainSettings(nil, providerID, s.disputeWindowDays), nil
		}
		s.logger.Error("Get: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings, providerID, s.disputeWindowDays), nil
}

// Update создает или обновляет настройки провайдера
// Перед записью проверяет, что principal существует и является провайдером
func (s *Service) Update(ctx context.Context, req *models.UpdateProviderSettingsRequest) (*models.ProviderSettingsResponse, error) {
	if req.ProviderID == "" {
		return nil, fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}

	if req.DisputeWindowDays != nil {
		if *req.DisputeWindowDays < domain.MinDisputeWindowDays || *req.DisputeWindowDays > domain.MaxDisputeWindowDays {
			s.logger.Warn("Update: invalid dispute window %d for provider=%s", *req.DisputeWindowDays, req.ProviderID)
			return nil, fmt.Errorf("%w: dispute window must be between %d and %d days",
				ErrInvalidInput, domain.MinDisputeWindowDays, domain.MaxDisputeWindowDays)
		}
	}

	// Проверяем, что principal принадлежит провайдеру
	profile, err := s.profileClient.GetProfile(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, profileClient.ErrProfileNotFound) {
			s.logger.Warn("Update: provider profile not found for principal=%s", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("Update: failed to get profile for principal=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Update - failed to get profile: %v", ErrInternal, err)
	}

	if !profile.IsProvider() {
		s.logger.Warn("Update: principal=%s is not a provider", req.ProviderID)
		return nil, ErrNotAProvider
	}

	settings := &domain.ProviderSettings{
		ProviderID:         req.ProviderID,
		AutoAcceptRequests: req.AutoAcceptRequests,
		DisputeWindowDays:  req.DisputeWindowDays,
	}

	updated, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings saved for provider=%s", req.ProviderID)
	return models.FromDomainSettings(updated, req.ProviderID, s.disputeWindowDays), nil
}
