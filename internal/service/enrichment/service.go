package enrichment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	"github.com/m04kA/SMC-ProviderBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ProviderBookingService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/kvcache"
)

// Service движок обогащения бронирований
//
// Справочные данные (профили, услуги, пакеты) тянутся через read-through
// кеши без TTL: запись живет до явного Refresh. Частичный отказ
// коллаборатора не является ошибкой обогащения - соответствующие поля
// остаются незаполненными, а факт деградации логируется.
type Service struct {
	profileClient ProfileClient
	catalogClient CatalogClient

	profileCache *kvcache.Cache[string, profileservice.Profile]
	serviceCache *kvcache.Cache[int64, catalogservice.Service]
	packageCache *kvcache.Cache[int64, catalogservice.Package]

	logger Logger
}

// NewService создает новый экземпляр движка обогащения
func NewService(profileClient ProfileClient, catalogClient CatalogClient, logger Logger) *Service {
	return &Service{
		profileClient: profileClient,
		catalogClient: catalogClient,
		profileCache:  kvcache.New[string, profileservice.Profile](),
		serviceCache:  kvcache.New[int64, catalogservice.Service](),
		packageCache:  kvcache.New[int64, catalogservice.Package](),
		logger:        logger,
	}
}

// EnrichBooking обогащает одно бронирование
//
// Профиль клиента, услуга и пакет запрашиваются параллельно (fan-out),
// чтобы медленный коллаборатор не блокировал остальных. Метод не
// возвращает ошибку: любой отказ деградирует отдельные поля результата.
func (s *Service) EnrichBooking(ctx context.Context, b *domain.Booking, now time.Time, disputeWindowDays int) *EnrichedBooking {
	enriched := &EnrichedBooking{
		Booking: *b,

		CanAccept:   b.CanAccept(),
		CanDecline:  b.CanDecline(),
		CanStart:    b.CanStart(now),
		CanComplete: b.CanComplete(),
		CanDispute:  b.CanDispute(now, disputeWindowDays),
		IsOverdue:   b.IsOverdue(now),

		EstimatedRevenue: b.EstimatedRevenue(),
		ActualRevenue:    b.ActualRevenue(),

		LocationDisplay:  FormatLocation(b.Location),
		TimeUntilService: FormatTimeUntil(b.ScheduledDate, now),
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.attachClientProfile(ctx, b, enriched)
	}()

	if b.ServiceID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.attachService(ctx, b, enriched)
		}()
	}

	if b.PackageID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.attachPackage(ctx, b, enriched)
		}()
	}

	wg.Wait()

	return enriched
}

// EnrichBookings обогащает список бронирований
// Повторные обращения к одним и тем же профилям и услугам берутся из кеша
func (s *Service) EnrichBookings(ctx context.Context, bookings []*domain.Booking, now time.Time, disputeWindowDays int) []*EnrichedBooking {
	result := make([]*EnrichedBooking, len(bookings))
	for i, b := range bookings {
		result[i] = s.EnrichBooking(ctx, b, now, disputeWindowDays)
	}
	return result
}

// Refresh полностью очищает кеши справочных данных
// Вызывается при явном обновлении со стороны потребителя
func (s *Service) Refresh() {
	s.profileCache.Clear()
	s.serviceCache.Clear()
	s.packageCache.Clear()
	s.logger.Info("Enrichment caches cleared")
}

// attachClientProfile заполняет поля профиля клиента через кеш
func (s *Service) attachClientProfile(ctx context.Context, b *domain.Booking, enriched *EnrichedBooking) {
	if cached, ok := s.profileCache.Get(b.ClientID); ok {
		fillProfile(enriched, &cached)
		return
	}

	profile, err := s.profileClient.GetProfileWithGracefulDegradation(ctx, b.ClientID)
	if err != nil {
		// Деградация: поля профиля остаются незаполненными
		s.logger.Warn("EnrichBooking: client profile degraded for booking id=%d, principal=%s: %v",
			b.ID, b.ClientID, err)
		return
	}

	s.profileCache.Set(b.ClientID, *profile)
	fillProfile(enriched, profile)
}

// attachService заполняет поля услуги через кеш
func (s *Service) attachService(ctx context.Context, b *domain.Booking, enriched *EnrichedBooking) {
	serviceID := *b.ServiceID

	if cached, ok := s.serviceCache.Get(serviceID); ok {
		fillService(enriched, &cached)
		return
	}

	service, err := s.catalogClient.GetServiceWithGracefulDegradation(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			s.logger.Warn("EnrichBooking: service id=%d no longer in catalog for booking id=%d", serviceID, b.ID)
		} else {
			s.logger.Warn("EnrichBooking: service degraded for booking id=%d, service id=%d: %v",
				b.ID, serviceID, err)
		}
		return
	}

	s.serviceCache.Set(serviceID, *service)
	fillService(enriched, service)
}

// attachPackage заполняет поля пакета услуги через кеш
func (s *Service) attachPackage(ctx context.Context, b *domain.Booking, enriched *EnrichedBooking) {
	packageID := *b.PackageID

	if cached, ok := s.packageCache.Get(packageID); ok {
		fillPackage(enriched, &cached)
		return
	}

	pkg, err := s.catalogClient.GetPackageWithGracefulDegradation(ctx, packageID)
	if err != nil {
		s.logger.Warn("EnrichBooking: package degraded for booking id=%d, package id=%d: %v",
			b.ID, packageID, err)
		return
	}

	s.packageCache.Set(packageID, *pkg)
	fillPackage(enriched, pkg)
}

// fillProfile безопасен для конкурентного вызова с другими fill-функциями:
// каждая пишет только в свою группу полей
func fillProfile(enriched *EnrichedBooking, profile *profileservice.Profile) {
	name := profile.Name
	enriched.ClientName = &name
	enriched.ClientPhone = profile.Phone
	enriched.ClientAvatarURL = profile.AvatarURL
	enriched.ClientLoaded = true
}

func fillService(enriched *EnrichedBooking, service *catalogservice.Service) {
	name := service.Name
	enriched.ServiceName = &name
	enriched.ServiceDescription = service.Description
	enriched.ServiceCategory = service.Category
	enriched.ServiceLoaded = true
}

func fillPackage(enriched *EnrichedBooking, pkg *catalogservice.Package) {
	name := pkg.Name
	price := pkg.Price
	enriched.PackageName = &name
	enriched.PackagePrice = &price
	enriched.PackageLoaded = true
}
