package enrichment

import (
	"context"

	"github.com/m04kA/SMC-ProviderBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ProviderBookingService/internal/integrations/profileservice"
)

// ProfileClient интерфейс клиента ProfileService
type ProfileClient interface {
	GetProfileWithGracefulDegradation(ctx context.Context, principal string) (*profileservice.Profile, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetServiceWithGracefulDegradation(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	GetPackageWithGracefulDegradation(ctx context.Context, packageID int64) (*catalogservice.Package, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
