package get_provider_dashboard

import (
	"context"

	getProviderDashboard "github.com/m04kA/SMC-ProviderBookingService/internal/usecase/get_provider_dashboard"
)

type GetProviderDashboardUseCase interface {
	Execute(ctx context.Context, req *getProviderDashboard.Request) (*getProviderDashboard.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
