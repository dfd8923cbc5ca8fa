package providersettings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/psqlbuilder"
)

// DBExecutor общий интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с настройками провайдеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек провайдеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProviderID получает настройки провайдера
func (r *Repository) GetByProviderID(ctx context.Context, providerID string) (*domain.ProviderSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"auto_accept_requests",
		"dispute_window_days",
		"created_at",
		"updated_at",
	).
		From("provider_settings").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.ProviderSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.ProviderID,
		&settings.AutoAcceptRequests,
		&settings.DisputeWindowDays,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - scan settings: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создает или обновляет настройки провайдера
// Запись на провайдера всегда одна (уникальный индекс по provider_id)
func (r *Repository) Upsert(ctx context.Context, settings *domain.ProviderSettings) (*domain.ProviderSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provider_settings").
		Columns(
			"provider_id",
			"auto_accept_requests",
			"dispute_window_days",
		).
		Values(
			settings.ProviderID,
			settings.AutoAcceptRequests,
			settings.DisputeWindowDays,
		).
		Suffix(`ON CONFLICT (provider_id) DO UPDATE SET
			auto_accept_requests = EXCLUDED.auto_accept_requests,
			dispute_window_days = EXCLUDED.dispute_window_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}
