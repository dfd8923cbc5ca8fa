package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-ProviderBookingService/internal/infra/storage/providersettings"
	"github.com/m04kA/SMC-ProviderBookingService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/settings/models"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeSettingsRepo struct {
	settings map[string]*domain.ProviderSettings
}

func (r *fakeSettingsRepo) GetByProviderID(ctx context.Context, providerID string) (*domain.ProviderSettings, error) {
	s, ok := r.settings[providerID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return s, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, settings *domain.ProviderSettings) (*domain.ProviderSettings, error) {
	copied := *settings
	copied.ID = 1
	r.settings[settings.ProviderID] = &copied
	return &copied, nil
}

type fakeProfileClient struct {
	profiles map[string]*profileservice.Profile
}

func (c *fakeProfileClient) GetProfile(ctx context.Context, principal string) (*profileservice.Profile, error) {
	p, ok := c.profiles[principal]
	if !ok {
		return nil, profileservice.ErrProfileNotFound
	}
	return p, nil
}

func newTestService() (*Service, *fakeSettingsRepo) {
	repo := &fakeSettingsRepo{settings: map[string]*domain.ProviderSettings{}}
	profiles := &fakeProfileClient{profiles: map[string]*profileservice.Profile{
		"provider-1": {Principal: "provider-1", Role: profileservice.RoleProvider},
		"client-1":   {Principal: "client-1", Role: profileservice.RoleClient},
	}}
	return NewService(repo, profiles, domain.DefaultDisputeWindowDays, nopLogger{}), repo
}

func TestGet_DefaultsWhenUnset(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Get(context.Background(), "provider-1")
	require.NoError(t, err)

	assert.Equal(t, "provider-1", resp.ProviderID)
	assert.False(t, resp.AutoAcceptRequests)
	assert.Equal(t, domain.DefaultDisputeWindowDays, resp.DisputeWindowDays)
	assert.False(t, resp.HasWindowOverride)
	assert.Nil(t, resp.UpdatedAt)
}

func TestUpdate_ThenGet(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Update(context.Background(), &models.UpdateProviderSettingsRequest{
		ProviderID:         "provider-1",
		AutoAcceptRequests: true,
		DisputeWindowDays:  ptr.Ptr(14),
	})
	require.NoError(t, err)

	assert.True(t, resp.AutoAcceptRequests)
	assert.Equal(t, 14, resp.DisputeWindowDays)
	assert.True(t, resp.HasWindowOverride)

	got, err := svc.Get(context.Background(), "provider-1")
	require.NoError(t, err)
	assert.True(t, got.AutoAcceptRequests)
	assert.Equal(t, 14, got.DisputeWindowDays)
}

// Сброс переопределения: nil возвращает окно к значению сервиса
func TestUpdate_ClearsWindowOverride(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), &models.UpdateProviderSettingsRequest{
		ProviderID:        "provider-1",
		DisputeWindowDays: ptr.Ptr(14),
	})
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), &models.UpdateProviderSettingsRequest{
		ProviderID: "provider-1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultDisputeWindowDays, resp.DisputeWindowDays)
	assert.False(t, resp.HasWindowOverride)
}

func TestUpdate_Validation(t *testing.T) {
	svc, repo := newTestService()

	tests := []struct {
		name    string
		req     *models.UpdateProviderSettingsRequest
		wantErr error
	}{
		{"missing provider", &models.UpdateProviderSettingsRequest{}, ErrInvalidInput},
		{"window too small", &models.UpdateProviderSettingsRequest{
			ProviderID:        "provider-1",
			DisputeWindowDays: ptr.Ptr(0),
		}, ErrInvalidInput},
		{"window too large", &models.UpdateProviderSettingsRequest{
			ProviderID:        "provider-1",
			DisputeWindowDays: ptr.Ptr(domain.MaxDisputeWindowDays + 1),
		}, ErrInvalidInput},
		{"unknown principal", &models.UpdateProviderSettingsRequest{
			ProviderID: "ghost",
		}, ErrProviderNotFound},
		{"client cannot configure", &models.UpdateProviderSettingsRequest{
			ProviderID: "client-1",
		}, ErrNotAProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, repo.settings)
}
