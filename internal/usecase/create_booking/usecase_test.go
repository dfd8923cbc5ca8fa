package create_booking

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-ProviderBookingService/internal/infra/storage/providersettings"
	"github.com/m04kA/SMC-ProviderBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ProviderBookingService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-ProviderBookingService/internal/notifications"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/ptr"
)

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	existing []*domain.Booking
	created  []*domain.Booking
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	copied := *booking
	copied.ID = r.nextID
	copied.CreatedAt = testNow
	copied.UpdatedAt = testNow
	r.created = append(r.created, &copied)
	return &copied, nil
}

func (r *fakeBookingRepo) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Booking
	for _, b := range r.existing {
		if b.ProviderID == filter.ProviderID {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

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

type fakeProfileClient struct {
	profiles map[string]*profileservice.Profile
	err      error
}

func (c *fakeProfileClient) GetProfile(ctx context.Context, principal string) (*profileservice.Profile, error) {
	if c.err != nil {
		return nil, c.err
	}
	p, ok := c.profiles[principal]
	if !ok {
		return nil, profileservice.ErrProfileNotFound
	}
	return p, nil
}

type fakeCatalogClient struct {
	services map[int64]*catalogservice.Service
	packages map[int64]*catalogservice.Package
	err      error
}

func (c *fakeCatalogClient) GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
	if c.err != nil {
		return nil, c.err
	}
	s, ok := c.services[serviceID]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return s, nil
}

func (c *fakeCatalogClient) GetPackage(ctx context.Context, packageID int64) (*catalogservice.Package, error) {
	p, ok := c.packages[packageID]
	if !ok {
		return nil, catalogservice.ErrPackageNotFound
	}
	return p, nil
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeNotifier struct {
	published []notifications.Notification
}

func (n *fakeNotifier) Publish(notification notifications.Notification) notifications.Notification {
	n.published = append(n.published, notification)
	return notification
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	settings *fakeSettingsRepo
	profiles *fakeProfileClient
	catalog  *fakeCatalogClient
	notifier *fakeNotifier
	tx       *fakeTxManager
}

func newFixture() *fixture {
	bookings := &fakeBookingRepo{}
	settings := &fakeSettingsRepo{settings: map[string]*domain.ProviderSettings{}}
	notifier := &fakeNotifier{}
	tx := &fakeTxManager{}

	profiles := &fakeProfileClient{profiles: map[string]*profileservice.Profile{
		"client-1":   {Principal: "client-1", Name: "Иван", Role: profileservice.RoleClient},
		"provider-1": {Principal: "provider-1", Name: "Автомойка", Role: profileservice.RoleProvider},
		"client-2":   {Principal: "client-2", Name: "Петр", Role: profileservice.RoleClient},
	}}
	catalog := &fakeCatalogClient{
		services: map[int64]*catalogservice.Service{
			10: {ID: 10, ProviderID: "provider-1", Name: "Мойка", Price: ptr.Ptr(100.0), IsActive: true},
			11: {ID: 11, ProviderID: "provider-2", Name: "Чужая услуга", IsActive: true},
			12: {ID: 12, ProviderID: "provider-1", Name: "Снятая услуга", IsActive: false},
		},
		packages: map[int64]*catalogservice.Package{
			20: {ID: 20, ServiceID: 10, Name: "Премиум", Price: 300},
			21: {ID: 21, ServiceID: 11, Name: "Чужой пакет", Price: 500},
		},
	}

	uc := NewUseCase(bookings, settings, profiles, catalog, tx, notifier, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}

	return &fixture{
		uc:       uc,
		bookings: bookings,
		settings: settings,
		profiles: profiles,
		catalog:  catalog,
		notifier: notifier,
		tx:       tx,
	}
}

func newRequest() *Request {
	return &Request{
		ClientID:      "client-1",
		ProviderID:    "provider-1",
		ServiceID:     ptr.Ptr(int64(10)),
		RequestedDate: testNow.AddDate(0, 0, 3),
	}
}

func TestExecute_HappyPath(t *testing.T) {
	f := newFixture()

	req := newRequest()
	req.Notes = ptr.Ptr("Помыть тщательно")
	req.Location = json.RawMessage(`"Москва"`)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusRequested), resp.Status)
	assert.Nil(t, resp.ScheduledDate)

	// Цена и название услуги зафиксированы на момент запроса
	assert.Equal(t, 100.0, resp.Price)
	assert.Equal(t, "Мойка", resp.ServiceName)
	assert.Equal(t, 100.0, resp.ServicePrice)
	require.NotNil(t, resp.Location)
	assert.Equal(t, "Москва", *resp.Location)

	// Создание прошло в сериализуемой транзакции
	assert.Equal(t, 1, f.tx.calls)

	// Провайдер уведомлен о новом запросе
	require.Len(t, f.notifier.published, 1)
	assert.Equal(t, "provider-1", f.notifier.published[0].Recipient)
	assert.Equal(t, notifications.KindBookingRequested, f.notifier.published[0].Kind)
}

func TestExecute_PackagePriceOverridesService(t *testing.T) {
	f := newFixture()

	req := newRequest()
	req.PackageID = ptr.Ptr(int64(20))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 300.0, resp.Price)
	assert.Equal(t, 100.0, resp.ServicePrice)
}

func TestExecute_AutoAccept(t *testing.T) {
	f := newFixture()
	f.settings.settings["provider-1"] = &domain.ProviderSettings{
		ProviderID:         "provider-1",
		AutoAcceptRequests: true,
	}

	resp, err := f.uc.Execute(context.Background(), newRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	require.NotNil(t, resp.ScheduledDate)
	assert.Equal(t, resp.RequestedDate, *resp.ScheduledDate)

	// Уведомлены обе стороны: провайдер о запросе, клиент о подтверждении
	require.Len(t, f.notifier.published, 2)
	assert.Equal(t, "provider-1", f.notifier.published[0].Recipient)
	assert.Equal(t, "client-1", f.notifier.published[1].Recipient)
	assert.Equal(t, notifications.KindBookingAccepted, f.notifier.published[1].Kind)
}

func TestExecute_DuplicateRequest(t *testing.T) {
	f := newFixture()
	f.bookings.existing = []*domain.Booking{{
		ID:         42,
		ClientID:   "client-1",
		ProviderID: "provider-1",
		ServiceID:  ptr.Ptr(int64(10)),
		Status:     domain.StatusRequested,
	}}

	_, err := f.uc.Execute(context.Background(), newRequest())
	assert.ErrorIs(t, err, ErrDuplicateRequest)
	assert.Empty(t, f.bookings.created)
	assert.Empty(t, f.notifier.published)
}

func TestExecute_SameServiceDifferentClient(t *testing.T) {
	f := newFixture()
	f.bookings.existing = []*domain.Booking{{
		ID:         42,
		ClientID:   "client-2",
		ProviderID: "provider-1",
		ServiceID:  ptr.Ptr(int64(10)),
		Status:     domain.StatusRequested,
	}}

	_, err := f.uc.Execute(context.Background(), newRequest())
	assert.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{"unknown client", func(r *Request) { r.ClientID = "ghost" }, ErrClientNotFound},
		{"unknown provider", func(r *Request) { r.ProviderID = "ghost" }, ErrProviderNotFound},
		{"provider is a client", func(r *Request) { r.ProviderID = "client-2" }, ErrNotAProvider},
		{"unknown service", func(r *Request) { r.ServiceID = ptr.Ptr(int64(99)) }, ErrServiceNotFound},
		{"foreign service", func(r *Request) { r.ServiceID = ptr.Ptr(int64(11)) }, ErrServiceNotOwnedByProvider},
		{"inactive service", func(r *Request) { r.ServiceID = ptr.Ptr(int64(12)) }, ErrServiceInactive},
		{"unknown package", func(r *Request) { r.PackageID = ptr.Ptr(int64(99)) }, ErrPackageNotFound},
		{"foreign package", func(r *Request) { r.PackageID = ptr.Ptr(int64(21)) }, ErrPackageMismatch},
		{"date in the past", func(r *Request) { r.RequestedDate = testNow.AddDate(0, 0, -1) }, ErrInvalidDate},
		{"malformed location", func(r *Request) { r.Location = json.RawMessage(`123`) }, ErrInvalidLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			req := newRequest()
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.bookings.created)
		})
	}
}

// Сбой коллаборатора - не внутренняя ошибка: вызывающий получает
// различимый ErrRemoteCallFailed и может повторить запрос
func TestExecute_RemoteCallFailed(t *testing.T) {
	t.Run("profile directory down", func(t *testing.T) {
		f := newFixture()
		f.profiles.err = profileservice.ErrServiceDegraded

		_, err := f.uc.Execute(context.Background(), newRequest())
		assert.ErrorIs(t, err, ErrRemoteCallFailed)
		assert.Empty(t, f.bookings.created)
	})

	t.Run("catalog down", func(t *testing.T) {
		f := newFixture()
		f.catalog.err = catalogservice.ErrServiceDegraded

		_, err := f.uc.Execute(context.Background(), newRequest())
		assert.ErrorIs(t, err, ErrRemoteCallFailed)
		assert.Empty(t, f.bookings.created)
	})
}

// Бронирование без привязки к каталогу: цена нулевая, услуга не указана
func TestExecute_WithoutService(t *testing.T) {
	f := newFixture()

	req := newRequest()
	req.ServiceID = nil

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.Price)
	assert.Empty(t, resp.ServiceName)
}
