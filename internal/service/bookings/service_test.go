package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ProviderBookingService/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-ProviderBookingService/internal/infra/storage/providersettings"
	"github.com/m04kA/SMC-ProviderBookingService/internal/notifications"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ProviderBookingService/internal/service/enrichment"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/ptr"
)

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

// fakeBookingRepo повторяет семантику guarded-переходов реального
// репозитория: переход применяется только из допустимого статуса
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking

	// beforeMutate, если задан, вызывается внутри переходного метода
	// до применения мутации - позволяет тестировать гонки
	beforeMutate func()
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		copied := *b
		r.bookings[b.ID] = &copied
	}
	return r
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByClientID(ctx context.Context, clientID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.ClientID != clientID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeBookingRepo) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.ProviderID != filter.ProviderID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && filter.Status == nil && b.IsTerminal() {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeBookingRepo) applyTransition(id int64, from []domain.BookingStatus, mutate func(b *domain.Booking)) (*domain.Booking, error) {
	if r.beforeMutate != nil {
		r.beforeMutate()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}

	allowed := false
	for _, s := range from {
		if b.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, bookingRepo.ErrStatusConflict
	}

	mutate(b)
	b.UpdatedAt = testNow
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) Accept(ctx context.Context, id int64, scheduledDate *time.Time) (*domain.Booking, error) {
	return r.applyTransition(id, []domain.BookingStatus{domain.StatusRequested}, func(b *domain.Booking) {
		b.Status = domain.StatusAccepted
		b.ScheduledDate = scheduledDate
	})
}

func (r *fakeBookingRepo) Decline(ctx context.Context, id int64, reason *string) (*domain.Booking, error) {
	return r.applyTransition(id, []domain.BookingStatus{domain.StatusRequested}, func(b *domain.Booking) {
		b.Status = domain.StatusDeclined
		b.DeclineReason = reason
	})
}

func (r *fakeBookingRepo) Start(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.applyTransition(id, []domain.BookingStatus{domain.StatusAccepted}, func(b *domain.Booking) {
		b.Status = domain.StatusInProgress
	})
}

func (r *fakeBookingRepo) Complete(ctx context.Context, id int64, finalPrice *float64) (*domain.Booking, error) {
	return r.applyTransition(id, []domain.BookingStatus{domain.StatusInProgress}, func(b *domain.Booking) {
		b.Status = domain.StatusCompleted
		b.CompletedDate = ptr.Ptr(testNow)
		if finalPrice != nil {
			b.Price = *finalPrice
		}
	})
}

func (r *fakeBookingRepo) Dispute(ctx context.Context, id int64, reason string) (*domain.Booking, error) {
	return r.applyTransition(id, []domain.BookingStatus{domain.StatusCompleted}, func(b *domain.Booking) {
		b.Status = domain.StatusDisputed
		b.DisputeReason = &reason
		b.DisputedAt = ptr.Ptr(testNow)
	})
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id int64, reason string) (*domain.Booking, error) {
	return r.applyTransition(id, domain.ActiveStatuses, func(b *domain.Booking) {
		b.Status = domain.StatusCancelled
		b.CancellationReason = &reason
	})
}

type fakeSettingsRepo struct {
	settings map[string]*domain.ProviderSettings
}

func (r *fakeSettingsRepo) GetByProviderID(ctx context.Context, providerID string) (*domain.ProviderSettings, error) {
	if r.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	s, ok := r.settings[providerID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return s, nil
}

// fakeEnricher заполняет только производные поля, без походов к коллабораторам
type fakeEnricher struct{}

func (fakeEnricher) EnrichBooking(ctx context.Context, b *domain.Booking, now time.Time, disputeWindowDays int) *enrichment.EnrichedBooking {
	return &enrichment.EnrichedBooking{
		Booking: *b,

		CanAccept:   b.CanAccept(),
		CanDecline:  b.CanDecline(),
		CanStart:    b.CanStart(now),
		CanComplete: b.CanComplete(),
		CanDispute:  b.CanDispute(now, disputeWindowDays),
		IsOverdue:   b.IsOverdue(now),

		EstimatedRevenue: b.EstimatedRevenue(),
		ActualRevenue:    b.ActualRevenue(),

		LocationDisplay:  enrichment.FormatLocation(b.Location),
		TimeUntilService: enrichment.FormatTimeUntil(b.ScheduledDate, now),
	}
}

func (f fakeEnricher) EnrichBookings(ctx context.Context, bookings []*domain.Booking, now time.Time, disputeWindowDays int) []*enrichment.EnrichedBooking {
	result := make([]*enrichment.EnrichedBooking, len(bookings))
	for i, b := range bookings {
		result[i] = f.EnrichBooking(ctx, b, now, disputeWindowDays)
	}
	return result
}

func (fakeEnricher) Refresh() {}

type fakeNotifier struct {
	mu        sync.Mutex
	published []notifications.Notification
}

func (n *fakeNotifier) Publish(notification notifications.Notification) notifications.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, notification)
	return notification
}

func (n *fakeNotifier) last() notifications.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.published[len(n.published)-1]
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.published)
}

func newTestService(repo *fakeBookingRepo, settings *fakeSettingsRepo, notifier *fakeNotifier) *Service {
	if settings == nil {
		settings = &fakeSettingsRepo{}
	}
	if notifier == nil {
		notifier = &fakeNotifier{}
	}
	svc := NewService(repo, settings, fakeEnricher{}, notifier, domain.DefaultDisputeWindowDays, nopLogger{})
	svc.timeProvider = &fixedTime{now: testNow}
	return svc
}

func requestedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            1,
		ClientID:      "client-1",
		ProviderID:    "provider-1",
		Price:         100,
		RequestedDate: testNow.AddDate(0, 0, 3),
		Status:        domain.StatusRequested,
	}
}

func TestGetByID(t *testing.T) {
	repo := newFakeBookingRepo(requestedBooking())
	svc := newTestService(repo, nil, nil)

	t.Run("authentication required", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, "")
		assert.ErrorIs(t, err, ErrAuthenticationRequired)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 999, "client-1")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("access denied for stranger", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, "stranger")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("both sides can read", func(t *testing.T) {
		for _, caller := range []string{"client-1", "provider-1"} {
			resp, err := svc.GetByID(context.Background(), 1, caller)
			require.NoError(t, err)
			assert.Equal(t, int64(1), resp.ID)
			assert.True(t, resp.CanAccept)
		}
	})
}

func TestAccept(t *testing.T) {
	t.Run("happy path with scheduled date", func(t *testing.T) {
		repo := newFakeBookingRepo(requestedBooking())
		notifier := &fakeNotifier{}
		svc := newTestService(repo, nil, notifier)

		scheduled := testNow.AddDate(0, 0, 5)
		resp, err := svc.Accept(context.Background(), 1, &models.AcceptBookingRequest{
			ProviderID:    "provider-1",
			ScheduledDate: &scheduled,
		})

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusAccepted), resp.Status)
		assert.False(t, resp.CanAccept)
		assert.False(t, resp.CanStart) // Дата в будущем
		require.NotNil(t, resp.ScheduledDate)

		// Уведомлена вторая сторона - клиент
		require.Equal(t, 1, notifier.count())
		assert.Equal(t, "client-1", notifier.last().Recipient)
		assert.Equal(t, notifications.KindBookingAccepted, notifier.last().Kind)
	})

	t.Run("authentication required", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(requestedBooking()), nil, nil)
		_, err := svc.Accept(context.Background(), 1, &models.AcceptBookingRequest{})
		assert.ErrorIs(t, err, ErrAuthenticationRequired)
	})

	t.Run("foreign provider denied", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(requestedBooking()), nil, nil)
		_, err := svc.Accept(context.Background(), 1, &models.AcceptBookingRequest{ProviderID: "provider-2"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("second accept fails precondition", func(t *testing.T) {
		repo := newFakeBookingRepo(requestedBooking())
		svc := newTestService(repo, nil, nil)

		_, err := svc.Accept(context.Background(), 1, &models.AcceptBookingRequest{ProviderID: "provider-1"})
		require.NoError(t, err)

		_, err = svc.Accept(context.Background(), 1, &models.AcceptBookingRequest{ProviderID: "provider-1"})
		assert.ErrorIs(t, err, ErrPreconditionFailed)
	})
}

func TestAcceptThenStartThenComplete(t *testing.T) {
	repo := newFakeBookingRepo(requestedBooking())
	notifier := &fakeNotifier{}
	svc := newTestService(repo, nil, notifier)

	// Принимаем без даты - можно начинать сразу
	resp, err := svc.Accept(context.Background(), 1, &models.AcceptBookingRequest{ProviderID: "provider-1"})
	require.NoError(t, err)
	assert.True(t, resp.CanStart)

	resp, err = svc.Start(context.Background(), 1, &models.StartBookingRequest{ProviderID: "provider-1"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), resp.Status)
	assert.True(t, resp.CanComplete)

	resp, err = svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{
		ProviderID: "provider-1",
		FinalPrice: ptr.Ptr(250.0),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, 250.0, resp.Price)
	assert.Equal(t, 250.0, resp.ActualRevenue)
	assert.NotNil(t, resp.CompletedDate)

	// Три перехода - три уведомления клиенту
	assert.Equal(t, 3, notifier.count())
}

func TestStart_BlockedByFutureSchedule(t *testing.T) {
	b := requestedBooking()
	b.Status = domain.StatusAccepted
	b.ScheduledDate = ptr.Ptr(testNow.AddDate(0, 0, 2))

	svc := newTestService(newFakeBookingRepo(b), nil, nil)

	_, err := svc.Start(context.Background(), 1, &models.StartBookingRequest{ProviderID: "provider-1"})
	assert.ErrorIs(t, err, ErrPreconditionFailed)
}

func TestComplete_NegativePriceRejected(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(requestedBooking()), nil, nil)

	_, err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{
		ProviderID: "provider-1",
		FinalPrice: ptr.Ptr(-5.0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDispute(t *testing.T) {
	completedBooking := func(completedDaysAgo int) *domain.Booking {
		b := requestedBooking()
		b.Status = domain.StatusCompleted
		b.CompletedDate = ptr.Ptr(testNow.AddDate(0, 0, -completedDaysAgo))
		return b
	}

	t.Run("client disputes within window", func(t *testing.T) {
		notifier := &fakeNotifier{}
		svc := newTestService(newFakeBookingRepo(completedBooking(5)), nil, notifier)

		resp, err := svc.Dispute(context.Background(), 1, &models.DisputeBookingRequest{
			CallerID: "client-1",
			Reason:   "Работа не выполнена",
		})

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusDisputed), resp.Status)

		// Инициатор - клиент, уведомлен провайдер
		assert.Equal(t, "provider-1", notifier.last().Recipient)
		assert.Equal(t, notifications.KindBookingDisputed, notifier.last().Kind)
	})

	t.Run("provider can dispute too", func(t *testing.T) {
		notifier := &fakeNotifier{}
		svc := newTestService(newFakeBookingRepo(completedBooking(5)), nil, notifier)

		_, err := svc.Dispute(context.Background(), 1, &models.DisputeBookingRequest{
			CallerID: "provider-1",
			Reason:   "Клиент не оплатил",
		})

		require.NoError(t, err)
		assert.Equal(t, "client-1", notifier.last().Recipient)
	})

	t.Run("reason required", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(completedBooking(5)), nil, nil)
		_, err := svc.Dispute(context.Background(), 1, &models.DisputeBookingRequest{CallerID: "client-1"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("window expired", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(completedBooking(31)), nil, nil)
		_, err := svc.Dispute(context.Background(), 1, &models.DisputeBookingRequest{
			CallerID: "client-1",
			Reason:   "Поздно спохватился",
		})
		assert.ErrorIs(t, err, ErrDisputeWindowExpired)
	})

	t.Run("provider override narrows window", func(t *testing.T) {
		settings := &fakeSettingsRepo{settings: map[string]*domain.ProviderSettings{
			"provider-1": {ProviderID: "provider-1", DisputeWindowDays: ptr.Ptr(7)},
		}}
		svc := newTestService(newFakeBookingRepo(completedBooking(10)), settings, nil)

		_, err := svc.Dispute(context.Background(), 1, &models.DisputeBookingRequest{
			CallerID: "client-1",
			Reason:   "Просроченная претензия",
		})
		assert.ErrorIs(t, err, ErrDisputeWindowExpired)
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(completedBooking(5)), nil, nil)
		_, err := svc.Dispute(context.Background(), 1, &models.DisputeBookingRequest{
			CallerID: "stranger",
			Reason:   "Чужой спор",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("only completed can be disputed", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(requestedBooking()), nil, nil)
		_, err := svc.Dispute(context.Background(), 1, &models.DisputeBookingRequest{
			CallerID: "client-1",
			Reason:   "Рано",
		})
		assert.ErrorIs(t, err, ErrPreconditionFailed)
	})
}

func TestCancel(t *testing.T) {
	t.Run("client cancels active booking", func(t *testing.T) {
		notifier := &fakeNotifier{}
		svc := newTestService(newFakeBookingRepo(requestedBooking()), nil, notifier)

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			ClientID: "client-1",
			Reason:   "Планы изменились",
		})

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		assert.Equal(t, "provider-1", notifier.last().Recipient)
	})

	t.Run("provider cannot cancel", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(requestedBooking()), nil, nil)
		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			ClientID: "provider-1",
			Reason:   "Не мое право",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("terminal booking cannot be cancelled", func(t *testing.T) {
		b := requestedBooking()
		b.Status = domain.StatusDeclined
		svc := newTestService(newFakeBookingRepo(b), nil, nil)

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			ClientID: "client-1",
			Reason:   "Поздно",
		})
		assert.ErrorIs(t, err, ErrPreconditionFailed)
	})
}

// Конкурентный повтор той же операции отклоняется реестром выполняющихся
func TestTransition_ConcurrentDuplicateRejected(t *testing.T) {
	repo := newFakeBookingRepo(requestedBooking())

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	repo.beforeMutate = func() {
		once.Do(func() {
			close(entered)
			<-release
		})
	}

	svc := newTestService(repo, nil, nil)

	results := make(chan error, 1)
	go func() {
		_, err := svc.Accept(context.Background(), 1, &models.AcceptBookingRequest{ProviderID: "provider-1"})
		results <- err
	}()

	// Первый вызов завис внутри мутации - второй должен отклониться сразу
	<-entered
	assert.True(t, svc.IsOperationInProgress(OpAccept, 1))

	_, err := svc.Accept(context.Background(), 1, &models.AcceptBookingRequest{ProviderID: "provider-1"})
	assert.ErrorIs(t, err, ErrOperationInProgress)

	close(release)
	require.NoError(t, <-results)
	assert.False(t, svc.IsOperationInProgress(OpAccept, 1))
}

// Проигранная гонка статусов на уровне хранилища превращается в
// ErrPreconditionFailed, а не в internal error
func TestTransition_LostStatusRace(t *testing.T) {
	repo := newFakeBookingRepo(requestedBooking())

	// Между check и mutate кто-то успевает отклонить запрос
	var once sync.Once
	repo.beforeMutate = func() {
		once.Do(func() {
			repo.mu.Lock()
			repo.bookings[1].Status = domain.StatusDeclined
			repo.mu.Unlock()
		})
	}

	svc := newTestService(repo, nil, nil)

	_, err := svc.Accept(context.Background(), 1, &models.AcceptBookingRequest{ProviderID: "provider-1"})
	assert.ErrorIs(t, err, ErrPreconditionFailed)
}

func TestGetClientBookings(t *testing.T) {
	completed := requestedBooking()
	completed.ID = 2
	completed.Status = domain.StatusCompleted

	repo := newFakeBookingRepo(requestedBooking(), completed)
	svc := newTestService(repo, nil, nil)

	t.Run("all statuses", func(t *testing.T) {
		resp, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{ClientID: "client-1"})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		status := "completed"
		resp, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
			ClientID: "client-1",
			Status:   &status,
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(2), resp.Bookings[0].ID)
	})

	t.Run("invalid status", func(t *testing.T) {
		status := "bogus"
		_, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
			ClientID: "client-1",
			Status:   &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

// Флаг canDispute в списке клиента обязан совпадать с решением операции
// Dispute: окно спора резолвится по провайдеру каждого бронирования,
// а не по умолчанию сервиса
func TestGetClientBookings_DisputeWindowPerProvider(t *testing.T) {
	completedDaysAgo := func(id int64, providerID string, days int) *domain.Booking {
		b := requestedBooking()
		b.ID = id
		b.ProviderID = providerID
		b.Status = domain.StatusCompleted
		b.CompletedDate = ptr.Ptr(testNow.AddDate(0, 0, -days))
		return b
	}

	// provider-1 сузил окно до 7 дней, provider-2 живёт на умолчании (30)
	settings := &fakeSettingsRepo{settings: map[string]*domain.ProviderSettings{
		"provider-1": {ProviderID: "provider-1", DisputeWindowDays: ptr.Ptr(7)},
	}}

	repo := newFakeBookingRepo(
		completedDaysAgo(1, "provider-1", 10),
		completedDaysAgo(2, "provider-2", 10),
	)
	svc := newTestService(repo, settings, nil)

	resp, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{ClientID: "client-1"})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)

	flags := make(map[int64]bool, 2)
	for _, b := range resp.Bookings {
		flags[b.ID] = b.CanDispute
	}
	assert.False(t, flags[1])
	assert.True(t, flags[2])

	// Операция подтверждает флаги
	_, err = svc.Dispute(context.Background(), 1, &models.DisputeBookingRequest{
		CallerID: "client-1",
		Reason:   "Просроченная претензия",
	})
	assert.ErrorIs(t, err, ErrDisputeWindowExpired)

	_, err = svc.Dispute(context.Background(), 2, &models.DisputeBookingRequest{
		CallerID: "client-1",
		Reason:   "Работа не выполнена",
	})
	assert.NoError(t, err)
}

func TestGetProviderBookings_Views(t *testing.T) {
	pending := requestedBooking()

	upcoming := requestedBooking()
	upcoming.ID = 2
	upcoming.Status = domain.StatusAccepted
	upcoming.ScheduledDate = ptr.Ptr(testNow.AddDate(0, 0, 2))

	overdue := requestedBooking()
	overdue.ID = 3
	overdue.Status = domain.StatusAccepted
	overdue.ScheduledDate = ptr.Ptr(testNow.AddDate(0, 0, -2))

	today := requestedBooking()
	today.ID = 4
	today.Status = domain.StatusAccepted
	today.ScheduledDate = ptr.Ptr(testNow.Add(3 * time.Hour))

	repo := newFakeBookingRepo(pending, upcoming, overdue, today)
	svc := newTestService(repo, nil, nil)

	cases := []struct {
		view string
		ids  []int64
	}{
		{"pending", []int64{1}},
		{"upcoming", []int64{2, 4}},
		{"active", []int64{2, 3, 4}},
		{"overdue", []int64{3}},
		{"today", []int64{4}},
	}

	for _, tc := range cases {
		t.Run(tc.view, func(t *testing.T) {
			view := tc.view
			resp, err := svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{
				ProviderID: "provider-1",
				View:       &view,
			})
			require.NoError(t, err)

			got := make([]int64, 0, len(resp.Bookings))
			for _, b := range resp.Bookings {
				got = append(got, b.ID)
			}
			assert.ElementsMatch(t, tc.ids, got)
		})
	}

	t.Run("invalid view", func(t *testing.T) {
		view := "bogus"
		_, err := svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{
			ProviderID: "provider-1",
			View:       &view,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
