package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	acceptBookingHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/accept_booking"
	cancelBookingHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/create_booking"
	declineBookingHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/decline_booking"
	disputeBookingHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/dispute_booking"
	getBookingHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/get_client_bookings"
	getNotificationsHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/get_notifications"
	getProviderBookingsHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/get_provider_bookings"
	getProviderDashboardHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/get_provider_dashboard"
	getProviderSettingsHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/get_provider_settings"
	markNotificationsReadHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/mark_notifications_read"
	startBookingHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/start_booking"
	updateProviderSettingsHandler "github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers/update_provider_settings"
	"github.com/m04kA/SMC-ProviderBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ProviderBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ProviderBookingService/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-ProviderBookingService/internal/infra/storage/providersettings"
	catalogServiceClient "github.com/m04kA/SMC-ProviderBookingService/internal/integrations/catalogservice"
	profileServiceClient "github.com/m04kA/SMC-ProviderBookingService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-ProviderBookingService/internal/notifications"
	bookingsService "github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings"
	enrichmentService "github.com/m04kA/SMC-ProviderBookingService/internal/service/enrichment"
	settingsService "github.com/m04kA/SMC-ProviderBookingService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-ProviderBookingService/internal/usecase/create_booking"
	getProviderDashboardUC "github.com/m04kA/SMC-ProviderBookingService/internal/usecase/get_provider_dashboard"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/logger"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/metrics"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ProviderBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds, CatalogService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout, cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		settingsRepository *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Хранилище уведомлений - процессно-локальное, живет столько же,
	// сколько процесс
	notificationStore := notifications.NewStore()

	// Инициализируем сервисы
	enricher := enrichmentService.NewService(profileClient, catalogClient, log)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		settingsRepository,
		enricher,
		notificationStore,
		cfg.Booking.DisputeWindowDays,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		profileClient,
		cfg.Booking.DisputeWindowDays,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		profileClient,
		catalogClient,
		txMgr,
		notificationStore,
		log,
	)

	getProviderDashboardUseCase := getProviderDashboardUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		profileClient,
		enricher,
		cfg.Booking.DisputeWindowDays,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	acceptBooking := acceptBookingHandler.NewHandler(bookingSvc, log)
	declineBooking := declineBookingHandler.NewHandler(bookingSvc, log)
	startBooking := startBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	disputeBooking := disputeBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	getProviderDashboard := getProviderDashboardHandler.NewHandler(getProviderDashboardUseCase, log)
	getProviderSettings := getProviderSettingsHandler.NewHandler(settingsSvc, log)
	updateProviderSettings := updateProviderSettingsHandler.NewHandler(settingsSvc, log)
	getNotifications := getNotificationsHandler.NewHandler(notificationStore, log)
	markNotificationsRead := markNotificationsReadHandler.NewHandler(notificationStore, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание запроса на бронирование
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Переходы жизненного цикла
	protected.HandleFunc("/bookings/{bookingId}/accept", acceptBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/decline", declineBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/start", startBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/dispute", disputeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Кабинет клиента ---
	// История бронирований клиента
	protected.HandleFunc("/clients/me/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет провайдера ---
	// Бронирования провайдера с фильтрами и именованными выборками
	protected.HandleFunc("/providers/me/bookings", getProviderBookings.Handle).Methods(http.MethodGet)

	// Дашборд: статистика плюс обогащённый список
	protected.HandleFunc("/providers/me/dashboard", getProviderDashboard.Handle).Methods(http.MethodGet)

	// Настройки провайдера
	protected.HandleFunc("/providers/me/settings", getProviderSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/me/settings", updateProviderSettings.Handle).Methods(http.MethodPut)

	// --- Уведомления ---
	protected.HandleFunc("/notifications", getNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read", markNotificationsRead.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
