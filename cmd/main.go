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

	confirmBookingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/confirm_booking"
	confirmPaymentHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/create_booking"
	createOfferingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/create_offering"
	getAvailableUnitsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_available_units"
	getBookingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_customer_bookings"
	getOfferingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_offering"
	getSupplierBookingsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_supplier_bookings"
	getSupplierDashboardHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_supplier_dashboard"
	listOfferingsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/list_offerings"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/config"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/inventory"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/offering"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/ticket"
	notificationServiceClient "github.com/m04kA/SMC-MarketplaceService/internal/integrations/notificationservice"
	userServiceClient "github.com/m04kA/SMC-MarketplaceService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-MarketplaceService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-MarketplaceService/internal/service/catalog"
	confirmBookingUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/confirm_booking"
	confirmPaymentUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_booking"
	createOfferingUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_offering"
	getAvailableUnitsUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/get_available_units"
	"github.com/m04kA/SMC-MarketplaceService/migrations"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceService/pkg/metrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-MarketplaceService/pkg/txmanager"
)

// transactionManager общий интерфейс txmanager и simpletxmanager
type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-MarketplaceService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	notificationClient := notificationServiceClient.NewClient(
		cfg.NotificationService.URL,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, NotificationService enabled=%t)",
		cfg.UserService.URL, cfg.UserService.Timeout, notificationClient.Enabled())

	// Инициализируем репозитории (с метриками или без)
	var (
		executor dbmetrics.DBExecutor
		txMgr    transactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	offeringRepository := offering.NewRepository(executor)
	inventoryRepository := inventory.NewRepository(executor, cfg.Generation.BatchSize)
	bookingRepository := booking.NewRepository(executor)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(offeringRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, offeringRepository, log)

	// Инициализируем use cases
	createOfferingUseCase := createOfferingUC.NewUseCase(
		offeringRepository,
		inventoryRepository,
		txMgr,
		metricsCollector,
		createOfferingUC.GenerateOptions{ActivityHonorsDaysOff: cfg.Generation.ActivityHonorsDaysOff},
		log,
	)

	getAvailableUnitsUseCase := getAvailableUnitsUC.NewUseCase(
		offeringRepository,
		inventoryRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		offeringRepository,
		inventoryRepository,
		&createBookingUC.RealTimeProvider{},
		log,
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		offeringRepository,
		inventoryRepository,
		ticket.NewGenerator(),
		notificationClient,
		txMgr,
		metricsCollector,
		log,
	)

	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		offeringRepository,
		notificationClient,
		txMgr,
		metricsCollector,
		confirmPaymentUC.Options{RequireConfirmation: cfg.Booking.RequireConfirmationBeforePayment},
		log,
	)

	// Инициализируем handlers
	listOfferings := listOfferingsHandler.NewHandler(catalogSvc, log)
	getOffering := getOfferingHandler.NewHandler(catalogSvc, log)
	getAvailableUnits := getAvailableUnitsHandler.NewHandler(getAvailableUnitsUseCase, log)
	createOffering := createOfferingHandler.NewHandler(createOfferingUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getSupplierBookings := getSupplierBookingsHandler.NewHandler(bookingSvc, log)
	getSupplierDashboard := getSupplierDashboardHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог предложений
	api.HandleFunc("/offerings", listOfferings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/offerings/{offeringId}", getOffering.Handle).Methods(http.MethodGet)

	// Единицы инвентаря ценового варианта
	api.HandleFunc("/offers/{offerId}/units", getAvailableUnits.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(userClient, log))

	// --- Администрирование ---
	protected.HandleFunc("/admin/offerings", createOffering.Handle).Methods(http.MethodPost)

	// --- Бронирования клиента ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customer/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Поставщик ---
	protected.HandleFunc("/supplier/bookings", getSupplierBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/supplier/dashboard", getSupplierDashboard.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/confirm-booking/{bookingId}", confirmBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/confirm-payment/{bookingId}", confirmPayment.Handle).Methods(http.MethodPost)

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
	close(stopMetricsCh)

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
