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

	assignStaffHandler "github.com/m1shk4/AquaWash-BookingService/internal/api/handlers/assign_staff"
	checkSlotHandler "github.com/m1shk4/AquaWash-BookingService/internal/api/handlers/check_slot"
	createBookingHandler "github.com/m1shk4/AquaWash-BookingService/internal/api/handlers/create_booking"
	createBulkBookingsHandler "github.com/m1shk4/AquaWash-BookingService/internal/api/handlers/create_bulk_bookings"
	getAvailabilityHandler "github.com/m1shk4/AquaWash-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m1shk4/AquaWash-BookingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m1shk4/AquaWash-BookingService/internal/api/handlers/get_customer_bookings"
	transitionStatusHandler "github.com/m1shk4/AquaWash-BookingService/internal/api/handlers/transition_status"
	"github.com/m1shk4/AquaWash-BookingService/internal/api/middleware"
	"github.com/m1shk4/AquaWash-BookingService/internal/config"
	bookingRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/booking"
	centerRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/center"
	customerRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/customer"
	loyaltyRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/loyalty"
	pricingRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/pricing"
	sequenceRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/sequence"
	staffRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/staff"
	vehicleRepo "github.com/m1shk4/AquaWash-BookingService/internal/infra/storage/vehicle"
	"github.com/m1shk4/AquaWash-BookingService/internal/integrations/notifier"
	bookingsService "github.com/m1shk4/AquaWash-BookingService/internal/service/bookings"
	createBookingUC "github.com/m1shk4/AquaWash-BookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m1shk4/AquaWash-BookingService/internal/usecase/get_availability"
	transitionStatusUC "github.com/m1shk4/AquaWash-BookingService/internal/usecase/transition_status"
	"github.com/m1shk4/AquaWash-BookingService/pkg/dbmetrics"
	"github.com/m1shk4/AquaWash-BookingService/pkg/logger"
	"github.com/m1shk4/AquaWash-BookingService/pkg/metrics"
	"github.com/m1shk4/AquaWash-BookingService/pkg/simpletxmanager"
	"github.com/m1shk4/AquaWash-BookingService/pkg/txmanager"
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

	log.Info("Starting AquaWash-BookingService...")
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

	// Инициализируем publisher событий бронирований
	var events notifier.Notifier
	if cfg.RabbitMQ.Enabled {
		client, err := notifier.NewClient(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		events = client
		log.Info("Booking events publisher connected (queue=%s)", cfg.RabbitMQ.Queue)
	} else {
		events = notifier.NewDisabled()
		log.Info("Booking events publisher disabled")
	}
	defer events.Close()

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		centerRepository   *centerRepo.Repository
		customerRepository *customerRepo.Repository
		vehicleRepository  *vehicleRepo.Repository
		staffRepository    *staffRepo.Repository
		pricingRepository  *pricingRepo.Repository
		sequenceRepository *sequenceRepo.Repository
		loyaltyRepository  *loyaltyRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		centerRepository = centerRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		pricingRepository = pricingRepo.NewRepository(wrappedDB)
		sequenceRepository = sequenceRepo.NewRepository(wrappedDB)
		loyaltyRepository = loyaltyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		centerRepository = centerRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		vehicleRepository = vehicleRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		pricingRepository = pricingRepo.NewRepository(db)
		sequenceRepository = sequenceRepo.NewRepository(db)
		loyaltyRepository = loyaltyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		customerRepository,
		staffRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		centerRepository,
		customerRepository,
		vehicleRepository,
		staffRepository,
		pricingRepository,
		sequenceRepository,
		txMgr,
		events,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		centerRepository,
		log,
	)

	transitionStatusUseCase := transitionStatusUC.NewUseCase(
		bookingRepository,
		customerRepository,
		staffRepository,
		loyaltyRepository,
		txMgr,
		events,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createBulkBookings := createBulkBookingsHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(getAvailabilityUseCase, log)
	transitionStatus := transitionStatusHandler.NewHandler(transitionStatusUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	assignStaff := assignStaffHandler.NewHandler(bookingSvc, log)

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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность постов центра на дату
	api.HandleFunc("/centers/{centerId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Проверка конкретного слота
	api.HandleFunc("/centers/{centerId}/slot-check",
		checkSlot.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Пакетное создание бронирований
	protected.HandleFunc("/bookings/bulk", createBulkBookings.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перевод бронирования по жизненному циклу
	protected.HandleFunc("/bookings/{bookingId}/status", transitionStatus.Handle).Methods(http.MethodPatch)

	// Назначение сотрудников на бронирование
	protected.HandleFunc("/bookings/{bookingId}/staff", assignStaff.Handle).Methods(http.MethodPut)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

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
