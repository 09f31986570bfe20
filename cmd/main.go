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
	"github.com/redis/go-redis/v9"

	commitSettlementHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/commit_settlement"
	confirmSettlementHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/confirm_settlement"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getEarliestSlotHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_earliest_slot"
	getScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_schedule"
	getSettlementHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_settlement"
	getShopBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_shop_bookings"
	getShopSettingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_shop_settings"
	getShopSettlementsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_shop_settlements"
	getSystemConfigHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_system_config"
	getUserBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_user_bookings"
	previewSettlementsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/preview_settlements"
	transitionBookingStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/transition_booking_status"
	updateShopSettingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_shop_settings"
	updateSystemConfigHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_system_config"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	systemConfigCache "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/systemconfig"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	settlementRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/settlement"
	shopRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shop"
	systemConfigRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/systemconfig"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	settlementsService "github.com/m04kA/SMC-SalonBooking/internal/service/settlements"
	shopsService "github.com/m04kA/SMC-SalonBooking/internal/service/shops"
	systemConfigService "github.com/m04kA/SMC-SalonBooking/internal/service/systemconfig"
	commitSettlementUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/commit_settlement"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	previewSettlementsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/preview_settlements"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// EventPublisher общий интерфейс для Redis и no-op публикатора
type EventPublisher interface {
	Publish(ctx context.Context, eventType events.Type, payload interface{}) error
}

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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from config.toml")

	// Метрики (nil при выключенных - все методы nil-safe)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis: кеш системной конфигурации и канал событий
	var (
		configCache systemConfigService.Cache
		publisher   EventPublisher = events.NopPublisher{}
	)

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		configCache = systemConfigCache.NewCache(
			redisClient,
			cfg.Redis.SystemConfigKey,
			time.Duration(cfg.Redis.SystemConfigTTL)*time.Second,
		)
		publisher = events.NewPublisher(
			redisClient,
			cfg.Redis.EventsChannel,
			time.Duration(cfg.Redis.PublishTimeoutSec)*time.Second,
		)
		log.Info("Redis connected (addr=%s, channel=%s)", cfg.Redis.Addr, cfg.Redis.EventsChannel)
	} else {
		log.Warn("Redis disabled: system config is read from database, events are not published")
	}

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	shopRepository := shopRepo.NewRepository(wrappedDB)
	settlementRepository := settlementRepo.NewRepository(wrappedDB)
	systemConfigRepository := systemConfigRepo.NewRepository(wrappedDB)

	// Сервисы
	systemConfigSvc := systemConfigService.NewService(systemConfigRepository, configCache, publisher, log)
	scheduleSvc := scheduleService.NewService(shopRepository, log)
	shopsSvc := shopsService.NewService(shopRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, shopRepository, txMgr, publisher, log)
	settlementSvc := settlementsService.NewService(settlementRepository, shopRepository, txMgr, publisher, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		shopRepository,
		systemConfigSvc,
		txMgr,
		publisher,
		metricsCollector,
		createBookingUC.Options{
			GracePeriodMinutes:     cfg.Booking.GracePeriodMinutes,
			MaxReservationAttempts: cfg.Booking.MaxReservationAttempts,
		},
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		shopRepository,
		cfg.Booking.EarliestLookaheadDays,
		log,
	)
	previewSettlementsUseCase := previewSettlementsUC.NewUseCase(bookingRepository, log)
	commitSettlementUseCase := commitSettlementUC.NewUseCase(
		bookingRepository,
		settlementRepository,
		shopRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	// Handlers
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getEarliestSlot := getEarliestSlotHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getShopBookings := getShopBookingsHandler.NewHandler(bookingSvc, log)
	transitionBookingStatus := transitionBookingStatusHandler.NewHandler(bookingSvc, log)
	getShopSettings := getShopSettingsHandler.NewHandler(shopsSvc, log)
	updateShopSettings := updateShopSettingsHandler.NewHandler(shopsSvc, log)
	previewSettlements := previewSettlementsHandler.NewHandler(previewSettlementsUseCase, log)
	commitSettlement := commitSettlementHandler.NewHandler(commitSettlementUseCase, log)
	confirmSettlement := confirmSettlementHandler.NewHandler(settlementSvc, log)
	getSettlement := getSettlementHandler.NewHandler(settlementSvc, log)
	getShopSettlements := getShopSettlementsHandler.NewHandler(settlementSvc, log)
	getSystemConfig := getSystemConfigHandler.NewHandler(systemConfigSvc, log)
	updateSystemConfig := updateSystemConfigHandler.NewHandler(systemConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/barbers/{barberId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/earliest-slot", getEarliestSlot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/settings", getShopSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/system-config", getSystemConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	var createBookingRoute http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		createBookingRoute = limiter.Limit(createBookingRoute)
		log.Info("Rate limit for booking creation: %d req/min, burst %d",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	protected.Handle("/bookings", createBookingRoute).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", transitionBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для владельцев) ---
	protected.HandleFunc("/shops/{shopId}/bookings", getShopBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/settings", updateShopSettings.Handle).Methods(http.MethodPut)

	// ============================================================
	// ADMIN ROUTES (администраторы платформы)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminOnly(cfg.Admin.UserIDs))

	admin.HandleFunc("/settlements/preview", previewSettlements.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settlements/{settlementId:[0-9]+}", getSettlement.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settlements/{settlementId:[0-9]+}/confirm", confirmSettlement.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/shops/{shopId}/settlements", commitSettlement.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/shops/{shopId}/settlements", getShopSettlements.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/system-config", updateSystemConfig.Handle).Methods(http.MethodPut)

	if len(cfg.Admin.UserIDs) == 0 {
		log.Warn("No platform admins configured: settlement and system config routes will reject everyone")
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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
