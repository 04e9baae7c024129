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
	"github.com/redis/go-redis/v9"

	bookingSessionHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/booking_session"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_available_slots"
	getBusinessHoursHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_business_hours"
	getBusinessReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_business_reservations"
	getMonthGridHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_month_grid"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user_reservations"
	updateBusinessHoursHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_business_hours"
	updateReservationStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/identity/attempts"
	hoursRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/hours"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	catalogServiceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
	hoursService "github.com/m04kA/SMC-ReservationService/internal/service/hours"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationService/internal/workflow/sessions"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// cleanupInterval период очистки ограничителей неактивных клиентов
const cleanupInterval = 5 * time.Minute

// reservationStore хранилище резерваций (PostgreSQL или in-memory)
type reservationStore interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) (*domain.Reservation, error)
}

// hoursStore хранилище рабочих окон бизнесов
type hoursStore interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessHours, error)
	Upsert(ctx context.Context, h *domain.BusinessHours) (*domain.BusinessHours, error)
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type catalogClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*catalogServiceClient.Business, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var (
		reservationRepository reservationStore
		hoursRepository       hoursStore
		txMgr                 txManager
	)
	stopMetricsCh := make(chan struct{})

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		reservationRepository = reservationRepo.NewMemoryRepository()
		hoursRepository = hoursRepo.NewMemoryRepository()
		txMgr = txmanager.NewNoopManager()
		log.Warn("Using in-memory storage, data is lost on restart")
	default:
		db, err := openDatabase(cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var recorder dbmetrics.Recorder
		if metricsCollector != nil {
			recorder = metricsCollector
		}
		wrappedDB := dbmetrics.WrapWithDefault(db, recorder, stopMetricsCh)

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		hoursRepository = hoursRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Инициализируем каталог бизнесов
	var catalog catalogClient
	if cfg.CatalogService.StaticFile != "" {
		static, err := catalogServiceClient.LoadStaticClient(cfg.CatalogService.StaticFile)
		if err != nil {
			log.Fatal("Failed to load static catalog: %v", err)
		}
		catalog = static
		log.Info("Catalog loaded from %s", cfg.CatalogService.StaticFile)
	} else {
		catalog = catalogServiceClient.NewClient(
			cfg.CatalogService.URL,
			time.Duration(cfg.CatalogService.Timeout)*time.Second,
			log,
		).WithCacheTTL(time.Duration(cfg.CatalogService.CacheTTL) * time.Second)
		log.Info("Catalog client initialized (url=%s, timeout=%ds, cache_ttl=%ds)",
			cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.CatalogService.CacheTTL)
	}

	// Инициализируем публикацию событий
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		publisher = events.NewKafkaPublisher(
			cfg.Events.Brokers,
			cfg.Events.Topic,
			time.Duration(cfg.Events.WriteTimeout)*time.Second,
			log,
		)
		log.Info("Kafka publisher initialized (brokers=%v, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	}
	defer publisher.Close()

	// Инициализируем ограничитель попыток
	attemptsCfg := attempts.Config{
		MaxAttempts: cfg.Attempts.MaxAttempts,
		Lockout:     cfg.Attempts.LockoutDuration(),
	}
	var limiter middleware.AttemptLimiter
	var memoryLimiter *attempts.MemoryLimiter
	switch cfg.Attempts.Backend {
	case config.AttemptsBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Attempts.RedisAddr,
			DB:   cfg.Attempts.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to redis at %s: %v", cfg.Attempts.RedisAddr, err)
		}
		limiter = attempts.NewRedisLimiter(rdb, attemptsCfg, cfg.Metrics.ServiceName)
		log.Info("Attempt limiter backed by redis at %s", cfg.Attempts.RedisAddr)
	default:
		memoryLimiter = attempts.NewMemoryLimiter(attemptsCfg)
		limiter = memoryLimiter
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		publisher,
		metricsCollector,
		log,
	)
	hoursSvc := hoursService.NewService(
		hoursRepository,
		catalog,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		hoursRepository,
		catalog,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		hoursRepository,
		catalog,
		log,
	)

	// Сессии бронирования
	sessionRegistry := sessions.NewRegistry(sessions.Config{TTL: cfg.Sessions.TTLDuration()}, log)
	go sessionRegistry.Run(ctx)

	// Инициализируем handlers
	getMonthGrid := getMonthGridHandler.NewHandler(cfg.Calendar.DefaultLocale, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(hoursSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(hoursSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getBusinessReservations := getBusinessReservationsHandler.NewHandler(reservationSvc, log)
	bookingSession := bookingSessionHandler.NewHandler(
		sessionRegistry,
		catalog,
		getAvailableSlotsUseCase,
		createReservationUseCase,
		cfg.Calendar.DefaultLocale,
		log,
	)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if metricsCollector != nil {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		api.Use(rateLimiter.Middleware)
		go runCleanup(ctx, cleanupInterval, func() {
			if n := rateLimiter.Cleanup(); n > 0 {
				log.Info("Rate limiter: removed %d idle clients", n)
			}
		})
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	if memoryLimiter != nil {
		go runCleanup(ctx, cleanupInterval, func() { memoryLimiter.Sweep() })
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка месяца для календаря
	api.HandleFunc("/calendar", getMonthGrid.Handle).Methods(http.MethodGet)

	// Доступные слоты бизнеса на дату
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Рабочее окно бизнеса
	api.HandleFunc("/businesses/{businessId}/hours",
		getBusinessHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	guard := middleware.AttemptGuard(limiter, "reservations", log)

	// --- Резервации ---
	// Создание резервации
	protected.Handle("/reservations",
		guard(http.HandlerFunc(createReservation.Handle))).Methods(http.MethodPost)

	// Получение резервации по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Подтверждение или отмена резервации
	protected.HandleFunc("/reservations/{reservationId}/status",
		updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История резерваций пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление бизнесом ---
	// Резервации бизнеса
	protected.HandleFunc("/businesses/{businessId}/reservations",
		getBusinessReservations.Handle).Methods(http.MethodGet)

	// Обновление рабочего окна
	protected.HandleFunc("/businesses/{businessId}/hours",
		updateBusinessHours.Handle).Methods(http.MethodPut)

	// --- Сессии бронирования ---
	protected.HandleFunc("/businesses/{businessId}/booking-sessions",
		bookingSession.Create).Methods(http.MethodPost)
	protected.HandleFunc("/booking-sessions/{sessionId}", bookingSession.Get).Methods(http.MethodGet)
	protected.HandleFunc("/booking-sessions/{sessionId}", bookingSession.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/booking-sessions/{sessionId}/month", bookingSession.Navigate).Methods(http.MethodPost)
	protected.HandleFunc("/booking-sessions/{sessionId}/date", bookingSession.SelectDate).Methods(http.MethodPost)
	protected.HandleFunc("/booking-sessions/{sessionId}/time", bookingSession.SelectTime).Methods(http.MethodPost)
	protected.Handle("/booking-sessions/{sessionId}/submit",
		guard(http.HandlerFunc(bookingSession.Submit))).Methods(http.MethodPost)

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
	<-ctx.Done()

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

// openDatabase открывает пул соединений и проверяет доступность БД
func openDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// runCleanup периодически вызывает fn до отмены контекста
func runCleanup(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
