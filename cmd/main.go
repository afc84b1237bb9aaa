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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonAgenda/internal/api/handlers"
	createBookingHandler "github.com/m04kA/SMC-SalonAgenda/internal/api/handlers/create_booking"
	createProfessionalHandler "github.com/m04kA/SMC-SalonAgenda/internal/api/handlers/create_professional"
	createServiceHandler "github.com/m04kA/SMC-SalonAgenda/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/m04kA/SMC-SalonAgenda/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonAgenda/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonAgenda/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-SalonAgenda/internal/api/handlers/list_bookings"
	listDaysHandler "github.com/m04kA/SMC-SalonAgenda/internal/api/handlers/list_days"
	listProfessionalsHandler "github.com/m04kA/SMC-SalonAgenda/internal/api/handlers/list_professionals"
	listServicesHandler "github.com/m04kA/SMC-SalonAgenda/internal/api/handlers/list_services"
	notifyWhatsAppHandler "github.com/m04kA/SMC-SalonAgenda/internal/api/handlers/notify_whatsapp"
	"github.com/m04kA/SMC-SalonAgenda/internal/api/middleware"
	"github.com/m04kA/SMC-SalonAgenda/internal/availability"
	"github.com/m04kA/SMC-SalonAgenda/internal/config"
	"github.com/m04kA/SMC-SalonAgenda/internal/infra/cache/occupancy"
	bookingRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonAgenda/internal/integrations/notifier"
	bookingsService "github.com/m04kA/SMC-SalonAgenda/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SalonAgenda/internal/service/catalog"
	createBookingUC "github.com/m04kA/SMC-SalonAgenda/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonAgenda/internal/usecase/get_available_slots"
	listDaysUC "github.com/m04kA/SMC-SalonAgenda/internal/usecase/list_days"
	"github.com/m04kA/SMC-SalonAgenda/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonAgenda/pkg/logger"
	"github.com/m04kA/SMC-SalonAgenda/pkg/metrics"
	"github.com/m04kA/SMC-SalonAgenda/pkg/txmanager"
)

const msgDatabaseUnavailable = "база данных недоступна"

// recoveryLogger адаптер логгера для gorilla/handlers.RecoveryHandler
type recoveryLogger struct {
	log *logger.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("Recovered from panic: %s", fmt.Sprint(v...))
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

	log.Info("Starting SMC-SalonAgenda...")
	log.Info("Configuration loaded (timezone=%s, slot_interval=%dm, calendar_days=%d)",
		cfg.Location(), cfg.Schedule.SlotIntervalMinutes, cfg.Calendar.Days)

	// Инициализируем метрики (если включены). nil коллектор ничего не пишет.
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Кэш занятости мастеров
	var occupancyCache occupancy.Cache = occupancy.Noop{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis: addr=%s, error=%v", cfg.Redis.Addr, err)
		}

		occupancyCache = occupancy.NewRedisCache(redisClient, cfg.Redis.TTL())
		log.Info("Occupancy cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
	}

	// Календарь и расчёт слотов
	workingHours, err := cfg.WorkingHoursTable()
	if err != nil {
		log.Fatal("Invalid working hours: %v", err)
	}
	calculator, err := availability.NewCalculator(workingHours, cfg.Schedule.SlotIntervalMinutes, cfg.Location())
	if err != nil {
		log.Fatal("Failed to build availability calculator: %v", err)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB, cfg.Schedule.TxMaxAttempts)

	whatsapp := notifier.New(log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, cfg.Location(), log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		txMgr,
		calculator,
		occupancyCache,
		whatsapp,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		calculator,
		occupancyCache,
		log,
	)

	listDaysUseCase := listDaysUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		calculator,
		cfg.Calendar.Days,
		log,
	)

	// Инициализируем handlers
	listDays := listDaysHandler.NewHandler(listDaysUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	notifyWhatsApp := notifyWhatsAppHandler.NewHandler(bookingSvc, whatsapp, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listProfessionals := listProfessionalsHandler.NewHandler(catalogSvc, log)
	createProfessional := createProfessionalHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			log.Error("GET /healthz - Database ping failed: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDatabaseUnavailable)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Календарь ближайших дней мастера
	api.HandleFunc("/days", listDays.Handle).Methods(http.MethodGet)

	// Слоты дня для услуги и мастера
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Уведомление о бронировании
	api.HandleFunc("/notify-whatsapp", notifyWhatsApp.Handle).Methods(http.MethodPost)

	// Создание бронирования (с ограничением частоты)
	var createBookingRoute http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		go limiter.Cleanup(time.Minute, stopCh)
		createBookingRoute = limiter.Middleware(createBookingRoute)
		log.Info("Rate limit enabled for POST /bookings (rps=%.2f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	api.Handle("/bookings", createBookingRoute).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <JWT role=admin>)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminJWT(cfg.Auth.JWTSecret, log))
	if cfg.Auth.JWTSecret == "" {
		log.Warn("AUTH_JWT_SECRET is empty, admin routes will reject every request")
	}

	// --- Мастера ---
	admin.HandleFunc("/professionals", listProfessionals.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/professionals", createProfessional.Handle).Methods(http.MethodPost)

	// --- Услуги ---
	admin.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// CORS и восстановление после паники
	handler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.Server.CORSOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.RequestIDHeader}),
	)(r)
	handler = gorillaHandlers.RecoveryHandler(
		gorillaHandlers.RecoveryLogger(recoveryLogger{log: log}),
	)(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Останавливаем фоновые задачи: сбор метрик пула и очистку лимитера
	close(stopCh)

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
