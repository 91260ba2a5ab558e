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
	"github.com/rs/cors"

	cancelBookingHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/create_booking"
	getDatesHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/get_dates"
	getNamesHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/get_names"
	getServerTimeHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/get_server_time"
	getSlotsHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/get_slots"
	subscribeSlotsHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/subscribe_slots"
	"github.com/m04kA/SMC-TimeslotService/internal/api/middleware"
	"github.com/m04kA/SMC-TimeslotService/internal/config"
	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/broadcast"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage/audit"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage/bookingfile"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage/bookingpg"
	bookingsService "github.com/m04kA/SMC-TimeslotService/internal/service/bookings"
	namesService "github.com/m04kA/SMC-TimeslotService/internal/service/names"
	bookSlotUC "github.com/m04kA/SMC-TimeslotService/internal/usecase/book_slot"
	cancelSlotUC "github.com/m04kA/SMC-TimeslotService/internal/usecase/cancel_slot"
	getSlotsUC "github.com/m04kA/SMC-TimeslotService/internal/usecase/get_slots"
	"github.com/m04kA/SMC-TimeslotService/pkg/logger"
	"github.com/m04kA/SMC-TimeslotService/pkg/metrics"
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

	log.Info("Starting SMC-TimeslotService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище бронирований
	var store bookingsService.BookingStore

	switch cfg.Storage.Driver {
	case "file":
		repo, err := bookingfile.NewRepository(cfg.Storage.File.BookingsFile)
		if err != nil {
			log.Fatal("Failed to open bookings file %s: %v", cfg.Storage.File.BookingsFile, err)
		}
		store = repo
		log.Info("File storage initialized (bookings=%s)", cfg.Storage.File.BookingsFile)

	case "postgres":
		db, err := sql.Open("postgres", cfg.Storage.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Storage.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Storage.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Storage.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Storage.Database.Host, cfg.Storage.Database.Port, cfg.Storage.Database.DBName)

		store = bookingpg.NewRepository(db)

	default:
		log.Fatal("Unknown storage driver %q", cfg.Storage.Driver)
	}

	// Журнал аудита: пишется после фиксации изменения, сбои не
	// откатывают бронирование
	auditWriter := audit.NewWriter(cfg.Storage.File.AuditDir)

	// Хаб рассылки событий изменения слотов
	hub := broadcast.NewHub()

	// Сервис имён: санация, чёрный список, type-ahead справочник
	nameSvc := namesService.NewService(
		cfg.Names.DisplayNamesFile,
		cfg.Names.BadWordsFile,
		domain.MaxDisplayNameLength,
		log,
	)

	// Сервис синхронизации бронирований
	bookingSvc := bookingsService.NewService(
		store,
		auditWriter,
		hub,
		nameSvc,
		time.Duration(cfg.Schedule.LockTimeout)*time.Second,
		log,
		metricsCollector,
	)

	// Инициализируем use cases
	getSlotsUseCase := getSlotsUC.NewUseCase(
		bookingSvc,
		cfg.Schedule.WindowDays,
		cfg.Schedule.SkipWeekends,
		log,
	)
	bookSlotUseCase := bookSlotUC.NewUseCase(
		bookingSvc,
		cfg.Schedule.WindowDays,
		cfg.Schedule.SkipWeekends,
		log,
	)
	cancelSlotUseCase := cancelSlotUC.NewUseCase(bookingSvc, log)

	// Инициализируем handlers
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(bookSlotUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelSlotUseCase, log)
	getDates := getDatesHandler.NewHandler(getSlotsUseCase, log)
	getNames := getNamesHandler.NewHandler(nameSvc, log)
	getServerTime := getServerTimeHandler.NewHandler()
	subscribeSlots := subscribeSlotsHandler.NewHandler(hub, log, metricsCollector)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Административный признак выставляется по заголовку X-Admin-Token,
	// отдельных защищённых маршрутов нет: любой клиент видит слоты,
	// бронирует и отменяет свои брони без аутентификации
	api.Use(middleware.AdminDetect(cfg.Admin.Token))
	if cfg.Admin.Token == "" {
		log.Warn("Admin token is empty, administrative access is disabled")
	}

	// Поклиентский rate limit (если включён)
	if cfg.Server.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
		api.Use(limiter.Limit)
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.Server.RateLimit, cfg.Server.RateBurst)
	}

	// Слоты выбранной даты с занятостью
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)

	// Бронирование слота
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	api.HandleFunc("/bookings/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Окно доступных дат
	api.HandleFunc("/dates", getDates.Handle).Methods(http.MethodGet)

	// Справочник имён для type-ahead подсказок
	api.HandleFunc("/names", getNames.Handle).Methods(http.MethodGet)

	// Серверное время для клиентских часов
	api.HandleFunc("/time", getServerTime.Handle).Methods(http.MethodGet)

	// Поток событий изменения слотов выбранной даты
	api.HandleFunc("/ws", subscribeSlots.Handle).Methods(http.MethodGet)

	// CORS для браузерного портала
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", middleware.AdminHeader},
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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
