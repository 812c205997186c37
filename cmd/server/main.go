package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/localite/user-service/internal/handler"
	"github.com/localite/user-service/internal/infrastructure/logger"
	"github.com/localite/user-service/internal/infrastructure/redis"
	"github.com/localite/user-service/internal/infrastructure/storage"
	"github.com/localite/user-service/internal/observability/tracing"
	"github.com/localite/user-service/internal/reliability/circuitbreaker"
	"github.com/localite/user-service/internal/repository"
	"github.com/localite/user-service/internal/security/audit"
	"github.com/localite/user-service/internal/security/auth"
	"github.com/localite/user-service/internal/service"
	"github.com/localite/user-service/internal/worker"
	"github.com/localite/user-service/pkg/config"
	"github.com/localite/user-service/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting localite user service", slog.String("environment", cfg.Environment))

	// 3. Initialize tracing
	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, log, cfg.OtelEndpoint, handler.ServiceName, cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Initialize database pool
	pool, err := database.NewConnectionPool(ctx, &database.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 5. Token revocation store: Redis when configured, in-process otherwise
	var tokenStore auth.TokenStore
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		tokenStore = redisClient
		log.Info("token revocation backed by redis")
	} else {
		tokenStore = auth.NewMemoryTokenStore()
		log.Info("token revocation backed by in-process store")
	}

	// 6. Initialize repositories
	userRepo := repository.NewPostgresUserRepository(pool, log)
	orgRepo := repository.NewPostgresOrganizationRepository(pool, log)
	employeeRepo := repository.NewPostgresEmployeeRepository(pool, log)
	attendanceRepo := repository.NewPostgresAttendanceRepository(pool, log)
	activityRepo := repository.NewPostgresActivityRepository(pool, log)
	geoRepo := repository.NewPostgresGeographyRepository(pool, log)

	// 7. Initialize object storage behind a circuit breaker
	objectStorage, err := storage.NewLocalStorage("data", cfg.S3Bucket)
	if err != nil {
		log.Error("failed to initialize object storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	storageBreaker := circuitbreaker.New(5, 2, 30*time.Second)
	storageBreaker.OnStateChange(func(from, to circuitbreaker.State) {
		log.Warn("object storage circuit state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	// 8. Initialize services
	tokenManager := auth.NewTokenManager(cfg.SecretKey, cfg.TokenExpiry())
	authService := service.NewAuthService(userRepo, pool, tokenManager, tokenStore, log)
	userService := service.NewUserService(userRepo, orgRepo, pool, cfg.BcryptLogRounds, log)
	orgService := service.NewOrganizationService(userRepo, orgRepo, pool, log)
	employeeService := service.NewEmployeeService(employeeRepo, pool, log)
	attendanceService := service.NewAttendanceService(employeeRepo, attendanceRepo, pool, nil, log)
	fileService := service.NewFileService(objectStorage, storageBreaker, log)
	geoService := service.NewGeographyService(geoRepo)

	// 9. Audit pipeline: bounded queue drained by a background worker
	recorder := audit.NewRecorder(cfg.AuditQueueSize, log)
	activityWorker := worker.NewActivityWorker(recorder, activityRepo, pool, log)
	workerCtx, stopWorker := context.WithCancel(ctx)
	go activityWorker.Start(workerCtx)

	// 10. Assemble the route table
	router := handler.NewRouter(handler.RouterDeps{
		Auth:         handler.NewAuthHandler(authService, log),
		Users:        handler.NewUserHandler(userService, fileService, log),
		Orgs:         handler.NewOrganizationHandler(orgService, log),
		Employees:    handler.NewEmployeeHandler(employeeService, attendanceService, log),
		Geo:          handler.NewGeographyHandler(geoService, log),
		Health:       handler.NewHealthHandler(pool, log),
		TokenManager: tokenManager,
		TokenStore:   tokenStore,
		UserRepo:     userRepo,
		Recorder:     recorder,
		Logger:       log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      otelhttp.NewHandler(router, "http.server"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting", slog.Int("port", cfg.ServerPort))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	// Stop the audit worker after the server so in-flight requests can
	// still enqueue; the worker flushes its queue on cancellation.
	stopWorker()

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
