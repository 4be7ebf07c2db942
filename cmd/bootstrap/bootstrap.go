package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medical-records-api/config"
	deliveryHttp "medical-records-api/internal/delivery/http"
	"medical-records-api/internal/delivery/http/handler"
	"medical-records-api/internal/delivery/http/middleware"
	"medical-records-api/internal/infrastructure/cache"
	"medical-records-api/internal/infrastructure/database"
	"medical-records-api/internal/infrastructure/metrics"
	"medical-records-api/internal/repository"
	"medical-records-api/internal/service"
	"medical-records-api/internal/usecase"
	"medical-records-api/pkg/jwt"
	"medical-records-api/pkg/password"
	"medical-records-api/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	rateLimiter *middleware.RateLimiter
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	db, err := database.NewPostgresConnection(cfg.DB, log, cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Redis backs the provisioning lock only
	if cfg.Provisioning.LockMode == config.LockRedis {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis, log)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
	}

	if err := app.initializeServer(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// initializeServer wires every layer and creates the HTTP server
func (app *App) initializeServer() error {
	cfg, db, log := app.Config, app.DB, app.Log

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewCollector(registry)

	jwtService := jwt.NewJWTService(cfg.JWT)
	hasher := password.NewHasher(log)
	customValidator := validator.NewValidator()

	locker, err := service.NewProvisionLocker(cfg.Provisioning, app.RedisClient, log)
	if err != nil {
		return fmt.Errorf("failed to create provisioning lock: %w", err)
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository()
	roleRepo := repository.NewRoleRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	historyRepo := repository.NewMedicalHistoryRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, customValidator, accountRepo, patientProfileRepo, doctorProfileRepo, hasher, jwtService, recorder)
	accountUsecase := usecase.NewAccountUsecase(db, log, customValidator, accountRepo, roleRepo, patientProfileRepo, doctorProfileRepo, historyRepo, auditService, hasher, locker, recorder, cfg.Provisioning.DeletePolicy)
	roleUsecase := usecase.NewRoleUsecase(db, log, customValidator, roleRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase)
	accountHandler := handler.NewAccountHandler(accountUsecase)
	roleHandler := handler.NewRoleHandler(roleUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log, recorder)
	app.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, log)

	router := deliveryHttp.NewRouter(
		authHandler,
		accountHandler,
		roleHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
		app.rateLimiter,
		metrics.Handler(registry),
	)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM, then shuts down
// gracefully
func (app *App) Run() error {
	errCh := make(chan error, 1)

	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.rateLimiter != nil {
		app.rateLimiter.Stop()
	}

	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
