package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/djgraphics28/bvms-api/internal/config"
	v1 "github.com/djgraphics28/bvms-api/internal/handler/http/v1"
	"github.com/djgraphics28/bvms-api/internal/notify"
	"github.com/djgraphics28/bvms-api/internal/repository"
	"github.com/djgraphics28/bvms-api/internal/scheduler"
	"github.com/djgraphics28/bvms-api/internal/service"
	"github.com/djgraphics28/bvms-api/pkg/logger"
	"github.com/djgraphics28/bvms-api/pkg/postgres"
	redisclient "github.com/djgraphics28/bvms-api/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/djgraphics28/bvms-api/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Barangay Vehicle Monitoring System API
// @version 1.0
// @description Vehicle monitoring and incident reporting API for barangays.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey SessionAuth
// @in header
// @name X-Session-Token
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Каталог для загружаемых изображений
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// Инициализация издателя уведомлений
	publisher := notify.NewRedisPublisher(redisClient)

	// Инициализация и запуск воркера почтовых уведомлений
	mailer := notify.NewSendGridMailer(cfg)
	worker := notify.NewWorker(redisClient, log, cfg, mailer)
	worker.Start(ctx)

	// Инициализация репозиториев
	barangayRepo := repository.NewBarangayRepository(dbpool)
	userRepo := repository.NewUserRepository(dbpool)
	driverRepo := repository.NewDriverRepository(dbpool)
	vehicleRepo := repository.NewVehicleRepository(dbpool, redisClient)
	locationRepo := repository.NewLocationRepository(dbpool)
	incidentRepo := repository.NewIncidentRepository(dbpool)
	sessionRepo := repository.NewSessionRepository(redisClient)

	// Инициализация сервисов
	barangayService := service.NewBarangayService(barangayRepo, userRepo, driverRepo, vehicleRepo, log)
	driverService := service.NewDriverService(driverRepo, userRepo, barangayRepo, log)
	vehicleService := service.NewVehicleService(vehicleRepo, barangayRepo, log)
	incidentService := service.NewIncidentService(incidentRepo, publisher, log)
	trackingService := service.NewTrackingService(locationRepo, vehicleRepo, log)
	authService := service.NewAuthService(userRepo, sessionRepo, publisher, cfg, log)
	dashboardService := service.NewDashboardService(userRepo, vehicleRepo, driverRepo, barangayRepo, incidentRepo, log)

	// Планировщик очистки истории GPS-точек
	pruner := scheduler.NewRetentionPruner(locationRepo, cfg, log)
	pruner.Start()
	defer pruner.Stop()

	// Инициализация хэндлеров
	handler := v1.NewHandler(
		barangayService,
		driverService,
		vehicleService,
		incidentService,
		trackingService,
		authService,
		dashboardService,
		log,
		cfg,
	)

	// Настройка Gin роутера
	router := gin.Default()
	handler.RegisterRoutes(router)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
