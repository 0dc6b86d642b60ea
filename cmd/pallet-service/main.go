package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pallet-service/internal/cache"
	"pallet-service/internal/config"
	"pallet-service/internal/database"
	"pallet-service/internal/handlers"
	"pallet-service/internal/logger"
	"pallet-service/internal/middleware"
	"pallet-service/internal/repository"
	"pallet-service/internal/routes"
	"pallet-service/internal/services"
	"pallet-service/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "pallet-service"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format, serviceName)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Base de datos y esquema
	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db.DB, db.Driver); err != nil {
		return err
	}

	redisDB, err := database.NewRedisDB(cfg.Redis, log)
	if err != nil {
		return err
	}
	defer redisDB.Close()

	// Repositorios
	carrierRepo := repository.NewCarrierRepository(db.DB)
	movementRepo := repository.NewMovementRepository(db.DB)
	reportRepo := repository.NewReportRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)

	// Servicios
	statsVersion := cache.NewStatsVersion(redisDB.Client, log)
	sessions := session.NewManager(cfg.JWT.Secret, cfg.SessionTTL(), session.NewRedisStore(redisDB.Client))

	movementService := services.NewMovementService(movementRepo, carrierRepo, log, statsVersion)
	reportService := services.NewReportService(reportRepo, log)
	statsService := services.NewStatsService(reportRepo, carrierRepo, log)
	exportService := services.NewExportService(movementService, reportService, statsService, log)
	authService := services.NewAuthService(userRepo, sessions, log)
	monitoringService := services.NewMonitoringService(log, db.Driver, db, redisDB, sessions, statsVersion)

	// Datos iniciales
	if _, err := services.SeedCarriers(ctx, carrierRepo, cfg.Seed.Carriers, log); err != nil {
		return err
	}
	if _, err := authService.SeedUsers(ctx, cfg.Seed.Users); err != nil {
		return err
	}

	// HTTP
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	monitoringHandler := handlers.NewMonitoringHandler(monitoringService, statsService, statsVersion, cfg.Dashboard.PushInterval, log)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(monitoringHandler.RecordRequestMiddleware())

	routes.SetupRoutes(router, routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg.JWT.CookieName, cfg.JWT.CookieSecure, log),
		Movement:    handlers.NewMovementHandler(movementService, log),
		Report:      handlers.NewReportHandler(reportService, statsService, exportService, log),
		Monitoring:  monitoringHandler,
		Health:      middleware.NewHealthChecker(db, db.Driver, redisDB, log),
		RequireAuth: middleware.RequireSession(authService, cfg.JWT.CookieName, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	middleware.ServerInfo(cfg.Server.Port, db.Driver, log)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		log.Info("🛑 Señal recibida, cerrando servidor")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("❌ Error cerrando servidor", zap.Error(err))
		return err
	}

	log.Info("👋 Servidor detenido")
	return nil
}
