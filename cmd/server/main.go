package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/config"
	"github.com/eduadmin/eduadmin-backend/internal/database"
	"github.com/eduadmin/eduadmin-backend/internal/handler"
	"github.com/eduadmin/eduadmin-backend/internal/logger"
	"github.com/eduadmin/eduadmin-backend/internal/repository"
	"github.com/eduadmin/eduadmin-backend/internal/router"
	"github.com/eduadmin/eduadmin-backend/internal/service"
	"github.com/eduadmin/eduadmin-backend/internal/validator"
	"github.com/eduadmin/eduadmin-backend/internal/websocket"
	"github.com/eduadmin/eduadmin-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting EduAdmin Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	packageService := service.NewPackageService(packageRepo, log)
	studentService := service.NewStudentService(studentRepo, packageRepo)
	classService := service.NewClassService(classRepo, userRepo, rdb, log)
	requestService := service.NewRequestService(requestRepo, classRepo, rdb, log)
	dashboardService := service.NewDashboardService(dashboardRepo)
	reportService := service.NewReportService(classRepo, studentRepo)

	// ─── Live Schedule Hub ────────────────────────────────────────────
	hub := websocket.NewHub(rdb, log)
	go hub.Run(ctx)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, userService),
		User:      handler.NewUserHandler(userService),
		Package:   handler.NewPackageHandler(packageService),
		Student:   handler.NewStudentHandler(studentService),
		Class:     handler.NewClassHandler(classService),
		Request:   handler.NewRequestHandler(requestService),
		Dashboard: handler.NewDashboardHandler(dashboardService, cfg.Timezone),
		Report:    handler.NewReportHandler(reportService),
		WS:        handler.NewWSHandler(hub, log, cfg.AllowedOrigins),
		System:    handler.NewSystemHandler(pool, rdb, hub, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	if cfg.StatusWorkerInterval > 0 {
		statusWorker := worker.NewClassStatusWorker(pool, rdb, cfg.StatusWorkerInterval, log)
		go statusWorker.Start(workerCtx)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the background worker and the hub subscription.
	workerCancel()
	cancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
