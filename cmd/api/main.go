package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/luminadental/booking-platform/internal/api/router"
	"github.com/luminadental/booking-platform/internal/appointments"
	"github.com/luminadental/booking-platform/internal/booking"
	"github.com/luminadental/booking-platform/internal/catalog"
	appconfig "github.com/luminadental/booking-platform/internal/config"
	"github.com/luminadental/booking-platform/internal/observability/metrics"
	"github.com/luminadental/booking-platform/internal/schedule"
	"github.com/luminadental/booking-platform/internal/siteconfig"
	"github.com/luminadental/booking-platform/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	grid, err := schedule.NewGrid(cfg.SlotGrid)
	if err != nil {
		logger.Error("invalid slot grid", "error", err)
		os.Exit(1)
	}

	// Storage: Postgres when DATABASE_URL is set, otherwise in-memory.
	// The in-memory stores keep local development and demos dependency-free.
	var (
		services      catalog.ServiceRepository
		professionals catalog.ProfessionalRepository
		ledger        appointments.Ledger
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			logger.Error("failed to ping postgres", "error", err)
			os.Exit(1)
		}
		services = catalog.NewPostgresServiceRepository(pool)
		professionals = catalog.NewPostgresProfessionalRepository(pool)
		ledger = appointments.NewPostgresLedger(pool)
		logger.Info("using postgres storage")
	} else {
		services = catalog.NewInMemoryServiceRepository()
		professionals = catalog.NewInMemoryProfessionalRepository()
		ledger = appointments.NewInMemoryLedger()
		logger.Warn("DATABASE_URL not set, using in-memory storage")
	}

	// Site config: Redis when available, otherwise in-memory with defaults.
	var siteStore siteconfig.Store
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("failed to ping redis", "error", err)
			os.Exit(1)
		}
		defer func() { _ = redisClient.Close() }()
		siteStore = siteconfig.NewRedisStore(redisClient)
		logger.Info("using redis site config store")
	} else {
		siteStore = siteconfig.NewInMemoryStore()
		logger.Warn("REDIS_ADDR not set, using in-memory site config store")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	calendar := schedule.NewCalendar(grid, ledger)
	bookingSvc := booking.NewService(services, professionals, calendar, ledger, cfg.BookingWindowDays, bookingMetrics, logger)

	if cfg.AdminJWTSecret == "" {
		logger.Warn("ADMIN_JWT_SECRET not set, admin routes will reject all requests")
	}

	r := router.New(&router.Config{
		Logger:             logger,
		BookingHandler:     booking.NewHandler(bookingSvc, logger),
		CatalogHandler:     catalog.NewHandler(services, professionals, logger),
		SiteConfigHandler:  siteconfig.NewHandler(siteStore, logger),
		AdminJWTSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		BookingRatePerSec:  cfg.BookingRatePerSec,
		BookingRateBurst:   cfg.BookingRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
