package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/turnos/turnos/internal/config"
	"github.com/turnos/turnos/internal/domain/booking"
	"github.com/turnos/turnos/internal/domain/directory"
	"github.com/turnos/turnos/internal/domain/schedule"
	"github.com/turnos/turnos/internal/platform/auth"
	"github.com/turnos/turnos/internal/platform/db"
	"github.com/turnos/turnos/internal/platform/events"
	"github.com/turnos/turnos/internal/platform/lock"
	"github.com/turnos/turnos/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "turnos-server",
		Short: "Medical appointment scheduling API server",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Per-professional booking lock
	var locker lock.Locker
	switch cfg.LockBackend {
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid redis url")
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.LockTTL)
		logger.Info().Msg("using redis booking lock")
	default:
		locker = lock.NewKeyedLocker()
	}

	// Domain events
	var publisher events.Publisher = events.NopPublisher{}
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		kafkaPub := events.NewKafkaPublisher(brokers)
		defer kafkaPub.Close()
		publisher = kafkaPub
		logger.Info().Strs("brokers", brokers).Msg("publishing events to kafka")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.MaxBodySize))
	e.Use(middleware.Timeout(cfg.RequestTimeout))
	e.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			SigningKey: []byte(cfg.JWTSigningKey),
		}))
	}

	// Repositories and services
	specialtyRepo := directory.NewSpecialtyRepoPG(pool)
	professionalRepo := directory.NewProfessionalRepoPG(pool)
	directorySvc := directory.NewService(specialtyRepo, professionalRepo)

	windowRepo := schedule.NewRepoPG(pool)
	scheduleSvc := schedule.NewService(windowRepo)

	ledger := booking.NewLedgerPG(pool)
	bookingSvc := booking.NewService(ledger, professionalRepo, windowRepo, locker, publisher, cfg.BookingLeadTime)

	// Routes
	apiV1 := e.Group("/api/v1")
	directory.NewHandler(directorySvc).RegisterRoutes(apiV1)
	schedule.NewHandler(scheduleSvc).RegisterRoutes(apiV1)
	booking.NewHandler(bookingSvc).RegisterRoutes(apiV1)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
