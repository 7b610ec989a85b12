package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/seatwatch/seatwatch/internal/config"
	"github.com/seatwatch/seatwatch/internal/database"
	"github.com/seatwatch/seatwatch/internal/handler"
	appmw "github.com/seatwatch/seatwatch/internal/middleware"
	"github.com/seatwatch/seatwatch/internal/notifier"
	"github.com/seatwatch/seatwatch/internal/observ"
	"github.com/seatwatch/seatwatch/internal/queue"
	"github.com/seatwatch/seatwatch/internal/repository"
	"github.com/seatwatch/seatwatch/internal/router"
	"github.com/seatwatch/seatwatch/internal/service"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Fatal("ensure schema", zap.Error(err))
	}
	if err := database.SeedTheaters(ctx, db, cfg.Theaters); err != nil {
		logger.Fatal("seed theaters", zap.Error(err))
	}

	// Redis is optional: a nil client disables rate limiting and catalog
	// caching but the service keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable; rate limiting and catalog caching disabled")
	}

	theaterRepo := repository.NewTheaterRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	showtimeRepo := repository.NewShowtimeRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)

	mailer := notifier.NewEmailService(notifier.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
		BaseURL:  cfg.BaseURL,
	})

	svc := service.New(theaterRepo, movieRepo, showtimeRepo, notificationRepo, mailer, logger)

	notificationHandler := handler.NewNotificationHandler(svc, logger)
	unsubscribeHandler := handler.NewUnsubscribeHandler(svc, logger)
	theaterHandler := handler.NewTheaterHandler(theaterRepo, rdb, logger)

	// Background consumer mirrors subscription lifecycle events into the
	// audit log; it reconnects on its own and never brings the server down.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			logger.Warn("audit consumer stopped", zap.Error(err))
		}
	}()

	e := echo.New()
	e.HideBanner = true
	rateLimiter := appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e, notificationHandler, unsubscribeHandler, theaterHandler, cfg.CORSOrigins, rateLimiter)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
