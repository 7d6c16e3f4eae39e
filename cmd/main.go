package main

import (
	"context"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"Food-Rescue-Backend/cmd/config"
	migration "Food-Rescue-Backend/cmd/database/migrate"
	"Food-Rescue-Backend/internal/scheduler"
	"Food-Rescue-Backend/internal/utils"
	"Food-Rescue-Backend/internal/utils/logger"
	"Food-Rescue-Backend/internal/utils/mailing"
	"Food-Rescue-Backend/internal/utils/storage"
	"Food-Rescue-Backend/pkg/jwt"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logger.New()
	defer func() { _ = log.Sync() }()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal("database init error", zap.Error(err))
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatal("database migration error", zap.Error(err))
	}

	backend, closeCache := config.ConnectCache(ctx, log)
	defer closeCache()

	s3, err := storage.NewAwsS3(ctx)
	if err != nil {
		log.Fatal("object storage init error", zap.Error(err))
	}

	rateLimit, err := strconv.Atoi(utils.GetConfig("RATE_LIMIT"))
	if err != nil {
		log.Warn("invalid RATE_LIMIT, limiter disabled", zap.Error(err))
		rateLimit = 0
	}

	location := config.StatsLocation(log)
	app, err := config.NewApp(config.AppOptions{
		DB:         db,
		Cache:      backend,
		Storage:    s3,
		Mailer:     mailing.NewMailer(mailing.LoadMailConfig()),
		JWTService: jwt.NewJWTService(),
		Clock:      clockwork.NewRealClock(),
		Location:   location,
		Logger:     log,
		LogDir:     utils.GetConfig("LOG_DIR"),
		RateLimit:  rateLimit,
	})
	if err != nil {
		log.Fatal("application init error", zap.Error(err))
	}

	jobs, err := scheduler.New(app.Maintenance, scheduler.Config{
		ExpireSpec:    utils.GetConfig("CRON_EXPIRE"),
		PurgeSpec:     utils.GetConfig("CRON_PURGE"),
		ClearLogsSpec: utils.GetConfig("CRON_CLEAR_LOGS"),
		Location:      location,
	}, log)
	if err != nil {
		log.Fatal("scheduler init error", zap.Error(err))
	}
	jobs.Start()

	port := utils.GetConfig("APP_PORT")
	go func() {
		if err := app.Fiber.Listen(":" + port); err != nil {
			log.Error("server stopped", zap.Error(err))
			cancel()
		}
	}()
	log.Info("server started", zap.String("port", port))

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	jobs.Stop(shutdownCtx)
	if err := app.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	log.Info("server gracefully stopped")
}
