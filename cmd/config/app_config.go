package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"Food-Rescue-Backend/internal/api/handlers"
	"Food-Rescue-Backend/internal/api/routes"
	"Food-Rescue-Backend/internal/middleware"
	"Food-Rescue-Backend/internal/utils"
	"Food-Rescue-Backend/internal/utils/cache"
	"Food-Rescue-Backend/internal/utils/logger"
	"Food-Rescue-Backend/internal/utils/mailing"
	"Food-Rescue-Backend/internal/utils/storage"
	"Food-Rescue-Backend/pkg/admin"
	"Food-Rescue-Backend/pkg/claim"
	"Food-Rescue-Backend/pkg/food"
	"Food-Rescue-Backend/pkg/jwt"
	"Food-Rescue-Backend/pkg/maintenance"
	"Food-Rescue-Backend/pkg/user"
	"Food-Rescue-Backend/pkg/waste"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	// AppOptions carries the infrastructure the application is wired to.
	AppOptions struct {
		DB         *gorm.DB
		Cache      cache.Cache
		Storage    storage.AwsS3
		Mailer     mailing.Mailer
		JWTService jwt.JWTService
		Clock      clockwork.Clock
		Location   *time.Location
		Logger     *zap.Logger
		LogDir     string
		// RateLimit is the number of requests allowed per client per second.
		// Zero disables the limiter.
		RateLimit int
	}

	App struct {
		Fiber       *fiber.App
		Maintenance maintenance.MaintenanceService
	}
)

func NewApp(opts AppOptions) (*App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: false,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll(opts.LogDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		filepath.Join(opts.LogDir, "app.log"),
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	if opts.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: 1 * time.Second,
		}))
	}

	auditLog, err := logger.NewFile(filepath.Join(opts.LogDir, "admin-log.txt"))
	if err != nil {
		return nil, fmt.Errorf("error opening audit log: %w", err)
	}

	// utils
	store := cache.NewStore(opts.Cache, opts.Logger)

	// Repository
	userRepository := user.NewUserRepository(opts.DB)
	foodRepository := food.NewFoodRepository(opts.DB)
	claimRepository := claim.NewClaimRepository(opts.DB)
	wasteRepository := waste.NewWasteRepository(opts.DB)
	adminRepository := admin.NewAdminRepository(opts.DB)

	// Service
	userService := user.NewUserService(userRepository, store, opts.Clock)
	foodService := food.NewFoodService(foodRepository, opts.Storage, store, opts.Clock, opts.Logger)
	claimService := claim.NewClaimService(claimRepository, foodRepository, opts.Mailer, store, opts.Clock, opts.Logger)
	wasteService := waste.NewWasteService(wasteRepository, store, opts.Logger)
	adminService := admin.NewAdminService(
		adminRepository,
		userRepository,
		store,
		admin.NewWidgetConfig(),
		opts.Clock,
		opts.Location,
		opts.Logger,
	)
	maintenanceService := maintenance.NewMaintenanceService(foodRepository, store, opts.Clock, opts.LogDir, opts.Logger)

	// Handler
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	claimHandler := handlers.NewClaimHandler(claimService, validator)
	wasteHandler := handlers.NewWasteHandler(wasteService, validator)
	adminHandler := handlers.NewAdminHandler(adminService, userService, validator)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)

	// routes
	routesConfig := routes.Config{
		App:                app,
		FoodHandler:        foodHandler,
		ClaimHandler:       claimHandler,
		WasteHandler:       wasteHandler,
		AdminHandler:       adminHandler,
		MaintenanceHandler: maintenanceHandler,
		Middleware:         middlewares,
		JWTService:         opts.JWTService,
		AuditLog:           auditLog,
	}
	routesConfig.Setup()

	return &App{Fiber: app, Maintenance: maintenanceService}, nil
}
