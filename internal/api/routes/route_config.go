package routes

import (
	"Food-Rescue-Backend/entities"
	"Food-Rescue-Backend/internal/api/handlers"
	"Food-Rescue-Backend/internal/middleware"
	"Food-Rescue-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Config struct {
	App                *fiber.App
	FoodHandler        handlers.FoodHandler
	ClaimHandler       handlers.ClaimHandler
	WasteHandler       handlers.WasteHandler
	AdminHandler       handlers.AdminHandler
	MaintenanceHandler handlers.MaintenanceHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
	AuditLog           *zap.Logger
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Food()
	c.Claim()
	c.Waste()
	c.Admin()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works."})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Config) Food() {
	food := c.App.Group("/api/foods")
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	food.Get("/available", c.FoodHandler.GetAvailableFoods)
	food.Get("", auth, c.FoodHandler.GetFoods)
	food.Post("/create", auth, c.Middleware.RestrictTo(entities.RoleRestaurant), c.FoodHandler.CreateFood)
}

func (c *Config) Claim() {
	claim := c.App.Group("/api/claim", c.Middleware.AuthMiddleware(c.JWTService))
	recipients := c.Middleware.RestrictTo(entities.RoleNGO, entities.RoleUser)

	claim.Get("/available", recipients, c.ClaimHandler.GetClaimableFoods)
	claim.Post("/request", recipients, c.ClaimHandler.RequestClaim)
	claim.Get("/my-claims", recipients, c.ClaimHandler.GetMyClaims)
	claim.Patch("/:claimId/status",
		c.Middleware.RestrictTo(entities.RoleAdmin, entities.RoleSuperAdmin, entities.RoleRestaurant),
		c.ClaimHandler.UpdateClaimStatus,
	)
}

func (c *Config) Waste() {
	waste := c.App.Group("/api/waste", c.Middleware.AuthMiddleware(c.JWTService))
	recycler := c.Middleware.RestrictTo(entities.RoleRecycler)

	waste.Post("/mark", c.Middleware.RestrictTo(entities.RoleRestaurant), c.WasteHandler.MarkWaste)
	waste.Get("/available", recycler, c.WasteHandler.GetAvailableWaste)
	waste.Post("/request", recycler, c.WasteHandler.RequestCollection)
	waste.Get("/my-requests", recycler, c.WasteHandler.GetMyRequests)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RestrictToAdmin(),
		c.Middleware.AdminLogger(c.AuditLog),
	)

	admin.Get("/dashboard", c.AdminHandler.GetDashboardStats)
	admin.Get("/dashboard/config", c.AdminHandler.GetDashboardConfig)
	admin.Post("/dashboard/config", c.AdminHandler.UpdateDashboardConfig)
	admin.Get("/users", c.AdminHandler.GetAllUsers)
	admin.Delete("/user/:id", c.AdminHandler.DeleteUser)
	admin.Get("/activities/recent", c.AdminHandler.GetRecentActivities)
	admin.Get("/donors/top", c.AdminHandler.GetTopDonors)
	admin.Get("/users/top", c.AdminHandler.GetTopUsers)
	admin.Get("/stats/monthly", c.AdminHandler.GetMonthlyStats)
	admin.Get("/donations/weekly", c.AdminHandler.GetWeeklyDonations)
	admin.Get("/donations/location", c.AdminHandler.GetLocationStats)

	admin.Delete("/util/purge-expired", c.MaintenanceHandler.PurgeExpired)
}
