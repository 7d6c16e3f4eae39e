package middleware

import (
	"strings"
	"time"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/entities"
	"Food-Rescue-Backend/internal/api/presenters"
	"Food-Rescue-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		RestrictTo(roles ...string) fiber.Handler
		RestrictToAdmin() fiber.Handler
		AdminLogger(auditLog *zap.Logger) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		userID, role, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

func (m *middleware) RestrictTo(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrUserNotAllowed)
	}
}

func (m *middleware) RestrictToAdmin() fiber.Handler {
	return m.RestrictTo(entities.RoleAdmin, entities.RoleSuperAdmin)
}

// AdminLogger records every request made by an admin to the audit log.
func (m *middleware) AdminLogger(auditLog *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if auditLog != nil && (role == entities.RoleAdmin || role == entities.RoleSuperAdmin) {
			userID, _ := c.Locals("user_id").(string)
			auditLog.Info(
				time.Now().UTC().Format(time.RFC3339) + " | " + userID + " | " +
					c.Method() + " " + c.OriginalURL() + " | IP: " + c.IP(),
			)
		}
		return c.Next()
	}
}
