package handlers

import (
	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/internal/api/presenters"
	"Food-Rescue-Backend/pkg/maintenance"

	"github.com/gofiber/fiber/v2"
)

type (
	MaintenanceHandler interface {
		PurgeExpired(c *fiber.Ctx) error
	}

	maintenanceHandler struct {
		maintenanceService maintenance.MaintenanceService
	}
)

func NewMaintenanceHandler(maintenanceService maintenance.MaintenanceService) MaintenanceHandler {
	return &maintenanceHandler{maintenanceService: maintenanceService}
}

func (h *maintenanceHandler) PurgeExpired(c *fiber.Ctx) error {
	deleted, err := h.maintenanceService.PurgeStaleAvailable(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedPurgeExpired, err)
	}
	return presenters.SuccessResponse(c, domain.PurgeResult{DeletedCount: deleted}, fiber.StatusOK, domain.MessageSuccessPurgeExpired)
}
