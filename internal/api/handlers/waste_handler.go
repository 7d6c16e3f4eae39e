package handlers

import (
	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/internal/api/presenters"
	"Food-Rescue-Backend/pkg/waste"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	WasteHandler interface {
		MarkWaste(c *fiber.Ctx) error
		GetAvailableWaste(c *fiber.Ctx) error
		RequestCollection(c *fiber.Ctx) error
		GetMyRequests(c *fiber.Ctx) error
	}

	wasteHandler struct {
		wasteService waste.WasteService
		validator    *validator.Validate
	}
)

func NewWasteHandler(wasteService waste.WasteService, validator *validator.Validate) WasteHandler {
	return &wasteHandler{
		wasteService: wasteService,
		validator:    validator,
	}
}

func (h *wasteHandler) MarkWaste(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MarkWasteRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkWaste, err)
	}

	res, err := h.wasteService.MarkWaste(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedMarkWaste, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessMarkWaste)
}

func (h *wasteHandler) GetAvailableWaste(c *fiber.Ctx) error {
	res, err := h.wasteService.GetAvailableWaste(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetAvailableWaste, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetAvailableWaste)
}

func (h *wasteHandler) RequestCollection(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.RequestCollectionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRequestCollection, err)
	}

	res, err := h.wasteService.RequestCollection(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRequestCollection, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRequestCollection)
}

func (h *wasteHandler) GetMyRequests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.wasteService.GetMyRequests(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecyclerRequest, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecyclerRequest)
}
