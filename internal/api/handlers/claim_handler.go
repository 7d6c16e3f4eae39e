package handlers

import (
	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/internal/api/presenters"
	"Food-Rescue-Backend/pkg/claim"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ClaimHandler interface {
		GetClaimableFoods(c *fiber.Ctx) error
		RequestClaim(c *fiber.Ctx) error
		GetMyClaims(c *fiber.Ctx) error
		UpdateClaimStatus(c *fiber.Ctx) error
	}

	claimHandler struct {
		claimService claim.ClaimService
		validator    *validator.Validate
	}
)

func NewClaimHandler(claimService claim.ClaimService, validator *validator.Validate) ClaimHandler {
	return &claimHandler{
		claimService: claimService,
		validator:    validator,
	}
}

func (h *claimHandler) GetClaimableFoods(c *fiber.Ctx) error {
	foods, err := h.claimService.GetClaimableFoods(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetClaimableFoods, err)
	}
	return presenters.SuccessResponse(c, foods, fiber.StatusOK, domain.MessageSuccessGetClaimableFoods)
}

func (h *claimHandler) RequestClaim(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.RequestClaimRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRequestClaim, err)
	}

	res, err := h.claimService.RequestClaim(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRequestClaim, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRequestClaim)
}

func (h *claimHandler) GetMyClaims(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	claims, err := h.claimService.GetMyClaims(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetClaims, err)
	}
	return presenters.SuccessResponse(c, claims, fiber.StatusOK, domain.MessageSuccessGetClaims)
}

func (h *claimHandler) UpdateClaimStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateClaimStatusRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateClaimStatus, err)
	}

	res, err := h.claimService.UpdateClaimStatus(c.Context(), c.Params("claimId"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateClaimStatus, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateClaimStatus)
}
