package handlers

import (
	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/internal/api/presenters"
	"Food-Rescue-Backend/pkg/admin"
	"Food-Rescue-Backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		GetDashboardStats(c *fiber.Ctx) error
		GetDashboardConfig(c *fiber.Ctx) error
		UpdateDashboardConfig(c *fiber.Ctx) error
		GetAllUsers(c *fiber.Ctx) error
		DeleteUser(c *fiber.Ctx) error
		GetRecentActivities(c *fiber.Ctx) error
		GetTopDonors(c *fiber.Ctx) error
		GetTopUsers(c *fiber.Ctx) error
		GetMonthlyStats(c *fiber.Ctx) error
		GetWeeklyDonations(c *fiber.Ctx) error
		GetLocationStats(c *fiber.Ctx) error
	}

	adminHandler struct {
		adminService admin.AdminService
		userService  user.UserService
		validator    *validator.Validate
	}
)

func NewAdminHandler(adminService admin.AdminService, userService user.UserService, validator *validator.Validate) AdminHandler {
	return &adminHandler{
		adminService: adminService,
		userService:  userService,
		validator:    validator,
	}
}

func (h *adminHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.adminService.GetDashboardStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDashboardStats, err)
	}
	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDashboardStats)
}

func (h *adminHandler) GetDashboardConfig(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.adminService.GetDashboardConfig(c.Context()), fiber.StatusOK, domain.MessageSuccessGetDashboardConfig)
}

func (h *adminHandler) UpdateDashboardConfig(c *fiber.Ctx) error {
	req := new(domain.UpdateDashboardConfigRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDashboardConfig, err)
	}

	cfg, err := h.adminService.UpdateDashboardConfig(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateDashboardConfig, err)
	}
	return presenters.SuccessResponse(c, cfg, fiber.StatusOK, domain.MessageSuccessUpdateDashboardConfig)
}

func (h *adminHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetUsers, err)
	}
	return presenters.SuccessResponse(c, users, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *adminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteUser, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteUser)
}

func (h *adminHandler) GetRecentActivities(c *fiber.Ctx) error {
	activities, err := h.adminService.GetRecentActivities(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecentActivities, err)
	}
	return presenters.SuccessResponse(c, activities, fiber.StatusOK, domain.MessageSuccessGetRecentActivities)
}

func (h *adminHandler) GetTopDonors(c *fiber.Ctx) error {
	req := domain.TopDonorsRequest{
		Limit: queryInt(c, "limit"),
		Range: domain.DateRange{
			Start: queryTimeOrZero(c, "startDate", "start"),
			End:   queryTimeOrZero(c, "endDate", "end"),
		},
	}

	resp, err := h.adminService.GetTopDonors(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetTopDonors, err)
	}
	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGetTopDonors)
}

func (h *adminHandler) GetTopUsers(c *fiber.Ctx) error {
	users, err := h.adminService.GetTopUsers(c.Context(), queryInt(c, "limit"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetTopUsers, err)
	}
	return presenters.SuccessResponse(c, users, fiber.StatusOK, domain.MessageSuccessGetTopUsers)
}

func (h *adminHandler) GetMonthlyStats(c *fiber.Ctx) error {
	stats, err := h.adminService.GetMonthlyStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetMonthlyStats, err)
	}
	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetMonthlyStats)
}

func (h *adminHandler) GetWeeklyDonations(c *fiber.Ctx) error {
	window := domain.DateRange{
		Start: queryTimeOrZero(c, "start"),
		End:   queryTimeOrZero(c, "end"),
	}

	counts, err := h.adminService.GetWeeklyDonations(c.Context(), window)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetWeeklyDonations, err)
	}
	return presenters.SuccessResponse(c, counts, fiber.StatusOK, domain.MessageSuccessGetWeeklyDonations)
}

func (h *adminHandler) GetLocationStats(c *fiber.Ctx) error {
	req := domain.LocationStatsRequest{
		Start:  queryTime(c, "start"),
		End:    queryTime(c, "end"),
		Status: c.Query("status"),
	}

	counts, err := h.adminService.GetLocationStats(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetLocationStats, err)
	}
	return presenters.SuccessResponse(c, counts, fiber.StatusOK, domain.MessageSuccessGetLocationStats)
}
