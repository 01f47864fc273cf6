package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/i18n"
	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/services"
)

type AdminHandler struct {
	svc     *services.AdminService
	catalog *i18n.Catalog
	log     *zap.Logger
}

func NewAdminHandler(svc *services.AdminService, catalog *i18n.Catalog, log *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, catalog: catalog, log: log}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, err := h.svc.ListUsers(c.Context(), c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"users":       page.Items,
		"totalPages":  page.TotalPages,
		"currentPage": page.CurrentPage,
		"total":       page.Total,
	})
}

type updateRoleReq struct {
	Role models.Role `json:"role"`
}

// UpdateUserRole handles PUT /api/admin/users/:id/role.
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	var req updateRoleReq
	if err := c.BodyParser(&req); err != nil {
		return apperror.New(apperror.KindValidation, "common.invalid_body")
	}
	user, err := h.svc.UpdateUserRole(c.Context(), c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": h.catalog.T(lang(c, h.catalog), "user.role_updated"),
		"user":    user,
	})
}

// ToggleUserStatus handles PATCH /api/admin/users/:id/status.
func (h *AdminHandler) ToggleUserStatus(c *fiber.Ctx) error {
	user, err := h.svc.ToggleUserStatus(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": h.catalog.T(lang(c, h.catalog), "user.status_updated"),
		"user":    user,
	})
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.svc.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": h.catalog.T(lang(c, h.catalog), "user.deleted")})
}
