// Package handlers translates HTTP requests into service calls and shapes
// the JSON the frontend consumes.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/middleware"
	"github.com/avishek100/metmanichaudhary/internal/services"
)

type AuthHandler struct {
	svc *services.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return apperror.New(apperror.KindValidation, "common.invalid_body")
	}
	token, user, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": token, "user": user})
}

// Me handles GET /api/auth/me; the gate already fetched the fresh account.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": middleware.CurrentUser(c)})
}
