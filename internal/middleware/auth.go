// Package middleware contains the request gate and rate limiting.
package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/auth"
	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/repository"
)

const localsUserKey = "currentUser"

// Authenticate verifies the bearer token, then re-fetches the account so a
// deactivation or role change takes effect on the very next request, not at
// token expiry.
func Authenticate(jwtMgr *auth.JWTManager, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return apperror.New(apperror.KindUnauthenticated, "auth.no_token")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperror.New(apperror.KindUnauthenticated, "auth.no_token")
		}

		claims, err := jwtMgr.Verify(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return apperror.New(apperror.KindTokenExpired, "auth.token_expired")
			}
			return apperror.New(apperror.KindInvalidToken, "auth.invalid_token")
		}

		u, err := users.FindByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.New(apperror.KindUnauthenticated, "auth.user_not_found")
			}
			return err
		}
		if !u.IsActive {
			return apperror.New(apperror.KindForbidden, "auth.account_disabled")
		}

		c.Locals(localsUserKey, u)
		return c.Next()
	}
}

// RequireAdmin gates admin-only routes on the freshly fetched role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil || u.Role != models.RoleAdmin {
			return apperror.New(apperror.KindForbidden, "auth.admin_required")
		}
		return c.Next()
	}
}

// RequireEditor gates content-management routes: editors and admins pass,
// plain users do not.
func RequireEditor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil || u.Role == models.RoleUser {
			return apperror.New(apperror.KindForbidden, "auth.editor_required")
		}
		return c.Next()
	}
}

// CurrentUser returns the account placed on the request by Authenticate.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(localsUserKey).(*models.User)
	return u
}
