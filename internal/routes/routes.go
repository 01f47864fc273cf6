// Package routes wires handlers and the request gate onto the fiber app.
package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/auth"
	"github.com/avishek100/metmanichaudhary/internal/handlers"
	"github.com/avishek100/metmanichaudhary/internal/middleware"
	"github.com/avishek100/metmanichaudhary/internal/repository"
)

type Deps struct {
	JWT          *auth.JWTManager
	Users        repository.UserRepository
	Auth         *handlers.AuthHandler
	News         *handlers.NewsHandler
	Photos       *handlers.PhotoHandler
	Videos       *handlers.VideoHandler
	Admin        *handlers.AdminHandler
	LoginLimiter *middleware.RateLimiter
}

func Setup(app *fiber.App, d Deps) {
	gate := middleware.Authenticate(d.JWT, d.Users)
	editor := middleware.RequireEditor()
	admin := middleware.RequireAdmin()

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "message": "Server is running"})
	})

	authGroup := api.Group("/auth")
	authGroup.Post("/login", d.LoginLimiter.ByIP(), d.Auth.Login)
	authGroup.Get("/me", gate, d.Auth.Me)

	news := api.Group("/news")
	news.Post("/", gate, editor, d.News.Create)
	news.Get("/", d.News.List)
	news.Get("/:id", d.News.Get)
	news.Put("/:id", gate, editor, d.News.Update)
	news.Delete("/:id", gate, editor, d.News.Delete)
	news.Patch("/:id/featured", gate, editor, d.News.ToggleFeatured)

	photos := api.Group("/photos")
	photos.Post("/", gate, editor, d.Photos.Create)
	photos.Get("/", d.Photos.List)
	// registered before /:id so "albums" is not taken for an id
	photos.Get("/albums", d.Photos.Albums)
	photos.Get("/:id", d.Photos.Get)
	photos.Put("/:id", gate, editor, d.Photos.Update)
	photos.Delete("/:id", gate, editor, d.Photos.Delete)
	photos.Patch("/:id/featured", gate, editor, d.Photos.ToggleFeatured)

	videos := api.Group("/videos")
	videos.Post("/", gate, editor, d.Videos.Create)
	videos.Get("/", d.Videos.List)
	videos.Get("/:id", d.Videos.Get)
	videos.Put("/:id", gate, editor, d.Videos.Update)
	videos.Delete("/:id", gate, editor, d.Videos.Delete)
	videos.Patch("/:id/featured", gate, editor, d.Videos.ToggleFeatured)

	adminGroup := api.Group("/admin", gate, admin)
	adminGroup.Get("/stats", d.Admin.Stats)
	adminGroup.Get("/users", d.Admin.ListUsers)
	adminGroup.Put("/users/:id/role", d.Admin.UpdateUserRole)
	adminGroup.Patch("/users/:id/status", d.Admin.ToggleUserStatus)
	adminGroup.Delete("/users/:id", d.Admin.DeleteUser)

	// everything else
	app.Use(func(c *fiber.Ctx) error {
		return apperror.New(apperror.KindNotFound, "common.route_not_found")
	})
}
