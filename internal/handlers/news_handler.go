package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/i18n"
	"github.com/avishek100/metmanichaudhary/internal/middleware"
	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/repository"
	"github.com/avishek100/metmanichaudhary/internal/services"
)

type NewsHandler struct {
	svc     *services.NewsService
	catalog *i18n.Catalog
	log     *zap.Logger
}

func NewNewsHandler(svc *services.NewsService, catalog *i18n.Catalog, log *zap.Logger) *NewsHandler {
	return &NewsHandler{svc: svc, catalog: catalog, log: log}
}

// Create handles POST /api/news (multipart, editor or admin).
func (h *NewsHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperror.New(apperror.KindValidation, "common.invalid_body")
	}
	image, err := formFile(form, "image")
	if err != nil {
		return err
	}

	in := services.CreateNewsInput{
		Title:            formString(form, "title"),
		TitleHindi:       formString(form, "titleHindi"),
		Description:      formString(form, "description"),
		DescriptionHindi: formString(form, "descriptionHindi"),
		Content:          formString(form, "content"),
		ContentHindi:     formString(form, "contentHindi"),
		Category:         formString(form, "category"),
		Status:           models.Status(formString(form, "status")),
		Image:            image,
	}
	news, err := h.svc.Create(c.Context(), middleware.CurrentUser(c).ID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": h.catalog.T(lang(c, h.catalog), "news.created"),
		"news":    news,
	})
}

// List handles GET /api/news (public).
func (h *NewsHandler) List(c *fiber.Ctx) error {
	filter := repository.NewsFilter{
		Status:   models.Status(c.Query("status")),
		Category: c.Query("category"),
		Featured: featuredFilter(c),
	}
	page, err := h.svc.List(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"news":        page.Items,
		"totalPages":  page.TotalPages,
		"currentPage": page.CurrentPage,
		"total":       page.Total,
	})
}

// Get handles GET /api/news/:id (public; counts the view).
func (h *NewsHandler) Get(c *fiber.Ctx) error {
	news, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(news)
}

// Update handles PUT /api/news/:id (multipart, editor or admin).
func (h *NewsHandler) Update(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperror.New(apperror.KindValidation, "common.invalid_body")
	}
	image, err := formFile(form, "image")
	if err != nil {
		return err
	}
	publishedAt, err := formTime(form, "publishedAt")
	if err != nil {
		return err
	}

	in := services.UpdateNewsInput{
		Title:            formValue(form, "title"),
		TitleHindi:       formValue(form, "titleHindi"),
		Description:      formValue(form, "description"),
		DescriptionHindi: formValue(form, "descriptionHindi"),
		Content:          formValue(form, "content"),
		ContentHindi:     formValue(form, "contentHindi"),
		Category:         formValue(form, "category"),
		Status:           formStatus(form, "status"),
		PublishedAt:      publishedAt,
		Image:            image,
	}
	news, err := h.svc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": h.catalog.T(lang(c, h.catalog), "news.updated"),
		"news":    news,
	})
}

// Delete handles DELETE /api/news/:id (editor or admin).
func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": h.catalog.T(lang(c, h.catalog), "news.deleted")})
}

// ToggleFeatured handles PATCH /api/news/:id/featured (editor or admin).
func (h *NewsHandler) ToggleFeatured(c *fiber.Ctx) error {
	news, err := h.svc.ToggleFeatured(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": h.catalog.T(lang(c, h.catalog), "news.featured_updated"),
		"news":    news,
	})
}
