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

type PhotoHandler struct {
	svc     *services.PhotoService
	catalog *i18n.Catalog
	log     *zap.Logger
}

func NewPhotoHandler(svc *services.PhotoService, catalog *i18n.Catalog, log *zap.Logger) *PhotoHandler {
	return &PhotoHandler{svc: svc, catalog: catalog, log: log}
}

// Create handles POST /api/photos (multipart, editor or admin).
func (h *PhotoHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperror.New(apperror.KindValidation, "common.invalid_body")
	}
	image, err := formFile(form, "image")
	if err != nil {
		return err
	}

	in := services.CreatePhotoInput{
		Title:            formString(form, "title"),
		TitleHindi:       formString(form, "titleHindi"),
		Description:      formString(form, "description"),
		DescriptionHindi: formString(form, "descriptionHindi"),
		Album:            formString(form, "album"),
		Tags:             services.SplitTags(formString(form, "tags")),
		Status:           models.Status(formString(form, "status")),
		Image:            image,
	}
	photo, err := h.svc.Create(c.Context(), middleware.CurrentUser(c).ID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": h.catalog.T(lang(c, h.catalog), "photo.created"),
		"photo":   photo,
	})
}

// List handles GET /api/photos (public).
func (h *PhotoHandler) List(c *fiber.Ctx) error {
	filter := repository.PhotoFilter{
		Status:   models.Status(c.Query("status")),
		Album:    c.Query("album"),
		Featured: featuredFilter(c),
	}
	page, err := h.svc.List(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"photos":      page.Items,
		"totalPages":  page.TotalPages,
		"currentPage": page.CurrentPage,
		"total":       page.Total,
	})
}

// Albums handles GET /api/photos/albums (public).
func (h *PhotoHandler) Albums(c *fiber.Ctx) error {
	albums, err := h.svc.Albums(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"albums": albums})
}

// Get handles GET /api/photos/:id (public; counts the view).
func (h *PhotoHandler) Get(c *fiber.Ctx) error {
	photo, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(photo)
}

// Update handles PUT /api/photos/:id (multipart, editor or admin).
func (h *PhotoHandler) Update(c *fiber.Ctx) error {
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

	in := services.UpdatePhotoInput{
		Title:            formValue(form, "title"),
		TitleHindi:       formValue(form, "titleHindi"),
		Description:      formValue(form, "description"),
		DescriptionHindi: formValue(form, "descriptionHindi"),
		Album:            formValue(form, "album"),
		Status:           formStatus(form, "status"),
		PublishedAt:      publishedAt,
		Image:            image,
	}
	if raw := formValue(form, "tags"); raw != nil {
		tags := services.SplitTags(*raw)
		in.Tags = &tags
	}
	photo, err := h.svc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": h.catalog.T(lang(c, h.catalog), "photo.updated"),
		"photo":   photo,
	})
}

// Delete handles DELETE /api/photos/:id (editor or admin).
func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": h.catalog.T(lang(c, h.catalog), "photo.deleted")})
}

// ToggleFeatured handles PATCH /api/photos/:id/featured (editor or admin).
func (h *PhotoHandler) ToggleFeatured(c *fiber.Ctx) error {
	photo, err := h.svc.ToggleFeatured(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": h.catalog.T(lang(c, h.catalog), "photo.featured_updated"),
		"photo":   photo,
	})
}
