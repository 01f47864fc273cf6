package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/i18n"
	"github.com/avishek100/metmanichaudhary/internal/middleware"
	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/repository"
	"github.com/avishek100/metmanichaudhary/internal/services"
)

type VideoHandler struct {
	svc     *services.VideoService
	catalog *i18n.Catalog
	log     *zap.Logger
}

func NewVideoHandler(svc *services.VideoService, catalog *i18n.Catalog, log *zap.Logger) *VideoHandler {
	return &VideoHandler{svc: svc, catalog: catalog, log: log}
}

// Create handles POST /api/videos (multipart, editor or admin). The video
// itself is either an external URL or an uploaded file.
func (h *VideoHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperror.New(apperror.KindValidation, "common.invalid_body")
	}
	file, err := formFile(form, "video")
	if err != nil {
		return err
	}

	duration := 0
	if v := formValue(form, "duration"); v != nil {
		duration, _ = strconv.Atoi(*v)
	}
	in := services.CreateVideoInput{
		Title:            formString(form, "title"),
		TitleHindi:       formString(form, "titleHindi"),
		Description:      formString(form, "description"),
		DescriptionHindi: formString(form, "descriptionHindi"),
		VideoURL:         formString(form, "videoUrl"),
		Duration:         duration,
		Category:         formString(form, "category"),
		Tags:             services.SplitTags(formString(form, "tags")),
		Status:           models.Status(formString(form, "status")),
		File:             file,
	}
	video, err := h.svc.Create(c.Context(), middleware.CurrentUser(c).ID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": h.catalog.T(lang(c, h.catalog), "video.created"),
		"video":   video,
	})
}

// List handles GET /api/videos (public).
func (h *VideoHandler) List(c *fiber.Ctx) error {
	filter := repository.VideoFilter{
		Status:   models.Status(c.Query("status")),
		Category: c.Query("category"),
		Featured: featuredFilter(c),
	}
	page, err := h.svc.List(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"videos":      page.Items,
		"totalPages":  page.TotalPages,
		"currentPage": page.CurrentPage,
		"total":       page.Total,
	})
}

// Get handles GET /api/videos/:id (public; counts the view).
func (h *VideoHandler) Get(c *fiber.Ctx) error {
	video, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(video)
}

// Update handles PUT /api/videos/:id (multipart, editor or admin).
func (h *VideoHandler) Update(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperror.New(apperror.KindValidation, "common.invalid_body")
	}
	file, err := formFile(form, "video")
	if err != nil {
		return err
	}
	publishedAt, err := formTime(form, "publishedAt")
	if err != nil {
		return err
	}

	in := services.UpdateVideoInput{
		Title:            formValue(form, "title"),
		TitleHindi:       formValue(form, "titleHindi"),
		Description:      formValue(form, "description"),
		DescriptionHindi: formValue(form, "descriptionHindi"),
		VideoURL:         formValue(form, "videoUrl"),
		Category:         formValue(form, "category"),
		Status:           formStatus(form, "status"),
		PublishedAt:      publishedAt,
		File:             file,
	}
	if v := formValue(form, "duration"); v != nil {
		if d, err := strconv.Atoi(*v); err == nil {
			in.Duration = &d
		}
	}
	if raw := formValue(form, "tags"); raw != nil {
		tags := services.SplitTags(*raw)
		in.Tags = &tags
	}
	video, err := h.svc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": h.catalog.T(lang(c, h.catalog), "video.updated"),
		"video":   video,
	})
}

// Delete handles DELETE /api/videos/:id (editor or admin).
func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": h.catalog.T(lang(c, h.catalog), "video.deleted")})
}

// ToggleFeatured handles PATCH /api/videos/:id/featured (editor or admin).
func (h *VideoHandler) ToggleFeatured(c *fiber.Ctx) error {
	video, err := h.svc.ToggleFeatured(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": h.catalog.T(lang(c, h.catalog), "video.featured_updated"),
		"video":   video,
	})
}
