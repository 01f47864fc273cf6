package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/i18n"
	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/storage"
)

// mime types accepted for uploads, images plus the video container formats
// the site embeds.
var allowedMimes = []string{
	"image/jpeg", "image/png", "image/gif", "image/webp",
	"video/mp4", "video/mpeg", "video/webm",
}

// formValue reports a multipart field as a pointer so an absent field and an
// empty one stay distinguishable for partial updates.
func formValue(form *multipart.Form, key string) *string {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

func formString(form *multipart.Form, key string) string {
	if v := formValue(form, key); v != nil {
		return *v
	}
	return ""
}

func formStatus(form *multipart.Form, key string) *models.Status {
	if v := formValue(form, key); v != nil {
		s := models.Status(*v)
		return &s
	}
	return nil
}

// formTime parses an RFC3339 field. A malformed value is a 400, not a silent
// nil; dropping it would let a typoed publish date be replaced by "now".
func formTime(form *multipart.Form, key string) (*time.Time, error) {
	v := formValue(form, key)
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, apperror.New(apperror.KindValidation, "common.invalid_timestamp")
	}
	return &t, nil
}

// formFile pulls the uploaded file out of the form, or nil when the field is
// absent. Disallowed content types are rejected before anything is stored.
func formFile(form *multipart.Form, field string) (*storage.File, error) {
	headers, ok := form.File[field]
	if !ok || len(headers) == 0 {
		return nil, nil
	}
	fh := headers[0]

	f, err := fh.Open()
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "upload.failed", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "upload.failed", err)
	}

	ct := fh.Header.Get(fiber.HeaderContentType)
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	if !slices.Contains(allowedMimes, ct) {
		return nil, apperror.New(apperror.KindValidation, "upload.invalid_type")
	}
	return &storage.File{Name: fh.Filename, ContentType: ct, Data: data}, nil
}

// lang resolves the response language for a request.
func lang(c *fiber.Ctx, catalog *i18n.Catalog) string {
	return catalog.Match(c.Get(fiber.HeaderAcceptLanguage))
}

// featuredFilter interprets the ?featured=true query flag.
func featuredFilter(c *fiber.Ctx) *bool {
	if c.Query("featured") == "true" {
		t := true
		return &t
	}
	return nil
}
