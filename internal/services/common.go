package services

import (
	"errors"
	"strings"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/repository"
)

func normalizeStatus(s models.Status) (models.Status, error) {
	if s == "" {
		return models.StatusDraft, nil
	}
	if !models.ValidStatus(s) {
		return "", apperror.New(apperror.KindValidation, "common.invalid_body")
	}
	return s, nil
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// notFoundAs converts the repository's not-found into the API error for the
// resource at hand; anything else passes through untouched.
func notFoundAs(err error, key string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.New(apperror.KindNotFound, key)
	}
	return err
}

// SplitTags parses the comma-separated tags field from form input.
func SplitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
