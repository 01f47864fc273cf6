package models

// Status is the lifecycle state of a content item.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	return s == StatusDraft || s == StatusPublished
}

// NewsCategory values accepted on news items.
var NewsCategories = []string{"announcement", "event", "update", "other"}

// VideoCategory values accepted on video items.
var VideoCategories = []string{"event", "tutorial", "news", "other"}
