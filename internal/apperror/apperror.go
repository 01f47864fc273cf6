// Package apperror defines the closed set of error kinds the API can
// surface, and the mapping from each kind to an HTTP status.
package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an API failure.
type Kind int

const (
	KindValidation Kind = iota // missing or malformed input
	KindUnauthenticated        // missing token, bad credentials, unknown account
	KindInvalidToken           // malformed token or bad signature
	KindTokenExpired
	KindForbidden // insufficient role or disabled account
	KindNotFound
	KindConflict    // duplicate unique field
	KindRateLimited // too many requests in the limiter window
	KindInternal
)

// Error is a tagged API error. MessageKey is an i18n catalog key; the
// central handler resolves it against the request language.
type Error struct {
	Kind       Kind
	MessageKey string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.MessageKey, e.Err)
	}
	return e.MessageKey
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with the given kind and message key.
func New(kind Kind, key string) *Error {
	return &Error{Kind: kind, MessageKey: key}
}

// Wrap attaches an underlying cause to a tagged error.
func Wrap(kind Kind, key string, err error) *Error {
	return &Error{Kind: kind, MessageKey: key, Err: err}
}

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return fiber.StatusBadRequest
	case KindUnauthenticated, KindTokenExpired:
		return fiber.StatusUnauthorized
	case KindInvalidToken, KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// KindOf extracts the kind from err, or KindInternal when err carries no tag.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err is tagged with the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
