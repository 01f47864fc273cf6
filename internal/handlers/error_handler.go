package handlers

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/i18n"
)

// NewErrorHandler builds the central fiber error handler: tagged errors map
// to their status with a localized message, mongo duplicate keys become 400,
// and everything else is a 500 whose detail is masked in production.
func NewErrorHandler(catalog *i18n.Catalog, log *zap.Logger, production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		lang := catalog.Match(c.Get(fiber.HeaderAcceptLanguage))

		var ae *apperror.Error
		if errors.As(err, &ae) {
			return c.Status(ae.Kind.Status()).JSON(fiber.Map{
				"message": catalog.T(lang, ae.MessageKey),
			})
		}

		// body-limit, method-not-allowed and friends raised by fiber itself
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		if mongo.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": catalog.T(lang, "common.duplicate"),
			})
		}

		log.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		if production {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": catalog.T(lang, "common.internal_error"),
			})
		}
		// outside production the response carries the stack so an unexpected
		// failure is debuggable straight from the client
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
			"stack":   string(debug.Stack()),
		})
	}
}
