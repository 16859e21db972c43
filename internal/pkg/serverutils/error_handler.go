// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"smarterstarts-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler answers every failed request with {status:"error", message}.
// Routing misses keep their 404/405; everything else, malformed bodies included,
// is a 500.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) && (fe.Code == fiber.StatusNotFound || fe.Code == fiber.StatusMethodNotAllowed) {
			code = fe.Code
		}

		if code == fiber.StatusInternalServerError {
			log.Error(logger.ModuleHTTP, "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(err.Error()))
	}
}
