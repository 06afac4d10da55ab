package validation

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aldoetobex/hrms-backend/pkg/models"
)

// Respond writes a 400 in the Laravel-style shape.
func Respond(c *fiber.Ctx, errs map[string][]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
		Message: "Validation failed",
		Errors:  errs,
	})
}

// RespondSession writes the session's error map with Respond.
func RespondSession(c *fiber.Ctx, s *Session) error {
	return Respond(c, s.Bag())
}
