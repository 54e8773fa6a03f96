package controllers

import (
	"errors"

	"orghub-backend/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// failJSON maps a service error to its HTTP response. Validation problems
// come back 400, unknown or cross-tenant ids 404, expected business
// failures (overdraft, double resolution) 409 with the verbatim message.
// Anything else is an infrastructure failure: logged in full server-side,
// returned as an opaque 500.
func failJSON(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrAlreadyResolved):
		return c.Status(409).JSON(fiber.Map{"success": false, "error": err.Error()})
	default:
		zap.L().Error("request failed",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Internal server error"})
	}
}

// principal pulls the authenticated user out of the request context set by
// the auth middleware.
func principal(c *fiber.Ctx) (userID uint, role, companyCode string) {
	userID, _ = c.Locals("user_id").(uint)
	role, _ = c.Locals("user_role").(string)
	companyCode, _ = c.Locals("company_code").(string)
	return userID, role, companyCode
}
