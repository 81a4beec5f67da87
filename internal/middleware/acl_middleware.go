package middleware

import (
	"github.com/gofiber/fiber/v2"

	"resellpanel_backend/internal/model"
	"resellpanel_backend/pkg/database"
	"resellpanel_backend/pkg/utils/jwt"
)

// RequireAdmin gates the admin surface: status changes, renewals, deletes,
// bookkeeping and import/export.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		if claims.Role != string(model.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Administrator access required",
			})
		}

		return c.Next()
	}
}

// CheckSubmissionOwnership lets a reseller touch only their own submissions.
func CheckSubmissionOwnership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		submissionID := c.Params("id")

		var submission model.Submission
		if err := database.GetDB().First(&submission, submissionID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Submission not found",
			})
		}

		if submission.ResellerID != claims.UserID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this submission",
			})
		}

		return c.Next()
	}
}
