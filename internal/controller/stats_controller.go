package controller

import (
	"resellpanel_backend/internal/model"
	"resellpanel_backend/pkg/cron"
	"resellpanel_backend/pkg/database"
	"resellpanel_backend/pkg/lifecycle"

	"github.com/gofiber/fiber/v2"
)

// GetDashboardStats backs the admin dashboard header: lifecycle counts plus
// the latest expiry sweep snapshot.
func GetDashboardStats(c *fiber.Ctx) error {
	db := database.GetDB()

	var total, successful, pending, canceled int64
	if err := db.Model(&model.Submission{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not compute stats",
		})
	}
	db.Model(&model.Submission{}).Where("status = ?", lifecycle.StatusSuccessful).Count(&successful)
	db.Model(&model.Submission{}).Where("status = ?", lifecycle.StatusPending).Count(&pending)
	db.Model(&model.Submission{}).Where("status = ?", lifecycle.StatusCanceled).Count(&canceled)

	successRate := 0.0
	if total > 0 {
		successRate = float64(successful) / float64(total) * 100
	}

	var resellers int64
	db.Model(&model.User{}).Where("role = ?", model.RoleReseller).Count(&resellers)

	expiry := cron.ExpirySnapshot()

	return c.JSON(fiber.Map{
		"total":        total,
		"successful":   successful,
		"pending":      pending,
		"canceled":     canceled,
		"success_rate": successRate,
		"resellers":    resellers,
		"expiry":       expiry,
	})
}
