package controller

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"time"

	"resellpanel_backend/internal/model"
	"resellpanel_backend/pkg/database"
	"resellpanel_backend/pkg/utils/csvio"
	"resellpanel_backend/pkg/utils/jwt"
	"resellpanel_backend/pkg/utils/storage"

	"github.com/gofiber/fiber/v2"
)

// ImportSubmissions ingests a customer CSV. Rows are processed independently:
// a bad row is reported and skipped, never aborting the rest of the file.
// Imported rows are created already granted, with the period starting at the
// given start date.
func ImportSubmissions(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var admin model.User
	if err := database.GetDB().First(&admin, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	fileHeader, err := c.FormFile("csvFile")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "CSV file is required",
		})
	}

	planID := c.FormValue("requestedPlanId")
	if planID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "requestedPlanId is required",
		})
	}

	months, err := strconv.Atoi(c.FormValue("durationMonths", "1"))
	if err != nil || months <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "durationMonths must be a positive number",
		})
	}

	start := time.Now()
	if v := c.FormValue("subscriptionStartDate"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "subscriptionStartDate must be YYYY-MM-DD",
			})
		}
		start = parsed
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not read uploaded file",
		})
	}
	defer file.Close()

	rows, rowErrors, err := csvio.ReadCustomerRows(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	imported := 0
	for _, row := range rows {
		sub, err := dataSvc.ImportSubmission(&admin, row.Email, planID, months, start)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("line %d: %v", row.Line, err))
			continue
		}
		if row.Name != "" {
			database.GetDB().Model(&model.Customer{}).
				Where("email = ?", row.Email).
				Update("name", row.Name)
		}
		workingSet.Replace(*sub)
		imported++
	}

	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Imported %d of %d rows", imported, len(rows)),
		"imported": imported,
		"skipped":  len(rowErrors),
		"errors":   rowErrors,
	})
}

// ExportSubmissions streams the full submission list as CSV and archives a
// copy to object storage when a bucket is configured.
func ExportSubmissions(c *fiber.Ctx) error {
	subs, err := dataSvc.FetchAllSubmissions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch submissions",
		})
	}

	var buf bytes.Buffer
	if err := csvio.WriteSubmissions(&buf, subs); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not build export",
		})
	}

	if storage.Enabled() {
		key, err := storage.ArchiveExport(c.Context(), "submissions", buf.Bytes())
		if err != nil {
			log.Printf("Error archiving export: %v", err)
		} else {
			c.Set("X-Export-Archive", key)
		}
	}

	filename := fmt.Sprintf("submissions-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf.Bytes())
}
