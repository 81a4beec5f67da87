package controller

import (
	"log"
	"strings"
	"time"

	"resellpanel_backend/internal/dataservice"
	"resellpanel_backend/internal/model"
	"resellpanel_backend/pkg/database"
	"resellpanel_backend/pkg/email"
	"resellpanel_backend/pkg/lifecycle"
	"resellpanel_backend/pkg/utils/jwt"
	"resellpanel_backend/pkg/workingset"

	"github.com/gofiber/fiber/v2"
)

// The admin surface operates on a single shared working set: the panel is a
// one-operator tool, so every admin request sees the same local state with
// the same in-flight guards.
var (
	dataSvc     *dataservice.Service
	workingSet  *workingset.Store
	transitions *workingset.TransitionManager
	bulkDeleter *workingset.BulkDeleter
)

func InitSubmissionController(svc *dataservice.Service, store *workingset.Store) {
	dataSvc = svc
	workingSet = store
	transitions = workingset.NewTransitionManager(store, svc)
	bulkDeleter = workingset.NewBulkDeleter(store, svc)
}

type CreateSubmissionInput struct {
	CustomerEmail  string `json:"customer_email" validate:"required,email"`
	PlanID         string `json:"plan_id" validate:"required"`
	DurationMonths int    `json:"duration_months" validate:"required,min=1,max=120"`
	Notes          string `json:"notes" validate:"max=500"`
}

type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

type RenewInput struct {
	Months int `json:"months" validate:"required,min=1,max=120"`
}

type UpdateProfileNameInput struct {
	ProfileName string `json:"profile_name"`
}

type BulkDeleteInput struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// submissionView is the list/detail shape: the raw row plus the derived
// expiry and renewal-progress fields the dashboard renders.
func submissionView(sub model.Submission, now time.Time) fiber.Map {
	expiry := sub.Expiry(now)
	progress := sub.RenewalProgress(now)

	view := fiber.Map{
		"submission": sub,
		"id":         sub.StringID(),
		"expiry":     expiry,
		"actions":    lifecycle.OfferedActions(sub.Status),
	}
	if progress.Applicable {
		view["progress"] = fiber.Map{
			"percent":   progress.Display(),
			"band":      progress.Band(),
			"unlimited": progress.Unlimited,
		}
	}
	return view
}

// CreateSubmission is the reseller entry point. New requests always start
// Pending; the admin decides the rest.
func CreateSubmission(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(CreateSubmissionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var reseller model.User
	if err := database.GetDB().First(&reseller, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	sub, err := dataSvc.CreateSubmission(&reseller, input.CustomerEmail, input.PlanID, input.DurationMonths, input.Notes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create submission",
		})
	}
	workingSet.Replace(*sub)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Submission created",
		"submission": sub,
	})
}

// ListMySubmissions shows a reseller their own requests.
func ListMySubmissions(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var subs []model.Submission
	err := database.GetDB().
		Where("reseller_id = ?", claims.UserID).
		Order("request_date desc").
		Find(&subs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch submissions",
		})
	}

	now := time.Now()
	views := make([]fiber.Map, 0, len(subs))
	for _, sub := range subs {
		views = append(views, submissionView(sub, now))
	}

	return c.JSON(fiber.Map{
		"submissions": views,
		"total":       len(views),
	})
}

// GetMySubmission returns one of the reseller's own requests with its
// derived fields; ownership is enforced by the route middleware.
func GetMySubmission(c *fiber.Ctx) error {
	var sub model.Submission
	if err := database.GetDB().First(&sub, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Submission not found",
		})
	}
	return c.JSON(submissionView(sub, time.Now()))
}

// ListSubmissions is the admin list with status, reseller and free-text
// filters, served from the working set so rows reflect in-flight updates.
func ListSubmissions(c *fiber.Ctx) error {
	subs := workingSet.List()

	status := c.Query("status")
	resellerID := c.QueryInt("reseller_id")
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	now := time.Now()
	views := make([]fiber.Map, 0, len(subs))
	for _, sub := range subs {
		if status != "" && string(sub.Status) != status {
			continue
		}
		if resellerID > 0 && sub.ResellerID != uint(resellerID) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(sub.CustomerEmail), search) &&
			!strings.Contains(strings.ToLower(sub.ProfileName), search) &&
			!strings.Contains(strings.ToLower(sub.ResellerName), search) {
			continue
		}
		views = append(views, submissionView(sub, now))
	}

	return c.JSON(fiber.Map{
		"submissions": views,
		"total":       len(views),
	})
}

// GetSubmission returns one row with its derived fields.
func GetSubmission(c *fiber.Ctx) error {
	sub, ok := workingSet.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Submission not found",
		})
	}
	return c.JSON(submissionView(sub, time.Now()))
}

// UpdateSubmissionStatus routes a status flip through the transition manager
// so a persistence failure rolls the local row back to its exact prior state.
func UpdateSubmissionStatus(c *fiber.Ctx) error {
	input := new(UpdateStatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	status, err := lifecycle.ParseStatus(input.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	outcome := transitions.RequestStatusChange(c.Context(), c.Params("id"), status)
	if !outcome.OK {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": outcome.Message,
		})
	}

	notifySubmissionDecision(outcome.Submission, status)

	return c.JSON(fiber.Map{
		"message":    outcome.Message,
		"submission": outcome.Submission,
	})
}

// RenewSubmission starts a fresh period at the current instant. Remaining
// time on the old period is discarded.
func RenewSubmission(c *fiber.Ctx) error {
	input := new(RenewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	outcome := transitions.Renew(c.Context(), c.Params("id"), input.Months)
	if !outcome.OK {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": outcome.Message,
		})
	}

	notifyRenewal(outcome.Submission, input.Months)

	return c.JSON(fiber.Map{
		"message":    outcome.Message,
		"submission": outcome.Submission,
	})
}

// UpdateSubmissionProfileName is the single-field edit path. Validation
// violations come back per field.
func UpdateSubmissionProfileName(c *fiber.Ctx) error {
	input := new(UpdateProfileNameInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	outcome := transitions.UpdateProfileName(c.Context(), c.Params("id"), input.ProfileName)
	if !outcome.OK {
		status := fiber.StatusUnprocessableEntity
		if len(outcome.Errors) > 0 {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error":  outcome.Message,
			"errors": outcome.Errors,
		})
	}

	return c.JSON(fiber.Map{
		"message":    outcome.Message,
		"submission": outcome.Submission,
	})
}

// DeleteSubmission removes a single row through the bulk path so the
// response shape matches multi-delete.
func DeleteSubmission(c *fiber.Ctx) error {
	result := bulkDeleter.Delete(c.Context(), []string{c.Params("id")})
	if !result.AllSucceeded() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  result.Message(),
			"result": result,
		})
	}
	return c.JSON(fiber.Map{
		"message": result.Message(),
		"result":  result,
	})
}

// BulkDeleteSubmissions deletes each id independently: one failure never
// aborts the rest, and the caller gets a per-id report.
func BulkDeleteSubmissions(c *fiber.Ctx) error {
	input := new(BulkDeleteInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if len(input.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No submissions selected",
		})
	}

	result := bulkDeleter.Delete(c.Context(), input.IDs)

	status := fiber.StatusOK
	if !result.AllSucceeded() {
		status = fiber.StatusMultiStatus
	}
	return c.Status(status).JSON(fiber.Map{
		"message": result.Message(),
		"result":  result,
	})
}

// ListExpiringSubmissions is the expiry dashboard feed: Successful rows with
// an end date, classified and sorted soonest first.
func ListExpiringSubmissions(c *fiber.Ctx) error {
	subs, err := dataSvc.FetchExpiring()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch expiring submissions",
		})
	}

	now := time.Now()
	expired := make([]fiber.Map, 0)
	expiringSoon := make([]fiber.Map, 0)
	for _, sub := range subs {
		switch sub.Expiry(now).State {
		case lifecycle.ExpiryExpired:
			expired = append(expired, submissionView(sub, now))
		case lifecycle.ExpiryExpiringSoon:
			expiringSoon = append(expiringSoon, submissionView(sub, now))
		}
	}

	return c.JSON(fiber.Map{
		"expired":      expired,
		"expiringSoon": expiringSoon,
	})
}

// ListResellers backs the admin filter dropdown.
func ListResellers(c *fiber.Ctx) error {
	resellers, err := dataSvc.FetchResellers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch resellers",
		})
	}

	out := make([]fiber.Map, 0, len(resellers))
	for i := range resellers {
		out = append(out, resellers[i].GetPublicProfile())
	}
	return c.JSON(fiber.Map{
		"resellers": out,
	})
}

func notifySubmissionDecision(sub *model.Submission, status lifecycle.Status) {
	if email.GlobalEmailService == nil || sub == nil {
		return
	}

	var reseller model.User
	if err := database.GetDB().First(&reseller, sub.ResellerID).Error; err != nil {
		return
	}

	err := email.GlobalEmailService.SendSubmissionDecision(
		reseller.Email,
		reseller.DisplayName(),
		sub.CustomerEmail,
		sub.RequestedPlanID,
		string(status),
		status == lifecycle.StatusSuccessful,
	)
	if err != nil {
		log.Printf("Error sending decision email to %s: %v", reseller.Email, err)
	}
}

func notifyRenewal(sub *model.Submission, months int) {
	if email.GlobalEmailService == nil || sub == nil || sub.StartDate == nil {
		return
	}

	end, err := lifecycle.ParseTime(sub.EndDate)
	if err != nil {
		return
	}

	var reseller model.User
	if err := database.GetDB().First(&reseller, sub.ResellerID).Error; err != nil {
		return
	}

	err = email.GlobalEmailService.SendRenewalConfirmation(
		reseller.Email,
		reseller.DisplayName(),
		sub.CustomerEmail,
		months,
		*sub.StartDate,
		end,
	)
	if err != nil {
		log.Printf("Error sending renewal email to %s: %v", reseller.Email, err)
	}
}
