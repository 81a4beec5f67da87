// Package dataservice is the persistence collaborator consumed by the
// working-set core and the controllers. Every submission-mutating call
// returns the authoritative row so callers can reconcile local state
// by replacement.
package dataservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"resellpanel_backend/internal/model"
	"resellpanel_backend/pkg/lifecycle"
)

const maxProfileNameLen = 100

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) FetchAllSubmissions() ([]model.Submission, error) {
	var subs []model.Submission
	if err := s.db.Order("request_date desc").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Service) FetchResellers() ([]model.User, error) {
	var users []model.User
	if err := s.db.Where("role = ?", model.RoleReseller).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FetchExpiring returns Successful submissions that carry an end date,
// including unlimited ones; the caller classifies them.
func (s *Service) FetchExpiring() ([]model.Submission, error) {
	var subs []model.Submission
	err := s.db.Where("status = ? AND end_date <> ''", lifecycle.StatusSuccessful).
		Order("end_date asc").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// CreateSubmission is the reseller entry point: new requests always start
// Pending with the request date stamped at creation.
func (s *Service) CreateSubmission(reseller *model.User, customerEmail, planID string, durationMonths int, notes string) (*model.Submission, error) {
	if durationMonths <= 0 {
		return nil, fmt.Errorf("duration months must be positive")
	}

	sub := model.Submission{
		CustomerEmail:   strings.TrimSpace(customerEmail),
		RequestedPlanID: planID,
		DurationMonths:  durationMonths,
		Status:          lifecycle.StatusPending,
		RequestDate:     time.Now(),
		Notes:           notes,
		ResellerID:      reseller.ID,
		ResellerName:    reseller.DisplayName(),
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// ImportSubmission is the CSV path: rows arrive already granted, so the
// record is created Successful with the period computed from the given
// start date.
func (s *Service) ImportSubmission(admin *model.User, customerEmail, planID string, durationMonths int, start time.Time) (*model.Submission, error) {
	end, err := lifecycle.PeriodEnd(start, durationMonths)
	if err != nil {
		return nil, err
	}

	sub := model.Submission{
		CustomerEmail:   strings.TrimSpace(customerEmail),
		RequestedPlanID: planID,
		DurationMonths:  durationMonths,
		Status:          lifecycle.StatusSuccessful,
		RequestDate:     start,
		StartDate:       &start,
		EndDate:         end.Format(time.RFC3339),
		ResellerID:      admin.ID,
		ResellerName:    admin.DisplayName(),
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}

	// Keep the customer book in sync with imported rows.
	customer := model.Customer{Name: sub.CustomerEmail, Email: sub.CustomerEmail}
	s.db.Where(model.Customer{Email: customer.Email}).FirstOrCreate(&customer)

	return &sub, nil
}

// UpdateStatus implements the plain status-flip path of the collaborator
// contract. A missing row reports failure through the message, not an error.
func (s *Service) UpdateStatus(ctx context.Context, id string, status lifecycle.Status) (*model.Submission, string, error) {
	var sub model.Submission
	if err := s.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "Submission not found", nil
		}
		return nil, "Could not load submission", err
	}

	if !lifecycle.CanTransition(sub.Status, status) {
		return nil, fmt.Sprintf("Cannot change status from %s to %s", sub.Status, status), nil
	}

	updates := map[string]interface{}{"status": status}
	if status == lifecycle.StatusSuccessful && sub.StartDate == nil {
		if start, end, ok := successDates(time.Now(), sub.DurationMonths); ok {
			updates["start_date"] = start
			updates["end_date"] = end
		}
	}

	if err := s.db.WithContext(ctx).Model(&sub).Updates(updates).Error; err != nil {
		return nil, "Could not update submission status", err
	}

	s.db.WithContext(ctx).First(&sub, id)
	return &sub, fmt.Sprintf("Submission marked as %s", status), nil
}

// successDates returns the start/end column values stamped when a submission
// first becomes Successful. Reports false when the stored duration cannot
// produce a valid period, leaving the dates unset rather than persisting a
// zero-value end date.
func successDates(now time.Time, months int) (time.Time, string, bool) {
	end, err := lifecycle.PeriodEnd(now, months)
	if err != nil {
		return time.Time{}, "", false
	}
	return now, end.Format(time.RFC3339), true
}

// Renew is the overloaded renewal path: the new period always starts at the
// current instant, discarding any remaining time, and forces Successful.
func (s *Service) Renew(ctx context.Context, id string, months int) (*model.Submission, string, error) {
	var sub model.Submission
	if err := s.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "Submission not found", nil
		}
		return nil, "Could not load submission", err
	}

	now := time.Now()
	end, err := lifecycle.RenewalEnd(now, months)
	if err != nil {
		return nil, err.Error(), nil
	}

	updates := map[string]interface{}{
		"status":          lifecycle.StatusSuccessful,
		"start_date":      now,
		"end_date":        end.Format(time.RFC3339),
		"duration_months": months,
	}
	if err := s.db.WithContext(ctx).Model(&sub).Updates(updates).Error; err != nil {
		return nil, "Could not renew subscription", err
	}

	s.db.WithContext(ctx).First(&sub, id)
	return &sub, fmt.Sprintf("Package has been renewed for %d month(s)", months), nil
}

// Delete removes the submission row; associated customer records are kept
// (the customer book is an independent ledger). Deleting a missing row is a
// failure so bulk callers can report it per id.
func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Submission{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("submission %s not deleted", id)
	}
	return nil
}

// UpdateProfileName validates the single field and reports violations as
// field-level errors rather than a failure message.
func (s *Service) UpdateProfileName(ctx context.Context, id string, name string) (*model.Submission, string, map[string][]string, error) {
	name = strings.TrimSpace(name)
	fieldErrs := map[string][]string{}
	if name == "" {
		fieldErrs["profileName"] = append(fieldErrs["profileName"], "profile name is required")
	}
	if len(name) > maxProfileNameLen {
		fieldErrs["profileName"] = append(fieldErrs["profileName"], fmt.Sprintf("profile name must be at most %d characters", maxProfileNameLen))
	}
	if len(fieldErrs) > 0 {
		return nil, "Validation failed", fieldErrs, nil
	}

	var sub model.Submission
	if err := s.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "Submission not found", nil, nil
		}
		return nil, "Could not load submission", nil, err
	}

	if err := s.db.WithContext(ctx).Model(&sub).Update("profile_name", name).Error; err != nil {
		return nil, "Could not update profile name", nil, err
	}

	s.db.WithContext(ctx).First(&sub, id)
	return &sub, "Profile name updated", nil, nil
}
