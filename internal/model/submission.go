package model

import (
	"strconv"
	"time"

	"gorm.io/gorm"

	"resellpanel_backend/pkg/lifecycle"
)

// Submission is one reseller-initiated subscription request/grant. EndDate is
// stored as text so it can carry either an RFC3339 timestamp or the literal
// "unlimited" sentinel; the lifecycle package treats it as the source of
// truth and never recomputes it from DurationMonths outside a renewal.
type Submission struct {
	gorm.Model
	CustomerEmail   string           `json:"customer_email" gorm:"not null;index"`
	RequestedPlanID string           `json:"requested_plan_id" gorm:"not null"`
	DurationMonths  int              `json:"duration_months" gorm:"not null"`
	Status          lifecycle.Status `json:"status" gorm:"default:'Pending';index"`
	RequestDate     time.Time        `json:"request_date" gorm:"not null"`
	StartDate       *time.Time       `json:"start_date"`
	EndDate         string           `json:"end_date"` // RFC3339, "unlimited" or empty
	ProfileName     string           `json:"profile_name"`
	Notes           string           `json:"notes" gorm:"type:text"`
	ResellerID      uint             `json:"reseller_id" gorm:"index"`
	ResellerName    string           `json:"reseller_name"`

	Reseller *User `json:"-" gorm:"foreignKey:ResellerID"`
}

// StringID is the identifier used at the API and working-set boundary.
func (s *Submission) StringID() string {
	return strconv.FormatUint(uint64(s.ID), 10)
}

func (s *Submission) HasUnlimitedEndDate() bool {
	return s.EndDate == lifecycle.EndDateUnlimited
}

func (s *Submission) Expiry(now time.Time) lifecycle.ExpiryInfo {
	return lifecycle.ComputeExpiry(s.Status, s.EndDate, now)
}

func (s *Submission) RenewalProgress(now time.Time) lifecycle.Progress {
	return lifecycle.ComputeRenewalProgress(s.Status, s.RequestDate, s.EndDate, now)
}
