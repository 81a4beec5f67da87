package lifecycle

import (
	"fmt"
	"math"
	"time"
)

type ExpiryState string

const (
	ExpiryNotApplicable ExpiryState = "not_applicable"
	ExpiryUnlimited     ExpiryState = "unlimited"
	ExpiryExpired       ExpiryState = "expired"
	ExpiryExpiringSoon  ExpiryState = "expiring_soon"
	ExpiryActive        ExpiryState = "active"
)

// ExpiringSoonDays is the window, in days, inside which a subscription is
// reported as expiring soon.
const ExpiringSoonDays = 7

type ExpiryInfo struct {
	State       ExpiryState `json:"state"`
	DaysLeft    int         `json:"days_left,omitempty"`
	HoursLeft   int         `json:"hours_left,omitempty"`
	MinutesLeft int         `json:"minutes_left,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
}

// ComputeExpiry derives the expiry state of a submission from its status and
// end date at the given instant. endDate is the raw stored value: empty for
// none, the "unlimited" sentinel, or an ISO timestamp. The sentinel is
// checked before any parsing so it is never compared as a date.
func ComputeExpiry(status Status, endDate string, now time.Time) ExpiryInfo {
	if status != StatusSuccessful || endDate == "" {
		return ExpiryInfo{State: ExpiryNotApplicable}
	}
	if endDate == EndDateUnlimited {
		return ExpiryInfo{State: ExpiryUnlimited}
	}

	end, err := ParseTime(endDate)
	if err != nil {
		return ExpiryInfo{State: ExpiryNotApplicable}
	}

	remaining := end.Sub(now)
	daysLeft := int(math.Floor(remaining.Hours() / 24))

	if daysLeft < 0 {
		return ExpiryInfo{State: ExpiryExpired, DaysLeft: daysLeft, EndDate: &end}
	}

	if daysLeft <= ExpiringSoonDays {
		// Sub-day remainder comes from the exact duration, not from
		// daysLeft, so the hour/minute components are not rounded twice.
		hoursLeft := int(remaining.Hours()) % 24
		minutesLeft := int(remaining.Minutes()) % 60
		return ExpiryInfo{
			State:       ExpiryExpiringSoon,
			DaysLeft:    daysLeft,
			HoursLeft:   hoursLeft,
			MinutesLeft: minutesLeft,
			EndDate:     &end,
		}
	}

	return ExpiryInfo{State: ExpiryActive, DaysLeft: daysLeft, EndDate: &end}
}

type ProgressBand string

const (
	BandGreen  ProgressBand = "green"
	BandYellow ProgressBand = "yellow"
	BandRed    ProgressBand = "red"
)

type Progress struct {
	Applicable bool    `json:"applicable"`
	Unlimited  bool    `json:"unlimited"`
	Percent    float64 `json:"percent"` // unrounded, 0..100
}

// ComputeRenewalProgress reports how far a Successful submission is through
// its lifetime: 0% at the request date, 100% at the end date. Only valid for
// a real end date; everything else short-circuits.
func ComputeRenewalProgress(status Status, requestDate time.Time, endDate string, now time.Time) Progress {
	if status != StatusSuccessful || endDate == "" {
		return Progress{}
	}
	if endDate == EndDateUnlimited {
		return Progress{Unlimited: true}
	}

	end, err := ParseTime(endDate)
	if err != nil {
		return Progress{}
	}

	total := end.Sub(requestDate).Hours() / 24
	elapsed := now.Sub(requestDate).Hours() / 24

	if total == 0 {
		// Zero-length window: fully consumed once now reaches the end date.
		if !now.Before(end) {
			return Progress{Applicable: true, Percent: 100}
		}
		return Progress{Applicable: true, Percent: 0}
	}

	percent := elapsed / total * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return Progress{Applicable: true, Percent: percent}
}

// Display is the whole-number percentage for rendering.
func (p Progress) Display() int {
	return int(math.Round(p.Percent))
}

// Band classifies urgency from the unrounded percentage, so a value like
// 89.6 does not jump a band through display rounding.
func (p Progress) Band() ProgressBand {
	switch {
	case p.Percent >= 90:
		return BandRed
	case p.Percent >= 75:
		return BandYellow
	default:
		return BandGreen
	}
}

// ParseTime accepts the timestamp formats submissions arrive with: RFC3339
// first, then a few common fallbacks.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse time: %v", s)
}
