package lifecycle

import (
	"fmt"
	"time"
)

const (
	MinRenewalMonths = 1
	MaxRenewalMonths = 120
)

// RenewalEnd computes the end date of a renewal: calendar months added to the
// current instant. Renewal always anchors to now, never to the previous end
// date, so renewing early discards the remaining time and renewing an expired
// subscription starts fresh from today.
func RenewalEnd(now time.Time, months int) (time.Time, error) {
	if months < MinRenewalMonths {
		return time.Time{}, fmt.Errorf("renewal months must be at least %d, got %d", MinRenewalMonths, months)
	}
	if months > MaxRenewalMonths {
		return time.Time{}, fmt.Errorf("renewal months must be at most %d, got %d", MaxRenewalMonths, months)
	}
	return now.AddDate(0, months, 0), nil
}

// PeriodEnd is the duration-based creation path: endDate = startDate plus the
// requested number of calendar months.
func PeriodEnd(start time.Time, months int) (time.Time, error) {
	if months <= 0 {
		return time.Time{}, fmt.Errorf("duration months must be positive, got %d", months)
	}
	return start.AddDate(0, months, 0), nil
}
