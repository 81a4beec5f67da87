package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenewalEndAnchorsToNow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	end, err := RenewalEnd(now, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC), end)

	end, err = RenewalEnd(now, 12)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), end)
}

func TestRenewalIsNotAdditive(t *testing.T) {
	// Renewing twice in succession discards the first extension: the second
	// end date is one month from the second call's now, nothing more.
	now1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now2 := now1.Add(48 * time.Hour)

	first, err := RenewalEnd(now1, 1)
	require.NoError(t, err)

	second, err := RenewalEnd(now2, 1)
	require.NoError(t, err)

	assert.Equal(t, now2.AddDate(0, 1, 0), second)
	assert.NotEqual(t, first.AddDate(0, 1, 0), second)
}

func TestRenewalEndValidatesMonths(t *testing.T) {
	now := time.Now()

	for _, months := range []int{0, -1, -12} {
		_, err := RenewalEnd(now, months)
		assert.Error(t, err, "months=%d", months)
	}

	_, err := RenewalEnd(now, MaxRenewalMonths)
	assert.NoError(t, err)

	_, err = RenewalEnd(now, MaxRenewalMonths+1)
	assert.Error(t, err)
}

func TestPeriodEnd(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	end, err := PeriodEnd(start, 6)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), end)

	_, err = PeriodEnd(start, 0)
	assert.Error(t, err)
}
