package dataservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessDates(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	start, end, ok := successDates(now, 3)
	require.True(t, ok)
	assert.Equal(t, now, start)
	assert.Equal(t, "2024-09-01T12:00:00Z", end)
}

func TestSuccessDatesRejectsBadDuration(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, months := range []int{0, -1} {
		_, end, ok := successDates(now, months)
		assert.False(t, ok)
		assert.Empty(t, end)
	}
}
