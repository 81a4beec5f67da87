package workingset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resellpanel_backend/internal/model"
	"resellpanel_backend/pkg/lifecycle"
)

func mkSubmission(id uint, status lifecycle.Status) model.Submission {
	return model.Submission{
		Model:           gorm.Model{ID: id, UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		CustomerEmail:   "customer@example.com",
		RequestedPlanID: "plan-basic",
		DurationMonths:  1,
		Status:          status,
		RequestDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStoreLoadAndGet(t *testing.T) {
	s := NewStore()
	s.Load([]model.Submission{mkSubmission(1, lifecycle.StatusPending), mkSubmission(2, lifecycle.StatusSuccessful)})

	assert.Equal(t, 2, s.Len())

	sub, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, lifecycle.StatusPending, sub.Status)

	_, ok = s.Get("99")
	assert.False(t, ok)
}

func TestApplyOptimisticCommit(t *testing.T) {
	s := NewStore()
	s.Load([]model.Submission{mkSubmission(1, lifecycle.StatusPending)})

	tok, err := s.ApplyOptimistic("1", func(sub *model.Submission) {
		sub.Status = lifecycle.StatusSuccessful
	})
	require.NoError(t, err)

	// Optimistic value is visible immediately.
	sub, _ := s.Get("1")
	assert.Equal(t, lifecycle.StatusSuccessful, sub.Status)

	authoritative := mkSubmission(1, lifecycle.StatusSuccessful)
	authoritative.ProfileName = "set by server"
	require.NoError(t, s.Commit(tok, authoritative))

	sub, _ = s.Get("1")
	assert.Equal(t, "set by server", sub.ProfileName)
}

func TestApplyOptimisticRollbackRestoresExactSnapshot(t *testing.T) {
	s := NewStore()
	orig := mkSubmission(1, lifecycle.StatusPending)
	s.Load([]model.Submission{orig})

	tok, err := s.ApplyOptimistic("1", func(sub *model.Submission) {
		sub.Status = lifecycle.StatusSuccessful
		sub.UpdatedAt = time.Now()
	})
	require.NoError(t, err)

	require.NoError(t, s.Rollback(tok))

	sub, _ := s.Get("1")
	assert.Equal(t, lifecycle.StatusPending, sub.Status)
	assert.Equal(t, orig.UpdatedAt, sub.UpdatedAt, "UpdatedAt must be the pre-change value")
}

func TestApplyOptimisticUnknownID(t *testing.T) {
	s := NewStore()
	_, err := s.ApplyOptimistic("7", func(*model.Submission) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSecondOperationForSameIDRejected(t *testing.T) {
	s := NewStore()
	s.Load([]model.Submission{mkSubmission(1, lifecycle.StatusPending)})

	tok, err := s.ApplyOptimistic("1", func(sub *model.Submission) {
		sub.Status = lifecycle.StatusSuccessful
	})
	require.NoError(t, err)

	_, err = s.ApplyOptimistic("1", func(sub *model.Submission) {
		sub.Status = lifecycle.StatusCanceled
	})
	assert.ErrorIs(t, err, ErrOperationInFlight)

	// Resolving the first unblocks the id.
	require.NoError(t, s.Rollback(tok))
	_, err = s.ApplyOptimistic("1", func(sub *model.Submission) {
		sub.Status = lifecycle.StatusCanceled
	})
	assert.NoError(t, err)
}

func TestStaleTokenRejected(t *testing.T) {
	s := NewStore()
	s.Load([]model.Submission{mkSubmission(1, lifecycle.StatusPending)})

	tok, err := s.ApplyOptimistic("1", func(sub *model.Submission) {
		sub.Status = lifecycle.StatusSuccessful
	})
	require.NoError(t, err)
	require.NoError(t, s.Commit(tok, mkSubmission(1, lifecycle.StatusSuccessful)))

	assert.ErrorIs(t, s.Commit(tok, mkSubmission(1, lifecycle.StatusPending)), ErrStaleToken)
	assert.ErrorIs(t, s.Rollback(tok), ErrStaleToken)
}

func TestLoadKeepsPendingEntries(t *testing.T) {
	s := NewStore()
	s.Load([]model.Submission{mkSubmission(1, lifecycle.StatusPending)})

	tok, err := s.ApplyOptimistic("1", func(sub *model.Submission) {
		sub.Status = lifecycle.StatusSuccessful
	})
	require.NoError(t, err)

	// A background refresh must not clobber the in-flight optimistic value.
	s.Load([]model.Submission{mkSubmission(1, lifecycle.StatusPending), mkSubmission(2, lifecycle.StatusPending)})

	sub, _ := s.Get("1")
	assert.Equal(t, lifecycle.StatusSuccessful, sub.Status)
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.Rollback(tok))
	sub, _ = s.Get("1")
	assert.Equal(t, lifecycle.StatusPending, sub.Status)
}

func TestRemoveIsSingleUpdate(t *testing.T) {
	s := NewStore()
	s.Load([]model.Submission{
		mkSubmission(1, lifecycle.StatusPending),
		mkSubmission(2, lifecycle.StatusPending),
		mkSubmission(3, lifecycle.StatusPending),
	})

	s.Remove([]string{"1", "3"})

	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("2")
	assert.True(t, ok)
}
