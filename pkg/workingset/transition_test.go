package workingset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resellpanel_backend/internal/model"
	"resellpanel_backend/pkg/lifecycle"
)

// fakeCollaborator scripts persistence outcomes per id.
type fakeCollaborator struct {
	updateResult  *model.Submission
	updateMessage string
	updateErr     error

	renewResult  *model.Submission
	renewMessage string
	renewErr     error

	profileResult *model.Submission
	profileErrs   map[string][]string

	deleteFail map[string]error
	deleted    []string

	updateCalls int
}

func (f *fakeCollaborator) UpdateStatus(ctx context.Context, id string, status lifecycle.Status) (*model.Submission, string, error) {
	f.updateCalls++
	return f.updateResult, f.updateMessage, f.updateErr
}

func (f *fakeCollaborator) Renew(ctx context.Context, id string, months int) (*model.Submission, string, error) {
	return f.renewResult, f.renewMessage, f.renewErr
}

func (f *fakeCollaborator) Delete(ctx context.Context, id string) error {
	if err, ok := f.deleteFail[id]; ok {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCollaborator) UpdateProfileName(ctx context.Context, id string, name string) (*model.Submission, string, map[string][]string, error) {
	if f.profileErrs != nil {
		return nil, "Validation failed", f.profileErrs, nil
	}
	return f.profileResult, "", nil, nil
}

func TestRequestStatusChangeSuccess(t *testing.T) {
	store := NewStore()
	store.Load([]model.Submission{mkSubmission(1, lifecycle.StatusPending)})

	authoritative := mkSubmission(1, lifecycle.StatusSuccessful)
	collab := &fakeCollaborator{updateResult: &authoritative, updateMessage: "Submission approved"}
	mgr := NewTransitionManager(store, collab)

	outcome := mgr.RequestStatusChange(context.Background(), "1", lifecycle.StatusSuccessful)

	assert.True(t, outcome.OK)
	assert.Equal(t, "Submission approved", outcome.Message)

	sub, _ := store.Get("1")
	assert.Equal(t, lifecycle.StatusSuccessful, sub.Status)
}

func TestRequestStatusChangeRollbackOnRejection(t *testing.T) {
	store := NewStore()
	orig := mkSubmission(1, lifecycle.StatusPending)
	store.Load([]model.Submission{orig})

	collab := &fakeCollaborator{updateResult: nil, updateMessage: "Rejected by server"}
	mgr := NewTransitionManager(store, collab)

	outcome := mgr.RequestStatusChange(context.Background(), "1", lifecycle.StatusSuccessful)

	assert.False(t, outcome.OK)
	assert.Equal(t, "Rejected by server", outcome.Message)

	sub, _ := store.Get("1")
	assert.Equal(t, lifecycle.StatusPending, sub.Status)
	assert.Equal(t, orig.UpdatedAt, sub.UpdatedAt, "rollback must restore the exact snapshot")
}

func TestRequestStatusChangeRollbackOnError(t *testing.T) {
	store := NewStore()
	store.Load([]model.Submission{mkSubmission(1, lifecycle.StatusPending)})

	collab := &fakeCollaborator{updateErr: errors.New("connection reset")}
	mgr := NewTransitionManager(store, collab)

	outcome := mgr.RequestStatusChange(context.Background(), "1", lifecycle.StatusSuccessful)

	assert.False(t, outcome.OK)
	sub, _ := store.Get("1")
	assert.Equal(t, lifecycle.StatusPending, sub.Status)
}

func TestRequestStatusChangeNotFoundIsNoOp(t *testing.T) {
	store := NewStore()
	collab := &fakeCollaborator{}
	mgr := NewTransitionManager(store, collab)

	outcome := mgr.RequestStatusChange(context.Background(), "42", lifecycle.StatusCanceled)

	assert.False(t, outcome.OK)
	assert.Contains(t, outcome.Message, "not found")
	assert.Zero(t, collab.updateCalls, "collaborator must not be called for an unknown id")
}

func TestRequestStatusChangeInvalidTarget(t *testing.T) {
	store := NewStore()
	store.Load([]model.Submission{mkSubmission(1, lifecycle.StatusPending)})
	mgr := NewTransitionManager(store, &fakeCollaborator{})

	outcome := mgr.RequestStatusChange(context.Background(), "1", lifecycle.Status("Expired"))
	assert.False(t, outcome.OK)
}

func TestRenewForcesSuccessfulFromNow(t *testing.T) {
	store := NewStore()
	expired := mkSubmission(1, lifecycle.StatusCanceled)
	expired.EndDate = "2024-01-01T00:00:00Z"
	store.Load([]model.Submission{expired})

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	renewed := mkSubmission(1, lifecycle.StatusSuccessful)
	renewed.EndDate = now.AddDate(0, 3, 0).Format(time.RFC3339)

	collab := &fakeCollaborator{renewResult: &renewed}
	mgr := NewTransitionManager(store, collab)
	mgr.now = func() time.Time { return now }

	outcome := mgr.Renew(context.Background(), "1", 3)

	require.True(t, outcome.OK)
	sub, _ := store.Get("1")
	assert.Equal(t, lifecycle.StatusSuccessful, sub.Status)
	assert.Equal(t, now.AddDate(0, 3, 0).Format(time.RFC3339), sub.EndDate)
}

func TestRenewValidatesMonths(t *testing.T) {
	store := NewStore()
	store.Load([]model.Submission{mkSubmission(1, lifecycle.StatusSuccessful)})
	collab := &fakeCollaborator{}
	mgr := NewTransitionManager(store, collab)

	outcome := mgr.Renew(context.Background(), "1", 0)

	assert.False(t, outcome.OK)
	sub, _ := store.Get("1")
	assert.Empty(t, sub.EndDate, "no partial mutation on validation failure")
}

func TestRenewRollbackOnFailure(t *testing.T) {
	store := NewStore()
	orig := mkSubmission(1, lifecycle.StatusSuccessful)
	orig.EndDate = "2024-01-01T00:00:00Z"
	store.Load([]model.Submission{orig})

	collab := &fakeCollaborator{renewErr: errors.New("update failed")}
	mgr := NewTransitionManager(store, collab)

	outcome := mgr.Renew(context.Background(), "1", 2)

	assert.False(t, outcome.OK)
	sub, _ := store.Get("1")
	assert.Equal(t, "2024-01-01T00:00:00Z", sub.EndDate)
}

func TestUpdateProfileNameFieldErrors(t *testing.T) {
	store := NewStore()
	orig := mkSubmission(1, lifecycle.StatusPending)
	orig.ProfileName = "old name"
	store.Load([]model.Submission{orig})

	collab := &fakeCollaborator{profileErrs: map[string][]string{"profileName": {"must be at most 100 characters"}}}
	mgr := NewTransitionManager(store, collab)

	outcome := mgr.UpdateProfileName(context.Background(), "1", "bad")

	assert.False(t, outcome.OK)
	assert.NotEmpty(t, outcome.Errors["profileName"])

	sub, _ := store.Get("1")
	assert.Equal(t, "old name", sub.ProfileName)
}
