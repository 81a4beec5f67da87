package workingset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resellpanel_backend/internal/model"
	"resellpanel_backend/pkg/lifecycle"
)

func TestBulkDeleteAllSucceed(t *testing.T) {
	store := NewStore()
	store.Load([]model.Submission{
		mkSubmission(1, lifecycle.StatusPending),
		mkSubmission(2, lifecycle.StatusSuccessful),
	})

	collab := &fakeCollaborator{}
	deleter := NewBulkDeleter(store, collab)

	result := deleter.Delete(context.Background(), []string{"1", "2"})

	assert.True(t, result.AllSucceeded())
	assert.Equal(t, []string{"1", "2"}, result.Succeeded)
	assert.Zero(t, store.Len())
	assert.Equal(t, "Deleted 2 account(s) successfully", result.Message())
}

func TestBulkDeletePartialFailure(t *testing.T) {
	store := NewStore()
	store.Load([]model.Submission{
		mkSubmission(1, lifecycle.StatusPending),
		mkSubmission(2, lifecycle.StatusPending),
		mkSubmission(3, lifecycle.StatusPending),
	})

	collab := &fakeCollaborator{deleteFail: map[string]error{"2": errors.New("row locked")}}
	deleter := NewBulkDeleter(store, collab)

	result := deleter.Delete(context.Background(), []string{"1", "2", "3"})

	assert.True(t, result.PartialFailure())
	assert.Equal(t, []string{"1", "3"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "2", result.Failed[0].ID)
	assert.Equal(t, "row locked", result.Failed[0].Reason)

	// Failed id stays in the working set; succeeded ones are gone.
	_, ok := store.Get("2")
	assert.True(t, ok)
	_, ok = store.Get("1")
	assert.False(t, ok)
	_, ok = store.Get("3")
	assert.False(t, ok)
}

func TestBulkDeleteContinuesAfterFailure(t *testing.T) {
	store := NewStore()
	store.Load([]model.Submission{
		mkSubmission(1, lifecycle.StatusPending),
		mkSubmission(2, lifecycle.StatusPending),
	})

	collab := &fakeCollaborator{deleteFail: map[string]error{"1": errors.New("boom")}}
	deleter := NewBulkDeleter(store, collab)

	result := deleter.Delete(context.Background(), []string{"1", "2"})

	// The failure on the first id must not abort the remaining deletes.
	assert.Equal(t, []string{"2"}, result.Succeeded)
	assert.Equal(t, []string{"2"}, collab.deleted)
}

func TestBulkDeleteAllFail(t *testing.T) {
	store := NewStore()
	store.Load([]model.Submission{mkSubmission(1, lifecycle.StatusPending)})

	collab := &fakeCollaborator{deleteFail: map[string]error{"1": errors.New("nope")}}
	deleter := NewBulkDeleter(store, collab)

	result := deleter.Delete(context.Background(), []string{"1"})

	assert.False(t, result.AllSucceeded())
	assert.False(t, result.PartialFailure())
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "Failed to delete 1 account(s)", result.Message())
}

func TestBulkDeleteEmptySet(t *testing.T) {
	store := NewStore()
	deleter := NewBulkDeleter(store, &fakeCollaborator{})

	result := deleter.Delete(context.Background(), nil)

	assert.Empty(t, result.Succeeded)
	assert.Empty(t, result.Failed)
}
