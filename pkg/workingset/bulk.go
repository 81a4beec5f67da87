package workingset

import (
	"context"
	"fmt"
)

type BatchFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult reports per-id outcomes of a bulk operation. It is never
// collapsed into a single boolean: callers must be able to tell exactly
// which ids still exist.
type BatchResult struct {
	Succeeded []string       `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}

func (r BatchResult) AllSucceeded() bool {
	return len(r.Failed) == 0
}

func (r BatchResult) PartialFailure() bool {
	return len(r.Failed) > 0 && len(r.Succeeded) > 0
}

// BulkDeleter applies deletes across a set of submission ids with per-item
// isolation. Selection is owned by the caller; this is a batch executor over
// an explicit id set, not a selection manager.
type BulkDeleter struct {
	store  *Store
	collab Collaborator
}

func NewBulkDeleter(store *Store, collab Collaborator) *BulkDeleter {
	return &BulkDeleter{store: store, collab: collab}
}

// Delete issues deletes sequentially in the supplied order and never stops on
// an item failure. Successes leave the working set as one update after the
// whole batch, so the caller sees a single state change.
func (b *BulkDeleter) Delete(ctx context.Context, ids []string) BatchResult {
	var result BatchResult
	for _, id := range ids {
		if err := b.collab.Delete(ctx, id); err != nil {
			result.Failed = append(result.Failed, BatchFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	if len(result.Succeeded) > 0 {
		b.store.Remove(result.Succeeded)
	}
	return result
}

// Message is the batch-level summary surfaced to the operator.
func (r BatchResult) Message() string {
	switch {
	case len(r.Failed) == 0:
		return fmt.Sprintf("Deleted %d account(s) successfully", len(r.Succeeded))
	case len(r.Succeeded) == 0:
		return fmt.Sprintf("Failed to delete %d account(s)", len(r.Failed))
	default:
		return fmt.Sprintf("Deleted %d account(s), %d failed", len(r.Succeeded), len(r.Failed))
	}
}
