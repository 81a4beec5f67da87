package workingset

import (
	"context"
	"fmt"
	"time"

	"resellpanel_backend/internal/model"
	"resellpanel_backend/pkg/lifecycle"
)

// Collaborator is the persistence side of the working set. A nil submission
// in a return value means the operation was rejected; the message is always
// usable for display.
type Collaborator interface {
	UpdateStatus(ctx context.Context, id string, status lifecycle.Status) (*model.Submission, string, error)
	Renew(ctx context.Context, id string, months int) (*model.Submission, string, error)
	Delete(ctx context.Context, id string) error
	UpdateProfileName(ctx context.Context, id string, name string) (*model.Submission, string, map[string][]string, error)
}

// Outcome is the structured result every transition call returns. Failures
// never propagate as errors past the manager boundary.
type Outcome struct {
	OK         bool                `json:"ok"`
	Message    string              `json:"message"`
	Submission *model.Submission   `json:"submission,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

// TransitionManager mediates status changes for single submissions with
// optimistic local feedback and guaranteed rollback on failure.
type TransitionManager struct {
	store  *Store
	collab Collaborator
	now    func() time.Time
}

func NewTransitionManager(store *Store, collab Collaborator) *TransitionManager {
	return &TransitionManager{store: store, collab: collab, now: time.Now}
}

// RequestStatusChange applies newStatus optimistically, asks the collaborator
// to persist it, then commits the authoritative row or rolls back the exact
// pre-change snapshot. An id absent from the working set is a no-op that
// surfaces a not-found outcome without touching the collaborator.
func (m *TransitionManager) RequestStatusChange(ctx context.Context, id string, newStatus lifecycle.Status) Outcome {
	cur, ok := m.store.Get(id)
	if !ok {
		return Outcome{Message: fmt.Sprintf("Submission %s not found", id)}
	}
	if !lifecycle.CanTransition(cur.Status, newStatus) {
		return Outcome{Message: fmt.Sprintf("Cannot change status from %s to %s", cur.Status, newStatus)}
	}

	tok, err := m.store.ApplyOptimistic(id, func(sub *model.Submission) {
		sub.Status = newStatus
		sub.UpdatedAt = m.now()
	})
	if err != nil {
		return Outcome{Message: err.Error()}
	}

	authoritative, message, err := m.collab.UpdateStatus(ctx, id, newStatus)
	if err != nil || authoritative == nil {
		m.store.Rollback(tok)
		if message == "" {
			message = "Could not update submission status"
		}
		return Outcome{Message: message}
	}

	m.store.Commit(tok, *authoritative)
	if message == "" {
		message = fmt.Sprintf("Submission marked as %s", newStatus)
	}
	return Outcome{OK: true, Message: message, Submission: authoritative}
}

// Renew extends a submission by the given number of months anchored to now,
// forcing the status to Successful. Validation fails fast before any local
// mutation.
func (m *TransitionManager) Renew(ctx context.Context, id string, months int) Outcome {
	cur, ok := m.store.Get(id)
	if !ok {
		return Outcome{Message: fmt.Sprintf("Submission %s not found", id)}
	}

	now := m.now()
	newEnd, err := lifecycle.RenewalEnd(now, months)
	if err != nil {
		return Outcome{Message: err.Error()}
	}

	tok, err := m.store.ApplyOptimistic(cur.StringID(), func(sub *model.Submission) {
		sub.Status = lifecycle.StatusSuccessful
		sub.StartDate = &now
		sub.EndDate = newEnd.Format(time.RFC3339)
		sub.DurationMonths = months
		sub.UpdatedAt = now
	})
	if err != nil {
		return Outcome{Message: err.Error()}
	}

	authoritative, message, err := m.collab.Renew(ctx, id, months)
	if err != nil || authoritative == nil {
		m.store.Rollback(tok)
		if message == "" {
			message = "Could not renew subscription"
		}
		return Outcome{Message: message}
	}

	m.store.Commit(tok, *authoritative)
	if message == "" {
		message = fmt.Sprintf("Package has been renewed for %d month(s)", months)
	}
	return Outcome{OK: true, Message: message, Submission: authoritative}
}

// UpdateProfileName is the single-field update path. Field-level validation
// errors come back in the outcome rather than as a failure message.
func (m *TransitionManager) UpdateProfileName(ctx context.Context, id string, name string) Outcome {
	if _, ok := m.store.Get(id); !ok {
		return Outcome{Message: fmt.Sprintf("Submission %s not found", id)}
	}

	tok, err := m.store.ApplyOptimistic(id, func(sub *model.Submission) {
		sub.ProfileName = name
		sub.UpdatedAt = m.now()
	})
	if err != nil {
		return Outcome{Message: err.Error()}
	}

	authoritative, message, fieldErrs, err := m.collab.UpdateProfileName(ctx, id, name)
	if err != nil || authoritative == nil {
		m.store.Rollback(tok)
		if message == "" {
			message = "Could not update profile name"
		}
		return Outcome{Message: message, Errors: fieldErrs}
	}

	m.store.Commit(tok, *authoritative)
	if message == "" {
		message = "Profile name updated"
	}
	return Outcome{OK: true, Message: message, Submission: authoritative}
}
