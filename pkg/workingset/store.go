// Package workingset holds the admin session's local view of submissions and
// the optimistic-update discipline over it: apply a change locally for
// instant feedback, then commit the authoritative row or roll back the exact
// prior snapshot when the persistence side rejects it.
package workingset

import (
	"errors"
	"sort"
	"strconv"
	"sync"

	"resellpanel_backend/internal/model"
)

var (
	ErrNotFound          = errors.New("submission not found in working set")
	ErrOperationInFlight = errors.New("another operation is already in flight for this submission")
	ErrStaleToken        = errors.New("operation token is no longer pending")
)

// Token identifies one pending optimistic operation. At most one operation
// may be in flight per submission id.
type Token struct {
	id    string
	nonce uint64
}

func (t Token) ID() string {
	return t.id
}

type pendingOp struct {
	nonce uint64
	prior model.Submission
}

// Store is an id-keyed map of submission snapshots. Entries are always
// replaced whole, never merged, so interleaved completions of independent
// operations can only ever affect their own entry.
type Store struct {
	mu      sync.Mutex
	items   map[string]model.Submission
	pending map[string]pendingOp
	nonce   uint64
}

func NewStore() *Store {
	return &Store{
		items:   make(map[string]model.Submission),
		pending: make(map[string]pendingOp),
	}
}

// Load replaces the whole working set, e.g. on initial fetch or a periodic
// refresh. Entries with a pending operation keep their optimistic snapshot so
// a refresh cannot clobber an in-flight change.
func (s *Store) Load(subs []model.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := make(map[string]model.Submission, len(subs))
	for _, sub := range subs {
		fresh[sub.StringID()] = sub
	}
	for id := range s.pending {
		if cur, ok := s.items[id]; ok {
			fresh[id] = cur
		}
	}
	s.items = fresh
}

func (s *Store) Get(id string) (model.Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.items[id]
	return sub, ok
}

// List returns the current snapshots sorted by id for stable iteration.
func (s *Store) List() []model.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Submission, 0, len(s.items))
	for _, sub := range s.items {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ApplyOptimistic captures the current snapshot of id, applies patch to a
// copy and installs it as the visible entry. The returned token must be
// resolved with Commit or Rollback. A second call for the same id while one
// is pending fails with ErrOperationInFlight.
func (s *Store) ApplyOptimistic(id string, patch func(*model.Submission)) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prior, ok := s.items[id]
	if !ok {
		return Token{}, ErrNotFound
	}
	if _, busy := s.pending[id]; busy {
		return Token{}, ErrOperationInFlight
	}

	s.nonce++
	next := prior
	patch(&next)

	s.items[id] = next
	s.pending[id] = pendingOp{nonce: s.nonce, prior: prior}
	return Token{id: id, nonce: s.nonce}, nil
}

// Commit resolves a pending operation with the authoritative row returned by
// the persistence collaborator, replacing the optimistic snapshot whole.
func (s *Store) Commit(tok Token, authoritative model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	op, ok := s.pending[tok.id]
	if !ok || op.nonce != tok.nonce {
		return ErrStaleToken
	}
	delete(s.pending, tok.id)
	s.items[tok.id] = authoritative
	return nil
}

// Rollback restores the exact snapshot captured when the operation was
// applied, never a partially merged state.
func (s *Store) Rollback(tok Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	op, ok := s.pending[tok.id]
	if !ok || op.nonce != tok.nonce {
		return ErrStaleToken
	}
	delete(s.pending, tok.id)
	s.items[tok.id] = op.prior
	return nil
}

// Remove drops the given ids in a single state update, used by the bulk
// coordinator once a whole batch has completed.
func (s *Store) Remove(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.items, id)
		delete(s.pending, id)
	}
}

// Replace installs a fresh row keyed by its own id, e.g. a newly created
// submission. A pending entry is left alone.
func (s *Store) Replace(sub model.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := sub.StringID()
	if _, busy := s.pending[id]; busy {
		return
	}
	s.items[id] = sub
}

// FormatID converts a database key to the working-set id form.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
