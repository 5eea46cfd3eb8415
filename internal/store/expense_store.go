// Package store holds the in-memory record collections behind the two
// dashboard views. A store owns an immutable snapshot of its records:
// every refresh or mutation replaces the snapshot wholesale, never in
// place, which is what makes the order store's optimistic rollback an
// exact restore rather than a merge.
package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"vyapari/internal/backend"
	"vyapari/internal/core"
)

// ExpenseStore is the authoritative in-memory collection of the expense
// view. Every successful mutation triggers a full re-fetch; there are
// no optimistic inserts or local patches on this view.
type ExpenseStore struct {
	src backend.ExpenseSource
	ttl time.Duration

	mu      sync.Mutex
	records []core.Expense
	version int64
	fetched time.Time

	group singleflight.Group
}

func NewExpenseStore(src backend.ExpenseSource, ttl time.Duration) *ExpenseStore {
	return &ExpenseStore{src: src, ttl: ttl}
}

// Records returns the current snapshot, refreshing it first when it has
// never been loaded or has outlived the store's TTL. The returned slice
// is the snapshot itself and must be treated as read-only.
func (s *ExpenseStore) Records(ctx context.Context) ([]core.Expense, error) {
	records, _, err := s.Snapshot(ctx)
	return records, err
}

// Snapshot returns the current records together with the version that
// identifies them, read under a single lock acquisition. Callers that
// key derived values by version must use this pair rather than calling
// Records and Version separately, or a concurrent replacement can slip
// between the two reads.
func (s *ExpenseStore) Snapshot(ctx context.Context) ([]core.Expense, int64, error) {
	s.mu.Lock()
	fresh := !s.fetched.IsZero() && time.Since(s.fetched) <= s.ttl
	records, version := s.records, s.version
	s.mu.Unlock()
	if fresh {
		return records, version, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records, s.version, nil
}

// Refresh re-fetches the full record set. Concurrent calls collapse
// into a single backend request.
func (s *ExpenseStore) Refresh(ctx context.Context) error {
	_, err, _ := s.group.Do("refresh", func() (any, error) {
		records, err := s.src.ListExpenses(ctx)
		if err != nil {
			return nil, err
		}
		s.replace(records)
		return nil, nil
	})
	return err
}

// Create validates the draft locally, submits it, and re-fetches on
// success. A failed request leaves the snapshot untouched.
func (s *ExpenseStore) Create(ctx context.Context, draft core.ExpenseDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	if _, err := s.src.CreateExpense(ctx, draft); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Update validates the draft locally, submits it against the record's
// unique identifier, and re-fetches on success.
func (s *ExpenseStore) Update(ctx context.Context, id string, draft core.ExpenseDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	if _, err := s.src.UpdateExpense(ctx, id, draft); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Delete submits the deletion and re-fetches on success. Confirmation
// is the caller's responsibility; the store never sees declined deletes.
func (s *ExpenseStore) Delete(ctx context.Context, id string) error {
	if err := s.src.DeleteExpense(ctx, id); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Version identifies the current snapshot; it increases on every
// replacement and can key derived-value caches.
func (s *ExpenseStore) Version() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *ExpenseStore) replace(records []core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.version++
	s.fetched = time.Now()
}
