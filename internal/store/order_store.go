package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"vyapari/internal/backend"
	"vyapari/internal/core"
)

// OrderStore is the authoritative in-memory collection of the order
// view. Unlike the expense view it patches locally: deletes remove the
// record in place and status changes apply optimistically with an exact
// snapshot rollback when the backend rejects them. Creates still do a
// full re-fetch.
type OrderStore struct {
	src backend.OrderSource
	ttl time.Duration

	mu      sync.Mutex
	records []core.Order
	version int64
	fetched time.Time

	group singleflight.Group
}

func NewOrderStore(src backend.OrderSource, ttl time.Duration) *OrderStore {
	return &OrderStore{src: src, ttl: ttl}
}

// Records returns the current snapshot (read-only), refreshing when
// stale. Orders are held newest first.
func (s *OrderStore) Records(ctx context.Context) ([]core.Order, error) {
	s.mu.Lock()
	fresh := !s.fetched.IsZero() && time.Since(s.fetched) <= s.ttl
	records := s.records
	s.mu.Unlock()
	if fresh {
		return records, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records, nil
}

// Refresh re-fetches the full record set and reverses it so the most
// recently created order comes first. Concurrent calls collapse into a
// single backend request.
func (s *OrderStore) Refresh(ctx context.Context) error {
	_, err, _ := s.group.Do("refresh", func() (any, error) {
		records, err := s.src.ListOrders(ctx)
		if err != nil {
			return nil, err
		}
		reversed := make([]core.Order, len(records))
		for i, o := range records {
			reversed[len(records)-1-i] = o
		}
		s.replace(reversed)
		return nil, nil
	})
	return err
}

// Get looks up one order by its unique identifier, refreshing first if
// the snapshot is stale.
func (s *OrderStore) Get(ctx context.Context, id string) (core.Order, bool, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return core.Order{}, false, err
	}
	for _, o := range records {
		if o.ID == id {
			return o, true, nil
		}
	}
	return core.Order{}, false, nil
}

// Create validates the draft locally, submits it, and re-fetches on
// success so the new order lands at the top with its backend-derived
// financial breakdown.
func (s *OrderStore) Create(ctx context.Context, draft core.OrderDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	if _, err := s.src.CreateOrder(ctx, draft); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Delete submits the deletion, then removes the record locally by
// identifier instead of re-fetching.
func (s *OrderStore) Delete(ctx context.Context, id string) error {
	if err := s.src.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]core.Order, 0, len(s.records))
	for _, o := range s.records {
		if o.ID != id {
			next = append(next, o)
		}
	}
	s.records = next
	s.version++
	return nil
}

// SetStatus applies the status change optimistically: the snapshot is
// replaced immediately, then the backend call runs. On failure the
// pre-update snapshot is restored exactly as it was and the error is
// returned for the caller to surface.
func (s *OrderStore) SetStatus(ctx context.Context, id string, status core.OrderStatus) error {
	if !status.Valid() {
		return core.ErrInvalidStatus
	}

	s.mu.Lock()
	prev := s.records
	next := make([]core.Order, len(prev))
	copy(next, prev)
	found := false
	for i := range next {
		if next[i].ID == id {
			next[i].Status = status
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return backend.ErrNotFound
	}
	s.records = next
	s.version++
	s.mu.Unlock()

	if err := s.src.UpdateOrderStatus(ctx, id, status); err != nil {
		s.mu.Lock()
		s.records = prev
		s.version++
		s.mu.Unlock()
		return err
	}
	return nil
}

// Version identifies the current snapshot; it increases on every
// replacement and can key derived-value caches.
func (s *OrderStore) Version() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *OrderStore) replace(records []core.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.version++
	s.fetched = time.Now()
}
