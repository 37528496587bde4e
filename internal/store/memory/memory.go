// Package memory provides a process-local item store. It backs the
// no-database configuration and the unit-test suites.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
	"github.com/bucketbuddy/bucketbuddy/internal/store"
)

// New returns an empty in-memory store.
func New() store.Store { return &memStore{items: make(map[string]record)} }

type record struct {
	item model.Item
	seq  uint64
}

type memStore struct {
	mu      sync.RWMutex
	items   map[string]record
	nextSeq uint64
	closed  bool
}

func (s *memStore) Items() store.Items { return (*memItems)(s) }

func (s *memStore) HealthPing(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.ErrStoreNotReady
	}
	return nil
}

func (s *memStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type memItems memStore

func (s *memItems) Insert(ctx context.Context, it *model.Item) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, model.ErrStoreNotReady
	}

	out := *it
	out.ID = uuid.New().String()
	out.AddedAt = time.Now().UTC()
	s.nextSeq++
	s.items[out.ID] = record{item: out, seq: s.nextSeq}
	return &out, nil
}

func (s *memItems) ListByOwner(ctx context.Context, ownerID string) ([]*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, model.ErrStoreNotReady
	}

	var recs []record
	for _, r := range s.items {
		if r.item.OwnerID == ownerID {
			recs = append(recs, r)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	out := make([]*model.Item, 0, len(recs))
	for _, r := range recs {
		item := r.item
		out = append(out, &item)
	}
	return out, nil
}

func (s *memItems) MarkCompleted(ctx context.Context, id, ownerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, model.ErrStoreNotReady
	}

	r, ok := s.items[id]
	if !ok || r.item.OwnerID != ownerID {
		return false, nil
	}
	r.item.Completed = true
	s.items[id] = r
	return true, nil
}

func (s *memItems) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, model.ErrStoreNotReady
	}

	r, ok := s.items[id]
	if !ok || r.item.OwnerID != ownerID {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}
