package store

import (
	"context"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
)

// Store exposes the persistence operations required by the item service.
// Implementations live under internal/store/<driver>/ (memory, postgres,
// sqlite, mongo) and are selected by the factory.
type Store interface {
	Items() Items

	// HealthPing reports whether the backing store is reachable.
	HealthPing(ctx context.Context) error

	// Close releases the underlying connection. The store returns
	// model.ErrStoreNotReady from all operations afterwards.
	Close(ctx context.Context) error
}

// Items holds bucket-list items scoped by owner. Every mutation is keyed
// by (id, ownerID); the boolean results do not distinguish a missing id
// from an id owned by someone else.
type Items interface {
	// Insert stores a new item, assigning ID and AddedAt.
	Insert(ctx context.Context, it *model.Item) (*model.Item, error)

	// ListByOwner returns the owner's items in insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Item, error)

	// MarkCompleted sets completed=true iff (id, ownerID) matches an item.
	// Re-completing an already completed item reports true.
	MarkCompleted(ctx context.Context, id, ownerID string) (bool, error)

	// Delete removes the item iff (id, ownerID) matches.
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}
