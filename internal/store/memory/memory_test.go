package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
	"github.com/bucketbuddy/bucketbuddy/internal/store"
	"github.com/bucketbuddy/bucketbuddy/internal/store/storetest"
)

func TestMemoryStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

func TestMemoryStore_ClosedReturnsNotReady(t *testing.T) {
	s := New()
	ctx := context.Background()
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := s.Items().Insert(ctx, &model.Item{OwnerID: "u1", Title: "t", Category: "c", Priority: "low"}); !errors.Is(err, model.ErrStoreNotReady) {
		t.Fatalf("Insert after close: err=%v want ErrStoreNotReady", err)
	}
	if _, err := s.Items().ListByOwner(ctx, "u1"); !errors.Is(err, model.ErrStoreNotReady) {
		t.Fatalf("ListByOwner after close: err=%v want ErrStoreNotReady", err)
	}
	if err := s.HealthPing(ctx); !errors.Is(err, model.ErrStoreNotReady) {
		t.Fatalf("HealthPing after close: err=%v want ErrStoreNotReady", err)
	}
}
