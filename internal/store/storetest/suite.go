// Package storetest exercises a compliance suite against a store.Store
// implementation. Backends should provide a clean, isolated store from
// makeStore.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
	"github.com/bucketbuddy/bucketbuddy/internal/store"
)

// Run verifies the ownership-scoped CRUD contract shared by all drivers.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	ownerA := "gh-" + uuid.New().String()
	ownerB := "gh-" + uuid.New().String()

	// Insert assigns id and addedAt, leaves completed false.
	target := strfmt.Date(time.Now().AddDate(0, 0, 10))
	created, err := s.Items().Insert(ctx, &model.Item{
		OwnerID:    ownerA,
		Title:      "See Northern Lights",
		Category:   "Travel",
		Priority:   "high",
		TargetDate: &target,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("Insert: empty item id")
	}
	if created.AddedAt.IsZero() {
		t.Fatalf("Insert: zero addedAt")
	}
	if created.Completed {
		t.Fatalf("Insert: completed must default to false")
	}

	second, err := s.Items().Insert(ctx, &model.Item{
		OwnerID:  ownerA,
		Title:    "Try sushi in Tokyo",
		Category: "Food",
		Priority: "medium",
	})
	if err != nil {
		t.Fatalf("Insert second: %v", err)
	}
	if second.ID == created.ID {
		t.Fatalf("Insert: duplicate item id %s", second.ID)
	}

	// ListByOwner returns only the owner's items, in insertion order.
	lst, err := s.Items().ListByOwner(ctx, ownerA)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(lst) != 2 {
		t.Fatalf("ListByOwner: n=%d want 2", len(lst))
	}
	if lst[0].ID != created.ID || lst[1].ID != second.ID {
		t.Fatalf("ListByOwner: order got [%s %s] want [%s %s]", lst[0].ID, lst[1].ID, created.ID, second.ID)
	}
	if lst[0].TargetDate == nil {
		t.Fatalf("ListByOwner: targetDate lost on round-trip")
	}
	if lst[1].TargetDate != nil {
		t.Fatalf("ListByOwner: unexpected targetDate for second item")
	}

	if other, err := s.Items().ListByOwner(ctx, ownerB); err != nil || len(other) != 0 {
		t.Fatalf("ListByOwner for stranger: n=%d err=%v", len(other), err)
	}

	// Cross-owner mutations report false, same as a missing id.
	if ok, err := s.Items().MarkCompleted(ctx, created.ID, ownerB); err != nil || ok {
		t.Fatalf("MarkCompleted cross-owner: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Items().Delete(ctx, created.ID, ownerB); err != nil || ok {
		t.Fatalf("Delete cross-owner: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Items().MarkCompleted(ctx, uuid.New().String(), ownerA); err != nil || ok {
		t.Fatalf("MarkCompleted missing id: ok=%v err=%v", ok, err)
	}

	// Owner-scoped completion, idempotent on repeat.
	if ok, err := s.Items().MarkCompleted(ctx, created.ID, ownerA); err != nil || !ok {
		t.Fatalf("MarkCompleted: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Items().MarkCompleted(ctx, created.ID, ownerA); err != nil || !ok {
		t.Fatalf("MarkCompleted repeat: ok=%v err=%v", ok, err)
	}
	lst, err = s.Items().ListByOwner(ctx, ownerA)
	if err != nil || len(lst) != 2 {
		t.Fatalf("ListByOwner after complete: n=%d err=%v", len(lst), err)
	}
	if !lst[0].Completed {
		t.Fatalf("MarkCompleted: flag not persisted")
	}
	if lst[1].Completed {
		t.Fatalf("MarkCompleted: wrong item flagged")
	}

	// Delete is owner-scoped and reports false on repeat.
	if ok, err := s.Items().Delete(ctx, second.ID, ownerA); err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Items().Delete(ctx, second.ID, ownerA); err != nil || ok {
		t.Fatalf("Delete repeat: ok=%v err=%v", ok, err)
	}
	lst, err = s.Items().ListByOwner(ctx, ownerA)
	if err != nil || len(lst) != 1 {
		t.Fatalf("ListByOwner after delete: n=%d err=%v", len(lst), err)
	}

	if err := s.HealthPing(ctx); err != nil {
		t.Fatalf("HealthPing: %v", err)
	}
}
