package services

import (
	"context"
	"math"
	"time"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
	"github.com/bucketbuddy/bucketbuddy/internal/store"
)

// ItemService wraps the store with the derived-field policy: daysLeft is
// computed at read time so it stays correct as "today" advances, instead
// of persisting a value that goes stale.
type ItemService struct {
	store store.Store
	now   func() time.Time
}

func NewItemService(s store.Store) *ItemService {
	return &ItemService{store: s, now: time.Now}
}

func (s *ItemService) CreateItem(ctx context.Context, it *model.Item) (*model.Item, error) {
	created, err := s.store.Items().Insert(ctx, it)
	if err != nil {
		return nil, err
	}
	s.derive(created)
	return created, nil
}

func (s *ItemService) ListItems(ctx context.Context, ownerID string) ([]*model.Item, error) {
	items, err := s.store.Items().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		s.derive(it)
	}
	return items, nil
}

// CompleteItem sets the completion flag. The returned bool collapses
// "no such id" and "owned by someone else" into one answer.
func (s *ItemService) CompleteItem(ctx context.Context, id, ownerID string) (bool, error) {
	return s.store.Items().MarkCompleted(ctx, id, ownerID)
}

func (s *ItemService) DeleteItem(ctx context.Context, id, ownerID string) (bool, error) {
	return s.store.Items().Delete(ctx, id, ownerID)
}

func (s *ItemService) derive(it *model.Item) {
	if it.TargetDate == nil {
		it.DaysLeft = nil
		return
	}
	d := DaysLeft(time.Time(*it.TargetDate), s.now())
	it.DaysLeft = &d
}

// DaysLeft is the whole-day distance between the target date and today,
// both normalized to midnight. Today is 0, ten days out is 10, a missed
// date is negative.
func DaysLeft(target, now time.Time) int {
	t := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(t.Sub(n).Hours() / 24))
}
