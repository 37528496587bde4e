// Package mongo implements the item store on the document database used
// by the original deployment (bucketbuddy db, items collection).
package mongo

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
	"github.com/bucketbuddy/bucketbuddy/internal/store"
)

const (
	databaseName   = "bucketbuddy"
	collectionName = "items"
)

// Open connects to MongoDB and verifies connectivity against a primary.
func Open(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// NewWithClient constructs a Mongo-backed store from a connected client.
func NewWithClient(client *mongo.Client) store.Store {
	return &mongoStore{
		client: client,
		coll:   client.Database(databaseName).Collection(collectionName),
	}
}

type mongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	closed atomic.Bool
}

func (s *mongoStore) Items() store.Items { return &mongoItems{s} }

func (s *mongoStore) HealthPing(ctx context.Context) error {
	if s.closed.Load() {
		return model.ErrStoreNotReady
	}
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *mongoStore) Close(ctx context.Context) error {
	s.closed.Store(true)
	return s.client.Disconnect(ctx)
}

// itemDoc is the persisted shape; the derived daysLeft field never
// reaches the collection.
type itemDoc struct {
	ID         string     `bson:"_id"`
	OwnerID    string     `bson:"ownerId"`
	Title      string     `bson:"title"`
	Category   string     `bson:"category"`
	Priority   string     `bson:"priority"`
	TargetDate *time.Time `bson:"targetDate,omitempty"`
	AddedAt    time.Time  `bson:"addedAt"`
	Completed  bool       `bson:"completed"`
}

func toDoc(it *model.Item) itemDoc {
	doc := itemDoc{
		ID:        it.ID,
		OwnerID:   it.OwnerID,
		Title:     it.Title,
		Category:  it.Category,
		Priority:  it.Priority,
		AddedAt:   it.AddedAt,
		Completed: it.Completed,
	}
	if it.TargetDate != nil {
		t := time.Time(*it.TargetDate)
		doc.TargetDate = &t
	}
	return doc
}

func fromDoc(doc *itemDoc) *model.Item {
	it := &model.Item{
		ID:        doc.ID,
		OwnerID:   doc.OwnerID,
		Title:     doc.Title,
		Category:  doc.Category,
		Priority:  doc.Priority,
		AddedAt:   doc.AddedAt,
		Completed: doc.Completed,
	}
	if doc.TargetDate != nil {
		d := strfmt.Date(*doc.TargetDate)
		it.TargetDate = &d
	}
	return it
}

type mongoItems struct{ s *mongoStore }

func (m *mongoItems) Insert(ctx context.Context, it *model.Item) (*model.Item, error) {
	if m.s.closed.Load() {
		return nil, model.ErrStoreNotReady
	}

	out := *it
	out.ID = uuid.New().String()
	out.AddedAt = time.Now().UTC()
	if _, err := m.s.coll.InsertOne(ctx, toDoc(&out)); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *mongoItems) ListByOwner(ctx context.Context, ownerID string) ([]*model.Item, error) {
	if m.s.closed.Load() {
		return nil, model.ErrStoreNotReady
	}

	cur, err := m.s.coll.Find(ctx,
		bson.M{"ownerId": ownerID},
		options.Find().SetSort(bson.D{{Key: "addedAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	out := make([]*model.Item, 0)
	for cur.Next(ctx) {
		var doc itemDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromDoc(&doc))
	}
	return out, cur.Err()
}

func (m *mongoItems) MarkCompleted(ctx context.Context, id, ownerID string) (bool, error) {
	if m.s.closed.Load() {
		return false, model.ErrStoreNotReady
	}

	// MatchedCount, not ModifiedCount: re-completing an already
	// completed item must still report success.
	res, err := m.s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "ownerId": ownerID},
		bson.M{"$set": bson.M{"completed": true}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (m *mongoItems) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	if m.s.closed.Load() {
		return false, model.ErrStoreNotReady
	}

	res, err := m.s.coll.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
