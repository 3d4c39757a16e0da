// internal/app/store/counters/store.go
package counters

import (
	"context"
	"errors"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sequence names.
const (
	DRC     = "drc_id"
	RO      = "ro_id"
	DRCUser = "drcUser_id"
	RTOM    = "rtom_id"
	Task    = "Task_Id"
)

// Collection holds one document per sequence: {_id: name, seq: n}.
const Collection = "collection_sequence"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Next atomically increments the named sequence and returns the new value.
// The first call for a name returns 1. Values are unique and increasing but
// may have gaps when the caller later fails.
func (s *Store) Next(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, errors.New("counters: empty sequence name")
	}
	seq, err := s.inc(ctx, name)
	if wafflemongo.IsDup(err) {
		// Two first-ever calls raced on the upsert; the document exists now.
		seq, err = s.inc(ctx, name)
	}
	return seq, err
}

func (s *Store) inc(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// Current returns the last value handed out, or 0.
func (s *Store) Current(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.c.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	return doc.Seq, err
}
