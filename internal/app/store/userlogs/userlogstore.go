// internal/app/store/userlogs/userlogstore.go
package userlogstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "User_log"

// ErrNotFound means the officer has no login record.
var ErrNotFound = errors.New("user log entry not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) Create(ctx context.Context, l models.UserLog) (models.UserLog, error) {
	l.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.UserLog{}, err
	}
	return l, nil
}

// Delete removes a login record. Only used to compensate a failed
// registration.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *Store) Get(ctx context.Context, userID int64, userType string) (models.UserLog, error) {
	var l models.UserLog
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "user_type": userType}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.UserLog{}, ErrNotFound
	}
	return l, err
}

// SetStatus updates the login status of one officer. It returns
// ErrNotFound when the record is missing so the enclosing transaction
// aborts.
func (s *Store) SetStatus(ctx context.Context, userID int64, userType, st, statusType, by string, at time.Time) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, "user_type": userType},
		bson.M{"$set": bson.M{
			"user_status":      st,
			"user_status_type": statusType,
			"status_on":        at,
			"status_by":        by,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore writes back a previously loaded record.
func (s *Store) Restore(ctx context.Context, l models.UserLog) error {
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	return err
}
