// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "System_tasks"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts t. The caller allocates TaskID.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	if t.Parameters == nil {
		t.Parameters = map[string]any{}
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// Delete removes a task. Only used to compensate a failed transaction.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// List returns one page of tasks matching b, newest first.
func (s *Store) List(ctx context.Context, b *listquery.Builder, page int) ([]models.Task, int64, error) {
	pipeline := []bson.D{b.Match(), listquery.SortDesc("Task_Id")}
	return listquery.Page[models.Task](ctx, s.c, pipeline, page)
}

// Unpublished returns up to limit tasks that have not been announced on
// the broker, oldest first.
func (s *Store) Unpublished(ctx context.Context, limit int64) ([]models.Task, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"event_published_on": bson.M{"$exists": false}},
		options.Find().SetSort(bson.D{{Key: "Task_Id", Value: 1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Task
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkPublished stamps event_published_on. It is a no-op for tasks that
// are already stamped.
func (s *Store) MarkPublished(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "event_published_on": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"event_published_on": at}})
	return err
}
