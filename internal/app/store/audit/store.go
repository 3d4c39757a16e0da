// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is where audit events are stored.
const Collection = "audit_events"

// Event categories
const (
	CategoryAdmin = "admin"
	CategoryTask  = "task"
)

// Entities an event can be about.
const (
	EntityDRC     = "DRC"
	EntityOfficer = "Recovery_officer"
	EntityRTOM    = "RTOM"
	EntityTask    = "Task"
)

// Admin event types
const (
	EventDRCRegistered    = "drc_registered"
	EventDRCStatusChanged = "drc_status_changed"
	EventDRCTerminated    = "drc_terminated"
	EventDRCUpdated       = "drc_updated"

	EventRORegistered = "ro_registered"
	EventROApproved   = "ro_approved"
	EventROSuspended  = "ro_suspended"
	EventROTerminated = "ro_terminated"
	EventROUpdated    = "ro_updated"

	EventRTOMRegistered = "rtom_registered"
	EventRTOMUpdated    = "rtom_updated"
	EventRTOMSuspended  = "rtom_suspended"
	EventRTOMTerminated = "rtom_terminated"

	EventTaskCreated = "task_created"
)

// Event is one recorded admin action.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`

	Category  string `bson:"category"`
	EventType string `bson:"event_type"`

	// What
	Entity   string `bson:"entity"`
	EntityID int64  `bson:"entity_id"`

	// Who, as given in the request body (create_by, remark_by, ...).
	Actor string `bson:"actor"`

	IP        string `bson:"ip"`
	UserAgent string `bson:"user_agent,omitempty"`
	RequestID string `bson:"request_id,omitempty"`

	Details map[string]string `bson:"details,omitempty"`
}

// QueryFilter defines filters for querying audit events.
type QueryFilter struct {
	Entity    string
	EntityID  *int64
	EventType string
	Actor     string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int64
	Offset    int64
}

func (f QueryFilter) bson() bson.M {
	q := bson.M{}
	if f.Entity != "" {
		q["entity"] = f.Entity
	}
	if f.EntityID != nil {
		q["entity_id"] = *f.EntityID
	}
	if f.EventType != "" {
		q["event_type"] = f.EventType
	}
	if f.Actor != "" {
		q["actor"] = f.Actor
	}
	if f.StartTime != nil || f.EndTime != nil {
		tq := bson.M{}
		if f.StartTime != nil {
			tq["$gte"] = *f.StartTime
		}
		if f.EndTime != nil {
			tq["$lte"] = *f.EndTime
		}
		q["timestamp"] = tq
	}
	return q
}

// Store manages audit event records.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// Query retrieves audit events matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	cur, err := s.c.Find(ctx, filter.bson(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CountByFilter returns the count of events matching the filter.
func (s *Store) CountByFilter(ctx context.Context, filter QueryFilter) (int64, error) {
	return s.c.CountDocuments(ctx, filter.bson())
}

// History returns the most recent events for one entity.
func (s *Store) History(ctx context.Context, entity string, id int64, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{Entity: entity, EntityID: &id, Limit: limit})
}
