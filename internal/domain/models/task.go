// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a unit of work recorded for an external worker (list exports and
// the like). EventPublishedOn is set once the task has been announced on
// the message broker.
type Task struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TaskID         int64              `bson:"Task_Id" json:"Task_Id"`
	TemplateTaskID int64              `bson:"Template_Task_Id" json:"Template_Task_Id"`
	TaskType       string             `bson:"task_type" json:"task_type"`
	Parameters     map[string]any     `bson:"parameters" json:"parameters"`
	CreatedBy      string             `bson:"Created_By" json:"Created_By"`
	CreatedDate    time.Time          `bson:"Created_Date" json:"Created_Date"`
	TaskStatus     string             `bson:"task_status" json:"task_status"`

	EventPublishedOn *time.Time `bson:"event_published_on,omitempty" json:"-"`
}
