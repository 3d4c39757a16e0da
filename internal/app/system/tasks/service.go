// internal/app/system/tasks/service.go
package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/store/counters"
	taskstore "github.com/dalemusser/recoveryhub/internal/app/store/tasks"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/txn"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Download-list templates.
const (
	TemplateDRCList        int64 = 1
	TemplateROList         int64 = 2
	TemplateSettlementList int64 = 3
	TemplatePaymentList    int64 = 4
	TemplateCommissionList int64 = 5
)

// StatusOpen is the status of every new task.
const StatusOpen = "open"

var templateTypes = map[int64]string{
	TemplateDRCList:        "Create DRC List for Downloading",
	TemplateROList:         "Create RO List for Downloading",
	TemplateSettlementList: "Create Settlement List for Downloading",
	TemplatePaymentList:    "Create Payment List for Downloading",
	TemplateCommissionList: "Create Commission List for Downloading",
}

// TypeFor returns the task_type recorded for a download-list template.
func TypeFor(template int64) string { return templateTypes[template] }

var ErrInvalidPayload = errors.New("tasks: template, task type and creator are required")

func (p Payload) check() error {
	if p.TemplateID <= 0 || p.TaskType == "" || p.CreatedBy == "" {
		return &apperr.Error{
			Kind:    apperr.Validation,
			Message: "Template_Task_Id, task_type and Created_By are required",
			Err:     ErrInvalidPayload,
		}
	}
	return nil
}

// Payload describes a task to record.
type Payload struct {
	TemplateID int64
	TaskType   string
	Parameters map[string]any
	CreatedBy  string
}

// Download builds the payload for one of the download-list templates.
// Nil or empty parameter values are dropped.
func Download(template int64, params map[string]any, createdBy string) Payload {
	clean := make(map[string]any, len(params))
	for k, v := range params {
		switch x := v.(type) {
		case nil:
			continue
		case string:
			if x == "" {
				continue
			}
		case *int64:
			if x == nil {
				continue
			}
			clean[k] = *x
			continue
		}
		clean[k] = v
	}
	return Payload{TemplateID: template, TaskType: TypeFor(template), Parameters: clean, CreatedBy: createdBy}
}

// Service records tasks. Create is meant to run inside txn.Run so the task
// disappears together with the rest of a failed unit of work.
type Service struct {
	db       *mongo.Database
	store    *taskstore.Store
	counters *counters.Store
	now      func() time.Time
}

func NewService(db *mongo.Database) *Service {
	return &Service{
		db:       db,
		store:    taskstore.New(db),
		counters: counters.New(db),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Allocate reserves the next Task_Id. Call it outside any transaction:
// the counter upsert retries on a duplicate key, which an aborted
// transaction cannot do.
func (s *Service) Allocate(ctx context.Context) (int64, error) {
	return s.counters.Next(ctx, counters.Task)
}

// Insert stores the task under id with status open and registers its
// removal as the saga compensation.
func (s *Service) Insert(ctx context.Context, id int64, p Payload) (models.Task, error) {
	if err := p.check(); err != nil {
		return models.Task{}, err
	}
	t, err := s.store.Create(ctx, models.Task{
		TaskID:         id,
		TemplateTaskID: p.TemplateID,
		TaskType:       p.TaskType,
		Parameters:     p.Parameters,
		CreatedBy:      p.CreatedBy,
		CreatedDate:    s.now(),
		TaskStatus:     StatusOpen,
	})
	if err != nil {
		return models.Task{}, err
	}
	txn.Compensate(ctx, func(ctx context.Context) error { return s.store.Delete(ctx, t.ID) })
	return t, nil
}

// Create allocates a Task_Id and inserts the task.
func (s *Service) Create(ctx context.Context, p Payload) (models.Task, error) {
	if err := p.check(); err != nil {
		return models.Task{}, err
	}
	id, err := s.Allocate(ctx)
	if err != nil {
		return models.Task{}, err
	}
	return s.Insert(ctx, id, p)
}

// Submit allocates the Task_Id first and then inserts the task in a
// transaction of its own.
func (s *Service) Submit(ctx context.Context, log *zap.Logger, p Payload) (models.Task, error) {
	if err := p.check(); err != nil {
		return models.Task{}, err
	}
	id, err := s.Allocate(ctx)
	if err != nil {
		return models.Task{}, err
	}
	var t models.Task
	err = txn.Run(ctx, s.db, log, func(ctx context.Context) error {
		var err error
		t, err = s.Insert(ctx, id, p)
		return err
	})
	return t, err
}
