// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	taskstore "github.com/dalemusser/recoveryhub/internal/app/store/tasks"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.uber.org/zap"
)

// Job is a unit of periodic background work.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Publisher announces a committed task to downstream workers.
type Publisher interface {
	Publish(ctx context.Context, t models.Task) error
}

// RelayBatch bounds how many tasks one relay run publishes.
const RelayBatch = 100

// RelayJob publishes tasks that have not been announced yet and stamps
// event_published_on. Only committed tasks are visible to it, so no event
// goes out for a rolled-back request. Publishing stops at the first
// failure to keep Task_Id order; the rest are retried next run.
func RelayJob(store *taskstore.Store, pub Publisher, logger *zap.Logger, interval time.Duration) Job {
	return Job{
		Name:     "task-relay",
		Interval: interval,
		Run: func(ctx context.Context) error {
			n, err := relay(ctx, store, pub, time.Now)
			if n > 0 {
				logger.Info("published task events", zap.Int("count", n))
			}
			return err
		},
	}
}

func relay(ctx context.Context, store *taskstore.Store, pub Publisher, now func() time.Time) (int, error) {
	pending, err := store.Unpublished(ctx, RelayBatch)
	if err != nil {
		return 0, err
	}
	published := 0
	for _, t := range pending {
		if err := pub.Publish(ctx, t); err != nil {
			return published, err
		}
		if err := store.MarkPublished(ctx, t.ID, now().UTC()); err != nil {
			return published, err
		}
		published++
	}
	return published, nil
}
