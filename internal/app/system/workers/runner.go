// internal/app/system/workers/runner.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
	"go.uber.org/zap"
)

// Runner executes a tasks.Job on its interval until stopped.
type Runner struct {
	job     tasks.Job
	log     *zap.Logger
	timeout time.Duration
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewRunner creates a runner for job. Each run gets its own context
// bounded by timeout.
func NewRunner(job tasks.Job, logger *zap.Logger, timeout time.Duration) *Runner {
	return &Runner{
		job:     job,
		log:     logger.With(zap.String("job", job.Name)),
		timeout: timeout,
		stopCh:  make(chan struct{}),
	}
}

// Start begins the background loop.
func (w *Runner) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("worker started", zap.Duration("interval", w.job.Interval))
}

// Stop signals the worker to stop and waits for the current run to finish.
func (w *Runner) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("worker stopped")
}

func (w *Runner) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.once()
		}
	}
}

func (w *Runner) once() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.job.Run(ctx); err != nil {
		w.log.Warn("job run failed", zap.Error(err))
	}
}
