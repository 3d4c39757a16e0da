// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs after DB connections and schema setup, before the HTTP
// handler is built. It starts the background workers.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	for _, w := range deps.Workers {
		w.Start()
	}
	logger.Info("startup complete",
		zap.Bool("redis", deps.Redis != nil),
		zap.Bool("task_events", deps.Publisher != nil),
		zap.Duration("request_timeout", appCfg.RequestTimeout))
	return nil
}
