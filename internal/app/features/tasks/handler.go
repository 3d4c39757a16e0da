// internal/app/features/tasks/handler.go
package tasks

import (
	"github.com/dalemusser/recoveryhub/internal/app/system/auditlog"
	tasksys "github.com/dalemusser/recoveryhub/internal/app/system/tasks"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the generic task endpoints.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Audit *auditlog.Logger
	Tasks *tasksys.Service
}

func NewHandler(db *mongo.Database, logger *zap.Logger, audit *auditlog.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Audit: audit,
		Tasks: tasksys.NewService(db),
	}
}
