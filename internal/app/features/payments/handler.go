// internal/app/features/payments/handler.go
package payments

import (
	"github.com/dalemusser/recoveryhub/internal/app/system/auditlog"
	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the read-only money transaction endpoints.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Audit *auditlog.Logger
	Tasks *tasks.Service
}

func NewHandler(db *mongo.Database, logger *zap.Logger, audit *auditlog.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Audit: audit,
		Tasks: tasks.NewService(db),
	}
}
