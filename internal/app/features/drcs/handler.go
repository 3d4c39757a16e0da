// internal/app/features/drcs/handler.go
package drcs

import (
	"errors"
	"strconv"
	"strings"

	drcstore "github.com/dalemusser/recoveryhub/internal/app/store/drcs"
	officerstore "github.com/dalemusser/recoveryhub/internal/app/store/recoveryofficers"
	rtomstore "github.com/dalemusser/recoveryhub/internal/app/store/rtoms"
	userlogstore "github.com/dalemusser/recoveryhub/internal/app/store/userlogs"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/auditlog"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the debt recovery company endpoints.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Audit *auditlog.Logger
	Tasks *tasks.Service
}

// NewHandler constructs a DRC handler bound to a DB, logger and audit logger.
func NewHandler(db *mongo.Database, logger *zap.Logger, audit *auditlog.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Audit: audit,
		Tasks: tasks.NewService(db),
	}
}

// classify maps store and lifecycle errors to client-facing errors.
func classify(err error) error {
	switch {
	case errors.Is(err, drcstore.ErrNotFound):
		return apperr.NotFoundf("DRC not found")
	case errors.Is(err, drcstore.ErrDuplicateEmail):
		return apperr.Conflictf("A DRC with this email already exists")
	case errors.Is(err, drcstore.ErrStale), errors.Is(err, officerstore.ErrStale):
		return apperr.Conflictf("DRC was changed by another request, please retry")
	case errors.Is(err, rtomstore.ErrNotFound):
		return apperr.NotFoundf("RTOM not found")
	case errors.Is(err, status.ErrTerminal):
		return apperr.Conflictf("DRC is terminated")
	case errors.Is(err, userlogstore.ErrNotFound):
		return apperr.Wrap(err, "User log entry not found")
	}
	return err
}

// checkTransition applies the lifecycle rules to a requested change.
func checkTransition(from, to string) error {
	if err := status.Check(from, to); err != nil {
		if errors.Is(err, status.ErrTerminal) {
			return apperr.Conflictf("DRC is terminated")
		}
		return apperr.Invalid("Cannot change DRC status from %s to %s", from, to)
	}
	if from == to {
		return apperr.Invalid("DRC is already %s", from)
	}
	return nil
}

func missingRTOMs(ids []int64) error {
	return apperr.NotFoundf("RTOM not found: %s", joinIDs(ids))
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
