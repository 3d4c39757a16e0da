// internal/app/features/rtoms/handler.go
package rtoms

import (
	"errors"

	officerstore "github.com/dalemusser/recoveryhub/internal/app/store/recoveryofficers"
	rtomstore "github.com/dalemusser/recoveryhub/internal/app/store/rtoms"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/auditlog"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the RTOM area endpoints.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Audit *auditlog.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger, audit *auditlog.Logger) *Handler {
	return &Handler{DB: db, Log: logger, Audit: audit}
}

func classify(err error) error {
	switch {
	case errors.Is(err, rtomstore.ErrNotFound):
		return apperr.NotFoundf("RTOM not found")
	case errors.Is(err, rtomstore.ErrDuplicateAbbreviation):
		return apperr.Conflictf("An RTOM with this abbreviation already exists")
	case errors.Is(err, rtomstore.ErrStale), errors.Is(err, officerstore.ErrStale):
		return apperr.Conflictf("RTOM was changed by another request, please retry")
	}
	return err
}

func checkTransition(from, to string) error {
	if err := status.Check(from, to); err != nil {
		if errors.Is(err, status.ErrTerminal) {
			return apperr.Conflictf("RTOM is terminated")
		}
		return apperr.Invalid("Cannot change RTOM status from %s to %s", from, to)
	}
	if from == to {
		return apperr.Invalid("RTOM is already %s", from)
	}
	return nil
}
