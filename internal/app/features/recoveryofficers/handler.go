// internal/app/features/recoveryofficers/handler.go
package recoveryofficers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	drcstore "github.com/dalemusser/recoveryhub/internal/app/store/drcs"
	officerstore "github.com/dalemusser/recoveryhub/internal/app/store/recoveryofficers"
	rtomstore "github.com/dalemusser/recoveryhub/internal/app/store/rtoms"
	userlogstore "github.com/dalemusser/recoveryhub/internal/app/store/userlogs"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/auditlog"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
	"github.com/dalemusser/recoveryhub/internal/app/system/txn"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the recovery officer and DRC user endpoints.
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

func classify(err error) error {
	switch {
	case errors.Is(err, officerstore.ErrNotFound):
		return apperr.NotFoundf("Recovery officer not found")
	case errors.Is(err, officerstore.ErrDuplicateEmail):
		return apperr.Conflictf("An officer with this login email already exists")
	case errors.Is(err, officerstore.ErrStale):
		return apperr.Conflictf("Recovery officer was changed by another request, please retry")
	case errors.Is(err, drcstore.ErrNotFound):
		return apperr.NotFoundf("DRC not found")
	case errors.Is(err, rtomstore.ErrNotFound):
		return apperr.NotFoundf("RTOM not found")
	case errors.Is(err, userlogstore.ErrNotFound):
		// The login record must exist for every officer; its absence is a
		// data fault, not a client error.
		return apperr.Wrap(err, "User log entry not found")
	case errors.Is(err, models.ErrOfficerIdentity), errors.Is(err, models.ErrOfficerType), errors.Is(err, models.ErrOfficerMismatch):
		return apperr.Invalid("Exactly one of ro_id or drcUser_id is required")
	}
	return err
}

func checkTransition(from, to string) error {
	if err := status.Check(from, to); err != nil {
		if errors.Is(err, status.ErrTerminal) {
			return apperr.Conflictf("Recovery officer is terminated")
		}
		return apperr.Invalid("Cannot change recovery officer status from %s to %s", from, to)
	}
	if from == to {
		return apperr.Invalid("Recovery officer is already %s", from)
	}
	return nil
}

// changeStatus runs write and the matching User_log update as one unit.
// write must move the officer out of o's current state; o is the document
// as loaded and is written back if a later step fails.
func (h *Handler) changeStatus(ctx context.Context, o models.RecoveryOfficer, to, statusType, by string, at time.Time, write func(ctx context.Context) error) error {
	officers := officerstore.New(h.DB)
	logs := userlogstore.New(h.DB)
	_, id := o.Identity()

	return txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if err := write(ctx); err != nil {
			return err
		}
		txn.Compensate(ctx, func(ctx context.Context) error {
			return officers.Restore(ctx, o)
		})

		prev, err := logs.Get(ctx, id, o.DrcUserType)
		if err != nil {
			return err
		}
		if err := logs.SetStatus(ctx, id, o.DrcUserType, to, statusType, by, at); err != nil {
			return err
		}
		txn.Compensate(ctx, func(ctx context.Context) error {
			return logs.Restore(ctx, prev)
		})
		return nil
	})
}

func missingRTOMs(ids []int64) error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return apperr.NotFoundf("RTOM not found: %s", strings.Join(parts, ", "))
}

// lookupRTOMs loads the distinct RTOMs in refs. Every one must exist and
// none may be terminated.
func lookupRTOMs(ctx context.Context, db *mongo.Database, refs []rtomRef) ([]models.RTOM, error) {
	seen := make(map[int64]bool, len(refs))
	var ids []int64
	for _, ref := range refs {
		if !seen[ref.RTOMID] {
			seen[ref.RTOMID] = true
			ids = append(ids, ref.RTOMID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	found, missing, err := rtomstore.New(db).GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, missingRTOMs(missing)
	}
	out := make([]models.RTOM, 0, len(ids))
	for _, id := range ids {
		rt := found[id]
		if rt.RTOMStatus == status.Terminate {
			return nil, apperr.Conflictf("RTOM %d is terminated", id)
		}
		out = append(out, rt)
	}
	return out, nil
}
