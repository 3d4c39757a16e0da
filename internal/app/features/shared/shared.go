// internal/app/features/shared/shared.go
//
// Package shared holds request helpers used by more than one feature.
package shared

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/auditlog"
	"github.com/dalemusser/recoveryhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
	"github.com/dalemusser/recoveryhub/internal/app/system/timeouts"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.uber.org/zap"
)

// Now is the clock used for every timestamp written by handlers.
var Now = func() time.Time { return time.Now().UTC() }

// Remark sanitizes text and returns a remark entry, or nil when nothing
// is left.
func Remark(text, by string, at time.Time) *models.Remark {
	text = htmlsanitize.Text(text)
	if text == "" {
		return nil
	}
	return &models.Remark{Remark: text, RemarkDtm: at, RemarkBy: by}
}

// RequiredRemark is Remark for endpoints where the remark is mandatory.
// A remark that is empty after sanitizing counts as missing.
func RequiredRemark(field, text, by string, at time.Time) (*models.Remark, error) {
	rm := Remark(text, by, at)
	if rm == nil {
		return nil, apperr.MissingFields(field)
	}
	return rm, nil
}

// Context bounds a request by the medium timeout.
func Context(r *http.Request, log *zap.Logger, op string) (context.Context, context.CancelFunc) {
	return timeouts.WithTimeout(r.Context(), timeouts.Medium(), log, op)
}

// SubmitTask records a download-list task and writes the 201 response.
func SubmitTask(w http.ResponseWriter, r *http.Request, log *zap.Logger, svc *tasks.Service, audit *auditlog.Logger, op string, p tasks.Payload) {
	ctx, cancel := Context(r, log, op)
	defer cancel()

	t, err := svc.Submit(ctx, log, p)
	if err != nil {
		respond.Error(w, log, op, err)
		return
	}
	audit.TaskCreated(r, p.CreatedBy, t.TaskID, t.TemplateTaskID, t.TaskType)
	respond.Created(w, "Task created successfully", t)
}
