// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/recoveryhub/internal/app/store/audit"
	"github.com/dalemusser/recoveryhub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Destinations accepted by Config fields.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"
	ModeLog = "log"
	ModeOff = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Admin controls DRC, officer and RTOM mutations.
	Admin string
	// Task controls task creation events.
	Task string
}

// Uniform returns a Config that sends every category to mode.
func Uniform(mode string) Config {
	return Config{Admin: mode, Task: mode}
}

// ValidMode reports whether s is an accepted destination.
func ValidMode(s string) bool {
	switch s {
	case ModeAll, ModeDB, ModeLog, ModeOff:
		return true
	}
	return false
}

// Logger records audit events to MongoDB (via audit.Store) and zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.String("entity", event.Entity),
		zap.Int64("entity_id", event.EntityID),
		zap.String("actor", event.Actor),
		zap.String("ip", event.IP),
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}
	l.zapLog.Info("audit event", fields...)
}

// Log records an event according to configuration. A nil Logger is a no-op.
// Storage failures are logged and never returned: the mutation being
// audited has already committed.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := ModeAll
	switch event.Category {
	case audit.CategoryAdmin:
		setting = l.config.Admin
	case audit.CategoryTask:
		setting = l.config.Task
	}
	if setting == "" || setting == ModeOff {
		return
	}

	if setting == ModeAll || setting == ModeLog {
		l.logToZap(event)
	}
	if (setting == ModeAll || setting == ModeDB) && l.store != nil {
		if err := l.store.Log(context.WithoutCancel(ctx), event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func (l *Logger) admin(r *http.Request, eventType, entity string, id int64, actor string, details map[string]string) {
	if l == nil {
		return
	}
	l.Log(r.Context(), audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		Entity:    entity,
		EntityID:  id,
		Actor:     actor,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		RequestID: middleware.GetReqID(r.Context()),
		Details:   details,
	})
}

// --- DRC ---

func (l *Logger) DRCRegistered(r *http.Request, actor string, drcID int64, name string) {
	l.admin(r, audit.EventDRCRegistered, audit.EntityDRC, drcID, actor, map[string]string{"drc_name": name})
}

func (l *Logger) DRCStatusChanged(r *http.Request, actor string, drcID int64, from, to string) {
	l.admin(r, audit.EventDRCStatusChanged, audit.EntityDRC, drcID, actor, map[string]string{"from": from, "to": to})
}

// DRCTerminated records the termination and how many officers were deactivated with it.
func (l *Logger) DRCTerminated(r *http.Request, actor string, drcID int64, officers int) {
	l.admin(r, audit.EventDRCTerminated, audit.EntityDRC, drcID, actor, map[string]string{"officers_deactivated": strconv.Itoa(officers)})
}

func (l *Logger) DRCUpdated(r *http.Request, actor string, drcID int64, fields string) {
	l.admin(r, audit.EventDRCUpdated, audit.EntityDRC, drcID, actor, map[string]string{"fields": fields})
}

// --- Recovery officers ---

// Officer events carry the officer's variant (RO or drcUser) since ids of
// the two variants come from separate sequences.

func (l *Logger) OfficerRegistered(r *http.Request, actor, userType string, id, drcID int64, status string) {
	l.admin(r, audit.EventRORegistered, audit.EntityOfficer, id, actor, map[string]string{
		"user_type": userType, "drc_id": strconv.FormatInt(drcID, 10), "status": status,
	})
}

func (l *Logger) OfficerApproved(r *http.Request, actor, userType string, id int64) {
	l.admin(r, audit.EventROApproved, audit.EntityOfficer, id, actor, map[string]string{"user_type": userType})
}

func (l *Logger) OfficerSuspended(r *http.Request, actor, userType string, id int64) {
	l.admin(r, audit.EventROSuspended, audit.EntityOfficer, id, actor, map[string]string{"user_type": userType})
}

func (l *Logger) OfficerTerminated(r *http.Request, actor, userType string, id int64) {
	l.admin(r, audit.EventROTerminated, audit.EntityOfficer, id, actor, map[string]string{"user_type": userType})
}

func (l *Logger) OfficerUpdated(r *http.Request, actor, userType string, id int64, fields string) {
	l.admin(r, audit.EventROUpdated, audit.EntityOfficer, id, actor, map[string]string{"user_type": userType, "fields": fields})
}

// --- RTOM ---

func (l *Logger) RTOMRegistered(r *http.Request, actor string, rtomID int64, abbreviation string) {
	l.admin(r, audit.EventRTOMRegistered, audit.EntityRTOM, rtomID, actor, map[string]string{"rtom_abbreviation": abbreviation})
}

func (l *Logger) RTOMUpdated(r *http.Request, actor string, rtomID int64, reason string) {
	l.admin(r, audit.EventRTOMUpdated, audit.EntityRTOM, rtomID, actor, map[string]string{"reason": reason})
}

func (l *Logger) RTOMSuspended(r *http.Request, actor string, rtomID int64) {
	l.admin(r, audit.EventRTOMSuspended, audit.EntityRTOM, rtomID, actor, nil)
}

func (l *Logger) RTOMTerminated(r *http.Request, actor string, rtomID int64, officers int64) {
	l.admin(r, audit.EventRTOMTerminated, audit.EntityRTOM, rtomID, actor, map[string]string{"officers_closed": strconv.FormatInt(officers, 10)})
}

// --- Tasks ---

func (l *Logger) TaskCreated(r *http.Request, actor string, taskID, templateID int64, taskType string) {
	if l == nil {
		return
	}
	l.Log(r.Context(), audit.Event{
		Category:  audit.CategoryTask,
		EventType: audit.EventTaskCreated,
		Entity:    audit.EntityTask,
		EntityID:  taskID,
		Actor:     actor,
		IP:        ratelimit.ClientIP(r),
		RequestID: middleware.GetReqID(r.Context()),
		Details: map[string]string{
			"template_task_id": strconv.FormatInt(templateID, 10),
			"task_type":        taskType,
		},
	})
}
