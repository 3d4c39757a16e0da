package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/recoveryhub/internal/app/store/audit"
	"github.com/dalemusser/recoveryhub/internal/app/system/auditlog"
	"github.com/dalemusser/recoveryhub/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("POST", "/", nil)

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.DRCRegistered(req, "admin", 1, "Acme")
	logger.TaskCreated(req, "admin", 1, 3, "export")
}

func TestLogger_LogMode_WritesZapOnly(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	// No store: "log" mode must never touch it.
	logger := auditlog.New(nil, zap.New(core), auditlog.Uniform(auditlog.ModeLog))

	req := httptest.NewRequest("POST", "/api/DRC/Terminate_DRC", nil)
	req.Header.Set("X-Forwarded-For", "10.1.2.3")
	logger.DRCTerminated(req, "admin", 42, 3)

	entries := logs.FilterMessage("audit event").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event_type"] != audit.EventDRCTerminated {
		t.Errorf("event_type = %v", fields["event_type"])
	}
	if fields["entity_id"] != int64(42) {
		t.Errorf("entity_id = %v", fields["entity_id"])
	}
	if fields["detail_officers_deactivated"] != "3" {
		t.Errorf("detail_officers_deactivated = %v", fields["detail_officers_deactivated"])
	}
}

func TestLogger_PerCategoryConfig(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := auditlog.New(nil, zap.New(core), auditlog.Config{Admin: auditlog.ModeOff, Task: auditlog.ModeLog})

	req := httptest.NewRequest("POST", "/", nil)
	logger.RTOMSuspended(req, "ops", 5)
	logger.TaskCreated(req, "ops", 9, 3, "Create Settlement List for Download")

	entries := logs.FilterMessage("audit event").All()
	if len(entries) != 1 {
		t.Fatalf("expected only the task event, got %d entries", len(entries))
	}
	if entries[0].ContextMap()["event_type"] != audit.EventTaskCreated {
		t.Errorf("unexpected event %v", entries[0].ContextMap()["event_type"])
	}
}

func TestValidMode(t *testing.T) {
	for _, m := range []string{"all", "db", "log", "off"} {
		if !auditlog.ValidMode(m) {
			t.Errorf("ValidMode(%q) = false", m)
		}
	}
	if auditlog.ValidMode("both") {
		t.Error("ValidMode(both) = true")
	}
}

func TestLogger_DBMode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Uniform(auditlog.ModeDB))
	req := httptest.NewRequest("POST", "/", nil).WithContext(ctx)
	logger.OfficerTerminated(req, "supervisor", "RO", 11)

	events, err := store.History(ctx, audit.EntityOfficer, 11, 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 stored event, got %d", len(events))
	}
	if events[0].Actor != "supervisor" || events[0].Details["user_type"] != "RO" {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestLogger_OffMode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Uniform(auditlog.ModeOff))
	req := httptest.NewRequest("POST", "/", nil).WithContext(ctx)
	logger.RTOMRegistered(req, "ops", 1, "CO")

	n, err := store.CountByFilter(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatalf("CountByFilter failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no events when config is off, got %d", n)
	}
}
