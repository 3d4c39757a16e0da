package auditlog_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/features/auditlog"
	"github.com/dalemusser/recoveryhub/internal/app/store/audit"
	"github.com/dalemusser/recoveryhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type row struct {
	EventType string            `json:"event_type"`
	Entity    string            `json:"entity"`
	EntityID  int64             `json:"entity_id"`
	Actor     string            `json:"actor"`
	Details   map[string]string `json:"details"`
}

func newRouter(db *mongo.Database) http.Handler {
	if db == nil {
		return auditlog.Routes(&auditlog.Handler{Log: zap.NewNop()})
	}
	return auditlog.Routes(auditlog.NewHandler(db, zap.NewNop()))
}

func post(t *testing.T, h http.Handler, path string, body any) *testutil.ResponseRecorder {
	t.Helper()
	return testutil.Do(h, testutil.JSONRequest(t, "POST", path, body))
}

func seed(t *testing.T, ctx context.Context, db *mongo.Database, at time.Time, entity string, id int64, eventType, actor string) {
	t.Helper()
	err := audit.New(db).Log(ctx, audit.Event{
		Timestamp: at,
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		Entity:    entity,
		EntityID:  id,
		Actor:     actor,
		Details:   map[string]string{"note": eventType},
	})
	if err != nil {
		t.Fatalf("seed audit event: %v", err)
	}
}

func TestList_Validation(t *testing.T) {
	h := newRouter(nil)

	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"unknown entity", map[string]any{"entity": "Case"}, "Entity must be one of"},
		{"bad from", map[string]any{"from_date": "yesterday"}, "from_date is not a valid date"},
		{"reversed", map[string]any{"from_date": "2024-02-01", "to_date": "2024-01-01"}, "from_date must not be after to_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, "/List_Audit_Events", tt.body)
			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, tt.want)
		})
	}
}

func TestList_FiltersAndOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	seed(t, ctx, db, base, audit.EntityDRC, 1, audit.EventDRCRegistered, "admin")
	seed(t, ctx, db, base.Add(time.Hour), audit.EntityDRC, 1, audit.EventDRCUpdated, "ops")
	seed(t, ctx, db, base.Add(48*time.Hour), audit.EntityRTOM, 4, audit.EventRTOMRegistered, "admin")

	rec := post(t, h, "/List_Audit_Events", map[string]any{})
	rec.AssertStatus(t, http.StatusOK)
	env := rec.Envelope(t)
	if env.Pagination == nil || env.Pagination.Total != 3 {
		t.Fatalf("unexpected pagination %+v", env.Pagination)
	}
	var rows []row
	rec.DecodeData(t, &rows)
	if len(rows) != 3 || rows[0].EventType != audit.EventRTOMRegistered {
		t.Fatalf("expected newest first, got %+v", rows)
	}

	rec = post(t, h, "/List_Audit_Events", map[string]any{"entity": "DRC", "actor": "ops"})
	rec.AssertStatus(t, http.StatusOK)
	var byActor []row
	rec.DecodeData(t, &byActor)
	if len(byActor) != 1 || byActor[0].EventType != audit.EventDRCUpdated {
		t.Errorf("unexpected rows %+v", byActor)
	}

	rec = post(t, h, "/List_Audit_Events", map[string]any{"from_date": "2024-03-01", "to_date": "2024-03-01"})
	rec.AssertStatus(t, http.StatusOK)
	var byDate []row
	rec.DecodeData(t, &byDate)
	if len(byDate) != 2 {
		t.Errorf("expected 2 events on 2024-03-01, got %d", len(byDate))
	}

	rec = post(t, h, "/List_Audit_Events", map[string]any{"entity": "Task"})
	rec.AssertStatus(t, http.StatusOK)
	if string(rec.Envelope(t).Data) != "[]" {
		t.Errorf("expected [], got %s", rec.Envelope(t).Data)
	}
}

func TestHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)
	seed(t, ctx, db, base, audit.EntityOfficer, 7, audit.EventRORegistered, "drc-admin")
	seed(t, ctx, db, base.Add(time.Minute), audit.EntityOfficer, 7, audit.EventROApproved, "admin")
	seed(t, ctx, db, base.Add(2*time.Minute), audit.EntityOfficer, 8, audit.EventRORegistered, "drc-admin")

	rec := post(t, h, "/Entity_History", map[string]any{"entity": "Recovery_officer", "entity_id": 7})
	rec.AssertStatus(t, http.StatusOK)
	var rows []row
	rec.DecodeData(t, &rows)
	if len(rows) != 2 || rows[0].EventType != audit.EventROApproved {
		t.Fatalf("unexpected history %+v", rows)
	}
	if rows[1].Details["note"] != audit.EventRORegistered {
		t.Errorf("details not returned: %+v", rows[1])
	}

	rec = post(t, h, "/Entity_History", map[string]any{"entity": "Recovery_officer", "entity_id": 7, "limit": 1})
	rec.AssertStatus(t, http.StatusOK)
	var limited []row
	rec.DecodeData(t, &limited)
	if len(limited) != 1 {
		t.Errorf("expected 1 row, got %d", len(limited))
	}
}

func TestHistory_MissingFields(t *testing.T) {
	h := newRouter(nil)

	rec := post(t, h, "/Entity_History", map[string]any{})
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Missing required field(s): entity, entity_id")
}
