package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/system/validators"
	"github.com/dalemusser/recoveryhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := make(map[string]bool)
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"Debt_recovery_company", "Recovery_officer", "Rtom", "System_tasks", "User_log", "collection_sequence"} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestDRCValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	c := db.Collection("Debt_recovery_company")

	valid := bson.M{
		"drc_id":     int64(1),
		"drc_name":   "Acme Recoveries",
		"drc_email":  "ops@acme.lk",
		"drc_status": "Active",
		"status":     bson.A{bson.M{"status": "Active", "status_on": time.Now(), "status_by": "admin"}},
	}
	if _, err := c.InsertOne(ctx, valid); err != nil {
		t.Fatalf("valid DRC rejected: %v", err)
	}

	tests := []struct {
		name string
		doc  bson.M
	}{
		{"missing name", bson.M{"drc_id": int64(2), "drc_email": "b@acme.lk", "drc_status": "Active"}},
		{"blank name", bson.M{"drc_id": int64(3), "drc_name": "  ", "drc_email": "c@acme.lk", "drc_status": "Active"}},
		{"bad status", bson.M{"drc_id": int64(4), "drc_name": "X", "drc_email": "d@acme.lk", "drc_status": "Closed"}},
		{"bad log status", bson.M{"drc_id": int64(5), "drc_name": "X", "drc_email": "e@acme.lk", "drc_status": "Active",
			"status": bson.A{bson.M{"status": "Closed", "status_on": time.Now()}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.InsertOne(ctx, tt.doc); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOfficerValidator_ExactlyOneIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	c := db.Collection("Recovery_officer")

	base := func() bson.M {
		return bson.M{"drcUser_type": "RO", "login_email": "ro@acme.lk", "drcUser_status": "Active"}
	}

	ok := base()
	ok["ro_id"] = int64(1)
	if _, err := c.InsertOne(ctx, ok); err != nil {
		t.Fatalf("valid officer rejected: %v", err)
	}

	both := base()
	both["ro_id"] = int64(2)
	both["drcUser_id"] = int64(2)
	if _, err := c.InsertOne(ctx, both); err == nil {
		t.Error("expected error when both ids are set")
	}

	if _, err := c.InsertOne(ctx, base()); err == nil {
		t.Error("expected error when no id is set")
	}

	badType := base()
	badType["ro_id"] = int64(3)
	badType["drcUser_type"] = "admin"
	if _, err := c.InsertOne(ctx, badType); err == nil {
		t.Error("expected error for unknown drcUser_type")
	}
}

func TestTaskValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	c := db.Collection("System_tasks")

	if _, err := c.InsertOne(ctx, bson.M{"Task_Id": int64(1)}); err == nil {
		t.Error("expected validation error for incomplete task")
	}
	doc := bson.M{
		"Task_Id":          int64(1),
		"Template_Task_Id": int64(3),
		"task_type":        "Create Settlement List for Download",
		"parameters":       bson.M{},
		"task_status":      "open",
		"Created_Date":     time.Now(),
	}
	if _, err := c.InsertOne(ctx, doc); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}
}

func TestSequenceCollection_NoValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	if _, err := db.Collection("collection_sequence").InsertOne(ctx, bson.M{"anything": true}); err != nil {
		t.Errorf("collection_sequence should accept any document: %v", err)
	}
}
