package indexes_test

import (
	"context"
	"testing"

	"github.com/dalemusser/recoveryhub/internal/app/system/indexes"
	"github.com/dalemusser/recoveryhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func indexNames(t *testing.T, ctx context.Context, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)
	names := make(map[string]bool)
	for cur.Next(ctx) {
		var ix bson.M
		if err := cur.Decode(&ix); err != nil {
			continue
		}
		if name, ok := ix["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	expected := map[string][]string{
		"Debt_recovery_company": {"uniq_drc_id", "uniq_drc_email", "idx_drc_status_id"},
		"Recovery_officer":      {"uniq_ro_id", "uniq_drcuser_id", "uniq_ro_login_email", "idx_ro_rtom"},
		"Rtom":                  {"uniq_rtom_id", "uniq_rtom_abbreviation"},
		"Case_settlement":       {"idx_settlement_case", "idx_settlement_created"},
		"Case_payments":         {"idx_payment_settlement", "idx_payment_created"},
		"Money_commission":      {"idx_commission_drc", "idx_commission_created"},
		"System_tasks":          {"uniq_task_id", "idx_task_unpublished"},
		"User_log":              {"uniq_userlog_user"},
	}
	for coll, want := range expected {
		names := indexNames(t, ctx, db, coll)
		for _, name := range want {
			if !names[name] {
				t.Errorf("expected index %q on %s", name, coll)
			}
		}
	}
}

func TestEnsureAll_RenamesMisnamedIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("Rtom").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "rtom_status", Value: 1}},
		Options: options.Index().SetName("legacy_status"),
	})
	if err != nil {
		t.Fatalf("create legacy index: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	names := indexNames(t, ctx, db, "Rtom")
	if names["legacy_status"] || !names["idx_rtom_status"] {
		t.Errorf("expected legacy_status replaced by idx_rtom_status, have %v", names)
	}
}

func TestEnsureAll_UniqueIndexEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	c := db.Collection("Debt_recovery_company")
	if _, err := c.InsertOne(ctx, bson.M{"drc_id": 1, "drc_email": "ops@acme.lk"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := c.InsertOne(ctx, bson.M{"drc_id": 2, "drc_email": "ops@acme.lk"}); err == nil {
		t.Error("expected duplicate key error on drc_email")
	}
}

func TestEnsureAll_SparseOfficerIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	c := db.Collection("Recovery_officer")
	// Two drcUsers have no ro_id; the sparse unique index must allow that.
	if _, err := c.InsertOne(ctx, bson.M{"drcUser_id": 1, "login_email": "a@x.lk"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := c.InsertOne(ctx, bson.M{"drcUser_id": 2, "login_email": "b@x.lk"}); err != nil {
		t.Fatalf("second drcUser without ro_id rejected: %v", err)
	}
	if _, err := c.InsertOne(ctx, bson.M{"drcUser_id": 2, "login_email": "c@x.lk"}); err == nil {
		t.Error("expected duplicate key error on drcUser_id")
	}
}
