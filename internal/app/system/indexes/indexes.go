// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. It is idempotent: indexes that already
exist with the same keys and options are reused, renamed ones are aligned,
and ones whose options changed are dropped and recreated. Errors from every
collection are collected so one run shows all problems.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, set := range desired() {
		if err := ensureIndexSet(ctx, db.Collection(set.collection), set.models); err != nil {
			problems = append(problems, set.collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type indexSet struct {
	collection string
	models     []mongo.IndexModel
}

func idx(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

func uniq(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name).SetUnique(true)}
}

// sparseUniq is unique among documents that have the field.
func sparseUniq(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name).SetUnique(true).SetSparse(true)}
}

func asc(fields ...string) bson.D {
	d := make(bson.D, 0, len(fields))
	for _, f := range fields {
		d = append(d, bson.E{Key: f, Value: 1})
	}
	return d
}

func desired() []indexSet {
	return []indexSet{
		{"Debt_recovery_company", []mongo.IndexModel{
			uniq("uniq_drc_id", asc("drc_id")),
			uniq("uniq_drc_email", asc("drc_email")),
			idx("idx_drc_status_id", bson.D{{Key: "drc_status", Value: 1}, {Key: "drc_id", Value: -1}}),
		}},
		{"Recovery_officer", []mongo.IndexModel{
			sparseUniq("uniq_ro_id", asc("ro_id")),
			sparseUniq("uniq_drcuser_id", asc("drcUser_id")),
			uniq("uniq_ro_login_email", asc("login_email")),
			idx("idx_ro_drc_status", asc("drc_id", "drcUser_status")),
			idx("idx_ro_rtom", asc("rtoms_for_ro.rtom_id")),
			idx("idx_ro_create_on", bson.D{{Key: "create_on", Value: -1}}),
		}},
		{"Rtom", []mongo.IndexModel{
			uniq("uniq_rtom_id", asc("rtom_id")),
			uniq("uniq_rtom_abbreviation", asc("rtom_abbreviation")),
			idx("idx_rtom_status", asc("rtom_status")),
		}},
		{"Case_settlement", []mongo.IndexModel{
			uniq("uniq_settlement_id", asc("settlement_id")),
			idx("idx_settlement_case", asc("case_id")),
			idx("idx_settlement_drc", asc("drc_id")),
			idx("idx_settlement_phase_status", asc("settlement_phase", "settlement_status")),
			idx("idx_settlement_created", bson.D{{Key: "created_dtm", Value: -1}}),
		}},
		{"Case_payments", []mongo.IndexModel{
			uniq("uniq_money_transaction_id", asc("money_transaction_id")),
			idx("idx_payment_case", asc("case_id")),
			idx("idx_payment_account", asc("account_num")),
			idx("idx_payment_settlement", asc("settlement_id")),
			idx("idx_payment_created", bson.D{{Key: "created_dtm", Value: -1}}),
		}},
		{"Money_commission", []mongo.IndexModel{
			uniq("uniq_commission_id", asc("commission_id")),
			idx("idx_commission_case", asc("case_id")),
			idx("idx_commission_drc", asc("drc_id")),
			idx("idx_commission_created", bson.D{{Key: "created_on", Value: -1}}),
		}},
		{"System_tasks", []mongo.IndexModel{
			uniq("uniq_task_id", asc("Task_Id")),
			idx("idx_task_status_template", asc("task_status", "Template_Task_Id")),
			idx("idx_task_unpublished", asc("event_published_on", "Task_Id")),
		}},
		{"User_log", []mongo.IndexModel{
			uniq("uniq_userlog_user", asc("user_id", "user_type")),
		}},
		{"audit_events", []mongo.IndexModel{
			idx("idx_audit_timestamp", bson.D{{Key: "timestamp", Value: -1}}),
			idx("idx_audit_entity", bson.D{{Key: "entity", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "timestamp", Value: -1}}),
			idx("idx_audit_event_type", bson.D{{Key: "event_type", Value: 1}, {Key: "timestamp", Value: -1}}),
		}},
	}
}

/* -------------------------------------------------------------------------- */
/* Reconciliation                                                              */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
	Sparse *bool  `bson:"sparse,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(b *bool) bool { return b != nil && *b }

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	out := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return out
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var ix existingIndex
		if err := cur.Decode(&ix); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(ix.Key)] = ix
	}
	return out
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	existing := listExisting(ctx, coll)

	for _, m := range models {
		name := *m.Options.Name
		unique := boolVal(m.Options.Unique)
		sparse := boolVal(m.Options.Sparse)
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique))

		if ex, ok := existing[sig]; ok {
			if boolVal(ex.Unique) == unique && boolVal(ex.Sparse) == sparse && ex.Name == name {
				log.Debug("reusing existing index")
				continue
			}
			// Name or options differ: drop and recreate below.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				log.Warn("drop existing index failed", zap.String("existing", ex.Name), zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && unique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present on %s)", coll.Name(), name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			log.Warn("index ensure failed", zap.Error(err))
			continue
		}
		log.Info("index ensured", zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
