// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/dalemusser/recoveryhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates the collections this service writes to and attaches
// JSON-Schema validators. Deployments without collMod support are logged
// and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isUnsupported(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("Debt_recovery_company", drcSchema())
	ensure("Recovery_officer", officerSchema())
	ensure("Rtom", rtomSchema())
	ensure("System_tasks", taskSchema())
	ensure("User_log", userLogSchema())
	ensure("collection_sequence", nil)

	// Settlement, payment and commission documents are written upstream;
	// this service only reads them.

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err == nil && len(names) > 0 {
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Debug("validator ensured", zap.String("collection", name))
	return nil
}

func isNamespaceExistsErr(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 48 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

// isUnsupported matches "no such command" (59) and "not implemented" (115).
func isUnsupported(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || ce.Code == 115) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "no such command") ||
		strings.Contains(s, "not implemented") ||
		strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func lifecycleEnum() bson.M {
	return bson.M{"enum": bson.A{status.Active, status.Inactive, status.Terminate, status.PendingApproval}}
}

func statusLog() bson.M {
	return bson.M{
		"bsonType": "array",
		"items": bson.M{
			"bsonType": "object",
			"required": bson.A{"status", "status_on"},
			"properties": bson.M{
				"status":    lifecycleEnum(),
				"status_on": bson.M{"bsonType": "date"},
			},
		},
	}
}

func drcSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"drc_id", "drc_name", "drc_email", "drc_status"},
			"properties": bson.M{
				"drc_id":     bson.M{"bsonType": "long", "minimum": 1},
				"drc_name":   nonBlank,
				"drc_email":  nonBlank,
				"drc_status": lifecycleEnum(),
				"status":     statusLog(),
				"remark":     bson.M{"bsonType": "array"},
			},
		},
	}
}

func officerSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"drcUser_type", "login_email", "drcUser_status"},
			"properties": bson.M{
				"ro_id":          bson.M{"bsonType": "long", "minimum": 1},
				"drcUser_id":     bson.M{"bsonType": "long", "minimum": 1},
				"drcUser_type":   bson.M{"enum": bson.A{models.UserTypeRO, models.UserTypeDRCUser}},
				"login_email":    nonBlank,
				"drcUser_status": lifecycleEnum(),
				"ro_status":      statusLog(),
				"rtoms_for_ro": bson.M{
					"bsonType": "array",
					"items": bson.M{
						"bsonType": "object",
						"required": bson.A{"rtom_id", "rtom_status"},
						"properties": bson.M{
							"rtom_id":     bson.M{"bsonType": "long"},
							"rtom_status": bson.M{"enum": bson.A{status.Active, status.Inactive}},
						},
					},
				},
			},
			"oneOf": bson.A{
				bson.M{"required": bson.A{"ro_id"}, "not": bson.M{"required": bson.A{"drcUser_id"}}},
				bson.M{"required": bson.A{"drcUser_id"}, "not": bson.M{"required": bson.A{"ro_id"}}},
			},
		},
	}
}

func rtomSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"rtom_id", "rtom_abbreviation", "area_name", "rtom_status"},
			"properties": bson.M{
				"rtom_id":           bson.M{"bsonType": "long", "minimum": 1},
				"rtom_abbreviation": nonBlank,
				"area_name":         nonBlank,
				"rtom_status":       lifecycleEnum(),
				"status":            statusLog(),
				"rtom_mobile_no":    bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"rtom_telephone_no": bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
			},
		},
	}
}

func taskSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"Task_Id", "Template_Task_Id", "task_type", "task_status", "Created_Date"},
			"properties": bson.M{
				"Task_Id":          bson.M{"bsonType": "long", "minimum": 1},
				"Template_Task_Id": bson.M{"bsonType": "long", "minimum": 1},
				"task_type":        nonBlank,
				"parameters":       bson.M{"bsonType": "object"},
				"task_status":      bson.M{"bsonType": "string"},
				"Created_Date":     bson.M{"bsonType": "date"},
			},
		},
	}
}

func userLogSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "user_type", "user_status"},
			"properties": bson.M{
				"user_id":     bson.M{"bsonType": "long"},
				"user_type":   bson.M{"enum": bson.A{models.UserTypeRO, models.UserTypeDRCUser}},
				"user_status": lifecycleEnum(),
			},
		},
	}
}
