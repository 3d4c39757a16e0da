// internal/domain/models/userlog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserLog mirrors the login-facing status of an officer. It is updated in
// the same transaction as the officer's own status.
type UserLog struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID         int64              `bson:"user_id" json:"user_id"`
	UserType       string             `bson:"user_type" json:"user_type"`
	DRCID          int64              `bson:"drc_id" json:"drc_id"`
	Email          string             `bson:"email" json:"email"`
	UserStatus     string             `bson:"user_status" json:"user_status"`
	UserStatusType string             `bson:"user_status_type" json:"user_status_type"`
	StatusOn       time.Time          `bson:"status_on" json:"status_on"`
	StatusBy       string             `bson:"status_by" json:"status_by"`
	CreatedOn      time.Time          `bson:"created_on" json:"created_on"`
}
