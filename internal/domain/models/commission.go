// internal/domain/models/commission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MoneyCommission is a payout owed to a company for a case outcome.
type MoneyCommission struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DocVersion int                `bson:"doc_version" json:"doc_version"`

	CommissionID     int64   `bson:"commission_id" json:"commission_id"`
	CaseID           int64   `bson:"case_id" json:"case_id"`
	DRCID            int64   `bson:"drc_id" json:"drc_id"`
	RoID             *int64  `bson:"ro_id,omitempty" json:"ro_id,omitempty"`
	CommissionType   string  `bson:"commission_type" json:"commission_type"`
	CommissionAmount float64 `bson:"commission_amount" json:"commission_amount"`
	CommissionAction string  `bson:"commission_action" json:"commission_action"`

	CreatedOn time.Time `bson:"created_on" json:"created_on"`
}

// CommissionRow is a commission enriched with the company name. DRCName is
// nil when no company with the commission's drc_id exists.
type CommissionRow struct {
	MoneyCommission `bson:",inline"`
	DRCName         *string `bson:"DRC_Name" json:"DRC_Name"`
}
