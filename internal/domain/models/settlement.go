// internal/domain/models/settlement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CaseSettlement is a negotiated repayment plan for a case. Documents are
// written by the case engine; this service only reads them.
type CaseSettlement struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DocVersion int                `bson:"doc_version" json:"doc_version"`

	SettlementID     int64   `bson:"settlement_id" json:"settlement_id"`
	CaseID           int64   `bson:"case_id" json:"case_id"`
	DRCID            int64   `bson:"drc_id" json:"drc_id"`
	AccountNum       string  `bson:"account_num" json:"account_num"`
	SettlementPhase  string  `bson:"settlement_phase" json:"settlement_phase"`
	SettlementStatus string  `bson:"settlement_status" json:"settlement_status"`
	SettlementType   string  `bson:"settlement_type" json:"settlement_type"`
	SettlementAmount float64 `bson:"settlement_amount" json:"settlement_amount"`

	SettlementPlan []SettlementInstallment `bson:"settlement_plan" json:"settlement_plan"`

	CreatedBy  string    `bson:"created_by" json:"created_by"`
	CreatedDtm time.Time `bson:"created_dtm" json:"created_dtm"`
}

// SettlementInstallment is one planned repayment.
type SettlementInstallment struct {
	InstallmentSeq        int       `bson:"installment_seq" json:"installment_seq"`
	InstallmentSettleAmt  float64   `bson:"installment_settle_amount" json:"installment_settle_amount"`
	PlanDate              time.Time `bson:"plan_date" json:"plan_date"`
	InstallmentPaidAmount float64   `bson:"installment_paid_amount" json:"installment_paid_amount"`
}

// SettlementDetail is a settlement with the payments made against it.
type SettlementDetail struct {
	CaseSettlement    `bson:",inline"`
	MoneyTransactions []MoneyTransaction `bson:"money_transactions" json:"money_transactions"`
}
