// internal/domain/models/moneytransaction.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MoneyTransaction is a payment recorded against a case (Case_payments).
type MoneyTransaction struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DocVersion int                `bson:"doc_version" json:"doc_version"`

	MoneyTransactionID int64   `bson:"money_transaction_id" json:"money_transaction_id"`
	CaseID             int64   `bson:"case_id" json:"case_id"`
	AccountNum         string  `bson:"account_num" json:"account_num"`
	SettlementID       *int64  `bson:"settlement_id,omitempty" json:"settlement_id,omitempty"`
	SettlementPhase    string  `bson:"settlement_phase" json:"settlement_phase"`
	TransactionType    string  `bson:"transaction_type" json:"transaction_type"`
	Amount             float64 `bson:"money_transaction_amount" json:"money_transaction_amount"`
	Reference          string  `bson:"money_transaction_reference,omitempty" json:"money_transaction_reference,omitempty"`

	CreatedDtm time.Time `bson:"created_dtm" json:"created_dtm"`
}
