// internal/app/features/payments/types.go
package payments

import "github.com/dalemusser/recoveryhub/internal/app/system/listquery"

type filters struct {
	CaseID          *int64 `json:"case_id" validate:"omitempty,gt=0" label:"Case id"`
	AccountNum      string `json:"account_num" validate:"max=50" label:"Account number"`
	SettlementPhase string `json:"settlement_phase" validate:"max=100" label:"Settlement phase"`
	TransactionType string `json:"transaction_type" validate:"max=100" label:"Transaction type"`
	FromDate        string `json:"from_date"`
	ToDate          string `json:"to_date"`
}

func (f filters) builder() (*listquery.Builder, error) {
	b := &listquery.Builder{}
	b.EqInt("case_id", f.CaseID).
		Eq("account_num", f.AccountNum).
		Eq("settlement_phase", f.SettlementPhase).
		Eq("transaction_type", f.TransactionType)
	if err := b.DateRange("created_dtm", f.FromDate, f.ToDate); err != nil {
		return nil, err
	}
	return b, nil
}

func (f filters) params() map[string]any {
	return map[string]any{
		"case_id":          f.CaseID,
		"account_num":      f.AccountNum,
		"settlement_phase": f.SettlementPhase,
		"transaction_type": f.TransactionType,
		"from_date":        f.FromDate,
		"to_date":          f.ToDate,
	}
}

type listInput struct {
	filters
	Page any `json:"page"`
}

type idInput struct {
	MoneyTransactionID int64 `json:"money_transaction_id" validate:"required,gt=0" label:"Money transaction id"`
}

type downloadInput struct {
	filters
	CreatedBy string `json:"Created_By" validate:"required,max=100" label:"Created by"`
}
