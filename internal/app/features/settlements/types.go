// internal/app/features/settlements/types.go
package settlements

import "github.com/dalemusser/recoveryhub/internal/app/system/listquery"

// filters are the settlement list criteria shared by listing and export.
type filters struct {
	CaseID           *int64 `json:"case_id" validate:"omitempty,gt=0" label:"Case id"`
	DRCID            *int64 `json:"drc_id" validate:"omitempty,gt=0" label:"DRC id"`
	SettlementPhase  string `json:"settlement_phase" validate:"max=100" label:"Settlement phase"`
	SettlementStatus string `json:"settlement_status" validate:"max=100" label:"Settlement status"`
	FromDate         string `json:"from_date"`
	ToDate           string `json:"to_date"`
}

func (f filters) builder() (*listquery.Builder, error) {
	b := &listquery.Builder{}
	b.EqInt("case_id", f.CaseID).
		EqInt("drc_id", f.DRCID).
		Eq("settlement_phase", f.SettlementPhase).
		Eq("settlement_status", f.SettlementStatus)
	if err := b.DateRange("created_dtm", f.FromDate, f.ToDate); err != nil {
		return nil, err
	}
	return b, nil
}

func (f filters) params() map[string]any {
	return map[string]any{
		"case_id":           f.CaseID,
		"drc_id":            f.DRCID,
		"settlement_phase":  f.SettlementPhase,
		"settlement_status": f.SettlementStatus,
		"from_date":         f.FromDate,
		"to_date":           f.ToDate,
	}
}

type listInput struct {
	filters
	Page any `json:"page"`
}

type idInput struct {
	SettlementID int64 `json:"settlement_id" validate:"required,gt=0" label:"Settlement id"`
}

type downloadInput struct {
	filters
	CreatedBy string `json:"Created_By" validate:"required,max=100" label:"Created by"`
}
