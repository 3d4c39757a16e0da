// internal/app/features/commissions/types.go
package commissions

import "github.com/dalemusser/recoveryhub/internal/app/system/listquery"

type filters struct {
	CaseID         *int64 `json:"case_id" validate:"omitempty,gt=0" label:"Case id"`
	DRCID          *int64 `json:"drc_id" validate:"omitempty,gt=0" label:"DRC id"`
	CommissionType string `json:"commission_type" validate:"max=100" label:"Commission type"`
	FromDate       string `json:"from_date"`
	ToDate         string `json:"to_date"`
}

func (f filters) builder() (*listquery.Builder, error) {
	b := &listquery.Builder{}
	b.EqInt("case_id", f.CaseID).
		EqInt("drc_id", f.DRCID).
		Eq("commission_type", f.CommissionType)
	if err := b.DateRange("created_on", f.FromDate, f.ToDate); err != nil {
		return nil, err
	}
	return b, nil
}

func (f filters) params() map[string]any {
	return map[string]any{
		"case_id":         f.CaseID,
		"drc_id":          f.DRCID,
		"commission_type": f.CommissionType,
		"from_date":       f.FromDate,
		"to_date":         f.ToDate,
	}
}

type listInput struct {
	filters
	Page any `json:"page"`
}

type idInput struct {
	CommissionID int64 `json:"commission_id" validate:"required,gt=0" label:"Commission id"`
}

type downloadInput struct {
	filters
	CreatedBy string `json:"Created_By" validate:"required,max=100" label:"Created by"`
}
