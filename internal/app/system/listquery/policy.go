package listquery

import "github.com/dalemusser/recoveryhub/internal/app/system/apperr"

// Policy is how a listing endpoint treats an absent filter and an empty
// result.
type Policy struct {
	RequireFilter   bool
	EmptyIsNotFound bool
}

// Policies is keyed by endpoint name. Endpoints not listed use the zero
// Policy: filters optional, empty results are 200 with [].
var Policies = map[string]Policy{
	"List_All_Settlement_Cases":                   {RequireFilter: true, EmptyIsNotFound: true},
	"Create_Task_For_Downloading_Settlement_List": {RequireFilter: true},
	"List_All_Payment_Cases":                      {RequireFilter: true, EmptyIsNotFound: true},
	"Create_Task_For_Downloading_Payment_List":    {RequireFilter: true},
	"List_All_Active_DRC":                         {},
	"List_DRCs":                                   {},
	"List_RO":                                     {},
	"List_All_RTOMs":                              {},
	"List_ROs_By_RTOM":                            {},
	"List_All_Commissions":                        {},
	"List_All_Tasks":                              {},
}

// For returns the policy for endpoint.
func For(endpoint string) Policy { return Policies[endpoint] }

// CheckFilter fails with 400 when a filter is required and none was given.
func (p Policy) CheckFilter(b *Builder) error {
	if p.RequireFilter && !b.Supplied() {
		return apperr.Invalid("At least one filter is required")
	}
	return nil
}

// CheckEmpty fails with 404 when an empty result must be reported as
// not found.
func (p Policy) CheckEmpty(total int64) error {
	if p.EmptyIsNotFound && total == 0 {
		return apperr.NotFoundf("No data found")
	}
	return nil
}
