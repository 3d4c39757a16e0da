// internal/app/features/drcs/types.go
package drcs

type serviceInput struct {
	ServiceID   int64  `json:"service_id" validate:"required,gt=0" label:"Service id"`
	ServiceType string `json:"service_type" validate:"required,max=100" label:"Service type"`
}

type coordinatorInput struct {
	ServiceNo string `json:"service_no" validate:"required,max=50" label:"Service number"`
	Name      string `json:"slt_coordinator_name" validate:"required,max=200" label:"Coordinator name"`
	Email     string `json:"slt_coordinator_email" validate:"required,emailaddr" label:"Coordinator email"`
}

type rtomRef struct {
	RTOMID int64 `json:"rtom_id" validate:"required,gt=0" label:"RTOM id"`
}

type registerInput struct {
	DRCName                    string             `json:"drc_name" validate:"required,max=200" label:"DRC name"`
	BusinessRegistrationNumber string             `json:"drc_business_registration_number" validate:"required,max=100" label:"Business registration number"`
	ContactNo                  string             `json:"drc_contact_no" validate:"required,phone" label:"Contact number"`
	Email                      string             `json:"drc_email" validate:"required,emailaddr" label:"Email"`
	Address                    string             `json:"drc_address" validate:"max=500" label:"Address"`
	Services                   []serviceInput     `json:"services_of_drc" validate:"dive"`
	Coordinators               []coordinatorInput `json:"slt_coordinator" validate:"dive"`
	CreateBy                   string             `json:"create_by" validate:"required,max=100" label:"Created by"`
}

type listInput struct {
	DRCStatus string `json:"drc_status" validate:"omitempty,lifecycle" label:"DRC status"`
	Page      any    `json:"page"`
}

type idInput struct {
	DRCID int64 `json:"drc_id" validate:"required,gt=0" label:"DRC id"`
}

type changeStatusInput struct {
	DRCID     int64  `json:"drc_id" validate:"required,gt=0" label:"DRC id"`
	DRCStatus string `json:"drc_status" validate:"required,oneof=Active Inactive" label:"DRC status"`
	Remark    string `json:"remark" validate:"required,max=1000" label:"Remark"`
	StatusBy  string `json:"status_by" validate:"required,max=100" label:"Status by"`
}

type terminateInput struct {
	DRCID    int64  `json:"drc_id" validate:"required,gt=0" label:"DRC id"`
	Remark   string `json:"remark" validate:"required,max=1000" label:"Remark"`
	RemarkBy string `json:"remark_by" validate:"required,max=100" label:"Remark by"`
}

type updateInput struct {
	DRCID     int64          `json:"drc_id" validate:"required,gt=0" label:"DRC id"`
	ContactNo string         `json:"drc_contact_no" validate:"omitempty,phone" label:"Contact number"`
	Email     string         `json:"drc_email" validate:"omitempty,emailaddr" label:"Email"`
	Address   string         `json:"drc_address" validate:"max=500" label:"Address"`
	RTOMs     []rtomRef      `json:"rtom" validate:"dive"`
	Services  []serviceInput `json:"services_of_drc" validate:"omitempty,dive"`
	Remark    string         `json:"remark" validate:"max=1000" label:"Remark"`
	UpdatedBy string         `json:"updated_by" validate:"required,max=100" label:"Updated by"`
}

type downloadInput struct {
	DRCStatus string `json:"drc_status" validate:"omitempty,lifecycle" label:"DRC status"`
	CreatedBy string `json:"Created_By" validate:"required,max=100" label:"Created by"`
}

type terminateResult struct {
	DRCID               int64  `json:"drc_id"`
	DRCStatus           string `json:"drc_status"`
	OfficersDeactivated int    `json:"officers_deactivated"`
	OfficersTerminated  int    `json:"officers_terminated"`
}
