// internal/app/features/rtoms/types.go
package rtoms

type registerInput struct {
	Abbreviation string   `json:"rtom_abbreviation" validate:"required,max=10" label:"Abbreviation"`
	AreaName     string   `json:"area_name" validate:"required,max=200" label:"Area name"`
	Email        string   `json:"rtom_email" validate:"omitempty,emailaddr" label:"Email"`
	MobileNo     []string `json:"rtom_mobile_no" validate:"dive,phone" label:"Mobile number"`
	TelephoneNo  []string `json:"rtom_telephone_no" validate:"dive,phone" label:"Telephone number"`
	CreatedBy    string   `json:"created_by" validate:"required,max=100" label:"Created by"`
}

type listInput struct {
	RTOMStatus string `json:"rtom_status" validate:"omitempty,lifecycle" label:"RTOM status"`
	Page       any    `json:"page"`
}

type idInput struct {
	RTOMID int64 `json:"rtom_id" validate:"required,gt=0" label:"RTOM id"`
}

type officersInput struct {
	RTOMID        int64  `json:"rtom_id" validate:"required,gt=0" label:"RTOM id"`
	DrcUserStatus string `json:"drcUser_status" validate:"omitempty,lifecycle" label:"Status"`
	Page          any    `json:"page"`
}

type updateInput struct {
	RTOMID      int64    `json:"rtom_id" validate:"required,gt=0" label:"RTOM id"`
	AreaName    string   `json:"area_name" validate:"max=200" label:"Area name"`
	Email       string   `json:"rtom_email" validate:"omitempty,emailaddr" label:"Email"`
	MobileNo    []string `json:"rtom_mobile_no" validate:"omitempty,dive,phone" label:"Mobile number"`
	TelephoneNo []string `json:"rtom_telephone_no" validate:"omitempty,dive,phone" label:"Telephone number"`
	Reason      string   `json:"reason" validate:"required,max=1000" label:"Reason"`
	UpdatedBy   string   `json:"updated_by" validate:"required,max=100" label:"Updated by"`
}

type suspendInput struct {
	RTOMID    int64  `json:"rtom_id" validate:"required,gt=0" label:"RTOM id"`
	Reason    string `json:"reason" validate:"required,max=1000" label:"Reason"`
	UpdatedBy string `json:"updated_by" validate:"required,max=100" label:"Updated by"`
}

type terminateInput struct {
	RTOMID       int64  `json:"rtom_id" validate:"required,gt=0" label:"RTOM id"`
	Reason       string `json:"reason" validate:"required,max=1000" label:"Reason"`
	TerminatedBy string `json:"terminated_by" validate:"required,max=100" label:"Terminated by"`
}

type terminateResult struct {
	RTOMID          int64  `json:"rtom_id"`
	RTOMStatus      string `json:"rtom_status"`
	OfficersUpdated int64  `json:"officers_updated"`
}
