// internal/app/features/recoveryofficers/types.go
package recoveryofficers

import (
	officerstore "github.com/dalemusser/recoveryhub/internal/app/store/recoveryofficers"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
)

// officerID is the ro_id / drcUser_id pair every single-officer request
// carries. Exactly one must be set.
type officerID struct {
	RoID      *int64 `json:"ro_id"`
	DrcUserID *int64 `json:"drcUser_id"`
}

func (o officerID) ref() (officerstore.Ref, error) {
	switch {
	case o.RoID != nil && o.DrcUserID == nil && *o.RoID > 0:
		return officerstore.Ref{Field: "ro_id", ID: *o.RoID}, nil
	case o.DrcUserID != nil && o.RoID == nil && *o.DrcUserID > 0:
		return officerstore.Ref{Field: "drcUser_id", ID: *o.DrcUserID}, nil
	}
	return officerstore.Ref{}, apperr.Invalid("Exactly one of ro_id or drcUser_id is required")
}

type rtomRef struct {
	RTOMID int64 `json:"rtom_id" validate:"required,gt=0" label:"RTOM id"`
}

type registerInput struct {
	DrcUserType    string    `json:"drcUser_type" validate:"required,usertype" label:"User type"`
	DRCID          int64     `json:"drc_id" validate:"required,gt=0" label:"DRC id"`
	Name           string    `json:"name" validate:"required,max=200" label:"Name"`
	NIC            string    `json:"nic" validate:"required,max=20" label:"NIC"`
	LoginEmail     string    `json:"login_email" validate:"required,emailaddr" label:"Login email"`
	LoginContactNo string    `json:"login_contact_no" validate:"required,phone" label:"Login contact number"`
	RTOMs          []rtomRef `json:"rtoms_for_ro" validate:"dive"`
	CreateBy       string    `json:"create_by" validate:"required,max=100" label:"Created by"`
	CreateByType   string    `json:"create_by_type" validate:"max=20" label:"Creator type"`
}

// creatorDRC is the create_by_type value for officers registered from
// the company side; they wait for approval.
const creatorDRC = "drc"

type listInput struct {
	DRCID         *int64 `json:"drc_id" validate:"omitempty,gt=0" label:"DRC id"`
	DrcUserType   string `json:"drcUser_type" validate:"omitempty,usertype" label:"User type"`
	DrcUserStatus string `json:"drcUser_status" validate:"omitempty,lifecycle" label:"Status"`
	RTOMID        *int64 `json:"rtom_id" validate:"omitempty,gt=0" label:"RTOM id"`
	Page          any    `json:"page"`
}

type approveInput struct {
	officerID
	ApprovedBy string `json:"approved_by" validate:"required,max=100" label:"Approved by"`
}

type suspendInput struct {
	officerID
	Remark   string `json:"remark" validate:"required,max=1000" label:"Remark"`
	RemarkBy string `json:"remark_by" validate:"required,max=100" label:"Remark by"`
}

type terminateInput struct {
	officerID
	Remark string `json:"remark" validate:"required,max=1000" label:"Remark"`
	EndBy  string `json:"end_by" validate:"required,max=100" label:"End by"`
}

type updateInput struct {
	officerID
	LoginContactNo string    `json:"login_contact_no" validate:"omitempty,phone" label:"Login contact number"`
	LoginEmail     string    `json:"login_email" validate:"omitempty,emailaddr" label:"Login email"`
	AddRTOMs       []rtomRef `json:"add_rtoms" validate:"dive"`
	RemoveRTOMs    []rtomRef `json:"remove_rtoms" validate:"dive"`
	Remark         string    `json:"remark" validate:"max=1000" label:"Remark"`
	UpdatedBy      string    `json:"updated_by" validate:"required,max=100" label:"Updated by"`
}

type downloadInput struct {
	DRCID         *int64 `json:"drc_id" validate:"omitempty,gt=0" label:"DRC id"`
	DrcUserType   string `json:"drcUser_type" validate:"omitempty,usertype" label:"User type"`
	DrcUserStatus string `json:"drcUser_status" validate:"omitempty,lifecycle" label:"Status"`
	CreatedBy     string `json:"Created_By" validate:"required,max=100" label:"Created by"`
}
