// internal/domain/models/recoveryofficer.go
package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Officer variants stored in the Recovery_officer collection.
const (
	UserTypeRO      = "RO"
	UserTypeDRCUser = "drcUser"
)

var (
	ErrOfficerIdentity = errors.New("exactly one of ro_id or drcUser_id must be set")
	ErrOfficerType     = errors.New("drcUser_type must be RO or drcUser")
	ErrOfficerMismatch = errors.New("id field does not match drcUser_type")
)

// RecoveryOfficer holds both recovery officers and DRC staff users. The
// drcUser_type tag decides which of ro_id / drcUser_id carries the identity.
type RecoveryOfficer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DocVersion int                `bson:"doc_version" json:"doc_version"`

	RoID        *int64 `bson:"ro_id,omitempty" json:"ro_id,omitempty"`
	DrcUserID   *int64 `bson:"drcUser_id,omitempty" json:"drcUser_id,omitempty"`
	DrcUserType string `bson:"drcUser_type" json:"drcUser_type"`

	DRCID          int64  `bson:"drc_id" json:"drc_id"`
	Name           string `bson:"name" json:"name"`
	NIC            string `bson:"nic" json:"nic"`
	LoginEmail     string `bson:"login_email" json:"login_email"`
	LoginContactNo string `bson:"login_contact_no" json:"login_contact_no"`

	DrcUserStatus string        `bson:"drcUser_status" json:"drcUser_status"`
	StatusLog     []StatusEntry `bson:"ro_status" json:"ro_status"`
	RTOMs         []OfficerRTOM `bson:"rtoms_for_ro" json:"rtoms_for_ro"`
	Remarks       []Remark      `bson:"remark" json:"remark"`

	CreateBy string     `bson:"create_by" json:"create_by"`
	CreateOn time.Time  `bson:"create_on" json:"create_on"`
	EndDate  *time.Time `bson:"ro_end_date,omitempty" json:"ro_end_date,omitempty"`
	EndBy    string     `bson:"ro_end_by,omitempty" json:"ro_end_by,omitempty"`
}

// OfficerRTOM is an RTOM area an officer works in.
type OfficerRTOM struct {
	RTOMID        int64      `bson:"rtom_id" json:"rtom_id"`
	RTOMStatus    string     `bson:"rtom_status" json:"rtom_status"`
	RTOMCreateDtm time.Time  `bson:"rtom_create_dtm" json:"rtom_create_dtm"`
	RTOMEndDtm    *time.Time `bson:"rtom_end_dtm,omitempty" json:"rtom_end_dtm,omitempty"`
}

// Validate enforces the variant invariant.
func (o RecoveryOfficer) Validate() error {
	if (o.RoID == nil) == (o.DrcUserID == nil) {
		return ErrOfficerIdentity
	}
	switch o.DrcUserType {
	case UserTypeRO:
		if o.RoID == nil {
			return ErrOfficerMismatch
		}
	case UserTypeDRCUser:
		if o.DrcUserID == nil {
			return ErrOfficerMismatch
		}
	default:
		return ErrOfficerType
	}
	return nil
}

// Identity returns the id field name and value for this officer.
func (o RecoveryOfficer) Identity() (field string, id int64) {
	if o.RoID != nil {
		return "ro_id", *o.RoID
	}
	if o.DrcUserID != nil {
		return "drcUser_id", *o.DrcUserID
	}
	return "", 0
}

// OfficerListRow is a paged officer row with the owning company name.
type OfficerListRow struct {
	RoID          *int64        `bson:"ro_id,omitempty" json:"ro_id,omitempty"`
	DrcUserID     *int64        `bson:"drcUser_id,omitempty" json:"drcUser_id,omitempty"`
	DrcUserType   string        `bson:"drcUser_type" json:"drcUser_type"`
	Name          string        `bson:"name" json:"name"`
	NIC           string        `bson:"nic" json:"nic"`
	LoginEmail    string        `bson:"login_email" json:"login_email"`
	ContactNo     string        `bson:"login_contact_no" json:"login_contact_no"`
	DRCID         int64         `bson:"drc_id" json:"drc_id"`
	DRCName       *string       `bson:"drc_name" json:"drc_name"`
	DrcUserStatus string        `bson:"drcUser_status" json:"drcUser_status"`
	RTOMs         []OfficerRTOM `bson:"rtoms_for_ro" json:"rtoms_for_ro"`
	CreateOn      time.Time     `bson:"create_on" json:"create_on"`
}

// Normalize replaces nil slices with empty ones.
func (o *RecoveryOfficer) Normalize() {
	if o.StatusLog == nil {
		o.StatusLog = []StatusEntry{}
	}
	if o.RTOMs == nil {
		o.RTOMs = []OfficerRTOM{}
	}
	if o.Remarks == nil {
		o.Remarks = []Remark{}
	}
}
