// internal/domain/models/rtom.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RTOM is a billing / area centre.
type RTOM struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DocVersion int                `bson:"doc_version" json:"doc_version"`

	RTOMID       int64    `bson:"rtom_id" json:"rtom_id"`
	Abbreviation string   `bson:"rtom_abbreviation" json:"rtom_abbreviation"`
	AreaName     string   `bson:"area_name" json:"area_name"`
	Email        string   `bson:"rtom_email" json:"rtom_email"`
	MobileNo     []string `bson:"rtom_mobile_no" json:"rtom_mobile_no"`
	TelephoneNo  []string `bson:"rtom_telephone_no" json:"rtom_telephone_no"`

	RTOMStatus string        `bson:"rtom_status" json:"rtom_status"`
	StatusLog  []StatusEntry `bson:"status" json:"status"`
	Updates    []RTOMUpdate  `bson:"updated_rtom" json:"updated_rtom"`
	Remarks    []Remark      `bson:"rtom_remarks" json:"rtom_remarks"`

	CreatedBy  string     `bson:"created_by" json:"created_by"`
	CreatedDtm time.Time  `bson:"created_dtm" json:"created_dtm"`
	EndDtm     *time.Time `bson:"rtom_end_dtm,omitempty" json:"rtom_end_dtm,omitempty"`
	EndBy      string     `bson:"rtom_end_by,omitempty" json:"rtom_end_by,omitempty"`
}

// RTOMSnapshot is the mutable part of an RTOM as it was before an update.
type RTOMSnapshot struct {
	AreaName    string   `bson:"area_name" json:"area_name"`
	Email       string   `bson:"rtom_email" json:"rtom_email"`
	MobileNo    []string `bson:"rtom_mobile_no" json:"rtom_mobile_no"`
	TelephoneNo []string `bson:"rtom_telephone_no" json:"rtom_telephone_no"`
	RTOMStatus  string   `bson:"rtom_status" json:"rtom_status"`
}

// RTOMUpdate records one change to an RTOM together with the prior state.
type RTOMUpdate struct {
	Action     string       `bson:"action" json:"action"`
	Reason     string       `bson:"reason" json:"reason"`
	UpdatedBy  string       `bson:"updated_by" json:"updated_by"`
	UpdatedDtm time.Time    `bson:"updated_dtm" json:"updated_dtm"`
	Previous   RTOMSnapshot `bson:"previous" json:"previous"`
}

// Snapshot captures the mutable fields of r.
func (r RTOM) Snapshot() RTOMSnapshot {
	return RTOMSnapshot{
		AreaName:    r.AreaName,
		Email:       r.Email,
		MobileNo:    r.MobileNo,
		TelephoneNo: r.TelephoneNo,
		RTOMStatus:  r.RTOMStatus,
	}
}

// RTOMListRow is a paged RTOM row with its officer count.
type RTOMListRow struct {
	RTOMID       int64     `bson:"rtom_id" json:"rtom_id"`
	Abbreviation string    `bson:"rtom_abbreviation" json:"rtom_abbreviation"`
	AreaName     string    `bson:"area_name" json:"area_name"`
	Email        string    `bson:"rtom_email" json:"rtom_email"`
	MobileNo     []string  `bson:"rtom_mobile_no" json:"rtom_mobile_no"`
	TelephoneNo  []string  `bson:"rtom_telephone_no" json:"rtom_telephone_no"`
	RTOMStatus   string    `bson:"rtom_status" json:"rtom_status"`
	CreatedDtm   time.Time `bson:"created_dtm" json:"created_dtm"`
	ROCount      int64     `bson:"ro_count" json:"ro_count"`
}

// Normalize replaces nil slices with empty ones.
func (r *RTOM) Normalize() {
	if r.MobileNo == nil {
		r.MobileNo = []string{}
	}
	if r.TelephoneNo == nil {
		r.TelephoneNo = []string{}
	}
	if r.StatusLog == nil {
		r.StatusLog = []StatusEntry{}
	}
	if r.Updates == nil {
		r.Updates = []RTOMUpdate{}
	}
	if r.Remarks == nil {
		r.Remarks = []Remark{}
	}
}
