// internal/domain/models/drc.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DRC is a debt recovery company. It is never physically deleted; the
// terminal state is drc_status "Terminate".
type DRC struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DocVersion int                `bson:"doc_version" json:"doc_version"`

	DRCID                      int64  `bson:"drc_id" json:"drc_id"`
	DRCName                    string `bson:"drc_name" json:"drc_name"`
	BusinessRegistrationNumber string `bson:"drc_business_registration_number" json:"drc_business_registration_number"`
	ContactNo                  string `bson:"drc_contact_no" json:"drc_contact_no"`
	Email                      string `bson:"drc_email" json:"drc_email"`
	Address                    string `bson:"drc_address,omitempty" json:"drc_address,omitempty"`

	DRCStatus string        `bson:"drc_status" json:"drc_status"`
	StatusLog []StatusEntry `bson:"status" json:"status"`

	Services     []DRCService     `bson:"services_of_drc" json:"services_of_drc"`
	RTOMs        []DRCRTOM        `bson:"rtom" json:"rtom"`
	Coordinators []SLTCoordinator `bson:"slt_coordinator" json:"slt_coordinator"`
	Remarks      []Remark         `bson:"remark" json:"remark"`

	CreateBy string     `bson:"create_by" json:"create_by"`
	CreateOn time.Time  `bson:"create_on" json:"create_on"`
	EndDtm   *time.Time `bson:"drc_end_dtm,omitempty" json:"drc_end_dtm,omitempty"`
	EndBy    string     `bson:"drc_end_by,omitempty" json:"drc_end_by,omitempty"`
}

// DRCService is a service the company is contracted for.
type DRCService struct {
	ServiceID     int64     `bson:"service_id" json:"service_id"`
	ServiceType   string    `bson:"service_type" json:"service_type"`
	ServiceStatus string    `bson:"service_status" json:"service_status"`
	CreateOn      time.Time `bson:"create_on" json:"create_on"`
}

// DRCRTOM is an RTOM area assigned to a company.
type DRCRTOM struct {
	RTOMID           int64     `bson:"rtom_id" json:"rtom_id"`
	RTOMAbbreviation string    `bson:"rtom_abbreviation" json:"rtom_abbreviation"`
	RTOMStatus       string    `bson:"rtom_status" json:"rtom_status"`
	AssignedOn       time.Time `bson:"assigned_on" json:"assigned_on"`
	AssignedBy       string    `bson:"assigned_by" json:"assigned_by"`
}

// SLTCoordinator is the service provider's contact person for a company.
type SLTCoordinator struct {
	ServiceNo            string    `bson:"service_no" json:"service_no"`
	SLTCoordinatorName   string    `bson:"slt_coordinator_name" json:"slt_coordinator_name"`
	SLTCoordinatorEmail  string    `bson:"slt_coordinator_email" json:"slt_coordinator_email"`
	CoordinatorCreateDtm time.Time `bson:"coordinator_create_dtm" json:"coordinator_create_dtm"`
	CoordinatorCreateBy  string    `bson:"coordinator_create_by" json:"coordinator_create_by"`
}

// DRCSummary is the row shape of the active-company list. It has no
// services_of_drc field.
type DRCSummary struct {
	DRCID                      int64         `bson:"drc_id" json:"drc_id"`
	DRCName                    string        `bson:"drc_name" json:"drc_name"`
	BusinessRegistrationNumber string        `bson:"drc_business_registration_number" json:"drc_business_registration_number"`
	ContactNo                  string        `bson:"drc_contact_no" json:"drc_contact_no"`
	Email                      string        `bson:"drc_email" json:"drc_email"`
	DRCStatus                  string        `bson:"drc_status" json:"drc_status"`
	StatusLog                  []StatusEntry `bson:"status" json:"status"`
	RTOMs                      []DRCRTOM     `bson:"rtom" json:"rtom"`
	CreateOn                   time.Time     `bson:"create_on" json:"create_on"`
}

// DRCListRow is a paged company row enriched with its officer count.
type DRCListRow struct {
	DRCID     int64     `bson:"drc_id" json:"drc_id"`
	DRCName   string    `bson:"drc_name" json:"drc_name"`
	ContactNo string    `bson:"drc_contact_no" json:"drc_contact_no"`
	Email     string    `bson:"drc_email" json:"drc_email"`
	DRCStatus string    `bson:"drc_status" json:"drc_status"`
	CreateOn  time.Time `bson:"create_on" json:"create_on"`
	ROCount   int64     `bson:"ro_count" json:"ro_count"`
}

// Normalize replaces nil slices with empty ones so array updates and JSON
// output always see arrays.
func (d *DRC) Normalize() {
	if d.StatusLog == nil {
		d.StatusLog = []StatusEntry{}
	}
	if d.Services == nil {
		d.Services = []DRCService{}
	}
	if d.RTOMs == nil {
		d.RTOMs = []DRCRTOM{}
	}
	if d.Coordinators == nil {
		d.Coordinators = []SLTCoordinator{}
	}
	if d.Remarks == nil {
		d.Remarks = []Remark{}
	}
}
