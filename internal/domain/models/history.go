// internal/domain/models/history.go
package models

import "time"

// StatusEntry is one element of an append-only status log. The entity's
// current status scalar always equals the Status of the last entry.
type StatusEntry struct {
	Status   string    `bson:"status" json:"status"`
	StatusOn time.Time `bson:"status_on" json:"status_on"`
	StatusBy string    `bson:"status_by" json:"status_by"`
}

// Remark is one element of an append-only remark log.
type Remark struct {
	Remark    string    `bson:"remark" json:"remark"`
	RemarkDtm time.Time `bson:"remark_dtm" json:"remark_dtm"`
	RemarkBy  string    `bson:"remark_by" json:"remark_by"`
}

// CurrentStatus returns the status of the last log entry, or fallback when
// the log is empty.
func CurrentStatus(log []StatusEntry, fallback string) string {
	if len(log) == 0 {
		return fallback
	}
	return log[len(log)-1].Status
}
