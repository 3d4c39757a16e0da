// Package lifecycle builds the update documents that move a
// status-bearing document between states. The status scalar, the status
// log and the remark log are always written by the same update.
package lifecycle

import (
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// Fields names the three lifecycle fields of a collection.
type Fields struct {
	Status    string
	StatusLog string
	Remarks   string
}

// Change describes one transition.
type Change struct {
	To     string
	Entry  models.StatusEntry
	Remark *models.Remark
	// Set holds extra fields written alongside the status.
	Set bson.M
}

// Update returns the $set/$push document for c.
func (f Fields) Update(c Change) bson.M {
	set := bson.M{f.Status: c.To}
	for k, v := range c.Set {
		set[k] = v
	}
	c.Entry.Status = c.To
	push := bson.M{f.StatusLog: c.Entry}
	if c.Remark != nil && f.Remarks != "" {
		push[f.Remarks] = *c.Remark
	}
	return bson.M{"$set": set, "$push": push}
}

// Revert undoes an Update: it restores prev, drops the last log entries
// and unsets the named extra fields. Used to compensate when the
// deployment cannot run transactions.
func (f Fields) Revert(prev string, withRemark bool, unset ...string) bson.M {
	pop := bson.M{f.StatusLog: 1}
	if withRemark && f.Remarks != "" {
		pop[f.Remarks] = 1
	}
	upd := bson.M{"$set": bson.M{f.Status: prev}, "$pop": pop}
	if len(unset) > 0 {
		u := bson.M{}
		for _, k := range unset {
			u[k] = ""
		}
		upd["$unset"] = u
	}
	return upd
}

// Not excludes the given states from a filter on f.Status.
func (f Fields) Not(states ...string) bson.E {
	return bson.E{Key: f.Status, Value: bson.M{"$nin": states}}
}
