// internal/app/features/recoveryofficers/status.go
package recoveryofficers

import (
	"context"
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	"github.com/dalemusser/recoveryhub/internal/app/store/lifecycle"
	officerstore "github.com/dalemusser/recoveryhub/internal/app/store/recoveryofficers"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	opApprove   = "ro.approve"
	opSuspend   = "ro.suspend"
	opTerminate = "ro.terminate"
)

// User_log status types written by each transition.
const (
	logApproved   = "approval"
	logSuspended  = "suspension"
	logTerminated = "termination"
)

// load resolves id and fetches the officer. On failure the error
// response has already been written.
func (h *Handler) load(ctx context.Context, w http.ResponseWriter, op string, id officerID) (models.RecoveryOfficer, bool) {
	ref, err := id.ref()
	if err != nil {
		respond.Error(w, h.Log, op, err)
		return models.RecoveryOfficer{}, false
	}
	o, err := officerstore.New(h.DB).Get(ctx, ref)
	if err != nil {
		respond.Error(w, h.Log, op, classify(err))
		return models.RecoveryOfficer{}, false
	}
	return o, true
}

// HandleApprove activates an officer waiting for approval.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	var in approveInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opApprove, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opApprove)
	defer cancel()

	o, ok := h.load(ctx, w, opApprove, in.officerID)
	if !ok {
		return
	}
	switch o.DrcUserStatus {
	case status.PendingApproval:
	case status.Terminate:
		respond.Error(w, h.Log, opApprove, apperr.Conflictf("Recovery officer is terminated"))
		return
	default:
		respond.Error(w, h.Log, opApprove, apperr.Invalid("Recovery officer is not pending approval"))
		return
	}

	now := shared.Now()
	ref := officerstore.RefOf(o)
	officers := officerstore.New(h.DB)
	err := h.changeStatus(ctx, o, status.Active, logApproved, in.ApprovedBy, now, func(ctx context.Context) error {
		return officers.Transition(ctx, ref, o.DrcUserStatus, lifecycle.Change{
			To:    status.Active,
			Entry: models.StatusEntry{StatusOn: now, StatusBy: in.ApprovedBy},
		})
	})
	if err != nil {
		respond.Error(w, h.Log, opApprove, classify(err))
		return
	}

	h.Audit.OfficerApproved(r, in.ApprovedBy, o.DrcUserType, ref.ID)
	h.respondCurrent(ctx, w, opApprove, ref, "Recovery officer approved successfully")
}

// HandleSuspend moves an Active officer to Inactive.
func (h *Handler) HandleSuspend(w http.ResponseWriter, r *http.Request) {
	var in suspendInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opSuspend, err)
		return
	}
	now := shared.Now()
	remark, err := shared.RequiredRemark("remark", in.Remark, in.RemarkBy, now)
	if err != nil {
		respond.Error(w, h.Log, opSuspend, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opSuspend)
	defer cancel()

	o, ok := h.load(ctx, w, opSuspend, in.officerID)
	if !ok {
		return
	}
	if err := checkTransition(o.DrcUserStatus, status.Inactive); err != nil {
		respond.Error(w, h.Log, opSuspend, err)
		return
	}

	ref := officerstore.RefOf(o)
	officers := officerstore.New(h.DB)
	err = h.changeStatus(ctx, o, status.Inactive, logSuspended, in.RemarkBy, now, func(ctx context.Context) error {
		return officers.Transition(ctx, ref, o.DrcUserStatus, lifecycle.Change{
			To:     status.Inactive,
			Entry:  models.StatusEntry{StatusOn: now, StatusBy: in.RemarkBy},
			Remark: remark,
		})
	})
	if err != nil {
		respond.Error(w, h.Log, opSuspend, classify(err))
		return
	}

	h.Audit.OfficerSuspended(r, in.RemarkBy, o.DrcUserType, ref.ID)
	h.respondCurrent(ctx, w, opSuspend, ref, "Recovery officer suspended successfully")
}

// HandleTerminate ends an officer and closes all of its RTOM assignments.
func (h *Handler) HandleTerminate(w http.ResponseWriter, r *http.Request) {
	var in terminateInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opTerminate, err)
		return
	}
	now := shared.Now()
	remark, err := shared.RequiredRemark("remark", in.Remark, in.EndBy, now)
	if err != nil {
		respond.Error(w, h.Log, opTerminate, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opTerminate)
	defer cancel()

	o, ok := h.load(ctx, w, opTerminate, in.officerID)
	if !ok {
		return
	}
	if o.DrcUserStatus == status.Terminate {
		respond.Error(w, h.Log, opTerminate, apperr.Conflictf("Recovery officer is already terminated"))
		return
	}

	ref := officerstore.RefOf(o)
	officers := officerstore.New(h.DB)
	err = h.changeStatus(ctx, o, status.Terminate, logTerminated, in.EndBy, now, func(ctx context.Context) error {
		return officers.Terminate(ctx, ref, o.DrcUserStatus, lifecycle.Change{
			Entry:  models.StatusEntry{StatusOn: now, StatusBy: in.EndBy},
			Remark: remark,
			Set:    bson.M{"ro_end_date": now, "ro_end_by": in.EndBy},
		}, now)
	})
	if err != nil {
		respond.Error(w, h.Log, opTerminate, classify(err))
		return
	}

	h.Audit.OfficerTerminated(r, in.EndBy, o.DrcUserType, ref.ID)
	h.respondCurrent(ctx, w, opTerminate, ref, "Recovery officer terminated successfully")
}

func (h *Handler) respondCurrent(ctx context.Context, w http.ResponseWriter, op string, ref officerstore.Ref, msg string) {
	o, err := officerstore.New(h.DB).Get(ctx, ref)
	if err != nil {
		respond.Error(w, h.Log, op, classify(err))
		return
	}
	respond.OK(w, msg, o)
}
