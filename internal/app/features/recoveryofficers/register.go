// internal/app/features/recoveryofficers/register.go
package recoveryofficers

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	"github.com/dalemusser/recoveryhub/internal/app/store/counters"
	drcstore "github.com/dalemusser/recoveryhub/internal/app/store/drcs"
	officerstore "github.com/dalemusser/recoveryhub/internal/app/store/recoveryofficers"
	userlogstore "github.com/dalemusser/recoveryhub/internal/app/store/userlogs"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/normalize"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/dalemusser/recoveryhub/internal/app/system/txn"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
)

const opRegister = "ro.register"

// HandleRegister creates an officer and its login record.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opRegister, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opRegister)
	defer cancel()

	d, err := drcstore.New(h.DB).Get(ctx, in.DRCID)
	if err != nil {
		respond.Error(w, h.Log, opRegister, classify(err))
		return
	}
	if d.DRCStatus == status.Terminate {
		respond.Error(w, h.Log, opRegister, apperr.Conflictf("DRC is terminated"))
		return
	}

	rtoms, err := lookupRTOMs(ctx, h.DB, in.RTOMs)
	if err != nil {
		respond.Error(w, h.Log, opRegister, err)
		return
	}

	seq := counters.RO
	if in.DrcUserType == models.UserTypeDRCUser {
		seq = counters.DRCUser
	}
	id, err := counters.New(h.DB).Next(ctx, seq)
	if err != nil {
		respond.Error(w, h.Log, opRegister, err)
		return
	}

	now := shared.Now()
	initial := status.Active
	if strings.EqualFold(strings.TrimSpace(in.CreateByType), creatorDRC) {
		initial = status.PendingApproval
	}

	o := models.RecoveryOfficer{
		DrcUserType:    in.DrcUserType,
		DRCID:          d.DRCID,
		Name:           strings.TrimSpace(in.Name),
		NIC:            normalize.Code(in.NIC),
		LoginEmail:     normalize.Email(in.LoginEmail),
		LoginContactNo: strings.TrimSpace(in.LoginContactNo),
		DrcUserStatus:  initial,
		StatusLog:      []models.StatusEntry{{Status: initial, StatusOn: now, StatusBy: in.CreateBy}},
		CreateBy:       in.CreateBy,
		CreateOn:       now,
	}
	if in.DrcUserType == models.UserTypeDRCUser {
		o.DrcUserID = &id
	} else {
		o.RoID = &id
	}
	for _, rt := range rtoms {
		o.RTOMs = append(o.RTOMs, models.OfficerRTOM{
			RTOMID:        rt.RTOMID,
			RTOMStatus:    status.Active,
			RTOMCreateDtm: now,
		})
	}

	officers := officerstore.New(h.DB)
	logs := userlogstore.New(h.DB)
	var created models.RecoveryOfficer
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		c, err := officers.Create(ctx, o)
		if err != nil {
			return err
		}
		txn.Compensate(ctx, func(ctx context.Context) error {
			return officers.Delete(ctx, c.ID)
		})

		l, err := logs.Create(ctx, models.UserLog{
			UserID:         id,
			UserType:       in.DrcUserType,
			DRCID:          d.DRCID,
			Email:          c.LoginEmail,
			UserStatus:     initial,
			UserStatusType: "registration",
			StatusOn:       now,
			StatusBy:       in.CreateBy,
			CreatedOn:      now,
		})
		if err != nil {
			return err
		}
		txn.Compensate(ctx, func(ctx context.Context) error {
			return logs.Delete(ctx, l.ID)
		})
		created = c
		return nil
	})
	if err != nil {
		respond.Error(w, h.Log, opRegister, classify(err))
		return
	}

	h.Audit.OfficerRegistered(r, in.CreateBy, in.DrcUserType, id, d.DRCID, initial)
	respond.Created(w, "Recovery officer registered successfully", created)
}
