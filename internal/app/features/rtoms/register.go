// internal/app/features/rtoms/register.go
package rtoms

import (
	"net/http"
	"strings"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	"github.com/dalemusser/recoveryhub/internal/app/store/counters"
	rtomstore "github.com/dalemusser/recoveryhub/internal/app/store/rtoms"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/normalize"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
)

const opRegister = "rtom.register"

// HandleRegister creates an Active RTOM area.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opRegister, err)
		return
	}
	abbr := normalize.Code(in.Abbreviation)

	ctx, cancel := shared.Context(r, h.Log, opRegister)
	defer cancel()

	store := rtomstore.New(h.DB)
	exists, err := store.AbbreviationExists(ctx, abbr)
	if err != nil {
		respond.Error(w, h.Log, opRegister, err)
		return
	}
	if exists {
		respond.Error(w, h.Log, opRegister, apperr.Conflictf("An RTOM with this abbreviation already exists"))
		return
	}

	id, err := counters.New(h.DB).Next(ctx, counters.RTOM)
	if err != nil {
		respond.Error(w, h.Log, opRegister, err)
		return
	}

	now := shared.Now()
	created, err := store.Create(ctx, models.RTOM{
		RTOMID:       id,
		Abbreviation: abbr,
		AreaName:     strings.TrimSpace(in.AreaName),
		Email:        normalize.Email(in.Email),
		MobileNo:     trimAll(in.MobileNo),
		TelephoneNo:  trimAll(in.TelephoneNo),
		RTOMStatus:   status.Active,
		StatusLog:    []models.StatusEntry{{Status: status.Active, StatusOn: now, StatusBy: in.CreatedBy}},
		CreatedBy:    in.CreatedBy,
		CreatedDtm:   now,
	})
	if err != nil {
		// The unique index catches a concurrent registration of the same
		// abbreviation.
		respond.Error(w, h.Log, opRegister, classify(err))
		return
	}

	h.Audit.RTOMRegistered(r, in.CreatedBy, created.RTOMID, created.Abbreviation)
	respond.Created(w, "RTOM registered successfully", created)
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
