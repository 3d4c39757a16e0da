// internal/app/features/drcs/register.go
package drcs

import (
	"net/http"
	"strings"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	"github.com/dalemusser/recoveryhub/internal/app/store/counters"
	drcstore "github.com/dalemusser/recoveryhub/internal/app/store/drcs"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/normalize"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
)

const opRegister = "drc.register"

// HandleRegister creates a company in the Active state.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opRegister, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opRegister)
	defer cancel()

	id, err := counters.New(h.DB).Next(ctx, counters.DRC)
	if err != nil {
		respond.Error(w, h.Log, opRegister, err)
		return
	}

	now := shared.Now()
	d := models.DRC{
		DRCID:                      id,
		DRCName:                    strings.TrimSpace(in.DRCName),
		BusinessRegistrationNumber: strings.TrimSpace(in.BusinessRegistrationNumber),
		ContactNo:                  strings.TrimSpace(in.ContactNo),
		Email:                      normalize.Email(in.Email),
		Address:                    strings.TrimSpace(in.Address),
		DRCStatus:                  status.Active,
		StatusLog:                  []models.StatusEntry{{Status: status.Active, StatusOn: now, StatusBy: in.CreateBy}},
		CreateBy:                   in.CreateBy,
		CreateOn:                   now,
	}
	for _, s := range in.Services {
		d.Services = append(d.Services, models.DRCService{
			ServiceID:     s.ServiceID,
			ServiceType:   strings.TrimSpace(s.ServiceType),
			ServiceStatus: status.Active,
			CreateOn:      now,
		})
	}
	for _, c := range in.Coordinators {
		d.Coordinators = append(d.Coordinators, models.SLTCoordinator{
			ServiceNo:            strings.TrimSpace(c.ServiceNo),
			SLTCoordinatorName:   strings.TrimSpace(c.Name),
			SLTCoordinatorEmail:  normalize.Email(c.Email),
			CoordinatorCreateDtm: now,
			CoordinatorCreateBy:  in.CreateBy,
		})
	}

	created, err := drcstore.New(h.DB).Create(ctx, d)
	if err != nil {
		respond.Error(w, h.Log, opRegister, classify(err))
		return
	}

	h.Audit.DRCRegistered(r, in.CreateBy, created.DRCID, created.DRCName)
	respond.Created(w, "DRC registered successfully", created)
}
