// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strings"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	"github.com/dalemusser/recoveryhub/internal/app/store/audit"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/app/system/paging"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
)

const (
	opList    = "audit.list"
	opHistory = "audit.history"
)

const defaultHistoryLimit = 50

// HandleList returns one page of audit events, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var in listInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	from, to, err := listquery.ParseRange(in.FromDate, in.ToDate)
	if err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}

	page := paging.Parse(in.Page)
	skip, limit := paging.Window(page)
	filter := audit.QueryFilter{
		Entity:    in.Entity,
		EntityID:  in.EntityID,
		EventType: strings.TrimSpace(in.EventType),
		Actor:     strings.TrimSpace(in.Actor),
		StartTime: from,
		EndTime:   to,
		Limit:     limit,
		Offset:    skip,
	}

	ctx, cancel := shared.Context(r, h.Log, opList)
	defer cancel()

	store := audit.New(h.DB)
	total, err := store.CountByFilter(ctx, filter)
	if err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	events, err := store.Query(ctx, filter)
	if err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	respond.List(w, "Audit events retrieved successfully", toRows(events), paging.NewMeta(page, total))
}

// HandleHistory returns the latest events recorded for one entity.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	var in historyInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opHistory, err)
		return
	}
	limit := in.Limit
	if limit == 0 {
		limit = defaultHistoryLimit
	}

	ctx, cancel := shared.Context(r, h.Log, opHistory)
	defer cancel()

	events, err := audit.New(h.DB).History(ctx, in.Entity, *in.EntityID, limit)
	if err != nil {
		respond.Error(w, h.Log, opHistory, err)
		return
	}
	respond.OK(w, "Entity history retrieved successfully", toRows(events))
}
