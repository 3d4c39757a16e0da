// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/store/audit"
)

type listInput struct {
	Entity    string `json:"entity" validate:"omitempty,oneof=DRC Recovery_officer RTOM Task" label:"Entity"`
	EntityID  *int64 `json:"entity_id" validate:"omitempty,gt=0" label:"Entity id"`
	EventType string `json:"event_type" validate:"max=100" label:"Event type"`
	Actor     string `json:"actor" validate:"max=200" label:"Actor"`
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`
	Page      any    `json:"page"`
}

type historyInput struct {
	Entity   string `json:"entity" validate:"required,oneof=DRC Recovery_officer RTOM Task" label:"Entity"`
	EntityID *int64 `json:"entity_id" validate:"required,gt=0" label:"Entity id"`
	Limit    int64  `json:"limit" validate:"omitempty,gt=0,max=500" label:"Limit"`
}

// eventRow is one audit event as returned to callers.
type eventRow struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Category  string            `json:"category"`
	EventType string            `json:"event_type"`
	Entity    string            `json:"entity"`
	EntityID  int64             `json:"entity_id"`
	Actor     string            `json:"actor"`
	IP        string            `json:"ip,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

func toRows(events []audit.Event) []eventRow {
	rows := make([]eventRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, eventRow{
			ID:        e.ID.Hex(),
			Timestamp: e.Timestamp,
			Category:  e.Category,
			EventType: e.EventType,
			Entity:    e.Entity,
			EntityID:  e.EntityID,
			Actor:     e.Actor,
			IP:        e.IP,
			RequestID: e.RequestID,
			Details:   e.Details,
		})
	}
	return rows
}
