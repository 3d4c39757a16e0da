package tasks_test

import (
	"context"
	"errors"
	"testing"

	taskstore "github.com/dalemusser/recoveryhub/internal/app/store/tasks"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
	"github.com/dalemusser/recoveryhub/internal/app/system/txn"
	"github.com/dalemusser/recoveryhub/internal/testutil"
	"go.uber.org/zap"
)

func TestDownload_DropsEmptyParameters(t *testing.T) {
	drc := int64(7)
	var none *int64
	p := tasks.Download(tasks.TemplateSettlementList, map[string]any{
		"case_id":           "",
		"drc_id":            &drc,
		"settlement_phase":  "Negotiation",
		"settlement_status": nil,
		"account_num":       none,
	}, "analyst")

	if p.TemplateID != 3 || p.TaskType != "Create Settlement List for Downloading" {
		t.Errorf("unexpected template/type: %d %q", p.TemplateID, p.TaskType)
	}
	if len(p.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %v", p.Parameters)
	}
	if p.Parameters["drc_id"] != int64(7) {
		t.Errorf("drc_id = %v, want dereferenced 7", p.Parameters["drc_id"])
	}
}

func TestTypeFor(t *testing.T) {
	for _, tpl := range []int64{1, 2, 3, 4, 5} {
		if tasks.TypeFor(tpl) == "" {
			t.Errorf("no task type for template %d", tpl)
		}
	}
	if tasks.TypeFor(99) != "" {
		t.Error("expected empty type for unknown template")
	}
}

func TestService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc := tasks.NewService(db)

	first, err := svc.Create(ctx, tasks.Payload{TemplateID: 1, TaskType: "Create DRC List for Downloading", CreatedBy: "admin"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := svc.Create(ctx, tasks.Payload{TemplateID: 2, TaskType: "x", CreatedBy: "admin", Parameters: map[string]any{"drc_id": 3}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.TaskID != 1 || second.TaskID != 2 {
		t.Errorf("expected Task_Id 1 and 2, got %d and %d", first.TaskID, second.TaskID)
	}
	if first.TaskStatus != tasks.StatusOpen {
		t.Errorf("task_status = %q", first.TaskStatus)
	}
	if first.Parameters == nil {
		t.Error("parameters should default to an empty object")
	}

	rows, total, err := taskstore.New(db).List(ctx, &listquery.Builder{}, 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 || rows[0].TaskID != 2 {
		t.Errorf("expected 2 tasks newest first, got total=%d first=%d", total, rows[0].TaskID)
	}
}

func TestService_Create_InvalidPayload(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc := tasks.NewService(db)
	_, err := svc.Create(ctx, tasks.Payload{TemplateID: 1, TaskType: "x"})
	if !errors.Is(err, tasks.ErrInvalidPayload) {
		t.Errorf("expected ErrInvalidPayload, got %v", err)
	}

	_, err = svc.Submit(ctx, zap.NewNop(), tasks.Payload{TemplateID: -1, TaskType: "x", CreatedBy: "admin"})
	if !apperr.Is(err, apperr.Validation) {
		t.Errorf("expected validation error, got %v", err)
	}

	// Rejected payloads never consume a Task_Id.
	task, err := svc.Submit(ctx, zap.NewNop(), tasks.Payload{TemplateID: 1, TaskType: "x", CreatedBy: "admin"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if task.TaskID != 1 {
		t.Errorf("Task_Id = %d, want 1", task.TaskID)
	}
}

func TestService_Submit_AllocatesSequentialIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc := tasks.NewService(db)
	for want := int64(1); want <= 3; want++ {
		task, err := svc.Submit(ctx, zap.NewNop(), tasks.Payload{TemplateID: 2, TaskType: "x", CreatedBy: "admin"})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if task.TaskID != want || task.TaskStatus != tasks.StatusOpen {
			t.Errorf("task = %+v, want Task_Id %d open", task, want)
		}
	}
}

func TestService_Create_CompensatedInSaga(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc := tasks.NewService(db)
	boom := errors.New("later step failed")

	err := txn.RunSaga(ctx, zap.NewNop(), func(ctx context.Context) error {
		if _, err := svc.Create(ctx, tasks.Payload{TemplateID: 3, TaskType: "x", CreatedBy: "admin"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected saga error, got %v", err)
	}

	_, total, err := taskstore.New(db).List(ctx, &listquery.Builder{}, 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 0 {
		t.Errorf("expected task to be removed by compensation, found %d", total)
	}
}
