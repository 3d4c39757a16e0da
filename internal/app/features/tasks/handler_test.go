package tasks_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/recoveryhub/internal/app/features/tasks"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"github.com/dalemusser/recoveryhub/internal/testutil"
	"go.uber.org/zap"
)

func TestCreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := tasks.Routes(tasks.NewHandler(db, zap.NewNop(), nil))

	for _, body := range []map[string]any{
		{"Template_Task_Id": 20, "task_type": "Case Distribution", "Created_By": "planner", "drc_id": 3},
		{"Template_Task_Id": 21, "task_type": "Commission Run", "Created_By": "finance"},
		{"Template_Task_Id": 20, "task_type": "Case Distribution", "Created_By": "finance"},
	} {
		rec := testutil.Do(h, testutil.JSONRequest(t, "POST", "/Create_Task", body))
		rec.AssertStatus(t, http.StatusCreated)
	}

	rec := testutil.Do(h, testutil.JSONRequest(t, "POST", "/List_All_Tasks", map[string]any{}))
	rec.AssertStatus(t, http.StatusOK)
	var all []models.Task
	rec.DecodeData(t, &all)
	if len(all) != 3 || all[0].TaskID != 3 || all[2].TaskID != 1 {
		t.Fatalf("unexpected order %+v", all)
	}
	if all[2].TaskStatus != "open" || all[2].Parameters["drc_id"] != float64(3) {
		t.Errorf("unexpected first task %+v", all[2])
	}

	rec = testutil.Do(h, testutil.JSONRequest(t, "POST", "/List_All_Tasks", map[string]any{
		"Template_Task_Id": 20, "Created_By": "finance",
	}))
	rec.AssertStatus(t, http.StatusOK)
	var filtered []models.Task
	rec.DecodeData(t, &filtered)
	if len(filtered) != 1 || filtered[0].TaskID != 3 {
		t.Errorf("unexpected filtered rows %+v", filtered)
	}

	rec = testutil.Do(h, testutil.JSONRequest(t, "POST", "/List_All_Tasks", map[string]any{"task_status": "done"}))
	rec.AssertStatus(t, http.StatusOK)
	if string(rec.Envelope(t).Data) != "[]" {
		t.Errorf("expected [], got %s", rec.Envelope(t).Data)
	}
}

func TestCreate_Validation(t *testing.T) {
	h := tasks.Routes(&tasks.Handler{Log: zap.NewNop()})

	rec := testutil.Do(h, testutil.JSONRequest(t, "POST", "/Create_Task", map[string]any{"task_type": "x"}))
	rec.AssertStatus(t, http.StatusBadRequest)
	if msg := rec.Envelope(t).Message; msg != "Missing required field(s): Template_Task_Id, Created_By" {
		t.Errorf("message = %q", msg)
	}

	rec = testutil.Do(h, testutil.JSONRequest(t, "POST", "/Create_Task", `["not","an","object"]`))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestCreate_TemplateOutOfRange(t *testing.T) {
	h := tasks.Routes(&tasks.Handler{Log: zap.NewNop()})

	body := `{"Template_Task_Id": 9223372036854775808, "task_type": "x", "Created_By": "ops"}`
	rec := testutil.Do(h, testutil.JSONRequest(t, "POST", "/Create_Task", body))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Template_Task_Id must be a positive integer")
}
