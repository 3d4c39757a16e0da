package payments_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/features/payments"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"github.com/dalemusser/recoveryhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newRouter(db *mongo.Database) http.Handler {
	if db == nil {
		return payments.Routes(&payments.Handler{Log: zap.NewNop()})
	}
	return payments.Routes(payments.NewHandler(db, zap.NewNop(), nil))
}

func post(t *testing.T, h http.Handler, path string, body any) *testutil.ResponseRecorder {
	t.Helper()
	return testutil.Do(h, testutil.JSONRequest(t, "POST", path, body))
}

func TestList_RequiresFilter(t *testing.T) {
	h := newRouter(nil)

	rec := post(t, h, "/List_All_Payment_Cases", nil)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "At least one filter is required")

	// Blank strings are not filters.
	rec = post(t, h, "/List_All_Payment_Cases", map[string]any{"account_num": "  "})
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)
	fx := testutil.NewFixtures(t, db)
	fx.CreatePayment(ctx, 1, 100, nil, "Bill", base)
	fx.CreatePayment(ctx, 2, 100, nil, "Settlement", base.Add(time.Hour))
	fx.CreatePayment(ctx, 3, 101, nil, "Bill", base.Add(2*time.Hour))

	rec := post(t, h, "/List_All_Payment_Cases", map[string]any{"account_num": "ACC000100"})
	rec.AssertStatus(t, http.StatusOK)
	var rows []models.MoneyTransaction
	rec.DecodeData(t, &rows)
	if len(rows) != 2 || rows[0].MoneyTransactionID != 2 {
		t.Errorf("unexpected rows %+v", rows)
	}

	rec = post(t, h, "/List_All_Payment_Cases", map[string]any{"transaction_type": "Bill", "page": "1"})
	rec.AssertStatus(t, http.StatusOK)
	env := rec.Envelope(t)
	if env.Pagination == nil || env.Pagination.Total != 2 || env.Pagination.Page != 1 {
		t.Errorf("unexpected pagination %+v", env.Pagination)
	}

	rec = post(t, h, "/List_All_Payment_Cases", map[string]any{"from_date": "2024-06-01"})
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestDetails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreatePayment(ctx, 7, 100, nil, "Bill", time.Now())

	rec := post(t, h, "/Payment_Details_By_ID", map[string]any{"money_transaction_id": 7})
	rec.AssertStatus(t, http.StatusOK)
	var m models.MoneyTransaction
	rec.DecodeData(t, &m)
	if m.MoneyTransactionID != 7 || m.Amount != 2500 {
		t.Errorf("unexpected transaction %+v", m)
	}

	rec = post(t, h, "/Payment_Details_By_ID", map[string]any{"money_transaction_id": 8})
	rec.AssertStatus(t, http.StatusNotFound)
	if msg := rec.Envelope(t).Message; msg != "Payment not found" {
		t.Errorf("message = %q", msg)
	}
}

func TestDownloadTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)

	rec := post(t, h, "/Create_Task_For_Downloading_Payment_List", map[string]any{
		"case_id": 100, "transaction_type": "Bill", "Created_By": "finance",
	})
	rec.AssertStatus(t, http.StatusCreated)
	var task models.Task
	rec.DecodeData(t, &task)
	if task.TemplateTaskID != 4 || task.CreatedBy != "finance" || task.Parameters["transaction_type"] != "Bill" {
		t.Errorf("unexpected task %+v", task)
	}
}
