package recoveryofficers_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/recoveryhub/internal/app/features/recoveryofficers"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"github.com/dalemusser/recoveryhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newRouter(db *mongo.Database) http.Handler {
	if db == nil {
		return recoveryofficers.Routes(&recoveryofficers.Handler{Log: zap.NewNop()})
	}
	return recoveryofficers.Routes(recoveryofficers.NewHandler(db, zap.NewNop(), nil))
}

func post(t *testing.T, h http.Handler, path string, body any) *testutil.ResponseRecorder {
	t.Helper()
	return testutil.Do(h, testutil.JSONRequest(t, "POST", path, body))
}

func loadOfficer(t *testing.T, db *mongo.Database, field string, id int64) models.RecoveryOfficer {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	var o models.RecoveryOfficer
	if err := db.Collection("Recovery_officer").FindOne(ctx, bson.M{field: id}).Decode(&o); err != nil {
		t.Fatalf("load officer %s=%d: %v", field, id, err)
	}
	return o
}

func loadUserLog(t *testing.T, db *mongo.Database, id int64, userType string) models.UserLog {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	var l models.UserLog
	if err := db.Collection("User_log").FindOne(ctx, bson.M{"user_id": id, "user_type": userType}).Decode(&l); err != nil {
		t.Fatalf("load user log %d: %v", id, err)
	}
	return l
}

func registration(drcID int64) map[string]any {
	return map[string]any{
		"drcUser_type":     "RO",
		"drc_id":           drcID,
		"name":             "Nimal Perera",
		"nic":              "901234567v",
		"login_email":      "Nimal@Example.lk",
		"login_contact_no": "0771234567",
		"create_by":        "admin",
	}
}

func TestDetails_RequiresExactlyOneID(t *testing.T) {
	h := newRouter(nil)

	for name, body := range map[string]any{
		"none": map[string]any{},
		"both": map[string]any{"ro_id": 1, "drcUser_id": 2},
		"zero": map[string]any{"ro_id": 0},
	} {
		t.Run(name, func(t *testing.T) {
			rec := post(t, h, "/RO_Details_By_ID", body)
			rec.AssertStatus(t, http.StatusBadRequest)
			if msg := rec.Envelope(t).Message; msg != "Exactly one of ro_id or drcUser_id is required" {
				t.Errorf("message = %q", msg)
			}
		})
	}
}

func TestRegister_Validation(t *testing.T) {
	h := newRouter(nil)

	rec := post(t, h, "/Register_RO", map[string]any{"drcUser_type": "RO"})
	rec.AssertStatus(t, http.StatusBadRequest)
	want := "Missing required field(s): drc_id, name, nic, login_email, login_contact_no, create_by"
	if msg := rec.Envelope(t).Message; msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}

	body := registration(1)
	body["drcUser_type"] = "Manager"
	rec = post(t, h, "/Register_RO", body)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "must be RO or drcUser")
}

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateDRC(ctx, 1, "One")
	fx.CreateRTOM(ctx, 5, "CO", "Colombo")

	body := registration(1)
	body["create_by_type"] = "drc"
	body["rtoms_for_ro"] = []map[string]any{{"rtom_id": 5}, {"rtom_id": 5}}
	rec := post(t, h, "/Register_RO", body)
	rec.AssertStatus(t, http.StatusCreated)

	var o models.RecoveryOfficer
	rec.DecodeData(t, &o)
	if o.RoID == nil || *o.RoID != 1 || o.DrcUserID != nil {
		t.Fatalf("unexpected identity ro_id=%v drcUser_id=%v", o.RoID, o.DrcUserID)
	}
	if o.DrcUserStatus != "Pending_approval" {
		t.Errorf("status = %s, want Pending_approval", o.DrcUserStatus)
	}
	if o.LoginEmail != "nimal@example.lk" || o.NIC != "901234567V" {
		t.Errorf("email=%s nic=%s", o.LoginEmail, o.NIC)
	}
	if len(o.RTOMs) != 1 || o.RTOMs[0].RTOMID != 5 {
		t.Errorf("unexpected rtoms %+v", o.RTOMs)
	}
	if l := loadUserLog(t, db, 1, "RO"); l.UserStatus != "Pending_approval" || l.DRCID != 1 {
		t.Errorf("unexpected user log %+v", l)
	}

	// DRC users draw from their own sequence and start Active.
	body = registration(1)
	body["drcUser_type"] = "drcUser"
	body["login_email"] = "staff@example.lk"
	rec = post(t, h, "/Register_RO", body)
	rec.AssertStatus(t, http.StatusCreated)
	var u models.RecoveryOfficer
	rec.DecodeData(t, &u)
	if u.DrcUserID == nil || *u.DrcUserID != 1 || u.RoID != nil || u.DrcUserStatus != "Active" {
		t.Errorf("unexpected drcUser %+v", u)
	}
}

func TestRegister_Preconditions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateDRC(ctx, 1, "One")
	fx.CreateDRC(ctx, 2, "Two")
	fx.SetDRCStatus(ctx, 2, "Terminate")

	rec := post(t, h, "/Register_RO", registration(9))
	rec.AssertStatus(t, http.StatusNotFound)

	rec = post(t, h, "/Register_RO", registration(2))
	rec.AssertStatus(t, http.StatusConflict)

	body := registration(1)
	body["rtoms_for_ro"] = []map[string]any{{"rtom_id": 42}}
	rec = post(t, h, "/Register_RO", body)
	rec.AssertStatus(t, http.StatusNotFound)
	if msg := rec.Envelope(t).Message; msg != "RTOM not found: 42" {
		t.Errorf("message = %q", msg)
	}

	n, err := db.Collection("Recovery_officer").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no officers, got %d", n)
	}
}

func TestApprove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateRO(ctx, 10, 1, "Pending_approval", true)

	body := map[string]any{"ro_id": 10, "approved_by": "supervisor"}
	rec := post(t, h, "/Approve_RO", body)
	rec.AssertStatus(t, http.StatusOK)

	o := loadOfficer(t, db, "ro_id", 10)
	if o.DrcUserStatus != "Active" || len(o.StatusLog) != 2 {
		t.Errorf("status=%s log=%d", o.DrcUserStatus, len(o.StatusLog))
	}
	l := loadUserLog(t, db, 10, "RO")
	if l.UserStatus != "Active" || l.StatusBy != "supervisor" || l.UserStatusType != "approval" {
		t.Errorf("unexpected user log %+v", l)
	}

	rec = post(t, h, "/Approve_RO", body)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestSuspend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateRO(ctx, 10, 1, "Active", true)

	body := map[string]any{"ro_id": 10, "remark": "On leave", "remark_by": "supervisor"}
	rec := post(t, h, "/Suspend_RO", body)
	rec.AssertStatus(t, http.StatusOK)

	var o models.RecoveryOfficer
	rec.DecodeData(t, &o)
	if o.DrcUserStatus != "Inactive" || len(o.Remarks) != 1 || o.Remarks[0].Remark != "On leave" {
		t.Errorf("unexpected officer %+v", o)
	}
	if l := loadUserLog(t, db, 10, "RO"); l.UserStatus != "Inactive" {
		t.Errorf("user log status = %s", l.UserStatus)
	}

	rec = post(t, h, "/Suspend_RO", body)
	rec.AssertStatus(t, http.StatusBadRequest)

	body["remark"] = "   "
	rec = post(t, h, "/Suspend_RO", body)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestTerminate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateRO(ctx, 10, 1, "Active", true, 5, 6)

	body := map[string]any{"ro_id": 10, "remark": "Left the company", "end_by": "supervisor"}
	rec := post(t, h, "/Terminate_RO", body)
	rec.AssertStatus(t, http.StatusOK)

	rec = post(t, h, "/Terminate_RO", body)
	rec.AssertStatus(t, http.StatusConflict)

	o := loadOfficer(t, db, "ro_id", 10)
	if o.DrcUserStatus != "Terminate" || o.EndBy != "supervisor" || o.EndDate == nil {
		t.Errorf("status=%s end_by=%s end=%v", o.DrcUserStatus, o.EndBy, o.EndDate)
	}
	if len(o.Remarks) != 1 || o.Remarks[0].RemarkBy != "supervisor" {
		t.Errorf("expected exactly one remark by supervisor, got %+v", o.Remarks)
	}
	for _, a := range o.RTOMs {
		if a.RTOMStatus != "Inactive" || a.RTOMEndDtm == nil {
			t.Errorf("rtom %d not closed: %+v", a.RTOMID, a)
		}
	}
	if l := loadUserLog(t, db, 10, "RO"); l.UserStatus != "Terminate" {
		t.Errorf("user log status = %s", l.UserStatus)
	}
}

func TestTerminate_MissingUserLogLeavesOfficerUnchanged(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateRO(ctx, 10, 1, "Active", false, 5)

	rec := post(t, h, "/Terminate_RO", map[string]any{"ro_id": 10, "remark": "x", "end_by": "supervisor"})
	rec.AssertStatus(t, http.StatusInternalServerError)

	o := loadOfficer(t, db, "ro_id", 10)
	if o.DrcUserStatus != "Active" || len(o.Remarks) != 0 || len(o.StatusLog) != 1 || o.EndDate != nil {
		t.Errorf("officer changed: %+v", o)
	}
	if o.RTOMs[0].RTOMStatus != "Active" {
		t.Errorf("rtom assignment changed: %+v", o.RTOMs[0])
	}
}

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateDRC(ctx, 1, "One")
	fx.CreateRO(ctx, 10, 1, "Active", false, 5)
	fx.CreateRO(ctx, 11, 1, "Inactive", false)
	fx.CreateRO(ctx, 20, 2, "Active", false, 5)

	rec := post(t, h, "/List_RO", map[string]any{"drc_id": 1, "drcUser_status": "Active"})
	rec.AssertStatus(t, http.StatusOK)
	var rows []models.OfficerListRow
	rec.DecodeData(t, &rows)
	if len(rows) != 1 || *rows[0].RoID != 10 {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if rows[0].DRCName == nil || *rows[0].DRCName != "One" {
		t.Errorf("drc_name = %v", rows[0].DRCName)
	}

	rec = post(t, h, "/List_RO", map[string]any{"rtom_id": 5})
	rec.AssertStatus(t, http.StatusOK)
	var byRTOM []models.OfficerListRow
	rec.DecodeData(t, &byRTOM)
	if len(byRTOM) != 2 {
		t.Errorf("expected 2 officers on rtom 5, got %d", len(byRTOM))
	}
	for _, r := range byRTOM {
		if *r.RoID == 20 && r.DRCName != nil {
			t.Errorf("drc_name for unknown DRC should be null, got %q", *r.DRCName)
		}
	}

	rec = post(t, h, "/List_RO", map[string]any{"drc_id": 3})
	rec.AssertStatus(t, http.StatusOK)
	if string(rec.Envelope(t).Data) != "[]" {
		t.Errorf("expected [], got %s", rec.Envelope(t).Data)
	}
}

func TestUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateRTOM(ctx, 6, "GA", "Galle")
	fx.CreateRO(ctx, 10, 1, "Terminate", false, 5)

	rec := post(t, h, "/Update_RO_Details", map[string]any{
		"ro_id":            10,
		"login_contact_no": "0719876543",
		"add_rtoms":        []map[string]any{{"rtom_id": 6}},
		"remove_rtoms":     []map[string]any{{"rtom_id": 5}},
		"updated_by":       "admin",
	})
	rec.AssertStatus(t, http.StatusOK)

	o := loadOfficer(t, db, "ro_id", 10)
	if o.LoginContactNo != "0719876543" || o.DocVersion != 2 {
		t.Errorf("contact=%s version=%d", o.LoginContactNo, o.DocVersion)
	}
	got := map[int64]string{}
	for _, a := range o.RTOMs {
		got[a.RTOMID] = a.RTOMStatus
	}
	if got[5] != "Inactive" || got[6] != "Active" || len(got) != 2 {
		t.Errorf("unexpected assignments %v", got)
	}

	rec = post(t, h, "/Update_RO_Details", map[string]any{"ro_id": 10, "updated_by": "admin"})
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestDownloadTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRouter(db)

	rec := post(t, h, "/Create_Task_For_Downloading_RO_List", map[string]any{
		"drc_id": 1, "drcUser_type": "RO", "Created_By": "admin",
	})
	rec.AssertStatus(t, http.StatusCreated)

	var task models.Task
	rec.DecodeData(t, &task)
	if task.TemplateTaskID != 2 || task.Parameters["drc_id"] != float64(1) || task.Parameters["drcUser_type"] != "RO" {
		t.Errorf("unexpected task %+v", task)
	}
	if _, ok := task.Parameters["drcUser_status"]; ok {
		t.Error("empty filters should not be recorded")
	}
}
