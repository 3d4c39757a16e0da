package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/paging"
	"go.uber.org/zap"
)

type envelope struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *paging.Meta    `json:"pagination"`
	Errors     *ErrorBody      `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return env
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, "done", map[string]int{"drc_id": 3})

	if rec.Code != http.StatusOK {
		t.Errorf("status code: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	env := decode(t, rec)
	if env.Status != StatusSuccess || env.Message != "done" {
		t.Errorf("unexpected envelope: %+v", env)
	}
	if string(env.Data) != `{"drc_id":3}` {
		t.Errorf("data: got %s", env.Data)
	}
	if env.Errors != nil {
		t.Error("success envelope must not carry errors")
	}
}

func TestList_EmptyRowsKeepsDataArray(t *testing.T) {
	rec := httptest.NewRecorder()
	List(rec, "listed", []int{}, paging.NewMeta(1, 0))

	env := decode(t, rec)
	if string(env.Data) != "[]" {
		t.Errorf("data: got %s, want []", env.Data)
	}
	if env.Pagination == nil || env.Pagination.TotalPages != 1 {
		t.Errorf("pagination: got %+v", env.Pagination)
	}
}

func TestError_Classified(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, zap.NewNop(), "terminate ro", apperr.Conflictf("Recovery officer is already terminated"))

	if rec.Code != http.StatusConflict {
		t.Errorf("status code: got %d, want %d", rec.Code, http.StatusConflict)
	}
	env := decode(t, rec)
	if env.Status != StatusError {
		t.Errorf("status: got %q", env.Status)
	}
	if env.Errors == nil || env.Errors.Code != http.StatusConflict {
		t.Errorf("errors: got %+v", env.Errors)
	}
	if len(env.Data) != 0 {
		t.Errorf("error envelope must not carry data, got %s", env.Data)
	}
}

func TestError_InternalHidesDriverObject(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, zap.NewNop(), "list drcs", errors.New("connection reset by peer"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status code: got %d", rec.Code)
	}
	env := decode(t, rec)
	if env.Message != "Internal server error" {
		t.Errorf("message: got %q", env.Message)
	}
	if env.Errors == nil || env.Errors.Description != "connection reset by peer" {
		t.Errorf("errors: got %+v", env.Errors)
	}
}

func TestNotFoundHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFoundHandler(rec, httptest.NewRequest(http.MethodPost, "/api/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status code: got %d", rec.Code)
	}
	if env := decode(t, rec); env.Status != StatusError {
		t.Errorf("status: got %q", env.Status)
	}
}
