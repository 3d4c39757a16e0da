package inputval

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/limits"
)

type idInput struct {
	DRCID int64 `json:"drc_id" validate:"required,gt=0"`
}

func TestBind(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"ok", `{"drc_id": 4}`, ""},
		{"empty body", ``, "Missing required field(s): drc_id"},
		{"bad json", `{"drc_id":`, "Request body is not valid JSON"},
		{"wrong type", `{"drc_id": "four"}`, "Field drc_id has the wrong type"},
		{"zero id", `{"drc_id": 0}`, "Missing required field(s): drc_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var in idInput
			err := Bind(req, &in)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if in.DRCID != 4 {
					t.Errorf("drc_id = %d", in.DRCID)
				}
				return
			}
			if !apperr.Is(err, apperr.Validation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if got := apperr.From(err).Message; got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestDecodeJSON_OversizedBody(t *testing.T) {
	body := `{"drc_id": 4, "pad": "` + strings.Repeat("x", limits.MaxJSONBody) + `"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	var in idInput
	err := DecodeJSON(req, &in)
	if !apperr.Is(err, apperr.Validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
