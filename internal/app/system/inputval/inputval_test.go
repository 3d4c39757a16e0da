package inputval

import (
	"reflect"
	"testing"

	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"a@b.co", true},
		{"admin@mailserver", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{".user@example.com", false},
		{"user.@example.com", false},
		{"user..name@example.com", false},
		{"user@.example.com", false},
		{"user@example..com", false},
		{"User Name <user@example.com>", false},
		{"user @example.com", false},
		{"user@exam ple.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"0771234567", true},
		{"+94771234567", true},
		{"077-123 4567", true},
		{"", false},
		{"12345", false},
		{"phone", false},
		{"+9477123456789012", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := IsValidPhone(tt.phone); got != tt.want {
				t.Errorf("IsValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

type registerInput struct {
	Name   string `json:"drc_name" validate:"required,max=10" label:"DRC name"`
	Email  string `json:"drc_email" validate:"required,emailaddr"`
	Phone  string `json:"drc_contact_no" validate:"required,phone" label:"Contact number"`
	Status string `json:"drc_status,omitempty" validate:"omitempty,lifecycle" label:"Status"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     registerInput
		wantErrs  bool
		wantFirst string
	}{
		{
			name:  "valid",
			input: registerInput{Name: "Acme", Email: "ops@acme.lk", Phone: "0771234567"},
		},
		{
			name:      "missing name",
			input:     registerInput{Email: "ops@acme.lk", Phone: "0771234567"},
			wantErrs:  true,
			wantFirst: "DRC name is required.",
		},
		{
			name:      "name too long",
			input:     registerInput{Name: "Recoveries Unlimited", Email: "ops@acme.lk", Phone: "0771234567"},
			wantErrs:  true,
			wantFirst: "DRC name must be at most 10 characters.",
		},
		{
			name:      "bad email",
			input:     registerInput{Name: "Acme", Email: "nope", Phone: "0771234567"},
			wantErrs:  true,
			wantFirst: "A valid email address is required.",
		},
		{
			name:      "bad status",
			input:     registerInput{Name: "Acme", Email: "ops@acme.lk", Phone: "0771234567", Status: "Deleted"},
			wantErrs:  true,
			wantFirst: "Status must be one of Active, Inactive, Terminate, Pending_approval.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.input)
			if res.HasErrors() != tt.wantErrs {
				t.Fatalf("HasErrors = %v, want %v (%v)", res.HasErrors(), tt.wantErrs, res.Errors)
			}
			if tt.wantErrs && res.First() != tt.wantFirst {
				t.Errorf("First() = %q, want %q", res.First(), tt.wantFirst)
			}
		})
	}
}

func TestResult_MissingUsesJSONNames(t *testing.T) {
	res := Validate(registerInput{})
	want := []string{"drc_name", "drc_email", "drc_contact_no"}
	if got := res.Missing(); !reflect.DeepEqual(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
}

func TestCheck(t *testing.T) {
	err := Check(registerInput{Email: "ops@acme.lk", Phone: "0771234567"})
	if !apperr.Is(err, apperr.Validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := apperr.From(err).Message; got != "Missing required field(s): drc_name" {
		t.Errorf("message = %q", got)
	}

	err = Check(registerInput{Name: "Acme", Email: "bad", Phone: "0771234567"})
	if got := apperr.From(err).Message; got != "A valid email address is required." {
		t.Errorf("message = %q", got)
	}

	if err := Check(registerInput{Name: "Acme", Email: "ops@acme.lk", Phone: "0771234567"}); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestResult_All(t *testing.T) {
	r := &Result{Errors: []FieldError{{Message: "Error 1"}, {Message: "Error 2"}}}
	if r.All() != "Error 1; Error 2" {
		t.Errorf("All() = %q", r.All())
	}
	if (&Result{}).First() != "" {
		t.Error("First() on empty result should be empty")
	}
}
