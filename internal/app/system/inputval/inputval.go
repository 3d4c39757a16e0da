// Package inputval validates decoded request bodies.
//
// Request structs carry `validate` tags (go-playground/validator) and an
// optional `label` tag used in messages. Field names in results are the
// JSON names clients send.
package inputval

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// Result collects every failed rule for a value.
type Result struct {
	Errors []FieldError
}

func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "" when valid.
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Missing returns the JSON names of fields that failed "required".
func (r *Result) Missing() []string {
	var out []string
	for _, e := range r.Errors {
		if e.Rule == "required" {
			out = append(out, e.Field)
		}
	}
	return out
}

// Err converts r into an apperr. Missing fields are reported together;
// otherwise the first message is used. Returns nil when valid.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	if missing := r.Missing(); len(missing) > 0 {
		return apperr.MissingFields(missing...)
	}
	return apperr.Invalid("%s", r.First())
}

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsValidPhone(fl.Field().String())
		})
		_ = v.RegisterValidation("usertype", func(fl validator.FieldLevel) bool {
			return IsValidUserType(fl.Field().String())
		})
		_ = v.RegisterValidation("lifecycle", func(fl validator.FieldLevel) bool {
			return status.Valid(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Validate runs the struct's validate tags.
func Validate(v any) *Result {
	res := &Result{}
	err := engine().Struct(v)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Rule: "invalid", Message: "Request is invalid."})
		return res
	}
	root := reflect.TypeOf(v)
	for _, fe := range verrs {
		label := labelFor(root, fe.StructNamespace())
		if label == "" {
			label = fe.Field()
		}
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(label, fe),
		})
	}
	return res
}

// Check validates v and returns an apperr, or nil.
func Check(v any) error {
	return Validate(v).Err()
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max":
		return label + " must be at most " + fe.Param() + " characters."
	case "min":
		return label + " must be at least " + fe.Param() + " characters."
	case "email", "emailaddr":
		return "A valid email address is required."
	case "phone":
		return label + " must be a valid phone number."
	case "usertype":
		return label + " must be RO or drcUser."
	case "lifecycle":
		return label + " must be one of Active, Inactive, Terminate, Pending_approval."
	case "oneof":
		return label + " must be one of: " + fe.Param() + "."
	case "gt", "gte":
		return label + " must be greater than " + fe.Param() + "."
	default:
		return label + " is invalid."
	}
}

// labelFor walks a struct namespace like "Input.Services[0].Type" and
// returns the label tag of the final field.
func labelFor(t reflect.Type, ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) < 2 {
		return ""
	}
	var label string
	for _, p := range parts[1:] {
		for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return ""
		}
		if i := strings.IndexByte(p, '['); i >= 0 {
			p = p[:i]
		}
		f, ok := t.FieldByName(p)
		if !ok {
			return ""
		}
		label = f.Tag.Get("label")
		t = f.Type
	}
	return label
}

var (
	localRe  = regexp.MustCompile("^[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+(\\.[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+)*$")
	domainRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)*$`)
	phoneRe  = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// IsValidEmail reports whether s is a bare addr-spec (no display name).
// Single-label domains are accepted.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return localRe.MatchString(s[:at]) && domainRe.MatchString(s[at+1:])
}

// IsValidPhone accepts an optional leading + and 7 to 15 digits. Spaces
// and dashes are ignored.
func IsValidPhone(s string) bool {
	s = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
	return phoneRe.MatchString(s)
}

// IsValidUserType reports whether s names an officer kind.
func IsValidUserType(s string) bool {
	return s == "RO" || s == "drcUser"
}
