package listquery

import (
	"testing"
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuilder_SkipsAbsentValues(t *testing.T) {
	var b Builder
	b.Eq("case_id", "").Eq("settlement_phase", "   ").EqInt("drc_id", nil)
	if b.Supplied() {
		t.Fatalf("expected no filter, got %v", b.Filter())
	}
	if f := b.Filter(); f == nil || len(f) != 0 {
		t.Errorf("Filter() = %v, want empty non-nil", f)
	}
}

func TestBuilder_Eq(t *testing.T) {
	id := int64(7)
	var b Builder
	b.Eq("settlement_status", " Open ").EqInt("drc_id", &id)

	want := bson.D{{Key: "settlement_status", Value: "Open"}, {Key: "drc_id", Value: int64(7)}}
	got := b.Filter()
	if len(got) != len(want) {
		t.Fatalf("Filter() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Key != want[i].Key || got[i].Value != want[i].Value {
			t.Errorf("Filter()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBuilder_DateRange(t *testing.T) {
	var b Builder
	if err := b.DateRange("created_dtm", "2026-01-01", "2026-01-31"); err != nil {
		t.Fatalf("DateRange() error = %v", err)
	}
	if !b.Supplied() {
		t.Fatal("expected a filter")
	}
	rng := b.Filter()[0].Value.(bson.D)
	from := rng[0].Value.(time.Time)
	to := rng[1].Value.(time.Time)
	if !from.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v", from)
	}
	if !to.Equal(time.Date(2026, 1, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)) {
		t.Errorf("to = %v, want end of day", to)
	}
}

func TestBuilder_DateRangeOneSided(t *testing.T) {
	var b Builder
	if err := b.DateRange("created_on", "", "2026-03-01T10:00:00Z"); err != nil {
		t.Fatalf("DateRange() error = %v", err)
	}
	rng := b.Filter()[0].Value.(bson.D)
	if len(rng) != 1 || rng[0].Key != "$lte" {
		t.Errorf("range = %v, want only $lte", rng)
	}
}

func TestBuilder_DateRangeErrors(t *testing.T) {
	tests := []struct{ from, to, msg string }{
		{"yesterday", "", "from_date is not a valid date"},
		{"", "31/01/2026", "to_date is not a valid date"},
		{"2026-02-01", "2026-01-01", "from_date must not be after to_date"},
	}
	for _, tt := range tests {
		var b Builder
		err := b.DateRange("created_dtm", tt.from, tt.to)
		if !apperr.Is(err, apperr.Validation) {
			t.Errorf("DateRange(%q, %q) error = %v, want validation", tt.from, tt.to, err)
			continue
		}
		if got := apperr.From(err).Message; got != tt.msg {
			t.Errorf("message = %q, want %q", got, tt.msg)
		}
		if b.Supplied() {
			t.Errorf("DateRange(%q, %q) added a filter despite error", tt.from, tt.to)
		}
	}
}

func TestParseRange_Blank(t *testing.T) {
	from, to, err := ParseRange("  ", "")
	if err != nil || from != nil || to != nil {
		t.Errorf("ParseRange blank = %v, %v, %v", from, to, err)
	}
	from, _, err = ParseRange("2026-01-01 08:30:00", "")
	if err != nil || from == nil || from.Hour() != 8 {
		t.Errorf("ParseRange datetime = %v, %v", from, err)
	}
}

func TestPolicies(t *testing.T) {
	tests := []struct {
		endpoint string
		want     Policy
	}{
		{"List_All_Settlement_Cases", Policy{RequireFilter: true, EmptyIsNotFound: true}},
		{"List_All_Payment_Cases", Policy{RequireFilter: true, EmptyIsNotFound: true}},
		{"List_All_Commissions", Policy{}},
		{"List_DRCs", Policy{}},
		{"Unknown", Policy{}},
	}
	for _, tt := range tests {
		if got := For(tt.endpoint); got != tt.want {
			t.Errorf("For(%q) = %+v, want %+v", tt.endpoint, got, tt.want)
		}
	}
}

func TestPolicy_Checks(t *testing.T) {
	strict := Policy{RequireFilter: true, EmptyIsNotFound: true}
	var empty Builder
	if err := strict.CheckFilter(&empty); !apperr.Is(err, apperr.Validation) {
		t.Errorf("CheckFilter(empty) = %v, want validation", err)
	}
	if err := strict.CheckEmpty(0); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("CheckEmpty(0) = %v, want not found", err)
	}
	if err := strict.CheckEmpty(3); err != nil {
		t.Errorf("CheckEmpty(3) = %v", err)
	}

	lax := Policy{}
	if err := lax.CheckFilter(&empty); err != nil {
		t.Errorf("lax CheckFilter = %v", err)
	}
	if err := lax.CheckEmpty(0); err != nil {
		t.Errorf("lax CheckEmpty = %v", err)
	}
}

func TestFacet(t *testing.T) {
	f := Facet(2, Lookup("Debt_recovery_company", "drc_id", "drc_id", "drc"))
	body := f[0].Value.(bson.D)
	rows := body[0].Value.(bson.A)
	if len(rows) != 3 {
		t.Fatalf("rows pipeline has %d stages, want 3", len(rows))
	}
	skip := rows[0].(bson.D)[0]
	if skip.Key != "$skip" || skip.Value != int64(10) {
		t.Errorf("first row stage = %v, want $skip 10", skip)
	}
	limit := rows[1].(bson.D)[0]
	if limit.Key != "$limit" || limit.Value != int64(30) {
		t.Errorf("second row stage = %v, want $limit 30", limit)
	}
	if body[1].Key != "total" {
		t.Errorf("second facet = %q, want total", body[1].Key)
	}
}

func TestFirstOrNull(t *testing.T) {
	stages := FirstOrNull("DRC_Name", "drc", "drc_name")
	if len(stages) != 2 {
		t.Fatalf("got %d stages", len(stages))
	}
	if stages[0][0].Key != "$addFields" || stages[1][0].Key != "$project" {
		t.Errorf("stages = %v", stages)
	}
}
