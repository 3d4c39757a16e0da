// Package listquery builds the filter, join and paging stages shared by
// every listing endpoint.
package listquery

import (
	"strings"
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson"
)

// Builder accumulates optional equality and range filters. Absent values
// impose nothing.
type Builder struct {
	filter bson.D
}

// Eq adds field == v when v is non-blank.
func (b *Builder) Eq(field, v string) *Builder {
	if v = strings.TrimSpace(v); v != "" {
		b.filter = append(b.filter, bson.E{Key: field, Value: v})
	}
	return b
}

// EqInt adds field == *v when v is non-nil.
func (b *Builder) EqInt(field string, v *int64) *Builder {
	if v != nil {
		b.filter = append(b.filter, bson.E{Key: field, Value: *v})
	}
	return b
}

// Set adds an unconditional condition. It still counts as a filter.
func (b *Builder) Set(field string, v any) *Builder {
	b.filter = append(b.filter, bson.E{Key: field, Value: v})
	return b
}

// DateRange adds $gte/$lte bounds on field from the raw from/to strings.
// A date-only to value covers the whole day.
func (b *Builder) DateRange(field, from, to string) error {
	fromT, toT, err := ParseRange(from, to)
	if err != nil {
		return err
	}
	rng := bson.D{}
	if fromT != nil {
		rng = append(rng, bson.E{Key: "$gte", Value: *fromT})
	}
	if toT != nil {
		rng = append(rng, bson.E{Key: "$lte", Value: *toT})
	}
	if len(rng) > 0 {
		b.filter = append(b.filter, bson.E{Key: field, Value: rng})
	}
	return nil
}

// ParseRange parses optional from/to bounds. Blank values yield nil.
func ParseRange(from, to string) (*time.Time, *time.Time, error) {
	var fromT, toT *time.Time
	if from = strings.TrimSpace(from); from != "" {
		t, _, err := parseDate(from)
		if err != nil {
			return nil, nil, apperr.Invalid("from_date is not a valid date")
		}
		fromT = &t
	}
	if to = strings.TrimSpace(to); to != "" {
		t, dateOnly, err := parseDate(to)
		if err != nil {
			return nil, nil, apperr.Invalid("to_date is not a valid date")
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Millisecond)
		}
		toT = &t
	}
	if fromT != nil && toT != nil && fromT.After(*toT) {
		return nil, nil, apperr.Invalid("from_date must not be after to_date")
	}
	return fromT, toT, nil
}

var layouts = []struct {
	layout   string
	dateOnly bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02", true},
}

func parseDate(s string) (time.Time, bool, error) {
	var err error
	for _, l := range layouts {
		var t time.Time
		if t, err = time.ParseInLocation(l.layout, s, time.UTC); err == nil {
			return t.UTC(), l.dateOnly, nil
		}
	}
	return time.Time{}, false, err
}

// Supplied reports whether any filter was added.
func (b *Builder) Supplied() bool { return len(b.filter) > 0 }

// Filter returns the accumulated conditions, never nil.
func (b *Builder) Filter() bson.D {
	if b.filter == nil {
		return bson.D{}
	}
	return b.filter
}

// Match returns the $match stage for the filter.
func (b *Builder) Match() bson.D {
	return bson.D{{Key: "$match", Value: b.Filter()}}
}
