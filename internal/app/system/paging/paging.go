// internal/app/system/paging/paging.go
package paging

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// FirstPageSize is the number of rows on page 1 of every list.
const FirstPageSize = 10

// PageSize is the number of rows on every page after the first.
// Keep these as ints because call sites do arithmetic on them and then
// cast to int64 for Mongo $skip/$limit.
const PageSize = 30

// Parse coerces a raw "page" request value to a 1-based page number.
// Missing, non-numeric and non-positive values all yield 1.
func Parse(raw any) int {
	var n float64
	switch v := raw.(type) {
	case nil:
		return 1
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 1
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 1
		}
		n = f
	default:
		return 1
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 1 || n > math.MaxInt32 {
		return 1
	}
	return int(n)
}

// Window returns skip and limit for a page. Page 1 holds FirstPageSize rows;
// every later page holds PageSize rows.
func Window(page int) (skip, limit int64) {
	if page <= 1 {
		return 0, FirstPageSize
	}
	return int64(FirstPageSize + (page-2)*PageSize), PageSize
}

// TotalPages reports how many pages a list of total rows spans.
func TotalPages(total int64) int64 {
	if total <= FirstPageSize {
		return 1
	}
	rest := total - FirstPageSize
	return (rest+PageSize-1)/PageSize + 1
}

// Meta is the pagination block returned alongside list rows.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int64 `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// NewMeta builds the pagination block for page with total matching rows.
func NewMeta(page int, total int64) Meta {
	if page < 1 {
		page = 1
	}
	_, limit := Window(page)
	return Meta{
		Page:       page,
		PerPage:    limit,
		Total:      total,
		TotalPages: TotalPages(total),
	}
}

// Stages returns the $skip/$limit aggregation stages for page.
func Stages(page int) []bson.D {
	skip, limit := Window(page)
	return []bson.D{
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
	}
}
