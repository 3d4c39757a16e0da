package listquery

import (
	"context"

	"github.com/dalemusser/recoveryhub/internal/app/system/paging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Lookup is a left-outer join of from.foreignField onto localField.
func Lookup(from, localField, foreignField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: foreignField},
		{Key: "as", Value: as},
	}}}
}

// FirstOrNull sets target to the first joined element's field, or null
// when nothing joined, then drops the join array.
func FirstOrNull(target, as, field string) []bson.D {
	return []bson.D{
		{{Key: "$addFields", Value: bson.D{{Key: target, Value: bson.D{{Key: "$ifNull", Value: bson.A{
			bson.D{{Key: "$arrayElemAt", Value: bson.A{"$" + as + "." + field, 0}}},
			nil,
		}}}}}}},
		{{Key: "$project", Value: bson.D{{Key: as, Value: 0}}}},
	}
}

// CountInto sets target to the size of the join array, then drops it.
func CountInto(target, as string) []bson.D {
	return []bson.D{
		{{Key: "$addFields", Value: bson.D{{Key: target, Value: bson.D{{Key: "$size", Value: "$" + as}}}}}},
		{{Key: "$project", Value: bson.D{{Key: as, Value: 0}}}},
	}
}

// SortDesc sorts on one field, descending.
func SortDesc(field string) bson.D {
	return bson.D{{Key: "$sort", Value: bson.D{{Key: field, Value: -1}}}}
}

// Facet splits the pipeline into the requested page of rows and the total
// count. rowStages run after paging, so joins only touch the page.
func Facet(page int, rowStages ...bson.D) bson.D {
	rows := bson.A{}
	for _, s := range paging.Stages(page) {
		rows = append(rows, s)
	}
	for _, s := range rowStages {
		rows = append(rows, s)
	}
	return bson.D{{Key: "$facet", Value: bson.D{
		{Key: "rows", Value: rows},
		{Key: "total", Value: bson.A{bson.D{{Key: "$count", Value: "n"}}}},
	}}}
}

type facetResult[T any] struct {
	Rows  []T `bson:"rows"`
	Total []struct {
		N int64 `bson:"n"`
	} `bson:"total"`
}

// Page runs pipeline followed by Facet(page, rowStages...) and returns the
// decoded rows with the unpaged total. Rows is never nil.
func Page[T any](ctx context.Context, c *mongo.Collection, pipeline []bson.D, page int, rowStages ...bson.D) ([]T, int64, error) {
	full := make(mongo.Pipeline, 0, len(pipeline)+1)
	for _, s := range pipeline {
		full = append(full, s)
	}
	full = append(full, Facet(page, rowStages...))

	cur, err := c.Aggregate(ctx, full)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []facetResult[T]
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	rows := []T{}
	var total int64
	if len(out) > 0 {
		if out[0].Rows != nil {
			rows = out[0].Rows
		}
		if len(out[0].Total) > 0 {
			total = out[0].Total[0].N
		}
	}
	return rows, total, nil
}
