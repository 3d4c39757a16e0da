// internal/app/store/commissions/commissionstore.go
package commissionstore

import (
	"context"
	"errors"

	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "Money_commission"

const DRCCollection = "Debt_recovery_company"

var ErrNotFound = errors.New("commission not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func withDRCName() []bson.D {
	return append([]bson.D{listquery.Lookup(DRCCollection, "drc_id", "drc_id", "drc")},
		listquery.FirstOrNull("DRC_Name", "drc", "drc_name")...)
}

// List returns one page of commissions matching b with the company name,
// newest first. DRC_Name is null for rows whose company does not exist.
func (s *Store) List(ctx context.Context, b *listquery.Builder, page int) ([]models.CommissionRow, int64, error) {
	pipeline := []bson.D{b.Match(), listquery.SortDesc("created_on")}
	return listquery.Page[models.CommissionRow](ctx, s.c, pipeline, page, withDRCName()...)
}

// Get loads one commission with its company name.
func (s *Store) Get(ctx context.Context, commissionID int64) (models.CommissionRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"commission_id": commissionID}}},
		{{Key: "$limit", Value: 1}},
	}
	for _, st := range withDRCName() {
		pipeline = append(pipeline, st)
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return models.CommissionRow{}, err
	}
	defer cur.Close(ctx)
	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return models.CommissionRow{}, err
		}
		return models.CommissionRow{}, ErrNotFound
	}
	var row models.CommissionRow
	if err := cur.Decode(&row); err != nil {
		return models.CommissionRow{}, err
	}
	return row, nil
}
