// internal/app/store/settlements/settlementstore.go
package settlementstore

import (
	"context"

	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "Case_settlement"

// PaymentCollection holds the money transactions made against settlements.
const PaymentCollection = "Case_payments"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// List returns one page of settlements matching b, newest first.
func (s *Store) List(ctx context.Context, b *listquery.Builder, page int) ([]models.CaseSettlement, int64, error) {
	pipeline := []bson.D{b.Match(), listquery.SortDesc("created_dtm")}
	return listquery.Page[models.CaseSettlement](ctx, s.c, pipeline, page)
}

// Detail loads one settlement with its money transactions. found is false
// when no settlement has the id.
func (s *Store) Detail(ctx context.Context, settlementID int64) (detail models.SettlementDetail, found bool, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"settlement_id": settlementID}}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: PaymentCollection},
			{Key: "let", Value: bson.M{"sid": "$settlement_id"}},
			{Key: "pipeline", Value: bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$settlement_id", "$$sid"}}}},
				bson.M{"$sort": bson.M{"created_dtm": -1}},
			}},
			{Key: "as", Value: "money_transactions"},
		}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return models.SettlementDetail{}, false, err
	}
	defer cur.Close(ctx)
	if !cur.Next(ctx) {
		return models.SettlementDetail{}, false, cur.Err()
	}
	if err := cur.Decode(&detail); err != nil {
		return models.SettlementDetail{}, false, err
	}
	if detail.MoneyTransactions == nil {
		detail.MoneyTransactions = []models.MoneyTransaction{}
	}
	return detail, true, nil
}
