// internal/app/store/payments/paymentstore.go
package paymentstore

import (
	"context"
	"errors"

	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "Case_payments"

var ErrNotFound = errors.New("payment not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// List returns one page of money transactions matching b, newest first.
func (s *Store) List(ctx context.Context, b *listquery.Builder, page int) ([]models.MoneyTransaction, int64, error) {
	pipeline := []bson.D{b.Match(), listquery.SortDesc("created_dtm")}
	return listquery.Page[models.MoneyTransaction](ctx, s.c, pipeline, page)
}

func (s *Store) Get(ctx context.Context, id int64) (models.MoneyTransaction, error) {
	var m models.MoneyTransaction
	err := s.c.FindOne(ctx, bson.M{"money_transaction_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MoneyTransaction{}, ErrNotFound
	}
	return m, err
}
