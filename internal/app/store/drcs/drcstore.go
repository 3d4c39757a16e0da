// internal/app/store/drcs/drcstore.go
package drcstore

import (
	"context"
	"errors"

	"github.com/dalemusser/recoveryhub/internal/app/store/lifecycle"
	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "Debt_recovery_company"

// OfficerCollection is joined to count officers per company.
const OfficerCollection = "Recovery_officer"

var (
	ErrNotFound       = errors.New("DRC not found")
	ErrDuplicateEmail = errors.New("a DRC with this email already exists")
	// ErrStale is returned when the document changed between read and write.
	ErrStale = errors.New("DRC was modified concurrently")
)

// Fields are the lifecycle fields of a company document.
var Fields = lifecycle.Fields{Status: "drc_status", StatusLog: "status", Remarks: "remark"}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts d. The caller allocates DRCID.
func (s *Store) Create(ctx context.Context, d models.DRC) (models.DRC, error) {
	d.ID = primitive.NewObjectID()
	d.Normalize()
	if d.DocVersion == 0 {
		d.DocVersion = 1
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		if wafflemongo.IsDup(err) {
			return models.DRC{}, ErrDuplicateEmail
		}
		return models.DRC{}, err
	}
	return d, nil
}

// Get loads a company by drc_id.
func (s *Store) Get(ctx context.Context, drcID int64) (models.DRC, error) {
	var d models.DRC
	err := s.c.FindOne(ctx, bson.M{"drc_id": drcID}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DRC{}, ErrNotFound
	}
	return d, err
}

// ListActive returns every Active company without its services, newest
// first.
func (s *Store) ListActive(ctx context.Context) ([]models.DRCSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "drc_id", Value: -1}}).
		SetProjection(bson.M{"services_of_drc": 0})
	cur, err := s.c.Find(ctx, bson.M{"drc_status": status.Active}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	rows := []models.DRCSummary{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns one page of companies matching b, each with its officer
// count, sorted by drc_id descending.
func (s *Store) List(ctx context.Context, b *listquery.Builder, page int) ([]models.DRCListRow, int64, error) {
	pipeline := []bson.D{b.Match(), listquery.SortDesc("drc_id")}
	rowStages := append([]bson.D{listquery.Lookup(OfficerCollection, "drc_id", "drc_id", "officers")},
		listquery.CountInto("ro_count", "officers")...)
	return listquery.Page[models.DRCListRow](ctx, s.c, pipeline, page, rowStages...)
}

// Transition applies c to the company only if its status is still from.
func (s *Store) Transition(ctx context.Context, drcID int64, from string, c lifecycle.Change) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"drc_id": drcID, "drc_status": from},
		Fields.Update(c))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStale
	}
	return nil
}

// Revert undoes a Transition, restoring prev.
func (s *Store) Revert(ctx context.Context, drcID int64, prev string, withRemark bool, unset ...string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"drc_id": drcID}, Fields.Revert(prev, withRemark, unset...))
	return err
}

// Details is a non-status edit. Zero values are left unchanged.
type Details struct {
	ContactNo string
	Email     string
	Address   string
	Services  []models.DRCService
	AddRTOMs  []models.DRCRTOM
	Remark    *models.Remark
}

// UpdateDetails applies d and bumps doc_version. It works in any status.
func (s *Store) UpdateDetails(ctx context.Context, drcID int64, d Details) error {
	set := bson.M{}
	if d.ContactNo != "" {
		set["drc_contact_no"] = d.ContactNo
	}
	if d.Email != "" {
		set["drc_email"] = d.Email
	}
	if d.Address != "" {
		set["drc_address"] = d.Address
	}
	if d.Services != nil {
		set["services_of_drc"] = d.Services
	}
	push := bson.M{}
	if len(d.AddRTOMs) > 0 {
		push["rtom"] = bson.M{"$each": d.AddRTOMs}
	}
	if d.Remark != nil {
		push["remark"] = *d.Remark
	}

	upd := bson.M{"$inc": bson.M{"doc_version": 1}}
	if len(set) > 0 {
		upd["$set"] = set
	}
	if len(push) > 0 {
		upd["$push"] = push
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"drc_id": drcID}, upd)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
