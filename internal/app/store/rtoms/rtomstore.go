// internal/app/store/rtoms/rtomstore.go
package rtomstore

import (
	"context"
	"errors"

	"github.com/dalemusser/recoveryhub/internal/app/store/lifecycle"
	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "Rtom"

const OfficerCollection = "Recovery_officer"

var (
	ErrNotFound              = errors.New("RTOM not found")
	ErrDuplicateAbbreviation = errors.New("an RTOM with this abbreviation already exists")
	ErrStale                 = errors.New("RTOM was modified concurrently")
)

var Fields = lifecycle.Fields{Status: "rtom_status", StatusLog: "status", Remarks: "rtom_remarks"}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) Create(ctx context.Context, r models.RTOM) (models.RTOM, error) {
	r.ID = primitive.NewObjectID()
	r.Normalize()
	if r.DocVersion == 0 {
		r.DocVersion = 1
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.RTOM{}, ErrDuplicateAbbreviation
		}
		return models.RTOM{}, err
	}
	return r, nil
}

func (s *Store) Get(ctx context.Context, rtomID int64) (models.RTOM, error) {
	var r models.RTOM
	err := s.c.FindOne(ctx, bson.M{"rtom_id": rtomID}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.RTOM{}, ErrNotFound
	}
	return r, err
}

// GetMany loads the RTOMs with the given ids. Missing ids are reported in
// the second return value.
func (s *Store) GetMany(ctx context.Context, ids []int64) (map[int64]models.RTOM, []int64, error) {
	found := make(map[int64]models.RTOM, len(ids))
	if len(ids) == 0 {
		return found, nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"rtom_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, nil, err
	}
	defer cur.Close(ctx)
	var rows []models.RTOM
	if err := cur.All(ctx, &rows); err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		found[r.RTOMID] = r
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return found, missing, nil
}

// List returns one page of RTOMs matching b with the number of officers
// assigned to each, sorted by rtom_id descending.
func (s *Store) List(ctx context.Context, b *listquery.Builder, page int) ([]models.RTOMListRow, int64, error) {
	pipeline := []bson.D{b.Match(), listquery.SortDesc("rtom_id")}
	rowStages := append([]bson.D{listquery.Lookup(OfficerCollection, "rtom_id", "rtoms_for_ro.rtom_id", "officers")},
		listquery.CountInto("ro_count", "officers")...)
	return listquery.Page[models.RTOMListRow](ctx, s.c, pipeline, page, rowStages...)
}

// Transition applies c only if the RTOM's status is still from.
func (s *Store) Transition(ctx context.Context, rtomID int64, from string, c lifecycle.Change) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"rtom_id": rtomID, "rtom_status": from},
		Fields.Update(c))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStale
	}
	return nil
}

// Revert undoes a Transition.
func (s *Store) Revert(ctx context.Context, rtomID int64, prev string, unset ...string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"rtom_id": rtomID}, Fields.Revert(prev, true, unset...))
	return err
}

// Details is a non-status edit. Nil slices and empty strings are left
// unchanged.
type Details struct {
	AreaName    string
	Email       string
	MobileNo    []string
	TelephoneNo []string
}

// UpdateDetails applies d, records the prior state in updated_rtom and
// appends remark. Works in any status. The write is conditional on
// doc_version so a concurrent edit cannot be lost from the history.
func (s *Store) UpdateDetails(ctx context.Context, prior models.RTOM, d Details, upd models.RTOMUpdate, remark models.Remark) error {
	set := bson.M{}
	if d.AreaName != "" {
		set["area_name"] = d.AreaName
	}
	if d.Email != "" {
		set["rtom_email"] = d.Email
	}
	if d.MobileNo != nil {
		set["rtom_mobile_no"] = d.MobileNo
	}
	if d.TelephoneNo != nil {
		set["rtom_telephone_no"] = d.TelephoneNo
	}
	upd.Previous = prior.Snapshot()
	doc := bson.M{
		"$inc":  bson.M{"doc_version": 1},
		"$push": bson.M{"updated_rtom": upd, "rtom_remarks": remark},
	}
	if len(set) > 0 {
		doc["$set"] = set
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"rtom_id": prior.RTOMID, "doc_version": prior.DocVersion},
		doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStale
	}
	return nil
}

// AbbreviationExists reports whether abbr is in use.
func (s *Store) AbbreviationExists(ctx context.Context, abbr string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"rtom_abbreviation": abbr}, options.Count().SetLimit(1))
	return n > 0, err
}
