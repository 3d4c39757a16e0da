// internal/app/store/recoveryofficers/officerstore.go
package officerstore

import (
	"context"
	"errors"
	"time"

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

const Collection = "Recovery_officer"

// DRCCollection is joined for the company name.
const DRCCollection = "Debt_recovery_company"

var (
	ErrNotFound       = errors.New("recovery officer not found")
	ErrDuplicateEmail = errors.New("an officer with this login email already exists")
	ErrStale          = errors.New("recovery officer was modified concurrently")
)

var Fields = lifecycle.Fields{Status: "drcUser_status", StatusLog: "ro_status", Remarks: "remark"}

// Ref identifies an officer by whichever id field it carries.
type Ref struct {
	Field string
	ID    int64
}

// RefOf returns the Ref for o.
func RefOf(o models.RecoveryOfficer) Ref {
	f, id := o.Identity()
	return Ref{Field: f, ID: id}
}

func (r Ref) filter() bson.M { return bson.M{r.Field: r.ID} }

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts o after checking the variant invariant.
func (s *Store) Create(ctx context.Context, o models.RecoveryOfficer) (models.RecoveryOfficer, error) {
	if err := o.Validate(); err != nil {
		return models.RecoveryOfficer{}, err
	}
	o.ID = primitive.NewObjectID()
	o.Normalize()
	if o.DocVersion == 0 {
		o.DocVersion = 1
	}
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		if wafflemongo.IsDup(err) {
			return models.RecoveryOfficer{}, ErrDuplicateEmail
		}
		return models.RecoveryOfficer{}, err
	}
	return o, nil
}

// Delete removes a just-created officer. It exists only to compensate a
// failed registration when transactions are unavailable.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *Store) Get(ctx context.Context, ref Ref) (models.RecoveryOfficer, error) {
	var o models.RecoveryOfficer
	err := s.c.FindOne(ctx, ref.filter()).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.RecoveryOfficer{}, ErrNotFound
	}
	return o, err
}

// List returns one page of officers matching b with the company name
// joined as drc_name, newest first.
func (s *Store) List(ctx context.Context, b *listquery.Builder, page int) ([]models.OfficerListRow, int64, error) {
	pipeline := []bson.D{b.Match(), listquery.SortDesc("create_on")}
	rowStages := append([]bson.D{listquery.Lookup(DRCCollection, "drc_id", "drc_id", "drc")},
		listquery.FirstOrNull("drc_name", "drc", "drc_name")...)
	return listquery.Page[models.OfficerListRow](ctx, s.c, pipeline, page, rowStages...)
}

// Transition applies c only if the officer's status is still from.
func (s *Store) Transition(ctx context.Context, ref Ref, from string, c lifecycle.Change) error {
	f := ref.filter()
	f["drcUser_status"] = from
	res, err := s.c.UpdateOne(ctx, f, Fields.Update(c))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStale
	}
	return nil
}

// Terminate moves the officer to Terminate and closes every RTOM
// assignment in the same update.
func (s *Store) Terminate(ctx context.Context, ref Ref, from string, c lifecycle.Change, at time.Time) error {
	c.To = status.Terminate
	upd := Fields.Update(c)
	set := upd["$set"].(bson.M)
	set["rtoms_for_ro.$[].rtom_status"] = status.Inactive
	set["rtoms_for_ro.$[].rtom_end_dtm"] = at

	f := ref.filter()
	f["drcUser_status"] = from
	res, err := s.c.UpdateOne(ctx, f, upd)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStale
	}
	return nil
}

// Restore writes back a previously loaded officer document. Used only to
// compensate when transactions are unavailable.
func (s *Store) Restore(ctx context.Context, o models.RecoveryOfficer) error {
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	return err
}

// ActiveByDRC returns the officers of a company that are neither
// Terminate nor Inactive.
func (s *Store) ActiveByDRC(ctx context.Context, drcID int64) ([]models.RecoveryOfficer, error) {
	return s.find(ctx, bson.M{
		"drc_id":         drcID,
		"drcUser_status": bson.M{"$nin": []string{status.Terminate, status.Inactive}},
	})
}

// WithRTOM returns every officer holding an open assignment to rtomID.
func (s *Store) WithRTOM(ctx context.Context, rtomID int64) ([]models.RecoveryOfficer, error) {
	return s.find(ctx, bson.M{"rtoms_for_ro": bson.M{"$elemMatch": bson.M{
		"rtom_id":     rtomID,
		"rtom_status": bson.M{"$ne": status.Inactive},
	}}})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.RecoveryOfficer, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.RecoveryOfficer
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CloseRTOM marks every open assignment to rtomID as Inactive.
func (s *Store) CloseRTOM(ctx context.Context, rtomID int64, at time.Time) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"rtoms_for_ro.rtom_id": rtomID},
		bson.M{
			"$set": bson.M{
				"rtoms_for_ro.$[e].rtom_status":  status.Inactive,
				"rtoms_for_ro.$[e].rtom_end_dtm": at,
			},
			"$inc": bson.M{"doc_version": 1},
		},
		options.Update().SetArrayFilters(options.ArrayFilters{Filters: []any{
			bson.M{"e.rtom_id": rtomID, "e.rtom_status": bson.M{"$ne": status.Inactive}},
		}}),
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// ListByRTOM returns one page of officers assigned to rtomID, optionally
// narrowed by b, newest first.
func (s *Store) ListByRTOM(ctx context.Context, rtomID int64, b *listquery.Builder, page int) ([]models.OfficerListRow, int64, error) {
	b.Set("rtoms_for_ro.rtom_id", rtomID)
	return s.List(ctx, b, page)
}

// Details is a non-status edit. Zero values are left unchanged.
type Details struct {
	ContactNo   string
	Email       string
	AddRTOMs    []models.OfficerRTOM
	RemoveRTOMs []int64
	Remark      *models.Remark
}

// UpdateDetails applies d and bumps doc_version. Removed RTOMs are closed,
// not deleted. It works in any status.
func (s *Store) UpdateDetails(ctx context.Context, ref Ref, d Details, at time.Time) error {
	set := bson.M{}
	if d.ContactNo != "" {
		set["login_contact_no"] = d.ContactNo
	}
	if d.Email != "" {
		set["login_email"] = d.Email
	}
	push := bson.M{}
	if len(d.AddRTOMs) > 0 {
		push["rtoms_for_ro"] = bson.M{"$each": d.AddRTOMs}
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
	res, err := s.c.UpdateOne(ctx, ref.filter(), upd)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	// Closing assignments touches the same array as the push above, so it
	// needs its own update.
	if len(d.RemoveRTOMs) > 0 {
		_, err = s.c.UpdateOne(ctx, ref.filter(),
			bson.M{"$set": bson.M{
				"rtoms_for_ro.$[e].rtom_status":  status.Inactive,
				"rtoms_for_ro.$[e].rtom_end_dtm": at,
			}},
			options.Update().SetArrayFilters(options.ArrayFilters{Filters: []any{
				bson.M{"e.rtom_id": bson.M{"$in": d.RemoveRTOMs}, "e.rtom_status": bson.M{"$ne": status.Inactive}},
			}}),
		)
	}
	return err
}
