package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures inserts documents directly, bypassing stores and sequences.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert into %s: %v", coll, err)
	}
}

// CreateDRC inserts an Active company with the given id and name.
func (f *Fixtures) CreateDRC(ctx context.Context, drcID int64, name string) models.DRC {
	f.t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	d := models.DRC{
		ID:                         primitive.NewObjectID(),
		DocVersion:                 1,
		DRCID:                      drcID,
		DRCName:                    name,
		BusinessRegistrationNumber: fmt.Sprintf("PV%05d", drcID),
		ContactNo:                  "0112345678",
		Email:                      fmt.Sprintf("drc%d@example.lk", drcID),
		DRCStatus:                  "Active",
		StatusLog:                  []models.StatusEntry{{Status: "Active", StatusOn: now, StatusBy: "fixture"}},
		Services: []models.DRCService{{
			ServiceID: 1, ServiceType: "Recovery", ServiceStatus: "Active", CreateOn: now,
		}},
		CreateBy: "fixture",
		CreateOn: now,
	}
	d.Normalize()
	f.insert(ctx, "Debt_recovery_company", d)
	return d
}

// SetDRCStatus overwrites a company's status without touching its log.
func (f *Fixtures) SetDRCStatus(ctx context.Context, drcID int64, st string) {
	f.t.Helper()
	_, err := f.db.Collection("Debt_recovery_company").UpdateOne(ctx,
		bson.M{"drc_id": drcID},
		bson.M{"$set": bson.M{"drc_status": st}})
	if err != nil {
		f.t.Fatalf("failed to set DRC status: %v", err)
	}
}

// CreateRTOM inserts an Active RTOM.
func (f *Fixtures) CreateRTOM(ctx context.Context, rtomID int64, abbr, area string) models.RTOM {
	f.t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	r := models.RTOM{
		ID:           primitive.NewObjectID(),
		DocVersion:   1,
		RTOMID:       rtomID,
		Abbreviation: abbr,
		AreaName:     area,
		Email:        fmt.Sprintf("%s@example.lk", abbr),
		RTOMStatus:   "Active",
		StatusLog:    []models.StatusEntry{{Status: "Active", StatusOn: now, StatusBy: "fixture"}},
		CreatedBy:    "fixture",
		CreatedDtm:   now,
	}
	r.Normalize()
	f.insert(ctx, "Rtom", r)
	return r
}

// CreateRO inserts a recovery officer of drcID with the given status,
// assigned to rtomIDs. When withUserLog is true the matching User_log
// record is created too.
func (f *Fixtures) CreateRO(ctx context.Context, roID, drcID int64, st string, withUserLog bool, rtomIDs ...int64) models.RecoveryOfficer {
	f.t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	id := roID
	o := models.RecoveryOfficer{
		ID:             primitive.NewObjectID(),
		DocVersion:     1,
		RoID:           &id,
		DrcUserType:    models.UserTypeRO,
		DRCID:          drcID,
		Name:           fmt.Sprintf("Officer %d", roID),
		NIC:            fmt.Sprintf("%09dV", roID),
		LoginEmail:     fmt.Sprintf("ro%d@example.lk", roID),
		LoginContactNo: "0771234567",
		DrcUserStatus:  st,
		StatusLog:      []models.StatusEntry{{Status: st, StatusOn: now, StatusBy: "fixture"}},
		CreateBy:       "fixture",
		CreateOn:       now,
	}
	for _, rid := range rtomIDs {
		o.RTOMs = append(o.RTOMs, models.OfficerRTOM{RTOMID: rid, RTOMStatus: "Active", RTOMCreateDtm: now})
	}
	o.Normalize()
	f.insert(ctx, "Recovery_officer", o)
	if withUserLog {
		f.insert(ctx, "User_log", models.UserLog{
			ID:             primitive.NewObjectID(),
			UserID:         roID,
			UserType:       models.UserTypeRO,
			DRCID:          drcID,
			Email:          o.LoginEmail,
			UserStatus:     st,
			UserStatusType: "fixture",
			StatusOn:       now,
			StatusBy:       "fixture",
			CreatedOn:      now,
		})
	}
	return o
}

// CreateSettlement inserts a settlement created at the given time.
func (f *Fixtures) CreateSettlement(ctx context.Context, settlementID, caseID, drcID int64, phase, st string, created time.Time) models.CaseSettlement {
	f.t.Helper()
	s := models.CaseSettlement{
		ID:               primitive.NewObjectID(),
		DocVersion:       1,
		SettlementID:     settlementID,
		CaseID:           caseID,
		DRCID:            drcID,
		AccountNum:       fmt.Sprintf("ACC%06d", caseID),
		SettlementPhase:  phase,
		SettlementStatus: st,
		SettlementType:   "Type A",
		SettlementAmount: 15000,
		SettlementPlan:   []models.SettlementInstallment{},
		CreatedBy:        "fixture",
		CreatedDtm:       created.UTC().Truncate(time.Millisecond),
	}
	f.insert(ctx, "Case_settlement", s)
	return s
}

// CreatePayment inserts a money transaction, optionally linked to a
// settlement.
func (f *Fixtures) CreatePayment(ctx context.Context, txID, caseID int64, settlementID *int64, txType string, created time.Time) models.MoneyTransaction {
	f.t.Helper()
	m := models.MoneyTransaction{
		ID:                 primitive.NewObjectID(),
		DocVersion:         1,
		MoneyTransactionID: txID,
		CaseID:             caseID,
		AccountNum:         fmt.Sprintf("ACC%06d", caseID),
		SettlementID:       settlementID,
		SettlementPhase:    "Negotiation",
		TransactionType:    txType,
		Amount:             2500,
		CreatedDtm:         created.UTC().Truncate(time.Millisecond),
	}
	f.insert(ctx, "Case_payments", m)
	return m
}

// CreateCommission inserts a commission for drcID.
func (f *Fixtures) CreateCommission(ctx context.Context, commissionID, caseID, drcID int64, created time.Time) models.MoneyCommission {
	f.t.Helper()
	c := models.MoneyCommission{
		ID:               primitive.NewObjectID(),
		DocVersion:       1,
		CommissionID:     commissionID,
		CaseID:           caseID,
		DRCID:            drcID,
		CommissionType:   "Commissioned",
		CommissionAmount: 750,
		CommissionAction: "Payment",
		CreatedOn:        created.UTC().Truncate(time.Millisecond),
	}
	f.insert(ctx, "Money_commission", c)
	return c
}
