package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

// AttendanceFilter narrows attendance listings.
type AttendanceFilter struct {
	LabourID *primitive.ObjectID
	From     *time.Time
	To       *time.Time
	Status   models.AttendanceStatus
	Page     Page
}

// CreateAttendance derives hours/status and inserts. The unique
// (labour, date) index turns a concurrent or repeated insert into
// ErrDuplicate instead of a silent second record.
func (r *Repository) CreateAttendance(ctx context.Context, a *models.Attendance) error {
	a.Date = models.DateOnly(a.Date)
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	a.Derive()

	res, err := r.db.Collection(collAttendance).InsertOne(ctx, a)
	if err != nil {
		return wrapErr(err)
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetAttendance(ctx context.Context, id primitive.ObjectID) (*models.Attendance, error) {
	var a models.Attendance
	if err := r.db.Collection(collAttendance).FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, wrapErr(err)
	}
	return &a, nil
}

func (r *Repository) ListAttendance(ctx context.Context, f AttendanceFilter) ([]models.Attendance, int64, error) {
	filter := bson.M{}
	if f.LabourID != nil {
		filter["labour_id"] = *f.LabourID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	dateRange(filter, "date", f.From, f.To)

	records := []models.Attendance{}
	total, err := r.findPage(ctx, collAttendance, filter, bson.D{{Key: "date", Value: -1}}, f.Page, &records)
	return records, total, err
}

func (r *Repository) UpdateAttendance(ctx context.Context, a *models.Attendance) error {
	a.Date = models.DateOnly(a.Date)
	a.UpdatedAt = time.Now().UTC()
	a.Derive()

	res, err := r.db.Collection(collAttendance).ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteAttendance(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collAttendance).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkUpsertAttendance writes a batch of records keyed on (labour, date),
// replacing any existing record for the same key. This is the one documented
// path that overwrites instead of conflicting.
func (r *Repository) BulkUpsertAttendance(ctx context.Context, records []models.Attendance) (int64, int64, error) {
	if len(records) == 0 {
		return 0, 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(records))
	now := time.Now().UTC()
	for i := range records {
		rec := &records[i]
		rec.Date = models.DateOnly(rec.Date)
		rec.UpdatedAt = now
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.Derive()

		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"labour_id": rec.LabourID, "date": rec.Date}).
			SetReplacement(rec).
			SetUpsert(true))
	}

	res, err := r.db.Collection(collAttendance).BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, 0, wrapErr(err)
	}
	return res.UpsertedCount, res.ModifiedCount, nil
}
