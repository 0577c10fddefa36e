package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

// ScheduleFilter narrows work/payment schedule listings.
type ScheduleFilter struct {
	ProjectID *primitive.ObjectID
	Phase     models.Phase
	Page      Page
}

func scheduleQuery(f ScheduleFilter) bson.M {
	filter := bson.M{}
	if f.ProjectID != nil {
		filter["project_id"] = *f.ProjectID
	}
	if f.Phase != "" {
		filter["phase"] = f.Phase
	}
	return filter
}

var scheduleSort = bson.D{{Key: "phase", Value: 1}, {Key: "step", Value: 1}}

func (r *Repository) CreateWorkSchedule(ctx context.Context, w *models.WorkSchedule) error {
	now := time.Now().UTC()
	w.CreatedAt, w.UpdatedAt = now, now

	res, err := r.db.Collection(collWorkSchedules).InsertOne(ctx, w)
	if err != nil {
		return wrapErr(err)
	}
	w.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetWorkSchedule(ctx context.Context, id primitive.ObjectID) (*models.WorkSchedule, error) {
	var w models.WorkSchedule
	if err := r.db.Collection(collWorkSchedules).FindOne(ctx, bson.M{"_id": id}).Decode(&w); err != nil {
		return nil, wrapErr(err)
	}
	return &w, nil
}

func (r *Repository) ListWorkSchedules(ctx context.Context, f ScheduleFilter) ([]models.WorkSchedule, int64, error) {
	schedules := []models.WorkSchedule{}
	total, err := r.findPage(ctx, collWorkSchedules, scheduleQuery(f), scheduleSort, f.Page, &schedules)
	return schedules, total, err
}

func (r *Repository) UpdateWorkSchedule(ctx context.Context, w *models.WorkSchedule) error {
	w.UpdatedAt = time.Now().UTC()

	res, err := r.db.Collection(collWorkSchedules).ReplaceOne(ctx, bson.M{"_id": w.ID}, w)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWorkSchedule refuses to remove a step that payment entries still
// reference, so payment schedules can never dangle.
func (r *Repository) DeleteWorkSchedule(ctx context.Context, id primitive.ObjectID) error {
	count, err := r.db.Collection(collPaymentSchedule).CountDocuments(ctx, bson.M{"work_schedule_id": id})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrReferenced
	}

	res, err := r.db.Collection(collWorkSchedules).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreatePaymentSchedule validates the work-schedule reference before
// inserting. A dangling reference is a data error surfaced to the caller,
// not something to resolve heuristically.
func (r *Repository) CreatePaymentSchedule(ctx context.Context, p *models.PaymentSchedule) error {
	work, err := r.GetWorkSchedule(ctx, p.WorkScheduleID)
	if err != nil {
		return err
	}
	// The payment step inherits its position from the referenced work step.
	p.Phase = work.Phase
	p.Step = work.Step

	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Status == "" {
		p.Status = models.PaymentPending
	}

	res, err := r.db.Collection(collPaymentSchedule).InsertOne(ctx, p)
	if err != nil {
		return wrapErr(err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetPaymentSchedule(ctx context.Context, id primitive.ObjectID) (*models.PaymentSchedule, error) {
	var p models.PaymentSchedule
	if err := r.db.Collection(collPaymentSchedule).FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, wrapErr(err)
	}
	return &p, nil
}

func (r *Repository) ListPaymentSchedules(ctx context.Context, f ScheduleFilter) ([]models.PaymentSchedule, int64, error) {
	schedules := []models.PaymentSchedule{}
	total, err := r.findPage(ctx, collPaymentSchedule, scheduleQuery(f), scheduleSort, f.Page, &schedules)
	return schedules, total, err
}

func (r *Repository) UpdatePaymentSchedule(ctx context.Context, p *models.PaymentSchedule) error {
	work, err := r.GetWorkSchedule(ctx, p.WorkScheduleID)
	if err != nil {
		return err
	}
	p.Phase = work.Phase
	p.Step = work.Step
	p.UpdatedAt = time.Now().UTC()

	res, err := r.db.Collection(collPaymentSchedule).ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeletePaymentSchedule(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collPaymentSchedule).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
