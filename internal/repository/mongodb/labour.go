package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

// LabourFilter narrows labour listings.
type LabourFilter struct {
	Search     string
	ProjectID  *primitive.ObjectID
	SkillLevel models.SkillLevel
	Page       Page
}

func (r *Repository) CreateLabour(ctx context.Context, l *models.Labour) error {
	code, err := r.NextCode(ctx, collLabours, prefixLabour)
	if err != nil {
		return err
	}
	l.LabourID = code

	now := time.Now().UTC()
	l.CreatedAt, l.UpdatedAt = now, now

	res, err := r.db.Collection(collLabours).InsertOne(ctx, l)
	if err != nil {
		return wrapErr(err)
	}
	l.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetLabour(ctx context.Context, id primitive.ObjectID) (*models.Labour, error) {
	var l models.Labour
	if err := r.db.Collection(collLabours).FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, wrapErr(err)
	}
	return &l, nil
}

func (r *Repository) ListLabours(ctx context.Context, f LabourFilter) ([]models.Labour, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		rx := searchRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"labour_id": rx},
			bson.M{"nic": rx},
		}
	}
	if f.ProjectID != nil {
		filter["project_id"] = *f.ProjectID
	}
	if f.SkillLevel != "" {
		filter["skill_level"] = f.SkillLevel
	}

	labours := []models.Labour{}
	total, err := r.findPage(ctx, collLabours, filter, bson.D{{Key: "created_at", Value: -1}}, f.Page, &labours)
	return labours, total, err
}

func (r *Repository) UpdateLabour(ctx context.Context, l *models.Labour) error {
	l.UpdatedAt = time.Now().UTC()

	res, err := r.db.Collection(collLabours).ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLabour removes a labourer and cascades to every salary record
// referencing them. The labour document goes first so a re-issued delete
// cannot orphan new salary rows.
func (r *Repository) DeleteLabour(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collLabours).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	salaries, err := r.db.Collection(collLabourSalaries).DeleteMany(ctx, bson.M{"labour_id": id})
	if err != nil {
		return wrapErr(err)
	}
	r.logger.Info("labour deleted",
		zap.String("labour", id.Hex()),
		zap.Int64("cascaded_salaries", salaries.DeletedCount))
	return nil
}

// CreateLabourSalary recomputes the net amount and inserts; the unique
// (labour, month) index rejects a second record for the same month.
func (r *Repository) CreateLabourSalary(ctx context.Context, s *models.LabourSalary) error {
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	if s.Status == "" {
		s.Status = models.SalaryPending
	}
	s.Recalculate()

	res, err := r.db.Collection(collLabourSalaries).InsertOne(ctx, s)
	if err != nil {
		return wrapErr(err)
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetLabourSalary(ctx context.Context, id primitive.ObjectID) (*models.LabourSalary, error) {
	var s models.LabourSalary
	if err := r.db.Collection(collLabourSalaries).FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, wrapErr(err)
	}
	return &s, nil
}

// ListLabourSalaries returns every salary record for one labourer, newest
// month first.
func (r *Repository) ListLabourSalaries(ctx context.Context, labourID primitive.ObjectID, p Page) ([]models.LabourSalary, int64, error) {
	salaries := []models.LabourSalary{}
	total, err := r.findPage(ctx, collLabourSalaries,
		bson.M{"labour_id": labourID},
		bson.D{{Key: "month", Value: -1}}, p, &salaries)
	return salaries, total, err
}

func (r *Repository) UpdateLabourSalary(ctx context.Context, s *models.LabourSalary) error {
	s.UpdatedAt = time.Now().UTC()
	s.Recalculate()

	res, err := r.db.Collection(collLabourSalaries).ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteLabourSalary(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collLabourSalaries).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountLabourSalaries reports how many salary records reference a labourer.
func (r *Repository) CountLabourSalaries(ctx context.Context, labourID primitive.ObjectID) (int64, error) {
	return r.db.Collection(collLabourSalaries).CountDocuments(ctx, bson.M{"labour_id": labourID})
}
