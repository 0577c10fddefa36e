package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

func (r *Repository) CreateSubcontractor(ctx context.Context, s *models.Subcontractor) error {
	code, err := r.NextCode(ctx, collSubcontractors, prefixSubcontractor)
	if err != nil {
		return err
	}
	s.SubcontractorID = code

	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now

	res, err := r.db.Collection(collSubcontractors).InsertOne(ctx, s)
	if err != nil {
		return wrapErr(err)
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetSubcontractor(ctx context.Context, id primitive.ObjectID) (*models.Subcontractor, error) {
	var s models.Subcontractor
	if err := r.db.Collection(collSubcontractors).FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, wrapErr(err)
	}
	return &s, nil
}

func (r *Repository) ListSubcontractors(ctx context.Context, f ContactFilter) ([]models.Subcontractor, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		rx := searchRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"trade": rx},
			bson.M{"subcontractor_id": rx},
		}
	}

	subs := []models.Subcontractor{}
	total, err := r.findPage(ctx, collSubcontractors, filter, bson.D{{Key: "created_at", Value: -1}}, f.Page, &subs)
	return subs, total, err
}

func (r *Repository) UpdateSubcontractor(ctx context.Context, s *models.Subcontractor) error {
	s.UpdatedAt = time.Now().UTC()

	res, err := r.db.Collection(collSubcontractors).ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteSubcontractor(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collSubcontractors).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
