package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

// MaterialFilter narrows site-material listings.
type MaterialFilter struct {
	Search    string
	ProjectID *primitive.ObjectID
	From      *time.Time
	To        *time.Time
	Page      Page
}

func (r *Repository) CreateSiteMaterial(ctx context.Context, m *models.SiteMaterial) error {
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now
	m.Recalculate()

	res, err := r.db.Collection(collSiteMaterials).InsertOne(ctx, m)
	if err != nil {
		return wrapErr(err)
	}
	m.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetSiteMaterial(ctx context.Context, id primitive.ObjectID) (*models.SiteMaterial, error) {
	var m models.SiteMaterial
	if err := r.db.Collection(collSiteMaterials).FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, wrapErr(err)
	}
	return &m, nil
}

func (r *Repository) ListSiteMaterials(ctx context.Context, f MaterialFilter) ([]models.SiteMaterial, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		filter["name"] = searchRegex(f.Search)
	}
	if f.ProjectID != nil {
		filter["project_id"] = *f.ProjectID
	}
	dateRange(filter, "date", f.From, f.To)

	materials := []models.SiteMaterial{}
	total, err := r.findPage(ctx, collSiteMaterials, filter, bson.D{{Key: "date", Value: -1}}, f.Page, &materials)
	return materials, total, err
}

func (r *Repository) UpdateSiteMaterial(ctx context.Context, m *models.SiteMaterial) error {
	m.UpdatedAt = time.Now().UTC()
	m.Recalculate()

	res, err := r.db.Collection(collSiteMaterials).ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteSiteMaterial(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collSiteMaterials).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
