package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

func (r *Repository) CreateSupplier(ctx context.Context, s *models.Supplier) error {
	code, err := r.NextCode(ctx, collSuppliers, prefixSupplier)
	if err != nil {
		return err
	}
	s.SupplierID = code

	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now

	res, err := r.db.Collection(collSuppliers).InsertOne(ctx, s)
	if err != nil {
		return wrapErr(err)
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetSupplier(ctx context.Context, id primitive.ObjectID) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.db.Collection(collSuppliers).FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, wrapErr(err)
	}
	return &s, nil
}

func (r *Repository) ListSuppliers(ctx context.Context, f ContactFilter) ([]models.Supplier, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		rx := searchRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"supplier_id": rx},
			bson.M{"phone": rx},
		}
	}

	suppliers := []models.Supplier{}
	total, err := r.findPage(ctx, collSuppliers, filter, bson.D{{Key: "created_at", Value: -1}}, f.Page, &suppliers)
	return suppliers, total, err
}

func (r *Repository) UpdateSupplier(ctx context.Context, s *models.Supplier) error {
	s.UpdatedAt = time.Now().UTC()

	res, err := r.db.Collection(collSuppliers).ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteSupplier(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collSuppliers).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
