package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

// ContactFilter narrows customer and supplier listings.
type ContactFilter struct {
	Search string
	Page   Page
}

func (r *Repository) CreateCustomer(ctx context.Context, c *models.Customer) error {
	code, err := r.NextCode(ctx, collCustomers, prefixCustomer)
	if err != nil {
		return err
	}
	c.CustomerID = code

	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	res, err := r.db.Collection(collCustomers).InsertOne(ctx, c)
	if err != nil {
		return wrapErr(err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetCustomer(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.Collection(collCustomers).FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, wrapErr(err)
	}
	return &c, nil
}

func (r *Repository) ListCustomers(ctx context.Context, f ContactFilter) ([]models.Customer, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		rx := searchRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"customer_id": rx},
			bson.M{"phone": rx},
		}
	}

	customers := []models.Customer{}
	total, err := r.findPage(ctx, collCustomers, filter, bson.D{{Key: "created_at", Value: -1}}, f.Page, &customers)
	return customers, total, err
}

func (r *Repository) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	c.UpdatedAt = time.Now().UTC()

	res, err := r.db.Collection(collCustomers).ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteCustomer(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collCustomers).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
