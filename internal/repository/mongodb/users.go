package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

// CreateUser allocates the EMP code and inserts. The unique email index
// rejects a second account for the same address.
func (r *Repository) CreateUser(ctx context.Context, u *models.User) error {
	code, err := r.NextCode(ctx, collUsers, prefixEmployee)
	if err != nil {
		return err
	}
	u.EmployeeID = code

	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	res, err := r.db.Collection(collUsers).InsertOne(ctx, u)
	if err != nil {
		return wrapErr(err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.db.Collection(collUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.Collection(collUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (r *Repository) ListUsers(ctx context.Context, f ContactFilter) ([]models.User, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		rx := searchRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"email": rx},
			bson.M{"employee_id": rx},
		}
	}

	users := []models.User{}
	total, err := r.findPage(ctx, collUsers, filter, bson.D{{Key: "created_at", Value: -1}}, f.Page, &users)
	return users, total, err
}

func (r *Repository) UpdateUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()

	res, err := r.db.Collection(collUsers).ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collUsers).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
