package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

// TransactionFilter narrows financial-record listings and feeds the
// report aggregation.
type TransactionFilter struct {
	Types     []models.TransactionType
	Category  string
	Search    string
	ProjectID *primitive.ObjectID
	From      *time.Time
	To        *time.Time
	Page      Page
}

func transactionQuery(f TransactionFilter) bson.M {
	filter := bson.M{}
	if len(f.Types) > 0 {
		filter["type"] = bson.M{"$in": f.Types}
	}
	if f.Category != "" {
		filter["category"] = searchRegex(f.Category)
	}
	if f.Search != "" {
		rx := searchRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"description": rx},
			bson.M{"category": rx},
		}
	}
	if f.ProjectID != nil {
		filter["project_id"] = *f.ProjectID
	}
	dateRange(filter, "date", f.From, f.To)
	return filter
}

func (r *Repository) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now

	res, err := r.db.Collection(collTransactions).InsertOne(ctx, t)
	if err != nil {
		return wrapErr(err)
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetTransaction(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var t models.Transaction
	if err := r.db.Collection(collTransactions).FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, wrapErr(err)
	}
	return &t, nil
}

func (r *Repository) ListTransactions(ctx context.Context, f TransactionFilter) ([]models.Transaction, int64, error) {
	transactions := []models.Transaction{}
	total, err := r.findPage(ctx, collTransactions, transactionQuery(f),
		bson.D{{Key: "date", Value: -1}}, f.Page, &transactions)
	return transactions, total, err
}

// FindTransactions returns every match without pagination, oldest first.
// The report generator walks the full result set.
func (r *Repository) FindTransactions(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	cursor, err := r.db.Collection(collTransactions).Find(ctx, transactionQuery(f),
		optionsFindSortAsc("date"))
	if err != nil {
		return nil, wrapErr(err)
	}
	defer cursor.Close(ctx)

	transactions := []models.Transaction{}
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	t.UpdatedAt = time.Now().UTC()

	res, err := r.db.Collection(collTransactions).ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collTransactions).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SlipReferenced reports whether any transaction references the given
// object-storage public id. The reconciliation job keeps uploads that are
// referenced and garbage-collects the rest.
func (r *Repository) SlipReferenced(ctx context.Context, publicID string) (bool, error) {
	count, err := r.db.Collection(collTransactions).CountDocuments(ctx,
		bson.M{"slip_public_id": publicID})
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	// Delivery challans live on purchase orders.
	count, err = r.db.Collection(collPurchaseOrders).CountDocuments(ctx,
		bson.M{"challan_public_id": publicID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
