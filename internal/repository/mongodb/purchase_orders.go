package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

// PurchaseOrderFilter narrows purchase-order listings.
type PurchaseOrderFilter struct {
	Search     string
	SupplierID *primitive.ObjectID
	ProjectID  *primitive.ObjectID
	Status     models.PurchaseOrderStatus
	From       *time.Time
	To         *time.Time
	Page       Page
}

func (r *Repository) CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error {
	code, err := r.NextCode(ctx, collPurchaseOrders, prefixPurchaseOrder)
	if err != nil {
		return err
	}
	po.OrderNumber = code

	now := time.Now().UTC()
	po.CreatedAt, po.UpdatedAt = now, now
	po.Recalculate()

	res, err := r.db.Collection(collPurchaseOrders).InsertOne(ctx, po)
	if err != nil {
		return wrapErr(err)
	}
	po.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetPurchaseOrder(ctx context.Context, id primitive.ObjectID) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	if err := r.db.Collection(collPurchaseOrders).FindOne(ctx, bson.M{"_id": id}).Decode(&po); err != nil {
		return nil, wrapErr(err)
	}
	return &po, nil
}

func (r *Repository) ListPurchaseOrders(ctx context.Context, f PurchaseOrderFilter) ([]models.PurchaseOrder, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		filter["order_number"] = searchRegex(f.Search)
	}
	if f.SupplierID != nil {
		filter["supplier_id"] = *f.SupplierID
	}
	if f.ProjectID != nil {
		filter["project_id"] = *f.ProjectID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	dateRange(filter, "order_date", f.From, f.To)

	orders := []models.PurchaseOrder{}
	total, err := r.findPage(ctx, collPurchaseOrders, filter, bson.D{{Key: "order_date", Value: -1}}, f.Page, &orders)
	return orders, total, err
}

func (r *Repository) UpdatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error {
	po.UpdatedAt = time.Now().UTC()
	po.Recalculate()

	res, err := r.db.Collection(collPurchaseOrders).ReplaceOne(ctx, bson.M{"_id": po.ID}, po)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeletePurchaseOrder(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collPurchaseOrders).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
