package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Search     string
	CustomerID *primitive.ObjectID
	ProjectID  *primitive.ObjectID
	Status     models.InvoiceStatus
	From       *time.Time
	To         *time.Time
	Page       Page
}

func (r *Repository) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	code, err := r.NextCode(ctx, collInvoices, prefixInvoice)
	if err != nil {
		return err
	}
	inv.InvoiceNumber = code

	now := time.Now().UTC()
	inv.CreatedAt, inv.UpdatedAt = now, now
	inv.Recalculate()

	res, err := r.db.Collection(collInvoices).InsertOne(ctx, inv)
	if err != nil {
		return wrapErr(err)
	}
	inv.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetInvoice(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.Collection(collInvoices).FindOne(ctx, bson.M{"_id": id}).Decode(&inv); err != nil {
		return nil, wrapErr(err)
	}
	return &inv, nil
}

func (r *Repository) ListInvoices(ctx context.Context, f InvoiceFilter) ([]models.Invoice, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		filter["invoice_number"] = searchRegex(f.Search)
	}
	if f.CustomerID != nil {
		filter["customer_id"] = *f.CustomerID
	}
	if f.ProjectID != nil {
		filter["project_id"] = *f.ProjectID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	dateRange(filter, "issue_date", f.From, f.To)

	invoices := []models.Invoice{}
	total, err := r.findPage(ctx, collInvoices, filter, bson.D{{Key: "issue_date", Value: -1}}, f.Page, &invoices)
	return invoices, total, err
}

func (r *Repository) UpdateInvoice(ctx context.Context, inv *models.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	inv.Recalculate()

	res, err := r.db.Collection(collInvoices).ReplaceOne(ctx, bson.M{"_id": inv.ID}, inv)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteInvoice(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collInvoices).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
