// Package mongodb is the storage layer. One collection per aggregate, a
// counters collection for document numbering, and unique indexes backing
// the uniqueness invariants (generated codes, one attendance per labourer
// per day).
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	ErrNotFound   = errors.New("document not found")
	ErrDuplicate  = errors.New("duplicate document")
	ErrReferenced = errors.New("document still referenced")
)

const (
	collCounters        = "counters"
	collProjects        = "projects"
	collCustomers       = "customers"
	collSuppliers       = "suppliers"
	collSubcontractors  = "subcontractors"
	collLabours         = "labours"
	collLabourSalaries  = "labour_salaries"
	collAttendance      = "attendance"
	collInvoices        = "invoices"
	collPurchaseOrders  = "purchase_orders"
	collSiteMaterials   = "site_materials"
	collTransactions    = "transactions"
	collWorkSchedules   = "work_schedules"
	collPaymentSchedule = "payment_schedules"
	collUsers           = "users"
)

// Repository bundles every collection accessor behind one MongoDB handle.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewRepository connects, pings, and returns the storage handle.
func NewRepository(ctx context.Context, uri, dbName string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

// EnsureIndexes creates the unique indexes the data model relies on. It is
// idempotent and runs at startup.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	specs := []struct {
		coll string
		keys bson.D
	}{
		{collProjects, bson.D{{Key: "project_id", Value: 1}}},
		{collCustomers, bson.D{{Key: "customer_id", Value: 1}}},
		{collSuppliers, bson.D{{Key: "supplier_id", Value: 1}}},
		{collSubcontractors, bson.D{{Key: "subcontractor_id", Value: 1}}},
		{collLabours, bson.D{{Key: "labour_id", Value: 1}}},
		{collInvoices, bson.D{{Key: "invoice_number", Value: 1}}},
		{collPurchaseOrders, bson.D{{Key: "order_number", Value: 1}}},
		{collUsers, bson.D{{Key: "employee_id", Value: 1}}},
		{collUsers, bson.D{{Key: "email", Value: 1}}},
		{collAttendance, bson.D{{Key: "labour_id", Value: 1}, {Key: "date", Value: 1}}},
		{collLabourSalaries, bson.D{{Key: "labour_id", Value: 1}, {Key: "month", Value: 1}}},
	}

	for _, spec := range specs {
		_, err := r.db.Collection(spec.coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    spec.keys,
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("create index on %s: %w", spec.coll, err)
		}
	}

	r.logger.Info("indexes ensured", zap.Int("count", len(specs)))
	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// wrapErr translates driver errors into the package sentinels.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
