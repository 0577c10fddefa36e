package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Code prefixes per collection. Labour codes carry the historical company
// prefix in full.
const (
	prefixProject       = "PRJ"
	prefixCustomer      = "CUS"
	prefixSupplier      = "SUP"
	prefixSubcontractor = "SC"
	prefixInvoice       = "INV"
	prefixPurchaseOrder = "PO"
	prefixEmployee      = "EMP"
	prefixLabour        = "JHC/LAB/"
)

// NextCode atomically allocates the next code for a named sequence. A single
// find-and-increment on the counters collection makes concurrent creates
// safe; numbers are monotonic and never reused. An allocation failure aborts
// the caller's create — there is no fallback identifier shape.
func (r *Repository) NextCode(ctx context.Context, sequence, prefix string) (string, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err := r.db.Collection(collCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": sequence},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return "", fmt.Errorf("allocate %s sequence: %w", sequence, err)
	}

	return FormatCode(prefix, counter.Seq), nil
}

// FormatCode renders a code as the prefix plus the sequence number padded to
// four digits. Sequences past 9999 simply grow wider.
func FormatCode(prefix string, n int64) string {
	return fmt.Sprintf("%s%04d", prefix, n)
}
