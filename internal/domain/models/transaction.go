package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionType tags a financial record as money in or money out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is a dated financial record, optionally backed by an uploaded
// payment slip held in the external object store.
type Transaction struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Type        TransactionType     `bson:"type" json:"type"`
	Category    string              `bson:"category" json:"category"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Amount      float64             `bson:"amount" json:"amount"`
	Date        time.Time           `bson:"date" json:"date"`
	ProjectID   *primitive.ObjectID `bson:"project_id,omitempty" json:"projectId,omitempty"`

	SlipURL      string `bson:"slip_url,omitempty" json:"slipUrl,omitempty"`
	SlipPublicID string `bson:"slip_public_id,omitempty" json:"slipPublicId,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionIncome || t == TransactionExpense
}
