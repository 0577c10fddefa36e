package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a client the company bills projects to.
type Customer struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID         string             `bson:"customer_id" json:"customerId"`
	Name               string             `bson:"name" json:"name"`
	ContactPerson      string             `bson:"contact_person,omitempty" json:"contactPerson,omitempty"`
	Email              string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone              string             `bson:"phone" json:"phone"`
	Address            string             `bson:"address,omitempty" json:"address,omitempty"`
	City               string             `bson:"city,omitempty" json:"city,omitempty"`
	CreditLimit        float64            `bson:"credit_limit" json:"creditLimit"`
	OutstandingBalance float64            `bson:"outstanding_balance" json:"outstandingBalance"`
	CreatedAt          time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updatedAt"`
}
