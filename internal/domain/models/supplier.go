package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supplier is a vendor the company raises purchase orders against.
type Supplier struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SupplierID         string             `bson:"supplier_id" json:"supplierId"`
	Name               string             `bson:"name" json:"name"`
	ContactPerson      string             `bson:"contact_person,omitempty" json:"contactPerson,omitempty"`
	Email              string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone              string             `bson:"phone" json:"phone"`
	Address            string             `bson:"address,omitempty" json:"address,omitempty"`
	CreditLimit        float64            `bson:"credit_limit" json:"creditLimit"`
	OutstandingBalance float64            `bson:"outstanding_balance" json:"outstandingBalance"`

	// Performance metrics maintained from purchase-order deliveries.
	Rating             float64 `bson:"rating" json:"rating"`
	OnTimeDeliveryRate float64 `bson:"on_time_delivery_rate" json:"onTimeDeliveryRate"`
	TotalOrders        int     `bson:"total_orders" json:"totalOrders"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
