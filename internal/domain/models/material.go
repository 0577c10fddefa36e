package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteMaterial records material held or consumed at a project site.
type SiteMaterial struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ProjectID  primitive.ObjectID  `bson:"project_id" json:"projectId"`
	SupplierID *primitive.ObjectID `bson:"supplier_id,omitempty" json:"supplierId,omitempty"`
	Name       string              `bson:"name" json:"name"`
	Unit       string              `bson:"unit,omitempty" json:"unit,omitempty"`
	Amount     float64             `bson:"amount" json:"amount"`
	UnitCost   float64             `bson:"unit_cost" json:"unitCost"`
	TotalCost  float64             `bson:"total_cost" json:"totalCost"`
	Date       time.Time           `bson:"date" json:"date"`
	CreatedAt  time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updated_at" json:"updatedAt"`
}

// Recalculate refreshes the derived total cost.
func (m *SiteMaterial) Recalculate() {
	m.TotalCost = mul2(m.Amount, m.UnitCost)
}
