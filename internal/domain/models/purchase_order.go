package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseOrderStatus tracks an order through delivery.
type PurchaseOrderStatus string

const (
	POPending            PurchaseOrderStatus = "pending"
	POPartiallyDelivered PurchaseOrderStatus = "partially_delivered"
	PODelivered          PurchaseOrderStatus = "delivered"
	POCancelled          PurchaseOrderStatus = "cancelled"
)

// PurchaseOrderItem is one ordered material line, with delivery tracking.
type PurchaseOrderItem struct {
	MaterialName      string  `bson:"material_name" json:"materialName"`
	Unit              string  `bson:"unit,omitempty" json:"unit,omitempty"`
	Quantity          float64 `bson:"quantity" json:"quantity"`
	UnitPrice         float64 `bson:"unit_price" json:"unitPrice"`
	TotalPrice        float64 `bson:"total_price" json:"totalPrice"`
	DeliveredQuantity float64 `bson:"delivered_quantity" json:"deliveredQuantity"`
	RemainingQuantity float64 `bson:"remaining_quantity" json:"remainingQuantity"`
}

// PurchaseOrder orders materials from a supplier for a project.
type PurchaseOrder struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OrderNumber      string              `bson:"order_number" json:"orderNumber"`
	SupplierID       primitive.ObjectID  `bson:"supplier_id" json:"supplierId"`
	ProjectID        *primitive.ObjectID `bson:"project_id,omitempty" json:"projectId,omitempty"`
	OrderDate        time.Time           `bson:"order_date" json:"orderDate"`
	ExpectedDelivery time.Time           `bson:"expected_delivery" json:"expectedDelivery"`
	Items            []PurchaseOrderItem `bson:"items" json:"items"`

	Subtotal        float64 `bson:"subtotal" json:"subtotal"`
	TaxRate         float64 `bson:"tax_rate" json:"taxRate"`
	TaxAmount       float64 `bson:"tax_amount" json:"taxAmount"`
	ShippingCost    float64 `bson:"shipping_cost" json:"shippingCost"`
	Discount        float64 `bson:"discount" json:"discount"`
	TotalAmount     float64 `bson:"total_amount" json:"totalAmount"`
	PaidAmount      float64 `bson:"paid_amount" json:"paidAmount"`
	RemainingAmount float64 `bson:"remaining_amount" json:"remainingAmount"`

	Status PurchaseOrderStatus `bson:"status" json:"status"`

	// Delivery challan uploaded to the object store, if any.
	ChallanURL      string `bson:"challan_url,omitempty" json:"challanUrl,omitempty"`
	ChallanPublicID string `bson:"challan_public_id,omitempty" json:"challanPublicId,omitempty"`

	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Recalculate recomputes line totals, remaining delivery quantities, the
// order-level amounts and the delivery status from the raw inputs.
func (po *PurchaseOrder) Recalculate() {
	subtotal := decimal.Zero
	fullyDelivered := len(po.Items) > 0
	anyDelivered := false

	for i := range po.Items {
		item := &po.Items[i]
		line := decimal.NewFromFloat(item.Quantity).
			Mul(decimal.NewFromFloat(item.UnitPrice)).
			Round(2)
		item.TotalPrice = line.InexactFloat64()
		subtotal = subtotal.Add(line)

		remaining := item.Quantity - item.DeliveredQuantity
		if remaining < 0 {
			remaining = 0
		}
		item.RemainingQuantity = remaining

		if item.DeliveredQuantity > 0 {
			anyDelivered = true
		}
		if remaining > 0 {
			fullyDelivered = false
		}
	}

	tax := subtotal.Mul(decimal.NewFromFloat(po.TaxRate)).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(tax).
		Add(decimal.NewFromFloat(po.ShippingCost)).
		Sub(decimal.NewFromFloat(po.Discount)).
		Round(2)
	remaining := total.Sub(decimal.NewFromFloat(po.PaidAmount)).Round(2)

	po.Subtotal = subtotal.InexactFloat64()
	po.TaxAmount = tax.InexactFloat64()
	po.TotalAmount = total.InexactFloat64()
	po.RemainingAmount = remaining.InexactFloat64()

	if po.Status == POCancelled {
		return
	}
	switch {
	case fullyDelivered:
		po.Status = PODelivered
	case anyDelivered:
		po.Status = POPartiallyDelivered
	default:
		po.Status = POPending
	}
}
