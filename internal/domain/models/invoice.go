package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvoiceStatus is derived from the paid/remaining amounts on every save.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "draft"
	InvoiceUnpaid        InvoiceStatus = "unpaid"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
)

// InvoiceItem is one billed line on an invoice.
type InvoiceItem struct {
	Description string  `bson:"description" json:"description"`
	Quantity    float64 `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unit_price" json:"unitPrice"`
	TotalPrice  float64 `bson:"total_price" json:"totalPrice"`
}

// Invoice bills a customer for project work.
type Invoice struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InvoiceNumber string              `bson:"invoice_number" json:"invoiceNumber"`
	CustomerID    primitive.ObjectID  `bson:"customer_id" json:"customerId"`
	ProjectID     *primitive.ObjectID `bson:"project_id,omitempty" json:"projectId,omitempty"`
	IssueDate     time.Time           `bson:"issue_date" json:"issueDate"`
	DueDate       time.Time           `bson:"due_date" json:"dueDate"`
	Items         []InvoiceItem       `bson:"items" json:"items"`

	Subtotal        float64 `bson:"subtotal" json:"subtotal"`
	TaxRate         float64 `bson:"tax_rate" json:"taxRate"`
	TaxAmount       float64 `bson:"tax_amount" json:"taxAmount"`
	Discount        float64 `bson:"discount" json:"discount"`
	TotalAmount     float64 `bson:"total_amount" json:"totalAmount"`
	PaidAmount      float64 `bson:"paid_amount" json:"paidAmount"`
	RemainingAmount float64 `bson:"remaining_amount" json:"remainingAmount"`

	Status    InvoiceStatus `bson:"status" json:"status"`
	Notes     string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Recalculate recomputes every derived amount from the line items. The raw
// inputs (quantities, prices, tax rate, discount, paid amount) are left alone,
// so repeated calls settle on the same values.
func (inv *Invoice) Recalculate() {
	subtotal := decimal.Zero
	for i := range inv.Items {
		line := decimal.NewFromFloat(inv.Items[i].Quantity).
			Mul(decimal.NewFromFloat(inv.Items[i].UnitPrice)).
			Round(2)
		inv.Items[i].TotalPrice = line.InexactFloat64()
		subtotal = subtotal.Add(line)
	}

	tax := subtotal.Mul(decimal.NewFromFloat(inv.TaxRate)).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(tax).Sub(decimal.NewFromFloat(inv.Discount)).Round(2)
	remaining := total.Sub(decimal.NewFromFloat(inv.PaidAmount)).Round(2)

	inv.Subtotal = subtotal.InexactFloat64()
	inv.TaxAmount = tax.InexactFloat64()
	inv.TotalAmount = total.InexactFloat64()
	inv.RemainingAmount = remaining.InexactFloat64()

	switch {
	case inv.TotalAmount > 0 && inv.RemainingAmount <= 0:
		inv.Status = InvoicePaid
	case inv.PaidAmount > 0:
		inv.Status = InvoicePartiallyPaid
	case inv.Status == "":
		inv.Status = InvoiceUnpaid
	}
}
