package models_test

import (
	"testing"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

func TestPurchaseOrder_Recalculate(t *testing.T) {
	tests := []struct {
		name          string
		items         []models.PurchaseOrderItem
		taxRate       float64
		shipping      float64
		discount      float64
		paid          float64
		wantSubtotal  float64
		wantTax       float64
		wantTotal     float64
		wantRemaining float64
		wantStatus    models.PurchaseOrderStatus
	}{
		{
			name: "shipping included in total",
			items: []models.PurchaseOrderItem{
				{MaterialName: "Sand", Quantity: 5, UnitPrice: 2000},
			},
			taxRate:       5,
			shipping:      1500,
			wantSubtotal:  10000,
			wantTax:       500,
			wantTotal:     12000,
			wantRemaining: 12000,
			wantStatus:    models.POPending,
		},
		{
			name: "discount and payment",
			items: []models.PurchaseOrderItem{
				{MaterialName: "Bricks", Quantity: 1000, UnitPrice: 45},
			},
			discount:      5000,
			paid:          20000,
			wantSubtotal:  45000,
			wantTotal:     40000,
			wantRemaining: 20000,
			wantStatus:    models.POPending,
		},
		{
			name: "partial delivery",
			items: []models.PurchaseOrderItem{
				{MaterialName: "Steel", Quantity: 10, UnitPrice: 100, DeliveredQuantity: 4},
				{MaterialName: "Timber", Quantity: 3, UnitPrice: 50},
			},
			wantSubtotal:  1150,
			wantTotal:     1150,
			wantRemaining: 1150,
			wantStatus:    models.POPartiallyDelivered,
		},
		{
			name: "fully delivered",
			items: []models.PurchaseOrderItem{
				{MaterialName: "Steel", Quantity: 10, UnitPrice: 100, DeliveredQuantity: 10},
			},
			wantSubtotal:  1000,
			wantTotal:     1000,
			wantRemaining: 1000,
			wantStatus:    models.PODelivered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			po := models.PurchaseOrder{
				Items:        tt.items,
				TaxRate:      tt.taxRate,
				ShippingCost: tt.shipping,
				Discount:     tt.discount,
				PaidAmount:   tt.paid,
			}
			po.Recalculate()

			if !almostEqual(po.Subtotal, tt.wantSubtotal) {
				t.Errorf("subtotal = %v, want %v", po.Subtotal, tt.wantSubtotal)
			}
			if !almostEqual(po.TaxAmount, tt.wantTax) {
				t.Errorf("taxAmount = %v, want %v", po.TaxAmount, tt.wantTax)
			}
			if !almostEqual(po.TotalAmount, tt.wantTotal) {
				t.Errorf("totalAmount = %v, want %v", po.TotalAmount, tt.wantTotal)
			}
			if !almostEqual(po.RemainingAmount, tt.wantRemaining) {
				t.Errorf("remainingAmount = %v, want %v", po.RemainingAmount, tt.wantRemaining)
			}
			if po.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", po.Status, tt.wantStatus)
			}
		})
	}
}

func TestPurchaseOrder_RemainingQuantityFloor(t *testing.T) {
	po := models.PurchaseOrder{
		Items: []models.PurchaseOrderItem{
			{MaterialName: "Gravel", Quantity: 5, UnitPrice: 10, DeliveredQuantity: 8},
		},
	}
	po.Recalculate()

	if po.Items[0].RemainingQuantity != 0 {
		t.Errorf("remainingQuantity = %v, want 0 when over-delivered", po.Items[0].RemainingQuantity)
	}
	if po.Status != models.PODelivered {
		t.Errorf("status = %q, want %q", po.Status, models.PODelivered)
	}
}

func TestPurchaseOrder_CancelledStatusSticks(t *testing.T) {
	po := models.PurchaseOrder{
		Status: models.POCancelled,
		Items: []models.PurchaseOrderItem{
			{MaterialName: "Paint", Quantity: 2, UnitPrice: 700},
		},
	}
	po.Recalculate()

	if po.Status != models.POCancelled {
		t.Errorf("status = %q, cancellation must survive recalculation", po.Status)
	}
	if !almostEqual(po.TotalAmount, 1400) {
		t.Errorf("totalAmount = %v, want 1400", po.TotalAmount)
	}
}
