package models_test

import (
	"math"
	"testing"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestInvoice_Recalculate(t *testing.T) {
	tests := []struct {
		name          string
		items         []models.InvoiceItem
		taxRate       float64
		discount      float64
		paid          float64
		wantSubtotal  float64
		wantTax       float64
		wantTotal     float64
		wantRemaining float64
		wantStatus    models.InvoiceStatus
	}{
		{
			name: "single line no tax",
			items: []models.InvoiceItem{
				{Description: "Cement bags", Quantity: 10, UnitPrice: 1250},
			},
			wantSubtotal:  12500,
			wantTax:       0,
			wantTotal:     12500,
			wantRemaining: 12500,
			wantStatus:    models.InvoiceUnpaid,
		},
		{
			name: "tax and discount",
			items: []models.InvoiceItem{
				{Quantity: 2, UnitPrice: 1000},
				{Quantity: 3, UnitPrice: 500},
			},
			taxRate:       10,
			discount:      150,
			wantSubtotal:  3500,
			wantTax:       350,
			wantTotal:     3700,
			wantRemaining: 3700,
			wantStatus:    models.InvoiceUnpaid,
		},
		{
			name: "partially paid",
			items: []models.InvoiceItem{
				{Quantity: 1, UnitPrice: 2000},
			},
			paid:          500,
			wantSubtotal:  2000,
			wantTotal:     2000,
			wantRemaining: 1500,
			wantStatus:    models.InvoicePartiallyPaid,
		},
		{
			name: "fully paid",
			items: []models.InvoiceItem{
				{Quantity: 4, UnitPrice: 250},
			},
			paid:          1000,
			wantSubtotal:  1000,
			wantTotal:     1000,
			wantRemaining: 0,
			wantStatus:    models.InvoicePaid,
		},
		{
			name: "fractional quantities round to cents",
			items: []models.InvoiceItem{
				{Quantity: 0.333, UnitPrice: 3},
			},
			wantSubtotal:  1.0, // 0.999 rounded
			wantTotal:     1.0,
			wantRemaining: 1.0,
			wantStatus:    models.InvoiceUnpaid,
		},
		{
			name:          "no items",
			items:         nil,
			wantSubtotal:  0,
			wantTotal:     0,
			wantRemaining: 0,
			wantStatus:    models.InvoiceUnpaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := models.Invoice{
				Items:      tt.items,
				TaxRate:    tt.taxRate,
				Discount:   tt.discount,
				PaidAmount: tt.paid,
			}
			inv.Recalculate()

			if !almostEqual(inv.Subtotal, tt.wantSubtotal) {
				t.Errorf("subtotal = %v, want %v", inv.Subtotal, tt.wantSubtotal)
			}
			if !almostEqual(inv.TaxAmount, tt.wantTax) {
				t.Errorf("taxAmount = %v, want %v", inv.TaxAmount, tt.wantTax)
			}
			if !almostEqual(inv.TotalAmount, tt.wantTotal) {
				t.Errorf("totalAmount = %v, want %v", inv.TotalAmount, tt.wantTotal)
			}
			if !almostEqual(inv.RemainingAmount, tt.wantRemaining) {
				t.Errorf("remainingAmount = %v, want %v", inv.RemainingAmount, tt.wantRemaining)
			}
			if inv.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", inv.Status, tt.wantStatus)
			}

			for i, item := range inv.Items {
				want := round(item.Quantity * item.UnitPrice)
				if !almostEqual(item.TotalPrice, want) {
					t.Errorf("item %d totalPrice = %v, want %v", i, item.TotalPrice, want)
				}
			}
		})
	}
}

func TestInvoice_RecalculateIdempotent(t *testing.T) {
	inv := models.Invoice{
		Items:      []models.InvoiceItem{{Quantity: 7, UnitPrice: 13.37}},
		TaxRate:    8,
		Discount:   5,
		PaidAmount: 20,
	}
	inv.Recalculate()
	first := []float64{inv.Subtotal, inv.TaxAmount, inv.TotalAmount, inv.RemainingAmount, inv.Items[0].TotalPrice}
	inv.Recalculate()
	inv.Recalculate()
	second := []float64{inv.Subtotal, inv.TaxAmount, inv.TotalAmount, inv.RemainingAmount, inv.Items[0].TotalPrice}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("recalculation is not idempotent: field %d: %v != %v", i, first[i], second[i])
		}
	}
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
