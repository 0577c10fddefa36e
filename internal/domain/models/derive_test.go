package models_test

import (
	"testing"
	"time"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

func TestSiteMaterial_Recalculate(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		unitCost float64
		want     float64
	}{
		{"whole units", 120, 55, 6600},
		{"fractional", 2.5, 1333.33, 3333.33},
		{"zero amount", 0, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := models.SiteMaterial{Amount: tt.amount, UnitCost: tt.unitCost}
			m.Recalculate()
			if !almostEqual(m.TotalCost, tt.want) {
				t.Errorf("totalCost = %v, want %v", m.TotalCost, tt.want)
			}
		})
	}
}

func TestLabourSalary_Recalculate(t *testing.T) {
	s := models.LabourSalary{BasicAmount: 45000, OvertimeAmount: 6250.50, Deductions: 1200}
	s.Recalculate()
	if !almostEqual(s.NetAmount, 50050.50) {
		t.Errorf("netAmount = %v, want 50050.50", s.NetAmount)
	}
}

func TestProject_Recalculate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"ninety days", start, start.AddDate(0, 0, 90), 90},
		{"same day", start, start, 0},
		{"end before start", start, start.AddDate(0, 0, -5), 0},
		{"missing end", start, time.Time{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.Project{StartDate: tt.start, EndDate: tt.end}
			p.Recalculate()
			if p.DurationDays != tt.want {
				t.Errorf("durationDays = %d, want %d", p.DurationDays, tt.want)
			}
		})
	}
}
