package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectStatus enumerates the lifecycle states of a construction project.
type ProjectStatus string

const (
	ProjectPlanned   ProjectStatus = "planned"
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// Project represents a construction site/project record.
type Project struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ProjectID      string              `bson:"project_id" json:"projectId"`
	Name           string              `bson:"name" json:"name"`
	Supervisor     string              `bson:"supervisor" json:"supervisor"`
	Location       string              `bson:"location" json:"location"`
	StartDate      time.Time           `bson:"start_date" json:"startDate"`
	EndDate        time.Time           `bson:"end_date" json:"endDate"`
	DurationDays   int                 `bson:"duration_days" json:"durationDays"`
	EstimatedCost  float64             `bson:"estimated_cost" json:"estimatedCost"`
	DocumentFileNo string              `bson:"document_file_no,omitempty" json:"documentFileNo,omitempty"`
	Status         ProjectStatus       `bson:"status" json:"status"`
	Progress       int                 `bson:"progress" json:"progress"`
	CustomerID     *primitive.ObjectID `bson:"customer_id,omitempty" json:"customerId,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updatedAt"`
}

// Recalculate refreshes the derived duration from the project dates.
func (p *Project) Recalculate() {
	if p.EndDate.IsZero() || p.StartDate.IsZero() || p.EndDate.Before(p.StartDate) {
		p.DurationDays = 0
		return
	}
	p.DurationDays = int(p.EndDate.Sub(p.StartDate).Hours() / 24)
}

// ValidStatus reports whether s is a known project status.
func ValidStatus(s ProjectStatus) bool {
	switch s {
	case ProjectPlanned, ProjectOngoing, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}
