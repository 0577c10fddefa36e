package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Phase groups schedule steps into the three project stages.
type Phase string

const (
	PhasePreProject Phase = "Pre-Project"
	PhaseProject    Phase = "Project"
	PhaseHandover   Phase = "Handover"
)

// ValidPhase reports whether p is a known schedule phase.
func ValidPhase(p Phase) bool {
	return p == PhasePreProject || p == PhaseProject || p == PhaseHandover
}

// WorkSchedule is one ordered step within a project phase.
type WorkSchedule struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID   primitive.ObjectID `bson:"project_id" json:"projectId"`
	Phase       Phase              `bson:"phase" json:"phase"`
	Step        int                `bson:"step" json:"step"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	StartDate   time.Time          `bson:"start_date" json:"startDate"`
	EndDate     time.Time          `bson:"end_date" json:"endDate"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// PaymentScheduleStatus tracks whether a scheduled payment has been collected.
type PaymentScheduleStatus string

const (
	PaymentPending PaymentScheduleStatus = "pending"
	PaymentPaid    PaymentScheduleStatus = "paid"
)

// PaymentSchedule ties an expected payment to a work-schedule step. The
// reference is required and validated at creation; there is no fuzzy
// fallback matching.
type PaymentSchedule struct {
	ID             primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	ProjectID      primitive.ObjectID    `bson:"project_id" json:"projectId"`
	WorkScheduleID primitive.ObjectID    `bson:"work_schedule_id" json:"workScheduleId"`
	Phase          Phase                 `bson:"phase" json:"phase"`
	Step           int                   `bson:"step" json:"step"`
	Title          string                `bson:"title" json:"title"`
	Amount         float64               `bson:"amount" json:"amount"`
	DueDate        time.Time             `bson:"due_date" json:"dueDate"`
	Status         PaymentScheduleStatus `bson:"status" json:"status"`
	CreatedAt      time.Time             `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time             `bson:"updated_at" json:"updatedAt"`
}
