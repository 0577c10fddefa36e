package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SkillLevel classifies a labourer for payroll purposes.
type SkillLevel string

const (
	SkillUnskilled   SkillLevel = "unskilled"
	SkillSemiSkilled SkillLevel = "semi_skilled"
	SkillSkilled     SkillLevel = "skilled"
)

// Labour is a worker on the company payroll.
type Labour struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	LabourID   string              `bson:"labour_id" json:"labourId"`
	Name       string              `bson:"name" json:"name"`
	NIC        string              `bson:"nic,omitempty" json:"nic,omitempty"`
	Phone      string              `bson:"phone,omitempty" json:"phone,omitempty"`
	SkillLevel SkillLevel          `bson:"skill_level" json:"skillLevel"`
	BaseSalary float64             `bson:"base_salary" json:"baseSalary"`
	ProjectID  *primitive.ObjectID `bson:"project_id,omitempty" json:"projectId,omitempty"`
	JoinedDate time.Time           `bson:"joined_date" json:"joinedDate"`
	CreatedAt  time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updated_at" json:"updatedAt"`
}

// SalaryStatus enumerates payment states of a monthly salary record.
type SalaryStatus string

const (
	SalaryPending SalaryStatus = "pending"
	SalaryPaid    SalaryStatus = "paid"
)

// LabourSalary is one month's payroll entry for a labourer. Salary records
// are removed when their labourer is deleted.
type LabourSalary struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LabourID       primitive.ObjectID `bson:"labour_id" json:"labourId"`
	Month          string             `bson:"month" json:"month"` // YYYY-MM
	BasicAmount    float64            `bson:"basic_amount" json:"basicAmount"`
	OvertimeAmount float64            `bson:"overtime_amount" json:"overtimeAmount"`
	Deductions     float64            `bson:"deductions" json:"deductions"`
	NetAmount      float64            `bson:"net_amount" json:"netAmount"`
	Status         SalaryStatus       `bson:"status" json:"status"`
	PaidDate       *time.Time         `bson:"paid_date,omitempty" json:"paidDate,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Recalculate refreshes the derived net amount.
func (s *LabourSalary) Recalculate() {
	s.NetAmount = round2(s.BasicAmount + s.OvertimeAmount - s.Deductions)
}
