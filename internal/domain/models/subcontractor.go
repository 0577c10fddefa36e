package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subcontractor is an external crew engaged for a specific trade on a project.
type Subcontractor struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SubcontractorID string              `bson:"subcontractor_id" json:"subcontractorId"`
	Name            string              `bson:"name" json:"name"`
	Trade           string              `bson:"trade" json:"trade"`
	Phone           string              `bson:"phone" json:"phone"`
	Email           string              `bson:"email,omitempty" json:"email,omitempty"`
	AgreedAmount    float64             `bson:"agreed_amount" json:"agreedAmount"`
	ProjectID       *primitive.ObjectID `bson:"project_id,omitempty" json:"projectId,omitempty"`
	CreatedAt       time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updatedAt"`
}
