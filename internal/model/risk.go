package model

import "time"

// RiskStatus is the lifecycle state of a risk record
type RiskStatus string

const (
	RiskStatusOpen      RiskStatus = "open"
	RiskStatusMitigated RiskStatus = "mitigated"
	RiskStatusClosed    RiskStatus = "closed"
)

// RiskCategoryHealth is the generic health classification the synthesizer
// assigns to psychosocial hazards
const RiskCategoryHealth = "health"

// Risk is a hazard record. Records created by the remediation engine are
// owned by the risk-management subsystem from then on.
type Risk struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	TenantID    string     `json:"tenantId" bson:"tenantId"`
	Title       string     `json:"title" bson:"title"`
	Category    string     `json:"category" bson:"category"`
	Likelihood  int        `json:"likelihood" bson:"likelihood"`   // 1-5
	Consequence int        `json:"consequence" bson:"consequence"` // 1-5
	Score       int        `json:"score" bson:"score"`             // likelihood * consequence
	Status      RiskStatus `json:"status" bson:"status"`
	OwnerID     string     `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	Description string     `json:"description" bson:"description"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
}

// MeasureStatus is the lifecycle state of a remediation measure
type MeasureStatus string

const (
	MeasureStatusPlanned     MeasureStatus = "planned"
	MeasureStatusInProgress  MeasureStatus = "in_progress"
	MeasureStatusImplemented MeasureStatus = "implemented"
)

// Measure is a remediation task attached to a risk
type Measure struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	RiskID        string        `json:"riskId" bson:"riskId"`
	TenantID      string        `json:"tenantId" bson:"tenantId"`
	Title         string        `json:"title" bson:"title"`
	Description   string        `json:"description" bson:"description"`
	DueAt         time.Time     `json:"dueAt" bson:"dueAt"`
	ResponsibleID string        `json:"responsibleId,omitempty" bson:"responsibleId,omitempty"`
	Status        MeasureStatus `json:"status" bson:"status"`
	Category      string        `json:"category" bson:"category"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
}
