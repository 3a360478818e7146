package model

import "time"

// SectionAverage is one pooled section mean in a year report
type SectionAverage struct {
	Section string  `json:"section" bson:"section"`
	Average float64 `json:"average" bson:"average"`
}

// RiskDistribution buckets sections by score band, scaled by response count.
// This is a coarse approximation, not a per-respondent tally.
type RiskDistribution struct {
	Low    int `json:"low" bson:"low"`
	Medium int `json:"medium" bson:"medium"`
	High   int `json:"high" bson:"high"`
}

// Trend compares a year report against the prior year
type Trend struct {
	PreviousYear  int              `json:"previousYear" bson:"previousYear"`
	PreviousScore float64          `json:"previousScore" bson:"previousScore"`
	Delta         float64          `json:"delta" bson:"delta"`
	Improving     bool             `json:"improving" bson:"improving"`
	SectionDeltas []SectionAverage `json:"sectionDeltas" bson:"sectionDeltas"`
}

// Report is the aggregated psychosocial report for a tenant and year
type Report struct {
	TenantID                 string               `json:"tenantId" bson:"tenantId"`
	Year                     int                  `json:"year" bson:"year"`
	TotalResponses           int                  `json:"totalResponses" bson:"totalResponses"`
	OverallScore             float64              `json:"overallScore" bson:"overallScore"`
	SectionAverages          []SectionAverage     `json:"sectionAverages" bson:"sectionAverages"`
	CriticalIncidentCounts   map[IncidentType]int `json:"criticalIncidentCounts" bson:"criticalIncidentCounts"`
	RiskDistribution         RiskDistribution     `json:"riskDistribution" bson:"riskDistribution"`
	TopConcerns              []SectionAverage     `json:"topConcerns" bson:"topConcerns"`
	Trend                    *Trend               `json:"trend,omitempty" bson:"trend,omitempty"`
	GeneratedRisksCount      int                  `json:"generatedRisksCount" bson:"generatedRisksCount"`
	ImplementedMeasuresCount int                  `json:"implementedMeasuresCount" bson:"implementedMeasuresCount"`
	GeneratedAt              time.Time            `json:"generatedAt" bson:"generatedAt"`
}
