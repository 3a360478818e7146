package model

// RiskLevel buckets a section average or an overall classification
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// SectionScore is the derived score for one taxonomy section. It is never
// persisted; the fixed taxonomy guarantees one entry per section even when
// no field matched.
type SectionScore struct {
	Section        string    `json:"section"`
	Average        float64   `json:"average"` // 0-5, 0 when nothing answered
	CriticalFields []string  `json:"criticalFields"`
	RiskLevel      RiskLevel `json:"riskLevel"`
}

// IncidentType identifies a sensitive disclosure category
type IncidentType string

const (
	IncidentBullying           IncidentType = "bullying"
	IncidentHarassment         IncidentType = "harassment"
	IncidentImproperPressure   IncidentType = "improper_pressure"
	IncidentUnresolvedConflict IncidentType = "unresolved_conflict"
)

// CriticalIncident is a detected non-"Never" answer to a sensitive
// frequency question
type CriticalIncident struct {
	Type      IncidentType `json:"type"`
	Frequency string       `json:"frequency"`
}

// Classification combines section scores and incidents into one verdict
type Classification struct {
	OverallScore      float64            `json:"overallScore"`
	OverallRiskLevel  RiskLevel          `json:"overallRiskLevel"`
	RequiresAction    bool               `json:"requiresAction"`
	Sections          []SectionScore     `json:"sections"`
	CriticalIncidents []CriticalIncident `json:"criticalIncidents"`
}

// AnalysisResult is the stable contract returned by submission analysis.
// RiskID is empty when no remediation fired.
type AnalysisResult struct {
	SubmissionID      string             `json:"submissionId"`
	OverallScore      float64            `json:"overallScore"`
	Sections          []SectionScore     `json:"sections"`
	CriticalIncidents []CriticalIncident `json:"criticalIncidents"`
	RiskLevel         RiskLevel          `json:"riskLevel"`
	RequiresAction    bool               `json:"requiresAction"`
	RiskID            string             `json:"riskId,omitempty"`
	MeasureTitles     []string           `json:"measureTitles"`
}
