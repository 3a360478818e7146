package model

import "time"

// FieldType classifies how a survey field is answered
type FieldType string

const (
	FieldTypeScale     FieldType = "scale"     // numeric 1-5
	FieldTypeFrequency FieldType = "frequency" // Never/Rarely/Sometimes/Often
	FieldTypeText      FieldType = "text"      // free text, not analyzed
)

// SurveyCategoryPsychosocial is the only survey category the analysis
// engine accepts
const SurveyCategoryPsychosocial = "psychosocial"

// SurveyField is a single question in a survey template
type SurveyField struct {
	ID    string    `json:"id" bson:"id"`
	Label string    `json:"label" bson:"label"`
	Type  FieldType `json:"type" bson:"type"`
}

// Survey is a persistent questionnaire template owned by a tenant
type Survey struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	TenantID  string        `json:"tenantId" bson:"tenantId"`
	Title     string        `json:"title" bson:"title"`
	Category  string        `json:"category" bson:"category"`
	Fields    []SurveyField `json:"fields" bson:"fields"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// FieldByID returns the field with the given id, or nil
func (s *Survey) FieldByID(id string) *SurveyField {
	for i := range s.Fields {
		if s.Fields[i].ID == id {
			return &s.Fields[i]
		}
	}
	return nil
}

// SubmissionStatus is the lifecycle state of a submission
type SubmissionStatus string

const (
	SubmissionDraft     SubmissionStatus = "draft"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionApproved  SubmissionStatus = "approved"
	SubmissionRejected  SubmissionStatus = "rejected"
)

// ResponseValue is one respondent's answer to one field. Value is nil when
// the field was left unanswered.
type ResponseValue struct {
	FieldID string  `json:"fieldId" bson:"fieldId"`
	Value   *string `json:"value" bson:"value"`
}

// Submission is one respondent's completed survey instance. Once fetched
// for analysis it is treated as immutable.
type Submission struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	TenantID    string           `json:"tenantId" bson:"tenantId"`
	SurveyID    string           `json:"surveyId" bson:"surveyId"`
	Status      SubmissionStatus `json:"status" bson:"status"`
	Values      []ResponseValue  `json:"values" bson:"values"`
	SubmittedAt time.Time        `json:"submittedAt" bson:"submittedAt"`
}

// ValueFor returns the answered value for a field, or nil if unanswered
func (s *Submission) ValueFor(fieldID string) *string {
	for i := range s.Values {
		if s.Values[i].FieldID == fieldID {
			return s.Values[i].Value
		}
	}
	return nil
}
