package service

import (
	"context"
	"errors"
	"fmt"

	"worksafe/internal/model"
	"worksafe/internal/repository"
)

var ErrSubmissionEmpty = errors.New("submission has no values")

// SurveyService is the thin CRUD layer over survey templates and
// submissions. It carries no analysis logic; the analysis engine consumes
// the records it stores.
type SurveyService struct {
	surveyRepo     repository.SurveyRepo
	submissionRepo repository.SubmissionRepo
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo, submissionRepo repository.SubmissionRepo) *SurveyService {
	return &SurveyService{
		surveyRepo:     surveyRepo,
		submissionRepo: submissionRepo,
	}
}

// Create stores a survey template
func (s *SurveyService) Create(ctx context.Context, survey *model.Survey) (string, error) {
	for i := range survey.Fields {
		if survey.Fields[i].ID == "" {
			survey.Fields[i].ID = fmt.Sprintf("f%d", i+1)
		}
	}
	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return "", err
	}
	return survey.ID, nil
}

// GetByID returns a survey or nil
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	return s.surveyRepo.GetByID(ctx, id)
}

// ListByTenant returns a tenant's surveys
func (s *SurveyService) ListByTenant(ctx context.Context, tenantID string) ([]*model.Survey, error) {
	return s.surveyRepo.ListByTenant(ctx, tenantID)
}

// Update replaces a survey's editable fields
func (s *SurveyService) Update(ctx context.Context, survey *model.Survey) error {
	for i := range survey.Fields {
		if survey.Fields[i].ID == "" {
			survey.Fields[i].ID = fmt.Sprintf("f%d", i+1)
		}
	}
	return s.surveyRepo.Update(ctx, survey)
}

// Submit stores a respondent's submission against a survey
func (s *SurveyService) Submit(ctx context.Context, surveyID, tenantID string, values []model.ResponseValue) (*model.Submission, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	if len(values) == 0 {
		return nil, ErrSubmissionEmpty
	}

	sub := &model.Submission{
		TenantID: tenantID,
		SurveyID: surveyID,
		Status:   model.SubmissionSubmitted,
		Values:   values,
	}
	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// GetSubmission returns a submission or nil
func (s *SurveyService) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	return s.submissionRepo.GetByID(ctx, id)
}
