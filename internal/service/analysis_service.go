package service

import (
	"context"
	"errors"
	"log"

	"worksafe/internal/cache"
	"worksafe/internal/model"
	"worksafe/internal/repository"
)

// AnalysisService runs the full analysis pipeline for one submission:
// fetch, score, classify and, when action is required, remediate. Each
// call processes one fetched snapshot to completion; concurrent calls for
// the same submission are not serialized and each produce their own
// records.
type AnalysisService struct {
	submissionRepo repository.SubmissionRepo
	surveyRepo     repository.SurveyRepo
	scoring        *ScoringService
	remediation    *RemediationService
	reportCache    cache.ReportCache
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	submissionRepo repository.SubmissionRepo,
	surveyRepo repository.SurveyRepo,
	scoring *ScoringService,
	remediation *RemediationService,
	reportCache cache.ReportCache,
) *AnalysisService {
	return &AnalysisService{
		submissionRepo: submissionRepo,
		surveyRepo:     surveyRepo,
		scoring:        scoring,
		remediation:    remediation,
		reportCache:    reportCache,
	}
}

// AnalyzeSubmission analyzes one submission and returns the stable result
// contract. A missing submission or a non-psychosocial survey fails fast
// with no partial work. A partial persistence failure during remediation
// is returned alongside the partial result.
func (s *AnalysisService) AnalyzeSubmission(ctx context.Context, submissionID string) (*model.AnalysisResult, error) {
	sub, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}

	survey, err := s.surveyRepo.GetByID(ctx, sub.SurveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	if survey.Category != model.SurveyCategoryPsychosocial {
		return nil, ErrNotPsychosocial
	}

	cls := s.scoring.Evaluate(survey, sub)
	log.Printf("analysis: submission %s classified %s (score %.2f, %d incidents)",
		sub.ID, cls.OverallRiskLevel, cls.OverallScore, len(cls.CriticalIncidents))

	result := &model.AnalysisResult{
		SubmissionID:      sub.ID,
		OverallScore:      cls.OverallScore,
		Sections:          cls.Sections,
		CriticalIncidents: cls.CriticalIncidents,
		RiskLevel:         cls.OverallRiskLevel,
		RequiresAction:    cls.RequiresAction,
		MeasureTitles:     []string{},
	}

	var remErr error
	if cls.RequiresAction {
		riskID, titles, err := s.remediation.Remediate(ctx, sub, cls)
		result.RiskID = riskID
		if titles != nil {
			result.MeasureTitles = titles
		}
		if err != nil {
			var partial *PartialPersistenceError
			if errors.As(err, &partial) {
				// Keep what was persisted visible to the caller.
				remErr = err
			} else {
				return nil, err
			}
		}
	}

	s.invalidateReport(ctx, sub)

	return result, remErr
}

// invalidateReport drops the cached year report so the next report request
// reflects this analysis. Cache failures never affect the analysis result.
func (s *AnalysisService) invalidateReport(ctx context.Context, sub *model.Submission) {
	if s.reportCache == nil {
		return
	}
	year := sub.SubmittedAt.Year()
	if err := s.reportCache.Invalidate(ctx, sub.TenantID, year); err != nil {
		log.Printf("analysis: invalidating cached report %s/%d failed: %v", sub.TenantID, year, err)
	}
}
