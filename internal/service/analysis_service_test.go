package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worksafe/internal/model"
)

type analysisFixture struct {
	svc         *AnalysisService
	subRepo     *fakeSubmissionRepo
	surveyRepo  *fakeSurveyRepo
	riskRepo    *fakeRiskRepo
	measureRepo *fakeMeasureRepo
	cache       *fakeReportCache
}

func newAnalysisFixture() *analysisFixture {
	f := &analysisFixture{
		subRepo:     &fakeSubmissionRepo{},
		surveyRepo:  &fakeSurveyRepo{},
		riskRepo:    &fakeRiskRepo{},
		measureRepo: &fakeMeasureRepo{},
		cache:       newFakeReportCache(),
	}
	remediation := NewRemediationService(f.riskRepo, f.measureRepo, &fakeUserRepo{}, &fakeNotifier{})
	f.svc = NewAnalysisService(f.subRepo, f.surveyRepo, NewScoringService(nil), remediation, f.cache)
	return f
}

func (f *analysisFixture) seedSurvey(fields ...model.SurveyField) *model.Survey {
	survey := &model.Survey{
		ID:       "survey-1",
		TenantID: "t1",
		Category: model.SurveyCategoryPsychosocial,
		Fields:   fields,
	}
	_ = f.surveyRepo.Create(context.Background(), survey)
	return survey
}

func (f *analysisFixture) seedSubmission(values ...model.ResponseValue) *model.Submission {
	sub := &model.Submission{
		ID:          "sub-1",
		TenantID:    "t1",
		SurveyID:    "survey-1",
		Status:      model.SubmissionSubmitted,
		Values:      values,
		SubmittedAt: time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC),
	}
	_ = f.subRepo.Create(context.Background(), sub)
	return sub
}

func TestAnalyzeSubmissionNotFound(t *testing.T) {
	f := newAnalysisFixture()

	result, err := f.svc.AnalyzeSubmission(context.Background(), "missing")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestAnalyzeSubmissionSurveyNotFound(t *testing.T) {
	f := newAnalysisFixture()
	f.seedSubmission()

	result, err := f.svc.AnalyzeSubmission(context.Background(), "sub-1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}

func TestAnalyzeSubmissionRejectsOtherCategories(t *testing.T) {
	f := newAnalysisFixture()
	survey := f.seedSurvey(scaleField("f1", "Workload this week"))
	survey.Category = "fire-safety"
	f.seedSubmission(model.ResponseValue{FieldID: "f1", Value: strPtr("1")})

	result, err := f.svc.AnalyzeSubmission(context.Background(), "sub-1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotPsychosocial)
	// Fail-fast: nothing was evaluated or persisted.
	assert.Empty(t, f.riskRepo.risks)
	assert.Empty(t, f.cache.invalidated)
}

func TestAnalyzeSubmissionStrained(t *testing.T) {
	f := newAnalysisFixture()
	f.seedSurvey(
		scaleField("f1", "Workload this week"),
		scaleField("f2", "Support from manager"),
		scaleField("f3", "Team atmosphere"),
		frequencyField("f4", "Have you experienced bullying?"),
	)
	f.seedSubmission(
		model.ResponseValue{FieldID: "f1", Value: strPtr("2")},
		model.ResponseValue{FieldID: "f2", Value: strPtr("2")},
		model.ResponseValue{FieldID: "f3", Value: strPtr("5")},
		model.ResponseValue{FieldID: "f4", Value: strPtr("Sometimes")},
	)

	result, err := f.svc.AnalyzeSubmission(context.Background(), "sub-1")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "sub-1", result.SubmissionID)
	assert.Equal(t, model.RiskLevelHigh, result.RiskLevel)
	assert.True(t, result.RequiresAction)
	require.Len(t, result.CriticalIncidents, 1)

	assert.Equal(t, "risk-1", result.RiskID)
	assert.NotEmpty(t, result.MeasureTitles)
	assert.Len(t, f.riskRepo.risks, 1)
	assert.Len(t, f.measureRepo.measures, len(result.MeasureTitles))

	// The cached 2026 report was dropped.
	require.Len(t, f.cache.invalidated, 1)
	assert.Equal(t, cacheKey{"t1", 2026}, f.cache.invalidated[0])
}

func TestAnalyzeSubmissionLowRiskSkipsRemediation(t *testing.T) {
	f := newAnalysisFixture()
	f.seedSurvey(
		scaleField("f1", "Weekly workload"),
		scaleField("f2", "Support from manager"),
		scaleField("f3", "Team atmosphere"),
		scaleField("f4", "Influence over decisions"),
		scaleField("f5", "Competence development"),
		scaleField("f6", "Work-life balance"),
	)
	f.seedSubmission(
		model.ResponseValue{FieldID: "f1", Value: strPtr("5")},
		model.ResponseValue{FieldID: "f2", Value: strPtr("4")},
		model.ResponseValue{FieldID: "f3", Value: strPtr("5")},
		model.ResponseValue{FieldID: "f4", Value: strPtr("4")},
		model.ResponseValue{FieldID: "f5", Value: strPtr("5")},
		model.ResponseValue{FieldID: "f6", Value: strPtr("4")},
	)

	result, err := f.svc.AnalyzeSubmission(context.Background(), "sub-1")
	require.NoError(t, err)

	assert.Equal(t, model.RiskLevelLow, result.RiskLevel)
	assert.False(t, result.RequiresAction)
	assert.Empty(t, result.RiskID)
	assert.Empty(t, result.MeasureTitles)
	assert.Empty(t, f.riskRepo.risks)

	// The cache is still invalidated so participation counts stay fresh.
	assert.Len(t, f.cache.invalidated, 1)
}

func TestAnalyzeSubmissionPartialPersistence(t *testing.T) {
	f := newAnalysisFixture()
	f.measureRepo.failAfter = 1
	f.measureRepo.failErr = errors.New("write conflict")
	f.seedSurvey(
		scaleField("f1", "Workload this week"),
		frequencyField("f2", "Have you experienced bullying?"),
	)
	f.seedSubmission(
		model.ResponseValue{FieldID: "f1", Value: strPtr("1")},
		model.ResponseValue{FieldID: "f2", Value: strPtr("Often")},
	)

	result, err := f.svc.AnalyzeSubmission(context.Background(), "sub-1")

	var partial *PartialPersistenceError
	require.ErrorAs(t, err, &partial)
	require.NotNil(t, result)
	assert.Equal(t, "risk-1", result.RiskID)
	assert.Len(t, result.MeasureTitles, 1)
}

func TestAnalyzeSubmissionRepoError(t *testing.T) {
	f := newAnalysisFixture()
	f.subRepo.err = errors.New("mongo down")

	result, err := f.svc.AnalyzeSubmission(context.Background(), "sub-1")
	assert.Nil(t, result)
	assert.EqualError(t, err, "mongo down")
}