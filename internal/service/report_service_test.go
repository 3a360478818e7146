package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worksafe/internal/model"
	"worksafe/internal/taxonomy"
)

type reportFixture struct {
	svc         *ReportService
	subRepo     *fakeSubmissionRepo
	surveyRepo  *fakeSurveyRepo
	riskRepo    *fakeRiskRepo
	measureRepo *fakeMeasureRepo
	cache       *fakeReportCache
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		subRepo:     &fakeSubmissionRepo{},
		surveyRepo:  &fakeSurveyRepo{},
		riskRepo:    &fakeRiskRepo{},
		measureRepo: &fakeMeasureRepo{},
		cache:       newFakeReportCache(),
	}
	f.svc = NewReportService(f.subRepo, f.surveyRepo, f.riskRepo, f.measureRepo, NewScoringService(nil), f.cache)
	return f
}

// fullSurvey has one scale field per taxonomy section plus one bullying and
// one harassment frequency field.
func (f *reportFixture) fullSurvey() *model.Survey {
	survey := &model.Survey{
		ID:       "survey-1",
		TenantID: "t1",
		Category: model.SurveyCategoryPsychosocial,
		Fields: []model.SurveyField{
			scaleField("f1", "Weekly workload"),
			scaleField("f2", "Support from manager"),
			scaleField("f3", "Team atmosphere"),
			scaleField("f4", "Influence over decisions"),
			scaleField("f5", "Competence development"),
			scaleField("f6", "Work-life balance"),
			frequencyField("f7", "Have you experienced bullying?"),
			frequencyField("f8", "Have you experienced harassment?"),
		},
	}
	_ = f.surveyRepo.Create(context.Background(), survey)
	return survey
}

func (f *reportFixture) addSubmission(surveyID string, year int, values map[string]string) {
	sub := &model.Submission{
		ID:          fmt.Sprintf("sub-%d", len(f.subRepo.subs)+1),
		TenantID:    "t1",
		SurveyID:    surveyID,
		Status:      model.SubmissionSubmitted,
		SubmittedAt: time.Date(year, 6, 15, 10, 0, 0, 0, time.UTC),
	}
	for fieldID, v := range values {
		sub.Values = append(sub.Values, model.ResponseValue{FieldID: fieldID, Value: strPtr(v)})
	}
	_ = f.subRepo.Create(context.Background(), sub)
}

func allSections(value string) map[string]string {
	return map[string]string{
		"f1": value, "f2": value, "f3": value,
		"f4": value, "f5": value, "f6": value,
	}
}

func TestGetReportEmptyYear(t *testing.T) {
	f := newReportFixture()

	report, err := f.svc.GetReport(context.Background(), "t1", 2026)
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalResponses)
	assert.Zero(t, report.OverallScore)
	require.Len(t, report.SectionAverages, taxonomy.SectionCount())
	for _, sa := range report.SectionAverages {
		assert.Zero(t, sa.Average)
	}
	assert.Equal(t, model.RiskDistribution{}, report.RiskDistribution)
	assert.Nil(t, report.Trend)
	for _, n := range report.CriticalIncidentCounts {
		assert.Zero(t, n)
	}
}

func TestGetReportHealthyYear(t *testing.T) {
	f := newReportFixture()
	survey := f.fullSurvey()
	for i := 0; i < 10; i++ {
		f.addSubmission(survey.ID, 2026, allSections("5"))
	}

	report, err := f.svc.GetReport(context.Background(), "t1", 2026)
	require.NoError(t, err)

	assert.Equal(t, 10, report.TotalResponses)
	assert.InDelta(t, 5.0, report.OverallScore, 1e-9)
	for _, sa := range report.SectionAverages {
		assert.InDelta(t, 5.0, sa.Average, 1e-9, sa.Section)
	}
	assert.Equal(t, taxonomy.SectionCount()*10, report.RiskDistribution.Low)
	assert.Zero(t, report.RiskDistribution.Medium)
	assert.Zero(t, report.RiskDistribution.High)
	assert.Empty(t, report.TopConcerns)
	assert.Nil(t, report.Trend)
}

func TestGetReportPoolsRawAnswersAcrossSubmissions(t *testing.T) {
	f := newReportFixture()
	survey := &model.Survey{
		ID:       "survey-1",
		TenantID: "t1",
		Category: model.SurveyCategoryPsychosocial,
		Fields: []model.SurveyField{
			scaleField("f1", "Workload this week"),
			scaleField("f2", "Workload peaks"),
		},
	}
	require.NoError(t, f.surveyRepo.Create(context.Background(), survey))

	f.addSubmission(survey.ID, 2026, map[string]string{"f1": "1", "f2": "1"})
	f.addSubmission(survey.ID, 2026, map[string]string{"f1": "5"})

	report, err := f.svc.GetReport(context.Background(), "t1", 2026)
	require.NoError(t, err)

	// Three raw answers pooled: (1+1+5)/3, not the mean of per-submission
	// means (which would be 3.0).
	var workload model.SectionAverage
	for _, sa := range report.SectionAverages {
		if sa.Section == taxonomy.SectionWorkload {
			workload = sa
		}
	}
	assert.InDelta(t, 7.0/3.0, workload.Average, 1e-9)
}

func TestGetReportSkipsOtherSurveyCategories(t *testing.T) {
	f := newReportFixture()
	survey := f.fullSurvey()
	other := &model.Survey{ID: "survey-2", TenantID: "t1", Category: "fire-safety",
		Fields: []model.SurveyField{scaleField("f1", "Workload this week")}}
	require.NoError(t, f.surveyRepo.Create(context.Background(), other))

	f.addSubmission(survey.ID, 2026, allSections("4"))
	f.addSubmission(other.ID, 2026, map[string]string{"f1": "1"})

	report, err := f.svc.GetReport(context.Background(), "t1", 2026)
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalResponses)
	assert.InDelta(t, 4.0, report.OverallScore, 1e-9)
}

func TestGetReportIncidentCounts(t *testing.T) {
	f := newReportFixture()
	survey := f.fullSurvey()

	withIncident := func(fieldID, freq string) map[string]string {
		values := allSections("4")
		values[fieldID] = freq
		return values
	}
	f.addSubmission(survey.ID, 2026, withIncident("f7", taxonomy.FrequencySometimes))
	f.addSubmission(survey.ID, 2026, withIncident("f7", taxonomy.FrequencyOften))
	f.addSubmission(survey.ID, 2026, withIncident("f8", taxonomy.FrequencyRarely))
	f.addSubmission(survey.ID, 2026, allSections("4"))

	report, err := f.svc.GetReport(context.Background(), "t1", 2026)
	require.NoError(t, err)

	assert.Equal(t, 2, report.CriticalIncidentCounts[model.IncidentBullying])
	assert.Equal(t, 1, report.CriticalIncidentCounts[model.IncidentHarassment])
	assert.Zero(t, report.CriticalIncidentCounts[model.IncidentImproperPressure])
	assert.Zero(t, report.CriticalIncidentCounts[model.IncidentUnresolvedConflict])
}

func TestGetReportTopConcernsAscending(t *testing.T) {
	f := newReportFixture()
	survey := f.fullSurvey()
	f.addSubmission(survey.ID, 2026, map[string]string{
		"f1": "2",   // Workload
		"f2": "3",   // Leadership & support
		"f3": "4",   // Social environment
		"f4": "3.2", // Influence & control
		"f5": "5",   // Competence & development
		"f6": "4",   // Work-life balance
	})

	report, err := f.svc.GetReport(context.Background(), "t1", 2026)
	require.NoError(t, err)

	require.Len(t, report.TopConcerns, 3)
	assert.Equal(t, taxonomy.SectionWorkload, report.TopConcerns[0].Section)
	assert.Equal(t, taxonomy.SectionLeadership, report.TopConcerns[1].Section)
	assert.Equal(t, taxonomy.SectionInfluence, report.TopConcerns[2].Section)
}

func TestGetReportTrend(t *testing.T) {
	f := newReportFixture()
	survey := f.fullSurvey()
	f.addSubmission(survey.ID, 2025, allSections("3"))
	f.addSubmission(survey.ID, 2026, allSections("4"))

	report, err := f.svc.GetReport(context.Background(), "t1", 2026)
	require.NoError(t, err)

	require.NotNil(t, report.Trend)
	assert.Equal(t, 2025, report.Trend.PreviousYear)
	assert.InDelta(t, 3.0, report.Trend.PreviousScore, 1e-9)
	assert.InDelta(t, 1.0, report.Trend.Delta, 1e-9)
	assert.True(t, report.Trend.Improving)
	require.Len(t, report.Trend.SectionDeltas, taxonomy.SectionCount())
	for _, d := range report.Trend.SectionDeltas {
		assert.InDelta(t, 1.0, d.Average, 1e-9, d.Section)
	}
}

func TestGetReportNoTrendWithoutPriorData(t *testing.T) {
	f := newReportFixture()
	survey := f.fullSurvey()
	f.addSubmission(survey.ID, 2026, allSections("4"))

	report, err := f.svc.GetReport(context.Background(), "t1", 2026)
	require.NoError(t, err)
	assert.Nil(t, report.Trend)
}

func TestGetReportFollowUpActivityCounts(t *testing.T) {
	f := newReportFixture()
	survey := f.fullSurvey()
	f.addSubmission(survey.ID, 2026, allSections("4"))

	created := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.riskRepo.Create(context.Background(), &model.Risk{
		TenantID: "t1", Category: model.RiskCategoryHealth, CreatedAt: created})
	require.NoError(t, err)
	for _, status := range []model.MeasureStatus{model.MeasureStatusImplemented, model.MeasureStatusPlanned} {
		_, err := f.measureRepo.Create(context.Background(), &model.Measure{
			TenantID: "t1", Status: status, CreatedAt: created})
		require.NoError(t, err)
	}

	report, err := f.svc.GetReport(context.Background(), "t1", 2026)
	require.NoError(t, err)

	assert.Equal(t, 1, report.GeneratedRisksCount)
	assert.Equal(t, 1, report.ImplementedMeasuresCount)
}

func TestGetReportServesCachedCopy(t *testing.T) {
	f := newReportFixture()
	cached := &model.Report{TenantID: "t1", Year: 2026, TotalResponses: 42}
	f.cache.reports[cacheKey{"t1", 2026}] = cached

	// The repo is broken; only the cache can satisfy the request.
	f.subRepo.err = errors.New("mongo down")

	report, err := f.svc.GetReport(context.Background(), "t1", 2026)
	require.NoError(t, err)
	assert.Equal(t, 42, report.TotalResponses)
}

func TestGetReportCachesResult(t *testing.T) {
	f := newReportFixture()
	survey := f.fullSurvey()
	f.addSubmission(survey.ID, 2026, allSections("4"))

	_, err := f.svc.GetReport(context.Background(), "t1", 2026)
	require.NoError(t, err)
	assert.Contains(t, f.cache.reports, cacheKey{"t1", 2026})
}

func TestGetManagementSummary(t *testing.T) {
	f := newReportFixture()
	survey := f.fullSurvey()
	f.addSubmission(survey.ID, 2026, allSections("4"))

	summary, err := f.svc.GetManagementSummary(context.Background(), "t1", 2026)
	require.NoError(t, err)

	assert.Contains(t, summary, "# Psychosocial Work Environment Report 2026")
	assert.Contains(t, summary, "1 survey responses were included")
	assert.Contains(t, summary, "No critical disclosures were reported.")
	assert.Equal(t, summary, f.cache.summaries[cacheKey{"t1", 2026}])
}

func TestRenderSummary(t *testing.T) {
	base := func() *model.Report {
		return &model.Report{
			TenantID:       "t1",
			Year:           2026,
			TotalResponses: 5,
			OverallScore:   4.0,
			SectionAverages: []model.SectionAverage{
				{Section: taxonomy.SectionWorkload, Average: 4.0},
			},
			CriticalIncidentCounts: map[model.IncidentType]int{},
		}
	}

	t.Run("stable headings", func(t *testing.T) {
		out := RenderSummary(base())
		for _, heading := range []string{
			"## Participation",
			"## Overall assessment",
			"## Section results",
			"## Critical disclosures",
			"## Follow-up activity",
			"## Conclusion",
		} {
			assert.Contains(t, out, heading)
		}
	})

	t.Run("warning on disclosures", func(t *testing.T) {
		report := base()
		report.CriticalIncidentCounts[model.IncidentBullying] = 2
		out := RenderSummary(report)
		assert.Contains(t, out, "WARNING: critical disclosures were reported")
		assert.Contains(t, out, "bullying: 2 response(s)")
	})

	t.Run("trend line", func(t *testing.T) {
		report := base()
		report.Trend = &model.Trend{PreviousYear: 2025, PreviousScore: 3.5, Delta: 0.5, Improving: true}
		out := RenderSummary(report)
		assert.Contains(t, out, "Compared with 2025 (score 3.5), the overall score has improved by 0.5.")
	})

	t.Run("conclusion buckets", func(t *testing.T) {
		cases := []struct {
			score float64
			want  string
		}{
			{4.2, "assessed as satisfactory"},
			{3.5, "assessed as satisfactory"},
			{3.0, "needs follow-up"},
			{2.5, "needs follow-up"},
			{2.0, "requires immediate action"},
		}
		for _, tc := range cases {
			report := base()
			report.OverallScore = tc.score
			assert.Contains(t, RenderSummary(report), tc.want, "score %.1f", tc.score)
		}
	})
}