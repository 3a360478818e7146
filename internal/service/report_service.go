package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"worksafe/internal/cache"
	"worksafe/internal/model"
	"worksafe/internal/repository"
	"worksafe/internal/taxonomy"
)

// ReportService aggregates all qualifying submissions for a tenant and
// year into a pooled report with a prior-year trend, and renders the
// management summary narrative.
type ReportService struct {
	submissionRepo repository.SubmissionRepo
	surveyRepo     repository.SurveyRepo
	riskRepo       repository.RiskRepo
	measureRepo    repository.MeasureRepo
	scoring        *ScoringService
	reportCache    cache.ReportCache
}

// NewReportService creates a new report service
func NewReportService(
	submissionRepo repository.SubmissionRepo,
	surveyRepo repository.SurveyRepo,
	riskRepo repository.RiskRepo,
	measureRepo repository.MeasureRepo,
	scoring *ScoringService,
	reportCache cache.ReportCache,
) *ReportService {
	return &ReportService{
		submissionRepo: submissionRepo,
		surveyRepo:     surveyRepo,
		riskRepo:       riskRepo,
		measureRepo:    measureRepo,
		scoring:        scoring,
		reportCache:    reportCache,
	}
}

// GetReport builds the year report for a tenant. Zero qualifying
// submissions yield a zeroed report, never an error.
func (s *ReportService) GetReport(ctx context.Context, tenantID string, year int) (*model.Report, error) {
	if s.reportCache != nil {
		if cached, err := s.reportCache.GetReport(ctx, tenantID, year); err != nil {
			log.Printf("report: cache read %s/%d failed: %v", tenantID, year, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	report, err := s.buildReport(ctx, tenantID, year)
	if err != nil {
		return nil, err
	}

	if s.reportCache != nil {
		if err := s.reportCache.SetReport(ctx, report); err != nil {
			log.Printf("report: cache write %s/%d failed: %v", tenantID, year, err)
		}
	}
	return report, nil
}

func (s *ReportService) buildReport(ctx context.Context, tenantID string, year int) (*model.Report, error) {
	pool, err := s.poolYear(ctx, tenantID, year)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		TenantID:               tenantID,
		Year:                   year,
		TotalResponses:         pool.totalResponses,
		OverallScore:           pool.overallScore,
		SectionAverages:        pool.sectionAverages,
		CriticalIncidentCounts: pool.incidentCounts,
		TopConcerns:            topConcerns(pool.sectionAverages),
		GeneratedAt:            time.Now(),
	}

	// Coarse approximation kept from the original calculation: sections
	// per band multiplied by the response count, not a per-respondent
	// tally.
	for _, sa := range pool.sectionAverages {
		switch riskLevelForAverage(sa.Average) {
		case model.RiskLevelHigh:
			report.RiskDistribution.High += pool.totalResponses
		case model.RiskLevelMedium:
			report.RiskDistribution.Medium += pool.totalResponses
		default:
			report.RiskDistribution.Low += pool.totalResponses
		}
	}

	if pool.totalResponses > 0 {
		prev, err := s.poolYear(ctx, tenantID, year-1)
		if err != nil {
			return nil, err
		}
		if prev.totalResponses > 0 {
			report.Trend = buildTrend(pool, prev, year-1)
		}
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 999999999, time.UTC)

	if report.GeneratedRisksCount, err = s.riskRepo.CountPsychosocial(ctx, tenantID, from, to); err != nil {
		return nil, err
	}
	if report.ImplementedMeasuresCount, err = s.measureRepo.CountImplementedPsychosocial(ctx, tenantID, from, to); err != nil {
		return nil, err
	}

	return report, nil
}

// yearPool holds pooled aggregates for one tenant-year
type yearPool struct {
	totalResponses  int
	sectionAverages []model.SectionAverage
	overallScore    float64
	incidentCounts  map[model.IncidentType]int
}

// poolYear combines every raw numeric answer from every qualifying
// submission into one mean per section (pooled over respondents, not an
// average of per-submission averages) and tallies incident disclosures
// per submission.
func (s *ReportService) poolYear(ctx context.Context, tenantID string, year int) (*yearPool, error) {
	subs, err := s.submissionRepo.ListByTenantYear(ctx, tenantID, year)
	if err != nil {
		return nil, err
	}

	sections := taxonomy.Sections()
	sums := make([]float64, len(sections))
	counts := make([]int, len(sections))
	incidentCounts := map[model.IncidentType]int{
		model.IncidentBullying:           0,
		model.IncidentHarassment:         0,
		model.IncidentImproperPressure:   0,
		model.IncidentUnresolvedConflict: 0,
	}

	surveys := map[string]*model.Survey{}
	included := 0

	for _, sub := range subs {
		survey, ok := surveys[sub.SurveyID]
		if !ok {
			survey, err = s.surveyRepo.GetByID(ctx, sub.SurveyID)
			if err != nil {
				return nil, err
			}
			surveys[sub.SurveyID] = survey
		}
		if survey == nil || survey.Category != model.SurveyCategoryPsychosocial {
			continue
		}
		included++

		for i, section := range sections {
			for j := range survey.Fields {
				field := &survey.Fields[j]
				if field.Type != model.FieldTypeScale {
					continue
				}
				if !s.scoring.matcher.Matches(field.Label, section.Keywords) {
					continue
				}
				if v, ok := parseScaleValue(sub.ValueFor(field.ID)); ok {
					sums[i] += v
					counts[i]++
				}
			}
		}

		for _, inc := range s.scoring.DetectIncidents(survey, sub) {
			incidentCounts[inc.Type]++
		}
	}

	averages := make([]model.SectionAverage, len(sections))
	var sum float64
	for i, section := range sections {
		avg := 0.0
		if counts[i] > 0 {
			avg = sums[i] / float64(counts[i])
		}
		averages[i] = model.SectionAverage{Section: section.Name, Average: avg}
		sum += avg
	}

	overall := 0.0
	if len(sections) > 0 {
		overall = sum / float64(len(sections))
	}

	return &yearPool{
		totalResponses:  included,
		sectionAverages: averages,
		overallScore:    overall,
		incidentCounts:  incidentCounts,
	}, nil
}

// topConcerns returns the three lowest-scoring sections below 3.5,
// ascending.
func topConcerns(averages []model.SectionAverage) []model.SectionAverage {
	concerns := []model.SectionAverage{}
	for _, sa := range averages {
		if sa.Average < 3.5 {
			concerns = append(concerns, sa)
		}
	}
	sort.SliceStable(concerns, func(i, j int) bool {
		return concerns[i].Average < concerns[j].Average
	})
	if len(concerns) > 3 {
		concerns = concerns[:3]
	}
	return concerns
}

func buildTrend(cur, prev *yearPool, prevYear int) *model.Trend {
	deltas := make([]model.SectionAverage, 0, len(cur.sectionAverages))
	for i, sa := range cur.sectionAverages {
		deltas = append(deltas, model.SectionAverage{
			Section: sa.Section,
			Average: sa.Average - prev.sectionAverages[i].Average,
		})
	}

	delta := cur.overallScore - prev.overallScore
	return &model.Trend{
		PreviousYear:  prevYear,
		PreviousScore: prev.overallScore,
		Delta:         delta,
		Improving:     delta > 0,
		SectionDeltas: deltas,
	}
}

// GetManagementSummary renders the narrative summary for a tenant-year.
// Headings are stable so the text can be embedded in larger documents.
func (s *ReportService) GetManagementSummary(ctx context.Context, tenantID string, year int) (string, error) {
	if s.reportCache != nil {
		if cached, err := s.reportCache.GetSummary(ctx, tenantID, year); err != nil {
			log.Printf("report: summary cache read %s/%d failed: %v", tenantID, year, err)
		} else if cached != "" {
			return cached, nil
		}
	}

	report, err := s.GetReport(ctx, tenantID, year)
	if err != nil {
		return "", err
	}

	summary := RenderSummary(report)

	if s.reportCache != nil {
		if err := s.reportCache.SetSummary(ctx, tenantID, year, summary); err != nil {
			log.Printf("report: summary cache write %s/%d failed: %v", tenantID, year, err)
		}
	}
	return summary, nil
}

// RenderSummary assembles the deterministic management summary from a
// report.
func RenderSummary(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Psychosocial Work Environment Report %d\n\n", report.Year)

	b.WriteString("## Participation\n")
	fmt.Fprintf(&b, "%d survey responses were included in this report.\n\n", report.TotalResponses)

	b.WriteString("## Overall assessment\n")
	fmt.Fprintf(&b, "The pooled overall score is %.1f of 5.\n", report.OverallScore)
	if report.Trend != nil {
		direction := "declined"
		if report.Trend.Improving {
			direction = "improved"
		}
		fmt.Fprintf(&b, "Compared with %d (score %.1f), the overall score has %s by %.1f.\n",
			report.Trend.PreviousYear, report.Trend.PreviousScore, direction, abs(report.Trend.Delta))
	}
	b.WriteString("\n")

	b.WriteString("## Section results\n")
	for _, sa := range report.SectionAverages {
		fmt.Fprintf(&b, "- %s: %.1f (%s)\n", sa.Section, sa.Average, riskLevelForAverage(sa.Average))
	}
	b.WriteString("\n")

	b.WriteString("## Critical disclosures\n")
	totalIncidents := 0
	for _, n := range report.CriticalIncidentCounts {
		totalIncidents += n
	}
	if totalIncidents > 0 {
		b.WriteString("WARNING: critical disclosures were reported and must be followed up without delay.\n")
		for _, t := range []model.IncidentType{
			model.IncidentBullying,
			model.IncidentHarassment,
			model.IncidentImproperPressure,
			model.IncidentUnresolvedConflict,
		} {
			if n := report.CriticalIncidentCounts[t]; n > 0 {
				fmt.Fprintf(&b, "- %s: %d response(s)\n", t, n)
			}
		}
	} else {
		b.WriteString("No critical disclosures were reported.\n")
	}
	b.WriteString("\n")

	if len(report.TopConcerns) > 0 {
		b.WriteString("## Areas of concern\n")
		for _, sa := range report.TopConcerns {
			fmt.Fprintf(&b, "- %s (%.1f)\n", sa.Section, sa.Average)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Follow-up activity\n")
	fmt.Fprintf(&b, "%d risk record(s) were generated and %d measure(s) implemented during the period.\n\n",
		report.GeneratedRisksCount, report.ImplementedMeasuresCount)

	b.WriteString("## Conclusion\n")
	switch {
	case report.OverallScore >= 3.5:
		b.WriteString("The psychosocial work environment is assessed as satisfactory.\n")
	case report.OverallScore >= 2.5:
		b.WriteString("The psychosocial work environment needs follow-up in the areas listed above.\n")
	default:
		b.WriteString("The psychosocial work environment requires immediate action.\n")
	}

	return b.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
