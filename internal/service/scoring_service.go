package service

import (
	"strconv"
	"strings"

	"worksafe/internal/model"
	"worksafe/internal/taxonomy"
)

// ScoringService computes section scores, detects critical incidents and
// classifies overall risk for a single submission. It is pure: no I/O, no
// state across calls.
type ScoringService struct {
	matcher taxonomy.Matcher
}

// NewScoringService creates a scoring service. A nil matcher falls back to
// the default keyword matcher.
func NewScoringService(matcher taxonomy.Matcher) *ScoringService {
	if matcher == nil {
		matcher = taxonomy.KeywordMatcher{}
	}
	return &ScoringService{matcher: matcher}
}

// ScoreSections groups scale fields into the fixed taxonomy and averages
// the answered values. Every taxonomy section appears in the output, with
// average 0 when nothing matched or nothing was answered. A field whose
// value is <= 2 is recorded as a critical field of its section.
func (s *ScoringService) ScoreSections(survey *model.Survey, sub *model.Submission) []model.SectionScore {
	scores := make([]model.SectionScore, 0, taxonomy.SectionCount())

	for _, section := range taxonomy.Sections() {
		var sum float64
		var count int
		critical := []string{}

		for i := range survey.Fields {
			field := &survey.Fields[i]
			if field.Type != model.FieldTypeScale {
				continue
			}
			if !s.matcher.Matches(field.Label, section.Keywords) {
				continue
			}
			v, ok := parseScaleValue(sub.ValueFor(field.ID))
			if !ok {
				continue
			}
			sum += v
			count++
			if v <= 2 {
				critical = append(critical, field.Label)
			}
		}

		avg := 0.0
		if count > 0 {
			avg = sum / float64(count)
		}

		scores = append(scores, model.SectionScore{
			Section:        section.Name,
			Average:        avg,
			CriticalFields: critical,
			RiskLevel:      riskLevelForAverage(avg),
		})
	}

	return scores
}

// DetectIncidents scans frequency fields for the sensitive-topic keywords.
// Per topic only the first matching field is read; an unanswered field
// defaults to "Never". An incident is emitted only when the answer is not
// exactly "Never".
func (s *ScoringService) DetectIncidents(survey *model.Survey, sub *model.Submission) []model.CriticalIncident {
	incidents := []model.CriticalIncident{}

	for _, ik := range taxonomy.IncidentKeywords() {
		field := s.firstFrequencyField(survey, ik.Keyword)
		if field == nil {
			continue
		}
		freq := taxonomy.FrequencyNever
		if v := sub.ValueFor(field.ID); v != nil && *v != "" {
			freq = *v
		}
		if freq == taxonomy.FrequencyNever {
			continue
		}
		incidents = append(incidents, model.CriticalIncident{
			Type:      ik.Type,
			Frequency: freq,
		})
	}

	return incidents
}

// Classify combines section scores and incidents into the overall verdict.
// The overall score averages every section, zero-data sections included,
// which dilutes the mean toward zero (kept for parity with the historical
// calculation).
func (s *ScoringService) Classify(sections []model.SectionScore, incidents []model.CriticalIncident) model.Classification {
	level := model.RiskLevelLow
	if len(incidents) > 0 {
		level = model.RiskLevelHigh
	}
	for _, sec := range sections {
		if sec.RiskLevel == model.RiskLevelHigh {
			level = model.RiskLevelHigh
		}
		if sec.RiskLevel == model.RiskLevelMedium && level == model.RiskLevelLow {
			level = model.RiskLevelMedium
		}
	}

	var sum float64
	for _, sec := range sections {
		sum += sec.Average
	}
	overall := 0.0
	if len(sections) > 0 {
		overall = sum / float64(len(sections))
	}

	return model.Classification{
		OverallScore:      overall,
		OverallRiskLevel:  level,
		RequiresAction:    level != model.RiskLevelLow,
		Sections:          sections,
		CriticalIncidents: incidents,
	}
}

// Evaluate runs the full scoring pipeline for one submission
func (s *ScoringService) Evaluate(survey *model.Survey, sub *model.Submission) model.Classification {
	sections := s.ScoreSections(survey, sub)
	incidents := s.DetectIncidents(survey, sub)
	return s.Classify(sections, incidents)
}

func (s *ScoringService) firstFrequencyField(survey *model.Survey, keyword string) *model.SurveyField {
	for i := range survey.Fields {
		field := &survey.Fields[i]
		if field.Type != model.FieldTypeFrequency {
			continue
		}
		if s.matcher.MatchesKeyword(field.Label, keyword) {
			return field
		}
	}
	return nil
}

func parseScaleValue(raw *string) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// riskLevelForAverage applies the fixed cut points. Boundaries are strict:
// 2.5 is MEDIUM, 3.5 is LOW.
func riskLevelForAverage(avg float64) model.RiskLevel {
	switch {
	case avg < 2.5:
		return model.RiskLevelHigh
	case avg < 3.5:
		return model.RiskLevelMedium
	default:
		return model.RiskLevelLow
	}
}
