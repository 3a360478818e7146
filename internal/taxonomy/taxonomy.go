// Package taxonomy holds the fixed classification tables for the
// psychosocial survey engine: section definitions with their label
// keywords and canned recommendations, the sensitive-topic keyword list,
// and the frequency scale. The tables are constant configuration; field
// matching goes through the Matcher interface so the substring heuristic
// can be swapped for an explicit per-field attribute without touching
// call sites.
package taxonomy

import (
	"strings"

	"worksafe/internal/model"
)

// Frequency scale literals for categorical fields
const (
	FrequencyNever     = "Never"
	FrequencyRarely    = "Rarely"
	FrequencySometimes = "Sometimes"
	FrequencyOften     = "Often"
)

// Section names
const (
	SectionWorkload   = "Workload"
	SectionLeadership = "Leadership & support"
	SectionSocial     = "Social environment"
	SectionInfluence  = "Influence & control"
	SectionCompetence = "Competence & development"
	SectionWorkLife   = "Work-life balance"
)

// Recommendation is a canned follow-up action for a low-scoring section
type Recommendation struct {
	Text   string
	Urgent bool
}

// Section groups scale fields by label keywords
type Section struct {
	Name            string
	Keywords        []string
	Recommendations []Recommendation
}

// sections is the fixed taxonomy. Keywords are lowercase and matched as
// substrings against scale-field labels.
var sections = []Section{
	{
		Name:     SectionWorkload,
		Keywords: []string{"workload", "work pace", "time pressure", "deadline", "amount of work"},
		Recommendations: []Recommendation{
			{Text: "Review staffing and task distribution against actual capacity", Urgent: true},
			{Text: "Map peak-load periods and plan buffer capacity", Urgent: false},
		},
	},
	{
		Name:     SectionLeadership,
		Keywords: []string{"manager", "leader", "support", "feedback", "recognition"},
		Recommendations: []Recommendation{
			{Text: "Schedule one-on-one conversations between managers and their reports", Urgent: true},
		},
	},
	{
		Name:     SectionSocial,
		Keywords: []string{"atmosphere", "colleague", "team", "community", "inclusion"},
		Recommendations: []Recommendation{
			{Text: "Arrange a facilitated team workshop on collaboration climate", Urgent: false},
		},
	},
	{
		Name:     SectionInfluence,
		Keywords: []string{"influence", "control", "autonomy", "decision", "own work"},
		Recommendations: []Recommendation{
			{Text: "Involve employees in planning decisions that affect their own work", Urgent: false},
		},
	},
	{
		Name:     SectionCompetence,
		Keywords: []string{"competence", "development", "learning", "skills", "career"},
		Recommendations: []Recommendation{
			{Text: "Set up individual development plans with concrete training steps", Urgent: false},
		},
	},
	{
		Name:     SectionWorkLife,
		Keywords: []string{"balance", "private life", "rest", "recovery", "overtime"},
		Recommendations: []Recommendation{
			{Text: "Review overtime patterns and after-hours availability expectations", Urgent: true},
		},
	},
}

// IncidentKeyword maps a label keyword to a sensitive-topic type
type IncidentKeyword struct {
	Keyword string
	Type    model.IncidentType
}

// incidentKeywords is matched against frequency-field labels. Per topic,
// only the first matching field in the survey is read.
var incidentKeywords = []IncidentKeyword{
	{Keyword: "bully", Type: model.IncidentBullying},
	{Keyword: "harass", Type: model.IncidentHarassment},
	{Keyword: "pressure", Type: model.IncidentImproperPressure},
	{Keyword: "conflict", Type: model.IncidentUnresolvedConflict},
}

// Sections returns the fixed section taxonomy. Callers must not mutate it.
func Sections() []Section {
	return sections
}

// SectionCount is the fixed number of sections every scoring pass emits
func SectionCount() int {
	return len(sections)
}

// IncidentKeywords returns the sensitive-topic keyword table. Callers must
// not mutate it.
func IncidentKeywords() []IncidentKeyword {
	return incidentKeywords
}

// Matcher decides whether a field label belongs to a keyword set. The
// default is a case-insensitive substring test; a later revision can match
// on an explicit per-field section attribute instead.
type Matcher interface {
	Matches(label string, keywords []string) bool
	MatchesKeyword(label, keyword string) bool
}

// KeywordMatcher is the default case-insensitive substring Matcher
type KeywordMatcher struct{}

// Matches reports whether any keyword occurs in the label
func (m KeywordMatcher) Matches(label string, keywords []string) bool {
	for _, kw := range keywords {
		if m.MatchesKeyword(label, kw) {
			return true
		}
	}
	return false
}

// MatchesKeyword reports whether the keyword occurs in the label
func (KeywordMatcher) MatchesKeyword(label, keyword string) bool {
	return strings.Contains(strings.ToLower(label), keyword)
}
