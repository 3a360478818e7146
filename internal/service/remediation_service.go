package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"worksafe/internal/model"
	"worksafe/internal/repository"
	"worksafe/internal/taxonomy"
)

// riskTitle is the fixed title of every hazard this engine creates. The
// "psychosocial" substring doubles as the signature the year report counts
// by.
const riskTitle = "Strained psychosocial work environment"

// ownerRolePriority is the order in which ownership candidates are tried.
// No qualifying member is a valid terminal state, not an error.
var ownerRolePriority = []string{
	model.RoleSafetyOfficer,
	model.RoleHealthProvider,
	model.RoleAdministrator,
}

// RemediationService converts a positive classification into one risk
// record plus its remediation measures, and fans out notifications.
type RemediationService struct {
	riskRepo    repository.RiskRepo
	measureRepo repository.MeasureRepo
	userRepo    repository.UserRepo
	notifier    Notifier
	now         func() time.Time
}

// NewRemediationService creates a new remediation service
func NewRemediationService(
	riskRepo repository.RiskRepo,
	measureRepo repository.MeasureRepo,
	userRepo repository.UserRepo,
	notifier Notifier,
) *RemediationService {
	return &RemediationService{
		riskRepo:    riskRepo,
		measureRepo: measureRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

// Remediate synthesizes the risk and measures for a classification that
// requires action. Persistence is sequential: if a measure write fails the
// risk and prior measures stay in place and the caller receives a
// PartialPersistenceError carrying what was created. Two invocations for
// the same submission create two independent record sets; callers needing
// idempotency must lock or deduplicate externally.
func (s *RemediationService) Remediate(ctx context.Context, sub *model.Submission, cls model.Classification) (string, []string, error) {
	if !cls.RequiresAction {
		return "", nil, nil
	}

	ownerID := s.resolveOwner(ctx, sub.TenantID)

	risk := &model.Risk{
		TenantID:    sub.TenantID,
		Title:       riskTitle,
		Category:    model.RiskCategoryHealth,
		Likelihood:  likelihoodFor(cls),
		Consequence: 4,
		Status:      model.RiskStatusOpen,
		OwnerID:     ownerID,
		Description: buildDescription(cls),
	}
	risk.Score = risk.Likelihood * risk.Consequence

	riskID, err := s.riskRepo.Create(ctx, risk)
	if err != nil {
		return "", nil, fmt.Errorf("creating risk: %w", err)
	}
	log.Printf("remediation: created risk %s (likelihood %d, score %d) for submission %s",
		riskID, risk.Likelihood, risk.Score, sub.ID)

	measures := buildMeasures(cls, s.now())
	created := []string{}
	for i := range measures {
		measures[i].RiskID = riskID
		measures[i].TenantID = sub.TenantID
		measures[i].ResponsibleID = ownerID
		if _, err := s.measureRepo.Create(ctx, &measures[i]); err != nil {
			return riskID, created, &PartialPersistenceError{
				RiskID:          riskID,
				CreatedMeasures: created,
				Err:             err,
			}
		}
		created = append(created, measures[i].Title)
	}

	s.dispatchNotifications(ctx, sub.TenantID, riskID, cls)

	return riskID, created, nil
}

// resolveOwner returns the first member holding one of the prioritized
// roles, or "" when no member qualifies.
func (s *RemediationService) resolveOwner(ctx context.Context, tenantID string) string {
	for _, role := range ownerRolePriority {
		member, err := s.userRepo.FirstByRole(ctx, tenantID, role)
		if err != nil {
			log.Printf("remediation: owner lookup for role %s failed: %v", role, err)
			continue
		}
		if member != nil {
			return member.ID
		}
	}
	log.Printf("remediation: no ownership candidate in tenant %s, leaving risk unassigned", tenantID)
	return ""
}

func (s *RemediationService) dispatchNotifications(ctx context.Context, tenantID, riskID string, cls model.Classification) {
	link := "/risks/" + riskID

	var content model.NotificationContent
	if len(cls.CriticalIncidents) > 0 {
		topics := make([]string, 0, len(cls.CriticalIncidents))
		for _, inc := range cls.CriticalIncidents {
			topics = append(topics, string(inc.Type))
		}
		content = model.NotificationContent{
			Title: "Critical psychosocial disclosures reported",
			Message: fmt.Sprintf("A survey response reports %s. A risk record with remediation measures has been opened and needs immediate attention.",
				strings.Join(topics, ", ")),
			Link: link,
		}
	} else {
		content = model.NotificationContent{
			Title: "Elevated psychosocial risk detected",
			Message: fmt.Sprintf("Survey analysis classified the work environment as %s risk (overall score %.1f). A risk record with remediation measures has been opened.",
				cls.OverallRiskLevel, cls.OverallScore),
			Link: link,
		}
	}

	s.notifier.Notify(ctx, tenantID, model.RoleSafetyOfficer, content)
	s.notifier.Notify(ctx, tenantID, model.RoleHealthProvider, content)
}

// likelihoodFor maps the classification onto the 1-5 likelihood scale.
// Incident frequency dominates the score-based ladder.
func likelihoodFor(cls model.Classification) int {
	for _, inc := range cls.CriticalIncidents {
		if inc.Frequency == taxonomy.FrequencyOften {
			return 5
		}
	}
	for _, inc := range cls.CriticalIncidents {
		if inc.Frequency == taxonomy.FrequencySometimes {
			return 4
		}
	}
	switch {
	case cls.OverallScore < 2.5:
		return 4
	case cls.OverallScore < 3.5:
		return 3
	default:
		return 2
	}
}

// buildDescription renders the narrative stored on the risk record:
// overall score, critical disclosures, then the per-section breakdown.
func buildDescription(cls model.Classification) string {
	var b strings.Builder
	b.WriteString("Automated analysis of a psychosocial survey submission.\n")
	fmt.Fprintf(&b, "Overall score: %.1f of 5.\n", cls.OverallScore)

	if len(cls.CriticalIncidents) > 0 {
		b.WriteString("\nCritical disclosures:\n")
		for _, inc := range cls.CriticalIncidents {
			fmt.Fprintf(&b, "- %s reported with frequency %q\n", inc.Type, inc.Frequency)
		}
	}

	b.WriteString("\nSection breakdown:\n")
	for _, sec := range cls.Sections {
		fmt.Fprintf(&b, "- [%s] %s: %.1f", sec.RiskLevel, sec.Section, sec.Average)
		if len(sec.CriticalFields) > 0 {
			fmt.Fprintf(&b, " (critical: %s)", strings.Join(sec.CriticalFields, "; "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// buildMeasures applies the fixed remediation rule set. Rules are not
// mutually exclusive: every matching rule fires. The 90-day follow-up is
// unconditional, so a firing synthesizer always yields at least one
// measure.
func buildMeasures(cls model.Classification, now time.Time) []model.Measure {
	measures := []model.Measure{}

	add := func(title, description string, dueInDays int) {
		measures = append(measures, model.Measure{
			Title:       title,
			Description: description,
			DueAt:       now.AddDate(0, 0, dueInDays),
			Status:      model.MeasureStatusPlanned,
			Category:    model.RiskCategoryHealth,
		})
	}

	if hasIncident(cls, model.IncidentBullying) || hasIncident(cls, model.IncidentHarassment) {
		add("Immediate handling of reported bullying or harassment",
			"Initiate the formal procedure for reported bullying/harassment: document the disclosure, inform the safety officer and follow up with those affected.",
			7)
	}

	for _, sec := range cls.Sections {
		if sec.RiskLevel != model.RiskLevelHigh {
			continue
		}
		for _, rec := range recommendationsFor(sec.Section) {
			if rec.Urgent {
				add(rec.Text,
					fmt.Sprintf("Recommended action for the %q section, which scored %.1f.", sec.Section, sec.Average),
					14)
			}
		}
	}

	if sectionLevel(cls, taxonomy.SectionWorkload) == model.RiskLevelHigh {
		add("Dialogue meeting on workload",
			"Hold a dialogue meeting between management and employees about workload, priorities and staffing.",
			14)
	}

	if sectionLevel(cls, taxonomy.SectionLeadership) == model.RiskLevelHigh {
		add("Leadership training for managers",
			"Arrange training for managers on supportive leadership, feedback and follow-up of their reports.",
			30)
	}

	add("Psychosocial follow-up survey in 90 days",
		"Re-run the psychosocial survey to verify that the remediation measures are working.",
		90)

	return measures
}

func hasIncident(cls model.Classification, t model.IncidentType) bool {
	for _, inc := range cls.CriticalIncidents {
		if inc.Type == t {
			return true
		}
	}
	return false
}

func sectionLevel(cls model.Classification, name string) model.RiskLevel {
	for _, sec := range cls.Sections {
		if sec.Section == name {
			return sec.RiskLevel
		}
	}
	return ""
}

func recommendationsFor(sectionName string) []taxonomy.Recommendation {
	for _, sec := range taxonomy.Sections() {
		if sec.Name == sectionName {
			return sec.Recommendations
		}
	}
	return nil
}
