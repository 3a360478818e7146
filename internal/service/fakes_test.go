package service

import (
	"context"
	"fmt"
	"time"

	"worksafe/internal/model"
)

// In-memory repository fakes shared by the service tests.

type fakeSubmissionRepo struct {
	subs []*model.Submission
	err  error
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	if f.err != nil {
		return f.err
	}
	if sub.ID == "" {
		sub.ID = fmt.Sprintf("sub-%d", len(f.subs)+1)
	}
	f.subs = append(f.subs, sub)
	return nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, sub := range f.subs {
		if sub.ID == id {
			return sub, nil
		}
	}
	return nil, nil
}

func (f *fakeSubmissionRepo) ListByTenantYear(ctx context.Context, tenantID string, year int) ([]*model.Submission, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Submission
	for _, sub := range f.subs {
		if sub.TenantID != tenantID || sub.SubmittedAt.Year() != year {
			continue
		}
		if sub.Status != model.SubmissionSubmitted && sub.Status != model.SubmissionApproved {
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

type fakeSurveyRepo struct {
	surveys map[string]*model.Survey
}

func (f *fakeSurveyRepo) Create(ctx context.Context, survey *model.Survey) error {
	if f.surveys == nil {
		f.surveys = map[string]*model.Survey{}
	}
	if survey.ID == "" {
		survey.ID = fmt.Sprintf("survey-%d", len(f.surveys)+1)
	}
	f.surveys[survey.ID] = survey
	return nil
}

func (f *fakeSurveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	return f.surveys[id], nil
}

func (f *fakeSurveyRepo) ListByTenant(ctx context.Context, tenantID string) ([]*model.Survey, error) {
	var out []*model.Survey
	for _, s := range f.surveys {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSurveyRepo) Update(ctx context.Context, survey *model.Survey) error {
	f.surveys[survey.ID] = survey
	return nil
}

type fakeRiskRepo struct {
	risks     []*model.Risk
	createErr error
}

func (f *fakeRiskRepo) Create(ctx context.Context, risk *model.Risk) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	risk.ID = fmt.Sprintf("risk-%d", len(f.risks)+1)
	if risk.CreatedAt.IsZero() {
		risk.CreatedAt = time.Now()
	}
	f.risks = append(f.risks, risk)
	return risk.ID, nil
}

func (f *fakeRiskRepo) GetByID(ctx context.Context, id string) (*model.Risk, error) {
	for _, r := range f.risks {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRiskRepo) CountPsychosocial(ctx context.Context, tenantID string, from, to time.Time) (int, error) {
	n := 0
	for _, r := range f.risks {
		if r.TenantID == tenantID && r.Category == model.RiskCategoryHealth &&
			!r.CreatedAt.Before(from) && !r.CreatedAt.After(to) {
			n++
		}
	}
	return n, nil
}

type fakeMeasureRepo struct {
	measures  []*model.Measure
	failAfter int // fail the (failAfter+1)th create; 0 disables when failErr nil
	failErr   error
}

func (f *fakeMeasureRepo) Create(ctx context.Context, measure *model.Measure) (string, error) {
	if f.failErr != nil && len(f.measures) >= f.failAfter {
		return "", f.failErr
	}
	measure.ID = fmt.Sprintf("measure-%d", len(f.measures)+1)
	if measure.CreatedAt.IsZero() {
		measure.CreatedAt = time.Now()
	}
	f.measures = append(f.measures, measure)
	return measure.ID, nil
}

func (f *fakeMeasureRepo) ListByRisk(ctx context.Context, riskID string) ([]*model.Measure, error) {
	var out []*model.Measure
	for _, m := range f.measures {
		if m.RiskID == riskID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeasureRepo) CountImplementedPsychosocial(ctx context.Context, tenantID string, from, to time.Time) (int, error) {
	n := 0
	for _, m := range f.measures {
		if m.TenantID == tenantID && m.Status == model.MeasureStatusImplemented &&
			!m.CreatedAt.Before(from) && !m.CreatedAt.After(to) {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	members []*model.Member
	err     error
}

func (f *fakeUserRepo) Create(ctx context.Context, member *model.Member) error {
	f.members = append(f.members, member)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	for _, m := range f.members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FirstByRole(ctx context.Context, tenantID, role string) (*model.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.members {
		if m.TenantID == tenantID && m.HasRole(role) {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, tenantID, role string) ([]*model.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Member
	for _, m := range f.members {
		if m.TenantID == tenantID && m.HasRole(role) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications []*model.Notification
	createErr     error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit int64) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

type notifyCall struct {
	tenantID  string
	roleGroup string
	content   model.NotificationContent
}

type fakeNotifier struct {
	calls []notifyCall
}

func (f *fakeNotifier) Notify(ctx context.Context, tenantID, roleGroup string, content model.NotificationContent) {
	f.calls = append(f.calls, notifyCall{tenantID: tenantID, roleGroup: roleGroup, content: content})
}

type fakeBroadcaster struct {
	sent map[string][]*model.Notification
}

func (f *fakeBroadcaster) NotifyMember(memberID string, n *model.Notification) {
	if f.sent == nil {
		f.sent = map[string][]*model.Notification{}
	}
	f.sent[memberID] = append(f.sent[memberID], n)
}

type cacheKey struct {
	tenantID string
	year     int
}

type fakeReportCache struct {
	reports     map[cacheKey]*model.Report
	summaries   map[cacheKey]string
	invalidated []cacheKey
	err         error
}

func newFakeReportCache() *fakeReportCache {
	return &fakeReportCache{
		reports:   map[cacheKey]*model.Report{},
		summaries: map[cacheKey]string{},
	}
}

func (f *fakeReportCache) GetReport(ctx context.Context, tenantID string, year int) (*model.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reports[cacheKey{tenantID, year}], nil
}

func (f *fakeReportCache) SetReport(ctx context.Context, report *model.Report) error {
	if f.err != nil {
		return f.err
	}
	f.reports[cacheKey{report.TenantID, report.Year}] = report
	return nil
}

func (f *fakeReportCache) GetSummary(ctx context.Context, tenantID string, year int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.summaries[cacheKey{tenantID, year}], nil
}

func (f *fakeReportCache) SetSummary(ctx context.Context, tenantID string, year int, summary string) error {
	if f.err != nil {
		return f.err
	}
	f.summaries[cacheKey{tenantID, year}] = summary
	return nil
}

func (f *fakeReportCache) Invalidate(ctx context.Context, tenantID string, year int) error {
	key := cacheKey{tenantID, year}
	f.invalidated = append(f.invalidated, key)
	if f.err != nil {
		return f.err
	}
	delete(f.reports, key)
	delete(f.summaries, key)
	return nil
}

func strPtr(s string) *string { return &s }
