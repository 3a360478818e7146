package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"worksafe/internal/model"
)

// ReportCache handles Redis caching of year reports and management
// summaries. A tenant's entries are invalidated when a new submission for
// that year is analyzed.
type ReportCache interface {
	GetReport(ctx context.Context, tenantID string, year int) (*model.Report, error)
	SetReport(ctx context.Context, report *model.Report) error
	GetSummary(ctx context.Context, tenantID string, year int) (string, error)
	SetSummary(ctx context.Context, tenantID string, year int, summary string) error
	Invalidate(ctx context.Context, tenantID string, year int) error
}

type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a new report cache
func NewReportCache(client *redis.Client) ReportCache {
	return &reportCache{
		client: client,
		ttl:    time.Hour,
	}
}

func (c *reportCache) reportKey(tenantID string, year int) string {
	return fmt.Sprintf("tenant:%s:report:%d", tenantID, year)
}

func (c *reportCache) summaryKey(tenantID string, year int) string {
	return fmt.Sprintf("tenant:%s:report:%d:summary", tenantID, year)
}

func (c *reportCache) GetReport(ctx context.Context, tenantID string, year int) (*model.Report, error) {
	data, err := c.client.Get(ctx, c.reportKey(tenantID, year)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *reportCache) SetReport(ctx context.Context, report *model.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.reportKey(report.TenantID, report.Year), data, c.ttl).Err()
}

func (c *reportCache) GetSummary(ctx context.Context, tenantID string, year int) (string, error) {
	summary, err := c.client.Get(ctx, c.summaryKey(tenantID, year)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return summary, nil
}

func (c *reportCache) SetSummary(ctx context.Context, tenantID string, year int, summary string) error {
	return c.client.Set(ctx, c.summaryKey(tenantID, year), summary, c.ttl).Err()
}

func (c *reportCache) Invalidate(ctx context.Context, tenantID string, year int) error {
	return c.client.Del(ctx, c.reportKey(tenantID, year), c.summaryKey(tenantID, year)).Err()
}
