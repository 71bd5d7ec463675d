package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/webstack-art/FormNest/internal/model"
)

// AnalyticsCache handles Redis caching of computed analytics reports.
// Reports are derived data: a cache miss just means re-aggregating, and
// every accepted submission invalidates its form's entry.
type AnalyticsCache interface {
	GetReport(ctx context.Context, formID string) (*model.AnalyticsReport, error)
	SetReport(ctx context.Context, formID string, report *model.AnalyticsReport) error
	Invalidate(ctx context.Context, formID string) error
}

type analyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalyticsCache creates a new analytics cache.
func NewAnalyticsCache(client *redis.Client, ttl time.Duration) AnalyticsCache {
	return &analyticsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *analyticsCache) reportKey(formID string) string {
	return fmt.Sprintf("form:%s:analytics", formID)
}

func (c *analyticsCache) GetReport(ctx context.Context, formID string) (*model.AnalyticsReport, error) {
	data, err := c.client.Get(ctx, c.reportKey(formID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.AnalyticsReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *analyticsCache) SetReport(ctx context.Context, formID string, report *model.AnalyticsReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.reportKey(formID), data, c.ttl).Err()
}

func (c *analyticsCache) Invalidate(ctx context.Context, formID string) error {
	return c.client.Del(ctx, c.reportKey(formID)).Err()
}
