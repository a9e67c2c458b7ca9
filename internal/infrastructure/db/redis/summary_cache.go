package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gotaagota/collections-api/internal/core/ports"
)

const summaryTTL = 30 * time.Second

// SummaryCache holds dashboard portfolio summaries for a short window.
// Writes never invalidate; staleness is bounded by summaryTTL.
// Key format: portfolio:summary:<scope> where scope is "office" or a
// collector id.
type SummaryCache struct {
	client *redis.Client
}

func NewSummaryCache(client *redis.Client) *SummaryCache {
	return &SummaryCache{client: client}
}

// Get returns the cached summary for scope, or (nil, nil) on a miss.
func (c *SummaryCache) Get(ctx context.Context, scope string) (*ports.PortfolioSummary, error) {
	raw, err := c.client.Get(ctx, c.key(scope)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("summary cache get: %w", err)
	}

	var summary ports.PortfolioSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("summary cache decode: %w", err)
	}
	return &summary, nil
}

// Put stores the summary for scope (expires after summaryTTL).
func (c *SummaryCache) Put(ctx context.Context, scope string, summary *ports.PortfolioSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("summary cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(scope), raw, summaryTTL).Err()
}

func (c *SummaryCache) key(scope string) string {
	return "portfolio:summary:" + scope
}
