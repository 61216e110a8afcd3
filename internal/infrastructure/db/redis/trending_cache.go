package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

const (
	trendingKey = "trending:hashtags"
	trendingTTL = time.Minute
)

// TrendingCache stores the computed trending-hashtag list for a short window
// so the 24h tally is not recomputed on every request.
type TrendingCache struct {
	client *redis.Client
}

func NewTrendingCache(client *redis.Client) *TrendingCache {
	return &TrendingCache{client: client}
}

// Get returns the cached trending list, or (nil, nil) on a cache miss.
func (c *TrendingCache) Get(ctx context.Context) ([]domain.HashtagCount, error) {
	raw, err := c.client.Get(ctx, trendingKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("trending cache get: %w", err)
	}

	var trending []domain.HashtagCount
	if err := json.Unmarshal(raw, &trending); err != nil {
		return nil, fmt.Errorf("trending cache decode: %w", err)
	}
	return trending, nil
}

// Set stores the trending list for trendingTTL.
func (c *TrendingCache) Set(ctx context.Context, trending []domain.HashtagCount) error {
	raw, err := json.Marshal(trending)
	if err != nil {
		return fmt.Errorf("trending cache encode: %w", err)
	}
	if err := c.client.Set(ctx, trendingKey, raw, trendingTTL).Err(); err != nil {
		return fmt.Errorf("trending cache set: %w", err)
	}
	return nil
}
