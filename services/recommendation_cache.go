package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Minhaj225/NutriGoal/config"

	"github.com/redis/go-redis/v9"
)

const recommendationTTL = 5 * time.Minute

// RecommendationInvalidator is the slice of the cache that write paths
// need: dropping a student's cached rankings after their profile or
// history changes.
type RecommendationInvalidator interface {
	Invalidate(ctx context.Context, email string)
}

// RecommendationCache keeps recent scorer-backed responses so repeat
// requests within the TTL skip the candidate query and the ML round
// trip. Fallback responses are never cached: the scorer may come back
// any moment and a cached fallback would hide that.
type RecommendationCache struct {
	client *redis.Client
}

// NewRecommendationCache returns nil when redis is not configured;
// callers treat a nil cache as a no-op.
func NewRecommendationCache() *RecommendationCache {
	if config.Redis == nil {
		return nil
	}
	return &RecommendationCache{client: config.Redis}
}

func cacheKey(email string, limit int, mealType string) string {
	return fmt.Sprintf("recs:%s:%d:%s", email, limit, mealType)
}

func (c *RecommendationCache) Get(ctx context.Context, email string, limit int, mealType string) (*RecommendationResult, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, cacheKey(email, limit, mealType)).Bytes()
	if err != nil {
		return nil, false
	}
	var result RecommendationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (c *RecommendationCache) Set(ctx context.Context, email string, limit int, mealType string, result *RecommendationResult) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(email, limit, mealType), raw, recommendationTTL).Err(); err != nil {
		config.Log.Warnw("recommendation cache write failed", "email", email, "error", err)
	}
}

// Invalidate drops every cached response for the student, regardless of
// limit or category.
func (c *RecommendationCache) Invalidate(ctx context.Context, email string) {
	if c == nil {
		return
	}
	keys, err := c.client.Keys(ctx, fmt.Sprintf("recs:%s:*", email)).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		config.Log.Warnw("recommendation cache invalidation failed", "email", email, "error", err)
	}
}
