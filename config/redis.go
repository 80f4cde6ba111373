package config

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stays nil when REDIS_ADDR is unset; the recommendation cache is
// skipped entirely in that case.
var Redis *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		Log.Infow("REDIS_ADDR not set, recommendation cache disabled")
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		Log.Warnw("redis unreachable, recommendation cache disabled", "addr", addr, "error", err)
		return
	}
	Redis = rdb
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
