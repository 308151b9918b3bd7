package rateLimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter counts requests per key in fixed windows.
type RateLimiter struct {
	client *redis.Client
	rate   int
	period time.Duration
	now    func() time.Time
}

func NewRateLimiter(client *redis.Client, rate int, period time.Duration) *RateLimiter {
	return &RateLimiter{client: client, rate: rate, period: period, now: time.Now}
}

// Allow reports whether key has budget left in the current window.
// A nil limiter allows everything. Storage errors allow the request.
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	if rl == nil || rl.rate <= 0 {
		return true
	}
	window := rl.now().UnixNano() / int64(rl.period)
	fullKey := "rl:" + key + ":" + strconv.FormatInt(window, 10)

	pipe := rl.client.Pipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, rl.period)

	if _, err := pipe.Exec(ctx); err != nil {
		return true
	}
	return incr.Val() <= int64(rl.rate)
}
