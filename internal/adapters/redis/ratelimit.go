// Package redis holds Redis-backed adapters.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter. The first hit in a window creates
// the counter with an expiry; hits beyond the limit are rejected until the
// window rolls over.
type RateLimiter struct {
	client redis.UniversalClient
	prefix string
	limit  int64
	window time.Duration
}

// NewRateLimiter builds a limiter allowing limit hits per window per key.
func NewRateLimiter(client redis.UniversalClient, prefix string, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	full := l.prefix + ":" + key

	n, err := l.client.Incr(ctx, full).Result()
	if err != nil {
		return false, fmt.Errorf("increment rate counter: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, full, l.window).Err(); err != nil {
			return false, fmt.Errorf("set rate counter expiry: %w", err)
		}
	}
	return n <= l.limit, nil
}
