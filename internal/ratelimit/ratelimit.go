// Package ratelimit throttles requests per key, either shared through Redis
// or per process.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter reports whether one more request for key fits the quota.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// FixedWindowLimiter limits requests per key in a fixed time window shared
// by every process using the same Redis.
type FixedWindowLimiter struct {
	limit  int
	window time.Duration

	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewFixedWindowLimiter creates a Redis-backed limiter. Windows are counted
// in whole milliseconds, so window must be at least one.
func NewFixedWindowLimiter(client *redis.Client, prefix string, limit int, window time.Duration) (*FixedWindowLimiter, error) {
	if err := checkQuota(limit, window); err != nil {
		return nil, err
	}
	if window < time.Millisecond {
		return nil, errors.New("rate limiter window must be at least 1ms")
	}
	if client == nil {
		return nil, errors.New("rate limiter redis client is required")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "yamdb:ratelimit"
	}
	return &FixedWindowLimiter{limit: limit, window: window, client: client, prefix: prefix, now: time.Now}, nil
}

// Allow counts the request in the current window of key. Redis failures
// deny the request.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil {
		return false
	}
	windowMs := l.window.Milliseconds()
	start := l.now().UnixMilli() / windowMs
	redisKey := l.prefix + ":" + bucketKey(key) + ":" + strconv.FormatInt(start, 10)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	count, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	return err == nil && count <= int64(l.limit)
}

// LocalLimiter is a per-process token bucket per key. Idle buckets are
// dropped once the map grows past maxKeys.
type LocalLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*rate.Limiter
	maxKeys int
}

// NewLocalLimiter allows limit requests per window with bursts up to limit.
func NewLocalLimiter(limit int, window time.Duration) (*LocalLimiter, error) {
	if err := checkQuota(limit, window); err != nil {
		return nil, err
	}
	return &LocalLimiter{
		limit:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		buckets: make(map[string]*rate.Limiter),
		maxKeys: 10000,
	}, nil
}

func (l *LocalLimiter) Allow(_ context.Context, key string) bool {
	key = bucketKey(key)
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= l.maxKeys {
			l.evictFull()
		}
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[key] = b
	}
	return b.Allow()
}

// evictFull removes buckets that have refilled completely, which carry no state.
func (l *LocalLimiter) evictFull() {
	now := time.Now()
	for k, b := range l.buckets {
		if b.TokensAt(now) >= float64(l.burst) {
			delete(l.buckets, k)
		}
	}
}

func checkQuota(limit int, window time.Duration) error {
	if limit <= 0 || window <= 0 {
		return errors.New("rate limiter requires positive limit and window")
	}
	return nil
}

// bucketKey normalizes key so blank keys share one bucket.
func bucketKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "unknown"
	}
	return key
}

// New returns a Redis limiter when redisURL is set and a local one otherwise.
// A zero limit disables throttling and yields a nil Limiter.
func New(redisURL, prefix string, limit int, window time.Duration) (Limiter, error) {
	if limit == 0 {
		return nil, nil
	}
	if strings.TrimSpace(redisURL) == "" {
		local, err := NewLocalLimiter(limit, window)
		if err != nil {
			return nil, err
		}
		return local, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	shared, err := NewFixedWindowLimiter(redis.NewClient(opts), prefix, limit, window)
	if err != nil {
		return nil, err
	}
	return shared, nil
}
