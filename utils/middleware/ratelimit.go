package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/conectaedu/conecta-api/utils/cache"
	"github.com/conectaedu/conecta-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// AttemptStore tracks attempt counts per client identifier within a rolling
// window. Implementations must be safe for concurrent use.
type AttemptStore interface {
	// Hit records one attempt for the key and returns the count within the
	// current window together with the time left until the window resets.
	Hit(ctx context.Context, key string) (int, time.Duration, error)
	// Reset clears all attempts for the key.
	Reset(ctx context.Context, key string) error
	// Sweep drops entries whose window has elapsed.
	Sweep()
}

type attemptEntry struct {
	count        int
	firstAttempt time.Time
}

// MemoryAttemptStore is an in-process AttemptStore backed by a mutex-guarded
// map. Expired entries are pruned on every Hit and by the periodic Sweep.
type MemoryAttemptStore struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]*attemptEntry
}

// NewMemoryAttemptStore creates a memory store with the given window
func NewMemoryAttemptStore(window time.Duration) *MemoryAttemptStore {
	return &MemoryAttemptStore{
		window:  window,
		entries: make(map[string]*attemptEntry),
	}
}

func (s *MemoryAttemptStore) Hit(_ context.Context, key string) (int, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, e := range s.entries {
		if now.Sub(e.firstAttempt) > s.window {
			delete(s.entries, k)
		}
	}

	entry, ok := s.entries[key]
	if !ok {
		entry = &attemptEntry{firstAttempt: now}
		s.entries[key] = entry
	}
	entry.count++

	remaining := s.window - now.Sub(entry.firstAttempt)
	return entry.count, remaining, nil
}

func (s *MemoryAttemptStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryAttemptStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, e := range s.entries {
		if now.Sub(e.firstAttempt) > s.window {
			delete(s.entries, k)
		}
	}
}

// Len returns the number of tracked keys
func (s *MemoryAttemptStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RedisAttemptStore is a distributed AttemptStore built on INCR + EXPIRE,
// for deployments with more than one API instance.
type RedisAttemptStore struct {
	cache  *cache.RedisCache
	window time.Duration
	prefix string
}

// NewRedisAttemptStore creates a redis-backed store with the given window
func NewRedisAttemptStore(redisCache *cache.RedisCache, window time.Duration, prefix string) *RedisAttemptStore {
	return &RedisAttemptStore{
		cache:  redisCache,
		window: window,
		prefix: prefix,
	}
}

func (s *RedisAttemptStore) Hit(ctx context.Context, key string) (int, time.Duration, error) {
	redisKey := s.prefix + ":" + key

	count, err := s.cache.Increment(ctx, redisKey)
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := s.cache.Expire(ctx, redisKey, s.window); err != nil {
			return 0, 0, err
		}
	}

	ttl, err := s.cache.TTL(ctx, redisKey)
	if err != nil || ttl < 0 {
		ttl = s.window
	}
	return int(count), ttl, nil
}

func (s *RedisAttemptStore) Reset(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, s.prefix+":"+key)
}

// Sweep is a no-op; redis expires keys on its own
func (s *RedisAttemptStore) Sweep() {}

// RateLimiter limits attempts on sensitive endpoints per client IP
type RateLimiter struct {
	store AttemptStore
	max   int
}

// NewRateLimiter creates a limiter that allows max attempts per window
func NewRateLimiter(store AttemptStore, max int) *RateLimiter {
	return &RateLimiter{
		store: store,
		max:   max,
	}
}

// Limit rejects requests once the client exceeded the allowed attempts.
// If the store fails the request is allowed through; a broken cache must not
// lock out legitimate clients.
func (l *RateLimiter) Limit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, remaining, err := l.store.Hit(c.Context(), c.IP())
		if err != nil {
			return c.Next()
		}

		if count > l.max {
			minutes := int(remaining.Minutes()) + 1
			c.Set("Retry-After", fmt.Sprintf("%d", int(remaining.Seconds())))
			return response.TooManyRequests(c,
				fmt.Sprintf("Too many attempts. Please try again in %d minutes.", minutes))
		}

		return c.Next()
	}
}

// ClearAttempts resets the counter for a client, used after a successful
// sign-in so earlier failures stop counting.
func (l *RateLimiter) ClearAttempts(ctx context.Context, ip string) {
	_ = l.store.Reset(ctx, ip)
}

// Store exposes the underlying attempt store for the periodic sweep job
func (l *RateLimiter) Store() AttemptStore {
	return l.store
}
