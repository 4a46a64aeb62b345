package google

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// ServiceType identifies a Google API for rate limiting purposes.
type ServiceType string

const (
	// ServiceGmail is the Gmail API.
	ServiceGmail ServiceType = "gmail"
	// ServiceDrive is the Google Drive API.
	ServiceDrive ServiceType = "drive"
	// ServiceCalendar is the Google Calendar API.
	ServiceCalendar ServiceType = "calendar"
)

// defaultBackoff applies when a 429 carries no Retry-After header.
const defaultBackoff = 30 * time.Second

// DefaultIdleTTL is how long an unused limiter is kept before it is evicted.
const DefaultIdleTTL = 30 * time.Minute

// RateLimit is a token bucket configuration.
type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
}

// DefaultRateLimits stay well below Google's per-user quotas.
var DefaultRateLimits = map[ServiceType]RateLimit{
	ServiceGmail:    {RequestsPerSecond: 2, Burst: 5},
	ServiceDrive:    {RequestsPerSecond: 8, Burst: 10},
	ServiceCalendar: {RequestsPerSecond: 5, Burst: 10},
}

// RateLimiters hands out one limiter per service and user, since Google
// enforces its quotas per user.
//
// Limiters unused for idleTTL are evicted, so users who stop calling and
// keys orphaned by refresh-token rotation do not accumulate.
type RateLimiters struct {
	mu        sync.Mutex
	limits    map[ServiceType]RateLimit
	limiters  map[limiterKey]*RateLimiter
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type limiterKey struct {
	service ServiceType
	userKey string
}

// NewRateLimiters creates a registry using limits, or DefaultRateLimits when nil.
func NewRateLimiters(limits map[ServiceType]RateLimit) *RateLimiters {
	if limits == nil {
		limits = DefaultRateLimits
	}
	return &RateLimiters{
		limits:   limits,
		limiters: make(map[limiterKey]*RateLimiter),
		idleTTL:  DefaultIdleTTL,
		now:      time.Now,
	}
}

// For returns the limiter for a service and user, creating it on first use.
func (r *RateLimiters) For(service ServiceType, userKey string) *RateLimiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= r.idleTTL {
		r.evictIdle(now)
	}

	key := limiterKey{service: service, userKey: userKey}
	if l, ok := r.limiters[key]; ok {
		l.lastUsed = now
		return l
	}
	cfg, ok := r.limits[service]
	if !ok {
		cfg = RateLimit{RequestsPerSecond: 5, Burst: 10}
	}
	l := &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		now:      r.now,
		lastUsed: now,
	}
	r.limiters[key] = l
	return l
}

// Len returns the number of live limiters.
func (r *RateLimiters) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.limiters)
}

// evictIdle drops limiters unused for idleTTL. Limiters inside a backoff
// window are kept so the backoff is not forgotten. Caller holds r.mu.
func (r *RateLimiters) evictIdle(now time.Time) {
	for key, l := range r.limiters {
		if now.Sub(l.lastUsed) >= r.idleTTL && !l.BackingOff() {
			delete(r.limiters, key)
		}
	}
	r.lastSweep = now
}

// LimiterKey derives a stable per-user key from a token set. The refresh
// token survives access-token rotation, so it is preferred.
func LimiterKey(tokens *domain.GoogleTokens) string {
	if tokens == nil {
		return ""
	}
	secret := tokens.RefreshToken
	if secret == "" {
		secret = tokens.AccessToken
	}
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:8])
}

// RateLimiter is a token bucket with a backoff window opened by 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	now     func() time.Time

	// lastUsed is guarded by the owning RateLimiters mutex.
	lastUsed time.Time
}

// Wait blocks until the backoff window has passed and a token is available.
func (l *RateLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	delay := l.retryAt.Sub(l.now())
	l.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return l.limiter.Wait(ctx)
}

// Backoff opens a backoff window after a 429. Non-positive values use the default.
func (l *RateLimiter) Backoff(retryAfterSeconds int) {
	d := defaultBackoff
	if retryAfterSeconds > 0 {
		d = time.Duration(retryAfterSeconds) * time.Second
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if next := l.now().Add(d); next.After(l.retryAt) {
		l.retryAt = next
	}
}

// BackingOff reports whether a backoff window is currently open.
func (l *RateLimiter) BackingOff() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now().Before(l.retryAt)
}

// Observe inspects an API error and opens a backoff window on 429.
func (l *RateLimiter) Observe(err error) {
	if err != nil && IsRateLimited(err) {
		l.Backoff(RetryAfter(err))
	}
}
