package security

import (
	"context"
	"fmt"
	"time"

	"hospital-website-backend/internal/cache"
	"hospital-website-backend/internal/config"
)

// RateKey is the counter key for ip within scope
func RateKey(ip, scope string) string {
	return fmt.Sprintf("rate_limit_%s_%s", ip, scope)
}

// RateDecision is the outcome of one rate check
type RateDecision struct {
	Allowed    bool
	Count      int
	RetryAfter time.Duration
}

// RateLimiter enforces per-IP sliding-window limits
type RateLimiter struct {
	store   cache.Store
	auditor *Auditor
	now     func() time.Time
}

// NewRateLimiter creates a limiter over store
func NewRateLimiter(store cache.Store, auditor *Auditor) *RateLimiter {
	return &RateLimiter{store: store, auditor: auditor, now: time.Now}
}

// WithClock replaces the limiter clock (tests)
func (l *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	l.now = now
	return l
}

// Allow records a hit for ip in scope unless the rule is exhausted
// Store errors allow the request
func (l *RateLimiter) Allow(ctx context.Context, ip, scope string, rule config.RateRule) RateDecision {
	allowed, count, err := l.store.SlidingWindow(ctx, RateKey(ip, scope), l.now(), rule.Window, rule.Max)
	if err != nil {
		l.auditor.Logger().WithError(err).WithField("scope", scope).Error("Rate limit store unavailable, allowing request")
		return RateDecision{Allowed: true}
	}
	if !allowed {
		l.auditor.Record(ctx, Event{
			Action:   ActionRateLimited,
			ClientIP: ip,
			Details:  fmt.Sprintf("Rate limit %s exceeded for %s", rule, scope),
			Warning:  true,
		})
		return RateDecision{Allowed: false, Count: count, RetryAfter: rule.Window}
	}
	return RateDecision{Allowed: true, Count: count}
}
