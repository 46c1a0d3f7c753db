package security

import (
	"context"
	"fmt"
	"time"

	"hospital-website-backend/internal/cache"
)

// FailedAttemptsKey counts failed logins from ip
func FailedAttemptsKey(ip string) string {
	return "failed_attempts_" + ip
}

// LockoutKey flags ip as locked out
func LockoutKey(ip string) string {
	return "lockout_" + ip
}

// LoginGuard locks an IP out after repeated failed logins
type LoginGuard struct {
	store       cache.Store
	auditor     *Auditor
	maxAttempts int
	duration    time.Duration
}

// NewLoginGuard creates a guard locking out after maxAttempts for duration
func NewLoginGuard(store cache.Store, auditor *Auditor, maxAttempts int, duration time.Duration) *LoginGuard {
	return &LoginGuard{store: store, auditor: auditor, maxAttempts: maxAttempts, duration: duration}
}

// Duration returns the lockout length
func (g *LoginGuard) Duration() time.Duration {
	return g.duration
}

// IsLockedOut reports whether ip is currently locked out
func (g *LoginGuard) IsLockedOut(ctx context.Context, ip string) bool {
	_, locked, err := g.store.Get(ctx, LockoutKey(ip))
	if err != nil {
		g.auditor.Logger().WithError(err).WithField("client_ip", ip).Error("Lockout store unavailable, allowing login attempt")
		return false
	}
	return locked
}

// RecordFailure counts a failed login and locks ip out at the threshold
func (g *LoginGuard) RecordFailure(ctx context.Context, ip string) (attempts int64, locked bool) {
	attempts, err := g.store.Incr(ctx, FailedAttemptsKey(ip), g.duration)
	if err != nil {
		g.auditor.Logger().WithError(err).WithField("client_ip", ip).Error("Failed to record login failure")
		return 0, false
	}

	g.auditor.Record(ctx, Event{
		Action:   ActionLoginFailed,
		ClientIP: ip,
		Details:  fmt.Sprintf("Failed login attempt %d/%d", attempts, g.maxAttempts),
		Warning:  true,
	})

	if attempts < int64(g.maxAttempts) {
		return attempts, false
	}

	if err := g.store.Set(ctx, LockoutKey(ip), "1", g.duration); err != nil {
		g.auditor.Logger().WithError(err).WithField("client_ip", ip).Error("Failed to set lockout")
		return attempts, false
	}
	g.auditor.Record(ctx, Event{
		Action:   ActionLockout,
		ClientIP: ip,
		Details:  fmt.Sprintf("IP locked out for %s after %d failed attempts", g.duration, attempts),
		Warning:  true,
	})
	return attempts, true
}

// Clear forgets failed attempts after a successful login
func (g *LoginGuard) Clear(ctx context.Context, ip string) {
	if err := g.store.Delete(ctx, FailedAttemptsKey(ip)); err != nil {
		g.auditor.Logger().WithError(err).WithField("client_ip", ip).Warn("Failed to clear login failures")
	}
}
