// Package security implements the anti-abuse controls: sliding-window rate
// limits, login lockout, request monitoring, input sanitization and the
// security event trail.
package security

import (
	"context"

	"hospital-website-backend/internal/logger"
	"hospital-website-backend/internal/models"

	"github.com/sirupsen/logrus"
)

// Security event actions
const (
	ActionLoginSuccess    = "login_success"
	ActionLoginFailed     = "login_failed"
	ActionLockout         = "login_lockout"
	ActionLockedAttempt   = "login_while_locked"
	ActionLogout          = "logout"
	ActionRegister        = "register"
	ActionPasswordChange  = "password_change"
	ActionAdminCreated    = "admin_created"
	ActionInvalidAPIKey   = "invalid_api_key"
	ActionRateLimited     = "rate_limited"
	ActionHighRequestRate = "high_request_rate"
	ActionStatusChange    = "appointment_status_change"
)

// AuditWriter persists audit entries
type AuditWriter interface {
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}

// Event is one security-relevant occurrence
type Event struct {
	Action   string
	ClientIP string
	UserID   *uint
	Details  string
	Warning  bool
}

// Auditor writes security events to the security logger and the audit table
type Auditor struct {
	log  *logrus.Entry
	repo AuditWriter
}

// NewAuditor creates an auditor; repo may be nil to log only
func NewAuditor(log logrus.FieldLogger, repo AuditWriter) *Auditor {
	return &Auditor{log: logger.Security(log), repo: repo}
}

// Logger returns the security log entry
func (a *Auditor) Logger() *logrus.Entry {
	return a.log
}

// Record logs the event and stores it best-effort
func (a *Auditor) Record(ctx context.Context, ev Event) {
	entry := a.log.WithFields(logrus.Fields{
		"action":    ev.Action,
		"client_ip": ev.ClientIP,
	})
	if ev.UserID != nil {
		entry = entry.WithField("user_id", *ev.UserID)
	}
	if ev.Warning {
		entry.Warn(ev.Details)
	} else {
		entry.Info(ev.Details)
	}

	if a.repo == nil {
		return
	}
	// audit failures never affect the request
	_ = a.repo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Details:  ev.Details,
		ClientIP: ev.ClientIP,
	})
}
