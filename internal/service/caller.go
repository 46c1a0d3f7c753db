package service

import (
	"context"

	"hospital-website-backend/internal/security"
)

// Caller identifies who performs an administrative write
type Caller struct {
	UserID   uint
	ClientIP string
}

// recordWrite stores an audit entry for a staff write
func recordWrite(ctx context.Context, auditor *security.Auditor, caller Caller, action, details string) {
	userID := caller.UserID
	auditor.Record(ctx, security.Event{
		Action:   action,
		ClientIP: caller.ClientIP,
		UserID:   &userID,
		Details:  details,
	})
}
