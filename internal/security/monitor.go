package security

import (
	"context"
	"fmt"
	"time"

	"hospital-website-backend/internal/cache"

	"github.com/sirupsen/logrus"
)

const requestCountTTL = time.Minute

// RequestCountKey counts recent requests from ip
func RequestCountKey(ip string) string {
	return "request_count_" + ip
}

// RequestMonitor warns about clients sending unusually many requests
type RequestMonitor struct {
	store     cache.Store
	auditor   *Auditor
	threshold int64
}

// NewRequestMonitor creates a monitor warning above threshold requests
func NewRequestMonitor(store cache.Store, auditor *Auditor, threshold int64) *RequestMonitor {
	return &RequestMonitor{store: store, auditor: auditor, threshold: threshold}
}

// Observe counts one request from ip and reports whether it is over the threshold
func (m *RequestMonitor) Observe(ctx context.Context, ip string) (int64, bool) {
	count, err := m.store.Incr(ctx, RequestCountKey(ip), requestCountTTL)
	if err != nil {
		m.auditor.Logger().WithError(err).Debug("Request counter unavailable")
		return 0, false
	}
	if count <= m.threshold {
		return count, false
	}
	m.auditor.Logger().WithFields(logrus.Fields{
		"action":    ActionHighRequestRate,
		"client_ip": ip,
		"count":     count,
	}).Warn(fmt.Sprintf("High request rate from %s", ip))
	return count, true
}
