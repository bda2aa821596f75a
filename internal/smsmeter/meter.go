// Package smsmeter implements the per-tenant monthly SMS usage counter
// (spec.md §4.11).
package smsmeter

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fernwell/assistant-gateway/internal/gwerr"
	"github.com/fernwell/assistant-gateway/internal/kvstore"
)

// Result is check_and_increment's return shape.
type Result struct {
	Allowed     bool
	UsageBefore int
	UsageAfter  int
	Limit       int
}

// Meter implements check_and_increment against a CounterStore.
type Meter struct {
	Store kvstore.CounterStore
	Log   zerolog.Logger
}

func New(store kvstore.CounterStore, log zerolog.Logger) *Meter {
	return &Meter{Store: store, Log: log.With().Str("component", "smsmeter").Logger()}
}

// CheckAndIncrement reads the current month's usage and, only when under
// limit, applies the atomic increment. On read failure the meter fails
// open: notifications are never blocked by a storage outage (spec.md
// §4.11, an intentional policy decision logged as a warning).
func (m *Meter) CheckAndIncrement(ctx context.Context, tenantID string, monthlyLimit int) Result {
	month := currentMonth()

	usageBefore, _, err := m.Store.GetCount(ctx, tenantID, month)
	if err != nil {
		classified := gwerr.New(gwerr.KindRateLimitRead, "sms usage read failed, failing open", err)
		m.Log.Warn().Err(classified).Str("tenant_id", tenantID).Msg(classified.Message)
		return Result{Allowed: true, UsageBefore: 0, UsageAfter: 0, Limit: monthlyLimit}
	}

	if usageBefore >= monthlyLimit {
		return Result{Allowed: false, UsageBefore: usageBefore, UsageAfter: usageBefore, Limit: monthlyLimit}
	}

	usageAfter, err := m.Store.Increment(ctx, tenantID, month)
	if err != nil {
		m.Log.Warn().Err(err).Str("tenant_id", tenantID).Msg("sms usage increment failed, failing open")
		return Result{Allowed: true, UsageBefore: usageBefore, UsageAfter: usageBefore, Limit: monthlyLimit}
	}

	return Result{Allowed: true, UsageBefore: usageBefore, UsageAfter: usageAfter, Limit: monthlyLimit}
}

func currentMonth() string {
	return time.Now().UTC().Format("2006-01")
}
