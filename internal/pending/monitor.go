// Package pending reports deposits that stayed pending past a deadline. It
// never changes them: a late webhook still settles a stale deposit.
package pending

import (
	"context"
	"time"

	"walletledger/internal/logger"
	"walletledger/internal/metrics"
)

type Counter interface {
	CountPendingDepositsBefore(ctx context.Context, before time.Time) (int, error)
}

type Monitor struct {
	counter  Counter
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

func NewMonitor(counter Counter, ttl, interval time.Duration) *Monitor {
	return &Monitor{counter: counter, ttl: ttl, interval: interval, now: time.Now}
}

// Start scans once immediately and then every interval until ctx is done.
func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Scan(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Scan(ctx)
		}
	}
}

func (m *Monitor) Scan(ctx context.Context) (int, error) {
	cutoff := m.now().Add(-m.ttl)
	n, err := m.counter.CountPendingDepositsBefore(ctx, cutoff)
	if err != nil {
		logger.WithError(err).Error("stale pending scan failed")
		return 0, err
	}

	metrics.StalePendingDeposits.Set(float64(n))
	if n > 0 {
		logger.Warn("deposits pending past ttl", "count", n, "ttl", m.ttl.String(), "cutoff", cutoff)
	}
	return n, nil
}
