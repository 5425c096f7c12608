package lease

import (
	"context"
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/logger"
	"github.com/devmarket-mx/tienda-backend/pkg/metrics"
)

const expirerJobName = "lease_expirer"

type expiringRepository interface {
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

// Expirer periodically flips overdue active leases to expired.
type Expirer struct {
	repo     expiringRepository
	logg     *logger.Logger
	metrics  *metrics.JobMetrics
	interval time.Duration
	now      func() time.Time
}

// NewExpirer builds the background job. A non-positive interval defaults
// to one hour.
func NewExpirer(repo expiringRepository, logg *logger.Logger, m *metrics.JobMetrics, interval time.Duration) *Expirer {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Expirer{
		repo:     repo,
		logg:     logg,
		metrics:  m,
		interval: interval,
		now:      time.Now,
	}
}

// Run blocks until the context is canceled, sweeping on every tick.
func (e *Expirer) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.sweep(ctx)
		}
	}
}

// Sweep runs one expiry pass and returns how many leases were expired.
func (e *Expirer) Sweep(ctx context.Context) (int64, error) {
	start := e.now()
	expired, err := e.repo.ExpireDue(ctx, start)
	e.metrics.ObserveDuration(expirerJobName, e.now().Sub(start))
	if err != nil {
		e.metrics.IncFailure(expirerJobName)
		return 0, err
	}
	e.metrics.IncSuccess(expirerJobName)
	return expired, nil
}

func (e *Expirer) sweep(ctx context.Context) {
	expired, err := e.Sweep(ctx)
	if err != nil {
		if e.logg != nil {
			e.logg.Error(ctx, "lease expiry sweep failed", err)
		}
		return
	}
	if expired > 0 && e.logg != nil {
		e.logg.Info(e.logg.WithField(ctx, "expired", expired), "leases expired")
	}
}
