package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/commercekit/monext-connector/pkg/metrics"
)

// HealthChecker probes one Monext environment.
type HealthChecker interface {
	HealthCheck(ctx context.Context, environment string) error
}

// HealthMonitor periodically probes the Monext API and keeps the psp_up
// gauge current, so an outage is visible before the next payment fails.
type HealthMonitor struct {
	checker     HealthChecker
	environment string
	interval    time.Duration
	timeout     time.Duration
	logger      *slog.Logger

	up bool
}

func NewHealthMonitor(checker HealthChecker, environment string, interval, timeout time.Duration, logger *slog.Logger) *HealthMonitor {
	return &HealthMonitor{
		checker:     checker,
		environment: environment,
		interval:    interval,
		timeout:     timeout,
		logger:      logger,
		up:          true,
	}
}

func (m *HealthMonitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("starting psp health monitor", "interval", m.interval, "environment", m.environment)

	m.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("stopping psp health monitor")
			return
		case <-ticker.C:
			m.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single probe.
func (m *HealthMonitor) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.checker.HealthCheck(ctx, m.environment)
	up := err == nil
	metrics.SetPSPUp(up)

	if up != m.up {
		if up {
			m.logger.Info("monext api recovered")
		} else {
			m.logger.Error("monext api unreachable", "error", err)
		}
	}
	m.up = up
}
