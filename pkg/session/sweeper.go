package session

import (
	"context"
	"time"

	"vc-copilot-be/internal/pkg/logger"
)

const (
	DefaultSweepInterval = 5 * time.Minute
	DefaultIdleTimeout   = 30 * time.Minute
)

// Sweeper periodically expires idle sessions on a registry.
type Sweeper struct {
	registry *Registry
	interval time.Duration
	timeout  time.Duration
	log      logger.ILogger
}

// NewSweeper builds a sweeper. Non-positive interval or timeout fall back to
// the defaults.
func NewSweeper(registry *Registry, interval, timeout time.Duration, log logger.ILogger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}
	return &Sweeper{registry: registry, interval: interval, timeout: timeout, log: log}
}

// Run blocks, sweeping every interval until ctx is cancelled. Callers start it
// in its own goroutine at boot.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("SessionSweeper", "Sweeper started", map[string]interface{}{
		"interval": s.interval.String(),
		"timeout":  s.timeout.String(),
	})

	for {
		select {
		case <-ctx.Done():
			s.log.Info("SessionSweeper", "Sweeper stopped", nil)
			return
		case now := <-ticker.C:
			s.sweepOnce(now)
		}
	}
}

func (s *Sweeper) sweepOnce(now time.Time) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("SessionSweeper", "Recovered from panic during sweep", map[string]interface{}{"panic": rec})
		}
	}()
	s.registry.Sweep(now, s.timeout)
}
