package supervisor

import (
	"context"
	"time"

	"backend-launcher/core/backend"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Probe polls the backend health endpoint after a spawn until it answers or
// the probe window closes. It is informational only: a backend that never
// reports ready is logged, not killed.
type Probe struct {
	cfg    backend.ProbeConfig
	client *resty.Client
}

// NewProbe creates a readiness probe from configuration.
func NewProbe(cfg backend.ProbeConfig) *Probe {
	client := resty.New().SetTimeout(2 * time.Second)
	return &Probe{cfg: cfg, client: client}
}

// Wait polls until the endpoint answers with a success status. It returns
// false when the window closes or the context is canceled first.
func (p *Probe) Wait(ctx context.Context) bool {
	interval := time.Duration(p.cfg.IntervalMillis) * time.Millisecond
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	window := time.Duration(p.cfg.TimeoutSeconds) * time.Second
	if window <= 0 {
		window = 30 * time.Second
	}

	deadline := time.NewTimer(window)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		resp, err := p.client.R().SetContext(ctx).Get(p.cfg.URL)
		if err == nil && resp.IsSuccess() {
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			return false
		case <-ticker.C:
		}
	}
}

// Report runs Wait and logs the result.
func (p *Probe) Report(ctx context.Context, l *zap.Logger) {
	if p.Wait(ctx) {
		l.Info("Backend is ready", zap.String("url", p.cfg.URL))
		return
	}
	// Stay quiet when the run itself ended; the exit is already logged.
	if ctx.Err() == nil {
		l.Warn("Backend did not report ready within the probe window",
			zap.String("url", p.cfg.URL),
			zap.Int("timeout_seconds", p.cfg.TimeoutSeconds))
	}
}
