package feed

import (
	"context"
	"errors"

	"github.com/couchcryptid/dial112-incident-feed/internal/domain"
)

// Run refreshes the snapshot immediately and then once per PollInterval
// until the context is cancelled. Failed refreshes are logged and the next
// tick tries again; there is no backoff.
func (f *Feed) Run(ctx context.Context) error {
	f.logger.Info("feed started", "poll_interval", f.opts.PollInterval, "fallback", f.opts.FallbackEnabled)
	f.metrics.PollerRunning.Set(1)
	defer f.metrics.PollerRunning.Set(0)

	ticker := f.clock.NewTicker(f.opts.PollInterval)
	defer ticker.Stop()

	f.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			f.logger.Info("feed stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			f.poll(ctx)
		}
	}
}

func (f *Feed) poll(ctx context.Context) {
	snap, err := f.Refresh(ctx)
	switch {
	case err == nil:
		f.logger.Info("incident snapshot refreshed",
			"incidents", len(snap.Incidents),
			"source", snap.Source,
		)
	case errors.Is(err, ErrRefreshInProgress):
		f.logger.Debug("poll skipped, manual refresh running")
	case ctx.Err() != nil:
		// Shutting down.
	default:
		f.logger.Error("incident refresh failed",
			"error", err,
			"kind", domain.ErrorKind(err),
			"retryable", domain.Retryable(err),
		)
	}
}
