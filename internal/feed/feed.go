package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/dial112-incident-feed/internal/domain"
	"github.com/couchcryptid/dial112-incident-feed/internal/observability"
	"github.com/jonboulle/clockwork"
)

// ErrRefreshInProgress is returned when a refresh is requested while another
// one is still running.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// Source performs one request to the incident listing endpoint.
type Source interface {
	Fetch(ctx context.Context) (domain.RawResponse, error)
}

// Publisher forwards a fresh snapshot downstream.
type Publisher interface {
	Publish(ctx context.Context, snap *domain.Snapshot) error
}

// Options tunes fetch behavior.
type Options struct {
	// FallbackEnabled allows one strict-path attempt after a primary
	// transport failure.
	FallbackEnabled bool
	PollInterval    time.Duration
	GeocodeRegion   string
	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

// Feed owns the current incident snapshot and keeps it fresh.
type Feed struct {
	source    Source
	publisher Publisher
	geocoder  domain.Geocoder
	logger    *slog.Logger
	metrics   *observability.Metrics
	opts      Options
	clock     clockwork.Clock

	refreshMu sync.Mutex
	current   atomic.Pointer[domain.Snapshot]
}

// New creates a Feed. publisher and geocoder may be nil to disable Kafka
// publishing and geocoding enrichment.
func New(source Source, publisher Publisher, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Feed {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Feed{
		source:    source,
		publisher: publisher,
		geocoder:  geocoder,
		logger:    logger,
		metrics:   metrics,
		opts:      opts,
		clock:     clock,
	}
}

// Snapshot returns the latest successful snapshot, or nil before the first.
func (f *Feed) Snapshot() *domain.Snapshot {
	return f.current.Load()
}

// CheckReadiness returns nil once a snapshot has been fetched.
func (f *Feed) CheckReadiness(_ context.Context) error {
	if f.current.Load() == nil {
		return errors.New("no incident snapshot fetched yet")
	}
	return nil
}

// FetchAndNormalize fetches the listing and returns its canonical incidents.
// Errors match domain.ErrTransport, domain.ErrInvalidResponseFormat or
// domain.ErrUnexpectedResponseShape.
func (f *Feed) FetchAndNormalize(ctx context.Context) ([]domain.Incident, error) {
	batch, _, err := f.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return batch.Incidents, nil
}

// Refresh fetches a new snapshot and makes it current. At most one refresh
// runs at a time; overlapping calls fail with ErrRefreshInProgress.
func (f *Feed) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	if !f.refreshMu.TryLock() {
		return nil, ErrRefreshInProgress
	}
	defer f.refreshMu.Unlock()

	batch, path, err := f.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if batch.Dropped > 0 {
		f.metrics.DroppedRecords.Add(float64(batch.Dropped))
		f.logger.Warn("dropped non-object incident records", "count", batch.Dropped, "source", path)
	}

	incidents := domain.EnrichWithGeocoding(ctx, batch.Incidents, f.geocoder, f.opts.GeocodeRegion, f.logger)

	snap := &domain.Snapshot{
		Incidents: incidents,
		FetchedAt: f.clock.Now().UTC(),
		Source:    path,
	}
	f.current.Store(snap)
	f.metrics.SnapshotSize.Set(float64(len(incidents)))

	f.publish(ctx, snap)
	return snap, nil
}

// fetch runs the primary path and, for transport failures only, a single
// strict fallback attempt.
func (f *Feed) fetch(ctx context.Context) (domain.Batch, string, error) {
	batch, err := f.fetchPath(ctx, domain.SourcePrimary, func(r domain.RawResponse) (domain.Batch, error) {
		return domain.Normalize(r.Body)
	})
	if err == nil {
		return batch, domain.SourcePrimary, nil
	}
	if !f.opts.FallbackEnabled || !domain.Retryable(err) || ctx.Err() != nil {
		return domain.Batch{}, domain.SourcePrimary, fmt.Errorf("fetch incidents: %w", err)
	}

	f.logger.Warn("primary incident fetch failed, trying strict fallback", "error", err)
	f.metrics.FallbackAttempts.Inc()

	batch, fallbackErr := f.fetchPath(ctx, domain.SourceFallback, func(r domain.RawResponse) (domain.Batch, error) {
		return domain.NormalizeStrict(r.Body, r.ContentType)
	})
	if fallbackErr != nil {
		return domain.Batch{}, domain.SourceFallback, fmt.Errorf("fetch incidents (primary: %v): fallback: %w", err, fallbackErr)
	}
	return batch, domain.SourceFallback, nil
}

func (f *Feed) fetchPath(ctx context.Context, path string, normalize func(domain.RawResponse) (domain.Batch, error)) (domain.Batch, error) {
	start := f.clock.Now()
	defer func() {
		f.metrics.FetchDuration.WithLabelValues(path).Observe(f.clock.Since(start).Seconds())
	}()

	resp, err := f.source.Fetch(ctx)
	if err == nil {
		var batch domain.Batch
		batch, err = normalize(resp)
		if err == nil {
			f.metrics.Fetches.WithLabelValues(path, "success").Inc()
			return batch, nil
		}
	}
	f.metrics.Fetches.WithLabelValues(path, domain.ErrorKind(err)).Inc()
	return domain.Batch{}, err
}

func (f *Feed) publish(ctx context.Context, snap *domain.Snapshot) {
	if f.publisher == nil || len(snap.Incidents) == 0 {
		return
	}
	if err := f.publisher.Publish(ctx, snap); err != nil {
		f.metrics.PublishErrors.Inc()
		f.logger.Warn("publish snapshot failed", "error", err, "incidents", len(snap.Incidents))
		return
	}
	f.metrics.IncidentsPublished.Add(float64(len(snap.Incidents)))
}
