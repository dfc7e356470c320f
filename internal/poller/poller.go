// Package poller schedules the polling sources. Each source runs on its own
// ticker at its own interval; a cycle is fetch → adapt → whole-batch replace
// in the merge engine, plus a health transition. One source failing never
// touches another's contribution.
package poller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/begbajrami/begdar/internal/feed"
	"github.com/begbajrami/begdar/internal/observability"
	"github.com/begbajrami/begdar/internal/source"
)

// Poller drives the periodic sources against the merge engine.
type Poller struct {
	engine  *feed.Engine
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
	sources []source.Source
}

// New creates a poller and registers every source with the engine so all of
// them show up as connecting before their first cycle completes.
func New(engine *feed.Engine, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics, sources ...source.Source) *Poller {
	for _, src := range sources {
		engine.Register(src.Name())
	}
	return &Poller{
		engine:  engine,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		sources: sources,
	}
}

// Run polls every source until the context is cancelled. Each source gets an
// immediate first cycle, then its own ticker.
func (p *Poller) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, src := range p.sources {
		wg.Add(1)
		go func(src source.Source) {
			defer wg.Done()
			p.pollSource(ctx, src)
		}(src)
	}
	wg.Wait()
	p.logger.Info("poller stopped", "reason", ctx.Err())
}

func (p *Poller) pollSource(ctx context.Context, src source.Source) {
	p.cycle(ctx, src)

	ticker := p.clock.NewTicker(src.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.cycle(ctx, src)
		}
	}
}

// cycle runs one fetch-and-replace. An error degrades the source's
// contribution to the empty set until the next tick; it is never fatal.
// Results arriving after cancellation are discarded rather than committed to
// torn-down state.
func (p *Poller) cycle(ctx context.Context, src source.Source) {
	name := src.Name()
	start := p.clock.Now()

	events, err := src.Fetch(ctx)
	if ctx.Err() != nil {
		return
	}

	if err != nil {
		p.logger.Warn("source fetch failed", "source", name, "error", err)
		p.metrics.FetchTotal.WithLabelValues(name, "error").Inc()
		p.engine.Replace(name, nil)
		p.engine.SetStatus(name, feed.StatusError, p.clock.Now())
		return
	}

	p.metrics.FetchTotal.WithLabelValues(name, "success").Inc()
	p.metrics.FetchDuration.WithLabelValues(name).Observe(p.clock.Since(start).Seconds())

	p.engine.Replace(name, events)

	status := feed.StatusLive
	if len(events) == 0 {
		status = feed.StatusDegraded
	}
	if fb, ok := src.(source.FallbackReporter); ok && fb.Fallback() {
		status = feed.StatusDegraded
	}
	p.engine.SetStatus(name, status, p.clock.Now())

	p.logger.Info("source updated", "source", name, "events", len(events), "status", status)
}
