// Package feed owns the merged event state: one current batch per source,
// the bounded live-push list, and the derived merged view. All state
// transitions are whole-batch replacements or single prepends executed under
// one lock, so there is effectively a single logical writer and readers
// always observe a complete, consistent snapshot.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/begbajrami/begdar/internal/domain"
	"github.com/begbajrami/begdar/internal/observability"
	"github.com/begbajrami/begdar/internal/source"
)

// Status is a source's health as shown to consumers.
type Status string

const (
	StatusConnecting Status = "connecting" // registered, no completed cycle yet
	StatusLive       Status = "live"       // last fetch succeeded with data
	StatusDegraded   Status = "degraded"   // reachable but empty or canned data
	StatusError      Status = "error"      // last fetch or decode failed
)

// SourceHealth is the per-source status row exposed at the API boundary.
type SourceHealth struct {
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	Events      int       `json:"events"`
	LastUpdated time.Time `json:"last_updated,omitzero"`
}

// Snapshot is the merged view handed to the presentation layer. Events are
// ordered newest-first; CriticalAlert is the first critical-severity event in
// that order, nil when none exists.
type Snapshot struct {
	Events        []domain.Event `json:"events"`
	CriticalAlert *domain.Event  `json:"critical_alert,omitempty"`
	CriticalCount int            `json:"critical_count"`
	ConflictCount int            `json:"conflict_count"`
}

// Engine merges per-source event sets into one time-ordered feed.
type Engine struct {
	mu     sync.Mutex
	closed bool

	order  []string
	sets   map[string][]domain.Event
	health map[string]*SourceHealth

	// pushed holds live-push events newest-first, bounded by pushCap.
	pushed  []domain.Event
	pushCap int

	merged        []domain.Event
	alert         *domain.Event
	criticalCount int
	conflictCount int

	ready   atomic.Bool
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewEngine creates an empty merge engine. pushCap bounds the held live-push
// list; when exceeded the oldest pushed event is dropped.
func NewEngine(pushCap int, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		sets:    make(map[string][]domain.Event),
		health:  make(map[string]*SourceHealth),
		pushCap: pushCap,
		logger:  logger,
		metrics: metrics,
	}
}

// Register declares a source before its first cycle so it shows up as
// connecting. Registration order fixes tie-break order in the merge.
func (e *Engine) Register(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registerLocked(name)
}

func (e *Engine) registerLocked(name string) {
	if _, ok := e.health[name]; ok {
		return
	}
	e.order = append(e.order, name)
	e.health[name] = &SourceHealth{Name: name, Status: StatusConnecting}
}

// Replace swaps a source's entire current batch and recomputes the merged
// feed. The previous batch is discarded wholesale; there is no diffing.
// Calls after Close are discarded so late fetch results cannot resurrect
// torn-down state.
func (e *Engine) Replace(source string, events []domain.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.registerLocked(source)
	e.sets[source] = events
	e.metrics.SourceEvents.WithLabelValues(source).Set(float64(len(events)))
	e.recomputeLocked()
}

// Push prepends a single live event (always "now") and recomputes. The held
// push list is bounded; overflow drops the oldest pushed event.
func (e *Engine) Push(ev domain.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.pushed = append([]domain.Event{ev}, e.pushed...)
	if e.pushCap > 0 && len(e.pushed) > e.pushCap {
		e.pushed = e.pushed[:e.pushCap]
		e.metrics.PushDropped.Inc()
	}
	e.metrics.EventsPushed.Inc()
	e.recomputeLocked()
}

// SetStatus records a source's health transition.
func (e *Engine) SetStatus(source string, status Status, at time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.registerLocked(source)
	h := e.health[source]
	h.Status = status
	h.LastUpdated = at
}

// recomputeLocked rebuilds the merged feed from scratch: concatenate the
// push list and every source's current set, stable-sort descending by
// OccurredAt (0 sorts last), then re-derive the critical alert and counts.
// Stability preserves arrival order for ties.
func (e *Engine) recomputeLocked() {
	total := len(e.pushed)
	for _, name := range e.order {
		total += len(e.sets[name])
	}

	merged := make([]domain.Event, 0, total)
	merged = append(merged, e.pushed...)
	for _, name := range e.order {
		merged = append(merged, e.sets[name]...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].OccurredAt > merged[j].OccurredAt
	})

	e.merged = merged
	e.alert = nil
	e.criticalCount = 0
	e.conflictCount = 0
	for i := range merged {
		if merged[i].Severity == domain.SeverityCritical {
			e.criticalCount++
			if e.alert == nil {
				ev := merged[i]
				e.alert = &ev
			}
		}
		if merged[i].Category == domain.CategoryConflict || merged[i].Category == domain.CategoryViolence {
			e.conflictCount++
		}
	}

	e.metrics.MergeRecomputes.Inc()
	e.metrics.FeedSize.Set(float64(len(merged)))
	if e.alert != nil {
		e.metrics.CriticalAlertActive.Set(1)
	} else {
		e.metrics.CriticalAlertActive.Set(0)
	}

	if len(merged) > 0 {
		e.ready.Store(true)
	}
}

// Snapshot returns a copy of the current merged view.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	events := make([]domain.Event, len(e.merged))
	copy(events, e.merged)

	var alert *domain.Event
	if e.alert != nil {
		ev := *e.alert
		alert = &ev
	}

	return Snapshot{
		Events:        events,
		CriticalAlert: alert,
		CriticalCount: e.criticalCount,
		ConflictCount: e.conflictCount,
	}
}

// Statuses returns per-source health in registration order.
func (e *Engine) Statuses() []SourceHealth {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]SourceHealth, 0, len(e.order))
	for _, name := range e.order {
		h := *e.health[name]
		h.Events = len(e.sets[name])
		if name == source.NameCommunity {
			h.Events = len(e.pushed)
		}
		out = append(out, h)
	}
	return out
}

// CheckReadiness returns nil once the merged feed has produced at least one
// event, or an error describing why the service is not yet ready.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if !e.ready.Load() {
		return errors.New("no source has contributed events yet")
	}
	return nil
}

// Close marks the engine torn down. Subsequent Replace/Push/SetStatus calls
// are silently discarded.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}
