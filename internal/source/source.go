// Package source contains one adapter per external hazard feed. Each adapter
// pairs a small HTTP client with a pure adapt function that flattens the
// feed's native records into []domain.Event, capped to bound feed size.
// Fetch failures are the caller's to absorb; adapters never partially fail a
// batch, malformed records get safe defaults instead.
package source

import (
	"context"
	"time"

	"github.com/begbajrami/begdar/internal/domain"
)

// Canonical source names, used for ID prefixes and health reporting.
const (
	NameUSGS      = "usgs"
	NameGDELT     = "gdelt"
	NameACLED     = "acled"
	NameReliefWeb = "reliefweb"
	NameCommunity = "community"
)

// Source is one external origin of hazard events. Fetch returns the source's
// complete current batch; each poll cycle fully replaces the previous one.
type Source interface {
	Name() string
	Interval() time.Duration
	Fetch(ctx context.Context) ([]domain.Event, error)
}

// FallbackReporter is implemented by sources that can serve canned data when
// the live upstream is unavailable or unconfigured. The poller reports such
// sources as degraded rather than live.
type FallbackReporter interface {
	Fallback() bool
}
