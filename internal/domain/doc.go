// Package domain models the unified hazard event produced by the source
// adapters and consumed by the merge engine.
//
// # Event model
//
// Every upstream feed, whatever its native schema, is flattened into [Event].
// Fields that a feed cannot supply are left at their zero value and tagged
// omitempty; coordinates use a pointer so "no geocoding" (GDELT, ReliefWeb)
// is distinguishable from a report at 0°N 0°E.
//
// # Categories
//
// Category is a closed set. Free-text headlines are classified by [Classify]
// against an ordered keyword vocabulary; the first matching rule wins, so a
// headline containing both "shooting" and "war" is conflict, not violence.
// Text matching nothing falls through to [CategoryInfo].
//
// # Severity
//
// Severity is an ordinal scale, critical > high > medium > low > info.
// Three mappers derive it, chosen by what signal a source carries:
//
//	Seismic magnitude:  ≥7 critical | ≥6 high | ≥5 medium | else low
//	Conflict fatalities: ≥100 critical | ≥20 high | ≥5 medium | else low
//	Category fallback:  conflict/violence high | everything else medium
//
// Missing or malformed numeric input maps to the lowest bucket, never an
// error. No mapper ever returns the empty Severity.
//
// # Timestamps
//
// OccurredAt is epoch milliseconds. Sources without a native timestamp get
// the ingestion time; records whose timestamp cannot be recovered at all
// carry 0 and sort to the end of the merged feed.
package domain
