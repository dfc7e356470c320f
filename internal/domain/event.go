package domain

// Category classifies an event's nature. The set is closed; anything a
// classifier or adapter cannot place falls through to CategoryInfo.
type Category string

const (
	CategoryEarthquake Category = "earthquake"
	CategoryConflict   Category = "conflict"
	CategoryWeather    Category = "weather"
	CategoryDisaster   Category = "disaster"
	CategoryPolitical  Category = "political"
	CategoryHealth     Category = "health"
	CategoryViolence   Category = "violence"
	CategoryUserReport Category = "user_report"
	CategoryInfo       Category = "info"
)

// ParseCategory validates a free-form category string against the closed set.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(s); c {
	case CategoryEarthquake, CategoryConflict, CategoryWeather, CategoryDisaster,
		CategoryPolitical, CategoryHealth, CategoryViolence, CategoryUserReport, CategoryInfo:
		return c, true
	default:
		return "", false
	}
}

// Severity is the ordinal urgency rank used for alerting and visual emphasis.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Rank returns the severity's position in the total order,
// critical=4 down to info=0. Unknown values rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	case SeverityInfo:
		return 0
	default:
		return -1
	}
}

// ParseSeverity validates a free-form severity string.
func ParseSeverity(s string) (Severity, bool) {
	switch sev := Severity(s); sev {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return sev, true
	default:
		return "", false
	}
}

// Geo is a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Event is the unified hazard event. Adapters construct Events; nothing
// downstream mutates them. IDs are namespaced by source prefix so feeds
// cannot collide in the merged view.
type Event struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Category   Category `json:"category"`
	Severity   Severity `json:"severity"`
	Location   string   `json:"location,omitempty"`
	Geo        *Geo     `json:"geo,omitempty"`
	Detail     string   `json:"detail,omitempty"`
	SourceName string   `json:"source"`
	URL        string   `json:"url,omitempty"`

	// OccurredAt is epoch milliseconds; 0 means the source gave no usable
	// timestamp and the event sorts to the end of the merged feed.
	OccurredAt int64 `json:"occurred_at"`

	Magnitude     float64 `json:"magnitude,omitempty"` // seismic only
	DepthKm       float64 `json:"depth_km,omitempty"`  // seismic only
	Fatalities    int     `json:"fatalities,omitempty"`
	UserSubmitted bool    `json:"user_submitted,omitempty"`
}
