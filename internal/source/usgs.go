package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/begbajrami/begdar/internal/domain"
)

const usgsBatchCap = 50

// USGS fetches the USGS significant-earthquake GeoJSON summary feed.
type USGS struct {
	httpClient *http.Client
	baseURL    string
	interval   time.Duration
	logger     *slog.Logger
}

// NewUSGS creates the seismic source. The feed covers M4.5+ events from the
// past week.
func NewUSGS(interval, timeout time.Duration, logger *slog.Logger) *USGS {
	return &USGS{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/4.5_week.geojson",
		interval:   interval,
		logger:     logger,
	}
}

func (s *USGS) Name() string            { return NameUSGS }
func (s *USGS) Interval() time.Duration { return s.interval }

// Fetch retrieves and adapts the current earthquake batch.
func (s *USGS) Fetch(ctx context.Context) ([]domain.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create usgs request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usgs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, body)
	}

	var feed usgsFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode usgs response: %w", err)
	}

	return adaptUSGS(feed.Features), nil
}

// adaptUSGS flattens GeoJSON features into unified events. Category is fixed
// to earthquake; severity derives from magnitude. Features missing their
// native timestamp keep OccurredAt 0 so they sort last rather than failing.
func adaptUSGS(features []usgsFeature) []domain.Event {
	if len(features) > usgsBatchCap {
		features = features[:usgsBatchCap]
	}

	events := make([]domain.Event, 0, len(features))
	for _, f := range features {
		ev := domain.Event{
			ID:         NameUSGS + "_" + f.ID,
			Title:      strings.TrimSpace(f.Properties.Title),
			Category:   domain.CategoryEarthquake,
			Severity:   domain.SeverityFromMagnitude(f.Properties.Mag),
			Location:   f.Properties.Place,
			Detail:     usgsDetail(f),
			SourceName: "USGS",
			URL:        f.Properties.URL,
			OccurredAt: f.Properties.Time,
			Magnitude:  f.Properties.Mag,
		}
		if ev.Title == "" {
			ev.Title = fmt.Sprintf("M%.1f — %s", f.Properties.Mag, f.Properties.Place)
		}
		if len(f.Geometry.Coordinates) >= 2 {
			ev.Geo = &domain.Geo{Lat: f.Geometry.Coordinates[1], Lng: f.Geometry.Coordinates[0]}
		}
		if len(f.Geometry.Coordinates) >= 3 {
			ev.DepthKm = f.Geometry.Coordinates[2]
		}
		events = append(events, ev)
	}
	return events
}

func usgsDetail(f usgsFeature) string {
	var depth float64
	if len(f.Geometry.Coordinates) >= 3 {
		depth = f.Geometry.Coordinates[2]
	}
	tsunami := "No tsunami warning."
	if f.Properties.Tsunami > 0 {
		tsunami = "TSUNAMI WARNING ISSUED."
	}
	return fmt.Sprintf("Magnitude %g — Depth %gkm. %s Status: %s.",
		f.Properties.Mag, depth, tsunami, f.Properties.Status)
}

// USGS GeoJSON response types.

type usgsFeed struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string         `json:"id"`
	Properties usgsProperties `json:"properties"`
	Geometry   usgsGeometry   `json:"geometry"`
}

type usgsProperties struct {
	Title   string  `json:"title"`
	Mag     float64 `json:"mag"`
	Place   string  `json:"place"`
	Time    int64   `json:"time"` // epoch millis
	Tsunami int     `json:"tsunami"`
	Status  string  `json:"status"`
	URL     string  `json:"url"`
}

type usgsGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lng, lat, depth]
}
