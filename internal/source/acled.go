package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/begbajrami/begdar/internal/domain"
)

const (
	acledBatchCap   = 50
	acledDateLayout = "2006-01-02"
	acledLookback   = 7 // days of history per query
)

// ACLED fetches conflict-log events from the ACLED API. Access is key-gated;
// without credentials the source serves a static fallback dataset with the
// same record shape and reports itself as degraded.
type ACLED struct {
	key        string
	email      string
	httpClient *http.Client
	baseURL    string
	interval   time.Duration
	logger     *slog.Logger
}

// NewACLED creates the conflict-log source. Empty key or email selects
// fallback mode.
func NewACLED(key, email string, interval, timeout time.Duration, logger *slog.Logger) *ACLED {
	return &ACLED{
		key:        key,
		email:      email,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://api.acleddata.com/acled/read",
		interval:   interval,
		logger:     logger,
	}
}

func (s *ACLED) Name() string            { return NameACLED }
func (s *ACLED) Interval() time.Duration { return s.interval }

// Fallback reports whether the source is serving canned data.
func (s *ACLED) Fallback() bool { return s.key == "" || s.email == "" }

// Fetch retrieves the past week's conflict events, or the fallback dataset
// when no credentials are configured.
func (s *ACLED) Fetch(ctx context.Context) ([]domain.Event, error) {
	if s.Fallback() {
		return adaptACLED(fallbackConflicts(clock.Now())), nil
	}

	now := clock.Now().UTC()
	params := url.Values{
		"key":              {s.key},
		"email":            {s.email},
		"limit":            {strconv.Itoa(acledBatchCap)},
		"fields":           {"event_id_cnty|event_date|event_type|sub_event_type|country|location|latitude|longitude|fatalities|notes|actor1|actor2"},
		"event_date_where": {"BETWEEN"},
		"event_date": {fmt.Sprintf("%s|%s",
			now.AddDate(0, 0, -acledLookback).Format(acledDateLayout),
			now.Format(acledDateLayout))},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create acled request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("acled request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("acled API error: status %d: %s", resp.StatusCode, body)
	}

	var payload acledResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode acled response: %w", err)
	}

	return adaptACLED(payload.Data), nil
}

// adaptACLED flattens conflict-log records into unified events. ACLED has no
// headlines, so the title is composed from event type, actors, and place.
// Severity derives from the fatality count; malformed counts read as 0.
func adaptACLED(records []acledRecord) []domain.Event {
	if len(records) > acledBatchCap {
		records = records[:acledBatchCap]
	}

	events := make([]domain.Event, 0, len(records))
	for _, r := range records {
		fatalities := parseIntOrZero(r.Fatalities)
		place := strings.TrimSpace(r.Location + ", " + r.Country)
		place = strings.Trim(place, ", ")

		ev := domain.Event{
			ID:         NameACLED + "_" + r.EventIDCnty,
			Title:      acledTitle(r, place),
			Category:   acledCategory(r.EventType),
			Severity:   domain.SeverityFromFatalities(fatalities),
			Location:   place,
			Detail:     acledDetail(r, fatalities),
			SourceName: "ACLED",
			URL:        "https://acleddata.com/dashboard/#/dashboard",
			OccurredAt: parseEventDate(r.EventDate),
			Fatalities: fatalities,
			Geo: &domain.Geo{
				Lat: parseFloatOrZero(r.Latitude),
				Lng: parseFloatOrZero(r.Longitude),
			},
		}
		events = append(events, ev)
	}
	return events
}

// acledCategory maps ACLED event types onto the closed category set.
// Demonstrations read as political, attacks on civilians as violence,
// everything else (battles, strikes, strategic developments) as conflict.
func acledCategory(eventType string) domain.Category {
	t := strings.ToLower(eventType)
	switch {
	case strings.Contains(t, "protest"), strings.Contains(t, "riot"):
		return domain.CategoryPolitical
	case strings.Contains(t, "violence against civilians"):
		return domain.CategoryViolence
	default:
		return domain.CategoryConflict
	}
}

func acledTitle(r acledRecord, place string) string {
	actors := r.Actor1
	if r.Actor2 != "" {
		actors += " vs " + r.Actor2
	}
	return fmt.Sprintf("%s: %s — %s", r.EventType, actors, place)
}

func acledDetail(r acledRecord, fatalities int) string {
	notes := strings.TrimSpace(r.Notes)
	if notes == "" {
		notes = "No details."
	}
	return fmt.Sprintf("%s Fatalities: %d. Sub-type: %s.", notes, fatalities, r.SubEventType)
}

// parseEventDate converts ACLED's date-only event_date to epoch milliseconds
// at UTC midnight. Malformed dates yield 0 (sorts last).
func parseEventDate(s string) int64 {
	t, err := time.ParseInLocation(acledDateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

// parseIntOrZero parses a string as int, returning 0 on failure. ACLED
// serializes every field as a string, fatality counts included.
func parseIntOrZero(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// ACLED API response types. All values arrive as strings.

type acledResponse struct {
	Data []acledRecord `json:"data"`
}

type acledRecord struct {
	EventIDCnty  string `json:"event_id_cnty"`
	EventDate    string `json:"event_date"`
	EventType    string `json:"event_type"`
	SubEventType string `json:"sub_event_type"`
	Country      string `json:"country"`
	Location     string `json:"location"`
	Latitude     string `json:"latitude"`
	Longitude    string `json:"longitude"`
	Fatalities   string `json:"fatalities"`
	Notes        string `json:"notes"`
	Actor1       string `json:"actor1"`
	Actor2       string `json:"actor2"`
}
