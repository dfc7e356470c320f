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
	reliefWebBatchCap  = 20
	reliefWebExcerpt   = 280 // detail truncation, runes
	reliefWebTimeShape = time.RFC3339
)

// ReliefWeb fetches the latest humanitarian situation reports. Reports carry
// no per-item severity signal or geocoding, so severity is fixed at medium
// and events are list-only.
type ReliefWeb struct {
	httpClient *http.Client
	baseURL    string
	appName    string
	interval   time.Duration
	logger     *slog.Logger
}

// NewReliefWeb creates the humanitarian-report source.
func NewReliefWeb(appName string, interval, timeout time.Duration, logger *slog.Logger) *ReliefWeb {
	return &ReliefWeb{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://api.reliefweb.int/v1/reports",
		appName:    appName,
		interval:   interval,
		logger:     logger,
	}
}

func (s *ReliefWeb) Name() string            { return NameReliefWeb }
func (s *ReliefWeb) Interval() time.Duration { return s.interval }

// Fetch retrieves the newest report page.
func (s *ReliefWeb) Fetch(ctx context.Context) ([]domain.Event, error) {
	params := url.Values{
		"appname": {s.appName},
		"limit":   {strconv.Itoa(reliefWebBatchCap)},
		"preset":  {"latest"},
	}
	for i, f := range []string{"title", "country.name", "body", "url_alias", "date.created"} {
		params.Set(fmt.Sprintf("fields[include][%d]", i), f)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create reliefweb request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reliefweb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("reliefweb API error: status %d: %s", resp.StatusCode, body)
	}

	var payload reliefWebResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode reliefweb response: %w", err)
	}

	return adaptReliefWeb(payload.Data), nil
}

// adaptReliefWeb flattens report items into unified events. The classifier
// runs over the report title; location is the first listed country.
func adaptReliefWeb(items []reliefWebItem) []domain.Event {
	if len(items) > reliefWebBatchCap {
		items = items[:reliefWebBatchCap]
	}

	events := make([]domain.Event, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.Fields.Title)
		if title == "" {
			continue
		}

		location := "Global"
		if len(item.Fields.Country) > 0 {
			location = item.Fields.Country[0].Name
		}

		events = append(events, domain.Event{
			ID:         NameReliefWeb + "_" + item.ID,
			Title:      title,
			Category:   domain.Classify(title),
			Severity:   domain.SeverityMedium,
			Location:   location,
			Detail:     excerpt(item.Fields.Body, reliefWebExcerpt),
			SourceName: "ReliefWeb",
			URL:        item.Fields.URLAlias,
			OccurredAt: parseReliefWebDate(item.Fields.Date.Created),
		})
	}
	return events
}

// parseReliefWebDate converts the report creation date to epoch milliseconds,
// falling back to ingestion time when missing or malformed.
func parseReliefWebDate(s string) int64 {
	t, err := time.Parse(reliefWebTimeShape, strings.TrimSpace(s))
	if err != nil {
		return clock.Now().UnixMilli()
	}
	return t.UnixMilli()
}

func excerpt(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

// ReliefWeb API response types.

type reliefWebResponse struct {
	Data []reliefWebItem `json:"data"`
}

type reliefWebItem struct {
	ID     string          `json:"id"`
	Fields reliefWebFields `json:"fields"`
}

type reliefWebFields struct {
	Title    string             `json:"title"`
	Body     string             `json:"body"`
	URLAlias string             `json:"url_alias"`
	Country  []reliefWebCountry `json:"country"`
	Date     reliefWebDate      `json:"date"`
}

type reliefWebCountry struct {
	Name string `json:"name"`
}

type reliefWebDate struct {
	Created string `json:"created"`
}
