package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/begbajrami/begdar/internal/domain"
)

const (
	gdeltBatchCap = 30
	gdeltQuery    = "war conflict attack military disaster crisis earthquake"

	// seendatetime layout, e.g. "20240115120000" = 2024-01-15T12:00:00Z.
	gdeltTimeLayout = "20060102150405"
)

// GDELT fetches recent crisis-related news articles from the GDELT DOC API.
// Articles carry no per-item geocoding, so these events are list-only.
type GDELT struct {
	httpClient *http.Client
	baseURL    string
	interval   time.Duration
	logger     *slog.Logger
}

// NewGDELT creates the news-search source.
func NewGDELT(interval, timeout time.Duration, logger *slog.Logger) *GDELT {
	return &GDELT{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://api.gdeltproject.org/api/v2/doc/doc",
		interval:   interval,
		logger:     logger,
	}
}

func (s *GDELT) Name() string            { return NameGDELT }
func (s *GDELT) Interval() time.Duration { return s.interval }

// Fetch queries the article list for the past 24 hours.
func (s *GDELT) Fetch(ctx context.Context) ([]domain.Event, error) {
	params := url.Values{
		"query":      {gdeltQuery},
		"mode":       {"artlist"},
		"maxrecords": {strconv.Itoa(gdeltBatchCap)},
		"format":     {"json"},
		"timespan":   {"24h"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create gdelt request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gdelt request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gdelt API error: status %d: %s", resp.StatusCode, body)
	}

	var list gdeltResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode gdelt response: %w", err)
	}

	return adaptGDELT(list.Articles), nil
}

// adaptGDELT flattens articles into unified events. Category comes from the
// classifier over the headline; severity from the category fallback mapper.
func adaptGDELT(articles []gdeltArticle) []domain.Event {
	if len(articles) > gdeltBatchCap {
		articles = articles[:gdeltBatchCap]
	}

	events := make([]domain.Event, 0, len(articles))
	for i, a := range articles {
		title := strings.TrimSpace(a.Title)
		if title == "" {
			title = "Global Event"
		}
		cat := domain.Classify(title)

		location := a.SourceCountry
		if location == "" {
			location = "Global"
		}
		sourceName := a.Domain
		if sourceName == "" {
			sourceName = "GDELT"
		}

		events = append(events, domain.Event{
			ID:         fmt.Sprintf("%s_%d_%s", NameGDELT, i, a.SeenDatetime),
			Title:      title,
			Category:   cat,
			Severity:   domain.SeverityFromCategory(cat),
			Location:   location,
			Detail:     gdeltDetail(a),
			SourceName: sourceName,
			URL:        a.URL,
			OccurredAt: parseSeenDatetime(a.SeenDatetime),
		})
	}
	return events
}

func gdeltDetail(a gdeltArticle) string {
	srcDomain := a.Domain
	if srcDomain == "" {
		srcDomain = "Unknown"
	}
	tone := "N/A"
	if a.Tone != 0 {
		// Round half away from zero, so a -7.25 tone prints as -7.3.
		tone = strconv.FormatFloat(math.Round(a.Tone*10)/10, 'f', 1, 64)
	}
	return fmt.Sprintf("Source: %s · Tone score: %s (lower = more negative/severe)", srcDomain, tone)
}

// parseSeenDatetime converts the compact YYYYMMDDHHMMSS encoding to epoch
// milliseconds. Malformed or missing input falls back to ingestion time.
func parseSeenDatetime(s string) int64 {
	t, err := time.ParseInLocation(gdeltTimeLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return clock.Now().UnixMilli()
	}
	return t.UnixMilli()
}

// GDELT DOC API response types.

type gdeltResponse struct {
	Articles []gdeltArticle `json:"articles"`
}

type gdeltArticle struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Domain        string  `json:"domain"`
	SourceCountry string  `json:"sourcecountry"`
	Tone          float64 `json:"tone"`
	SeenDatetime  string  `json:"seendatetime"`
}
