package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/begbajrami/begdar/internal/domain"
)

func testGDELT(baseURL string) *GDELT {
	return &GDELT{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		interval:   5 * time.Minute,
		logger:     testLogger(),
	}
}

func TestGDELT_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "artlist", r.URL.Query().Get("mode"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "24h", r.URL.Query().Get("timespan"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"articles":[
			{"title":"Army launches airstrike on rebel base","url":"https://example.com/a","domain":"example.com","sourcecountry":"Syria","tone":-7.25,"seendatetime":"20240115120000"},
			{"title":"Typhoon nears coast","url":"https://example.com/b","domain":"weather.example","sourcecountry":"","tone":0,"seendatetime":"20240115090000"}
		]}`)
	}))
	defer srv.Close()

	events, err := testGDELT(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	ev := events[0]
	assert.Equal(t, "gdelt_0_20240115120000", ev.ID)
	assert.Equal(t, domain.CategoryConflict, ev.Category)
	assert.Equal(t, domain.SeverityHigh, ev.Severity)
	assert.Equal(t, "Syria", ev.Location)
	assert.Nil(t, ev.Geo)
	assert.Equal(t, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC).UnixMilli(), ev.OccurredAt)
	assert.Contains(t, ev.Detail, "Tone score: -7.3")
	assert.Equal(t, "example.com", ev.SourceName)

	assert.Equal(t, domain.CategoryWeather, events[1].Category)
	assert.Equal(t, domain.SeverityMedium, events[1].Severity)
	assert.Equal(t, "Global", events[1].Location)
	assert.Contains(t, events[1].Detail, "Tone score: N/A")
}

func TestAdaptGDELT(t *testing.T) {
	frozen := time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { SetClock(nil) })

	t.Run("malformed seendatetime falls back to ingestion time", func(t *testing.T) {
		events := adaptGDELT([]gdeltArticle{{Title: "Some headline", SeenDatetime: "not-a-time"}})
		require.Len(t, events, 1)
		assert.Equal(t, frozen.UnixMilli(), events[0].OccurredAt)
	})

	t.Run("missing seendatetime falls back to ingestion time", func(t *testing.T) {
		events := adaptGDELT([]gdeltArticle{{Title: "Some headline"}})
		require.Len(t, events, 1)
		assert.Equal(t, frozen.UnixMilli(), events[0].OccurredAt)
	})

	t.Run("empty title replaced with placeholder", func(t *testing.T) {
		events := adaptGDELT([]gdeltArticle{{SeenDatetime: "20240115120000"}})
		require.Len(t, events, 1)
		assert.Equal(t, "Global Event", events[0].Title)
		assert.Equal(t, domain.CategoryInfo, events[0].Category)
		assert.Equal(t, "GDELT", events[0].SourceName)
	})

	t.Run("batch capped at 30", func(t *testing.T) {
		articles := make([]gdeltArticle, 45)
		for i := range articles {
			articles[i] = gdeltArticle{Title: "headline", SeenDatetime: "20240115120000"}
		}
		assert.Len(t, adaptGDELT(articles), 30)
	})
}

func TestGDELTDetail(t *testing.T) {
	tests := []struct {
		name    string
		article gdeltArticle
		want    string
	}{
		{"negative tie rounds away from zero", gdeltArticle{Domain: "example.com", Tone: -7.25}, "Source: example.com · Tone score: -7.3 (lower = more negative/severe)"},
		{"positive tie rounds away from zero", gdeltArticle{Domain: "example.com", Tone: 2.35}, "Source: example.com · Tone score: 2.4 (lower = more negative/severe)"},
		{"zero tone prints N/A", gdeltArticle{Domain: "example.com"}, "Source: example.com · Tone score: N/A (lower = more negative/severe)"},
		{"missing domain", gdeltArticle{Tone: -1.5}, "Source: Unknown · Tone score: -1.5 (lower = more negative/severe)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gdeltDetail(tt.article))
		})
	}
}

func TestParseSeenDatetime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"noon UTC", "20240115120000", time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)},
		{"with surrounding space", " 20231231235959 ", time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want.UnixMilli(), parseSeenDatetime(tt.input))
		})
	}
}
