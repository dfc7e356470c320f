package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/begbajrami/begdar/internal/domain"
)

// Message is the wire shape of an externally approved report arriving on the
// report stream. It mirrors Report's JSON so an upstream moderation service
// can forward approved records verbatim.
type Message struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Body        string      `json:"body"`
	Location    string      `json:"location"`
	Category    string      `json:"category"`
	Severity    string      `json:"severity"`
	Geo         *domain.Geo `json:"geo,omitempty"`
	SubmittedAt time.Time   `json:"submitted_at"`
}

// DecodeMessage parses and validates a report-stream payload into the
// unified event shape. The same defaults as local submission apply.
func DecodeMessage(data []byte) (domain.Event, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.Event{}, fmt.Errorf("decode report message: %w", err)
	}

	title := strings.TrimSpace(m.Title)
	if title == "" {
		return domain.Event{}, fmt.Errorf("decode report message: %w", ErrEmptyTitle)
	}
	if m.ID == "" {
		return domain.Event{}, fmt.Errorf("decode report message: missing id")
	}

	cat, ok := domain.ParseCategory(m.Category)
	if !ok {
		cat = domain.CategoryUserReport
	}
	sev, ok := domain.ParseSeverity(m.Severity)
	if !ok {
		sev = domain.SeverityInfo
	}

	id := m.ID
	if !strings.HasPrefix(id, "report_") {
		id = "report_" + id
	}

	var occurredAt int64
	if !m.SubmittedAt.IsZero() {
		occurredAt = m.SubmittedAt.UnixMilli()
	}

	return domain.Event{
		ID:            id,
		Title:         title,
		Category:      cat,
		Severity:      sev,
		Location:      strings.TrimSpace(m.Location),
		Geo:           m.Geo,
		Detail:        strings.TrimSpace(m.Body),
		SourceName:    "Community",
		OccurredAt:    occurredAt,
		UserSubmitted: true,
	}, nil
}
