// Package report handles crowd-sourced hazard reports. Submissions are
// shape-validated, held pending, and only enter the merged feed once
// approved; approval emits the unified event on a notifier channel that the
// composition root drains into the merge engine's push path.
package report

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/begbajrami/begdar/internal/domain"
)

var (
	// ErrEmptyTitle rejects a submission at the door; a non-empty title is
	// the sole hard requirement.
	ErrEmptyTitle = errors.New("report title must not be empty")

	// ErrNotFound means no report exists under the given id.
	ErrNotFound = errors.New("report not found")

	// ErrAlreadyApproved guards against double-pushing the same report.
	ErrAlreadyApproved = errors.New("report already approved")
)

// Submission is the user-authored record as it arrives at the boundary.
type Submission struct {
	Title       string      `json:"title"`
	Body        string      `json:"body"`
	Location    string      `json:"location"`
	Category    string      `json:"category"`
	Severity    string      `json:"severity"`
	Geo         *domain.Geo `json:"geo,omitempty"`
	SubmittedBy string      `json:"submitted_by"`
}

// Report is a stored submission plus its moderation state.
type Report struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	Location    string          `json:"location"`
	Category    domain.Category `json:"category"`
	Severity    domain.Severity `json:"severity"`
	Geo         *domain.Geo     `json:"geo,omitempty"`
	SubmittedBy string          `json:"submitted_by"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Approved    bool            `json:"approved"`
	ApprovedAt  time.Time       `json:"approved_at,omitzero"`
}

// Event converts an approved report into the unified event shape.
func (r Report) Event() domain.Event {
	return domain.Event{
		ID:            r.ID,
		Title:         r.Title,
		Category:      r.Category,
		Severity:      r.Severity,
		Location:      r.Location,
		Geo:           r.Geo,
		Detail:        r.Body,
		SourceName:    "Community",
		OccurredAt:    r.SubmittedAt.UnixMilli(),
		UserSubmitted: true,
	}
}

// Store holds submitted reports in memory and notifies on approval.
type Store struct {
	mu       sync.Mutex
	reports  map[string]*Report
	clock    clockwork.Clock
	approved chan domain.Event
}

// NewStore creates an empty report store.
func NewStore(clock clockwork.Clock) *Store {
	return &Store{
		reports: make(map[string]*Report),
		clock:   clock,
		// Buffered so a slow drainer cannot block the approval path; if the
		// buffer fills the notification is dropped and the event still lands
		// via the stored record.
		approved: make(chan domain.Event, 64),
	}
}

// Submit validates and stores a new report. Empty titles are rejected
// synchronously and never enter the pipeline. Unknown categories fall back
// to user_report, unknown severities to info.
func (s *Store) Submit(sub Submission) (Report, error) {
	title := strings.TrimSpace(sub.Title)
	if title == "" {
		return Report{}, ErrEmptyTitle
	}

	cat, ok := domain.ParseCategory(sub.Category)
	if !ok {
		cat = domain.CategoryUserReport
	}
	sev, ok := domain.ParseSeverity(sub.Severity)
	if !ok {
		sev = domain.SeverityInfo
	}

	r := Report{
		ID:          "report_" + uuid.NewString(),
		Title:       title,
		Body:        strings.TrimSpace(sub.Body),
		Location:    strings.TrimSpace(sub.Location),
		Category:    cat,
		Severity:    sev,
		Geo:         sub.Geo,
		SubmittedBy: sub.SubmittedBy,
		SubmittedAt: s.clock.Now().UTC(),
	}

	s.mu.Lock()
	s.reports[r.ID] = &r
	s.mu.Unlock()

	return r, nil
}

// Approve marks a report approved and emits its event on the notifier
// channel. Approving twice is an error so the event is pushed at most once.
func (s *Store) Approve(id string) (domain.Event, error) {
	s.mu.Lock()
	r, ok := s.reports[id]
	if !ok {
		s.mu.Unlock()
		return domain.Event{}, ErrNotFound
	}
	if r.Approved {
		s.mu.Unlock()
		return domain.Event{}, ErrAlreadyApproved
	}
	r.Approved = true
	r.ApprovedAt = s.clock.Now().UTC()
	ev := r.Event()
	s.mu.Unlock()

	select {
	case s.approved <- ev:
	default:
	}
	return ev, nil
}

// Get returns a copy of the stored report.
func (s *Store) Get(id string) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reports[id]
	if !ok {
		return Report{}, ErrNotFound
	}
	return *r, nil
}

// Approved exposes the stream of newly approved events.
func (s *Store) Approved() <-chan domain.Event {
	return s.approved
}
