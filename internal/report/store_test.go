package report

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/begbajrami/begdar/internal/domain"
)

var frozenTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func testStore() *Store {
	return NewStore(clockwork.NewFakeClockAt(frozenTime))
}

func TestStore_Submit(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		s := testStore()
		r, err := s.Submit(Submission{
			Title:       "Road washed out near river crossing",
			Body:        "Bridge on route 9 is impassable.",
			Location:    "Beledweyne, Somalia",
			Category:    "weather",
			Severity:    "medium",
			SubmittedBy: "user-42",
		})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(r.ID, "report_"))
		assert.Equal(t, domain.CategoryWeather, r.Category)
		assert.Equal(t, domain.SeverityMedium, r.Severity)
		assert.Equal(t, frozenTime, r.SubmittedAt)
		assert.False(t, r.Approved)

		stored, err := s.Get(r.ID)
		require.NoError(t, err)
		assert.Equal(t, r, stored)
	})

	t.Run("empty title rejected synchronously", func(t *testing.T) {
		s := testStore()
		_, err := s.Submit(Submission{Title: "   "})
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("unknown category and severity get defaults", func(t *testing.T) {
		s := testStore()
		r, err := s.Submit(Submission{Title: "Something happened", Category: "mystery", Severity: "apocalyptic"})
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryUserReport, r.Category)
		assert.Equal(t, domain.SeverityInfo, r.Severity)
	})

	t.Run("ids are unique", func(t *testing.T) {
		s := testStore()
		a, err := s.Submit(Submission{Title: "first"})
		require.NoError(t, err)
		b, err := s.Submit(Submission{Title: "second"})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestStore_Approve(t *testing.T) {
	t.Run("approval emits the event once", func(t *testing.T) {
		s := testStore()
		r, err := s.Submit(Submission{Title: "Flooding on main street", Category: "weather", Severity: "high", Geo: &domain.Geo{Lat: 4.7, Lng: 45.2}})
		require.NoError(t, err)

		ev, err := s.Approve(r.ID)
		require.NoError(t, err)

		assert.Equal(t, r.ID, ev.ID)
		assert.True(t, ev.UserSubmitted)
		assert.Equal(t, domain.CategoryWeather, ev.Category)
		assert.Equal(t, frozenTime.UnixMilli(), ev.OccurredAt)
		assert.Equal(t, "Community", ev.SourceName)

		select {
		case got := <-s.Approved():
			assert.Equal(t, ev, got)
		default:
			t.Fatal("expected an approval notification")
		}

		_, err = s.Approve(r.ID)
		assert.ErrorIs(t, err, ErrAlreadyApproved)
	})

	t.Run("unknown id", func(t *testing.T) {
		s := testStore()
		_, err := s.Approve("report_nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unapproved reports never reach the notifier", func(t *testing.T) {
		s := testStore()
		_, err := s.Submit(Submission{Title: "pending report"})
		require.NoError(t, err)

		select {
		case <-s.Approved():
			t.Fatal("submission alone must not emit an event")
		default:
		}
	})
}

func TestDecodeMessage(t *testing.T) {
	t.Run("valid message", func(t *testing.T) {
		data := []byte(`{"id":"abc123","title":"Shelter collapsed","body":"Two buildings down.","location":"Port-au-Prince","category":"disaster","severity":"high","geo":{"lat":18.5,"lng":-72.3},"submitted_at":"2024-01-15T12:00:00Z"}`)

		ev, err := DecodeMessage(data)
		require.NoError(t, err)

		assert.Equal(t, "report_abc123", ev.ID)
		assert.Equal(t, domain.CategoryDisaster, ev.Category)
		assert.Equal(t, domain.SeverityHigh, ev.Severity)
		assert.True(t, ev.UserSubmitted)
		assert.Equal(t, frozenTime.UnixMilli(), ev.OccurredAt)
		require.NotNil(t, ev.Geo)
		assert.Equal(t, 18.5, ev.Geo.Lat)
	})

	t.Run("id already prefixed is kept", func(t *testing.T) {
		ev, err := DecodeMessage([]byte(`{"id":"report_xyz","title":"ok"}`))
		require.NoError(t, err)
		assert.Equal(t, "report_xyz", ev.ID)
	})

	t.Run("missing submitted_at yields zero timestamp", func(t *testing.T) {
		ev, err := DecodeMessage([]byte(`{"id":"x","title":"ok"}`))
		require.NoError(t, err)
		assert.Equal(t, int64(0), ev.OccurredAt)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := DecodeMessage([]byte(`{"id":"x","title":"  "}`))
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("missing id rejected", func(t *testing.T) {
		_, err := DecodeMessage([]byte(`{"title":"ok"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing id")
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := DecodeMessage([]byte("{nope"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode report message")
	})
}
