package domain

import "strings"

// FilterAll is the category value that disables category filtering.
const FilterAll = "all"

// Filter selects the subsequence of events matching a category filter and a
// free-text query. Category matches exactly (or passes everything for "all"
// / empty); the query is a case-insensitive substring match against title or
// location, with the empty query matching everything. Both predicates are
// ANDed. Ordering is preserved; no scoring.
func Filter(events []Event, category, query string) []Event {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]Event, 0, len(events))
	for _, ev := range events {
		if category != "" && category != FilterAll && string(ev.Category) != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(ev.Title), q) &&
			!strings.Contains(strings.ToLower(ev.Location), q) {
			continue
		}
		out = append(out, ev)
	}
	return out
}
