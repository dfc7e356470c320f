package domain

// SeverityFromMagnitude maps a seismic magnitude to severity. Seismic events
// never map to info; a missing magnitude (0) lands in the low bucket.
func SeverityFromMagnitude(mag float64) Severity {
	switch {
	case mag >= 7:
		return SeverityCritical
	case mag >= 6:
		return SeverityHigh
	case mag >= 5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// SeverityFromFatalities maps a conflict-log casualty count to severity.
// Negative counts (malformed source data parsed to a sentinel) are treated
// as zero.
func SeverityFromFatalities(fatalities int) Severity {
	switch {
	case fatalities >= 100:
		return SeverityCritical
	case fatalities >= 20:
		return SeverityHigh
	case fatalities >= 5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// SeverityFromCategory is the fallback for sources with no numeric signal:
// conflict and violence headlines read as high, everything else medium.
func SeverityFromCategory(c Category) Severity {
	if c == CategoryConflict || c == CategoryViolence {
		return SeverityHigh
	}
	return SeverityMedium
}
