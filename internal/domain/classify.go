package domain

import (
	"regexp"
	"strings"
)

// classifierRules is evaluated in order; the first match wins. Order is part
// of the contract: conflict terms outrank violence terms, so "shooting" in a
// war headline classifies as conflict.
var classifierRules = []struct {
	category Category
	pattern  *regexp.Regexp
}{
	{CategoryEarthquake, regexp.MustCompile(`earthquake|quake|seismic|tremor`)},
	{CategoryConflict, regexp.MustCompile(`war|attack|airstrike|missile|military|troops|battle|bombing|shooting|armed|killed|explosion`)},
	{CategoryWeather, regexp.MustCompile(`hurricane|typhoon|cyclone|flood|tornado|storm`)},
	{CategoryDisaster, regexp.MustCompile(`wildfire|fire|eruption|volcano|tsunami|landslide`)},
	{CategoryPolitical, regexp.MustCompile(`election|coup|protest|riot|government|minister|president|parliament`)},
	{CategoryHealth, regexp.MustCompile(`virus|outbreak|disease|epidemic|pandemic|health`)},
	{CategoryViolence, regexp.MustCompile(`shooting|violence|assault|gunfire|casualties`)},
}

// Classify infers a category from free text (typically a headline, optionally
// concatenated with tags). Matching is case-insensitive substring; text
// matching no rule returns CategoryInfo.
func Classify(text string) Category {
	t := strings.ToLower(text)
	for _, rule := range classifierRules {
		if rule.pattern.MatchString(t) {
			return rule.category
		}
	}
	return CategoryInfo
}
