package dispatch

import (
	"sort"

	"github.com/xrash/smetrics"
)

// Jaro-Winkler parameters: standard prefix boost for strings sharing the
// first characters, which suits dashed command keywords well.
const (
	boostThreshold = 0.7
	prefixSize     = 4
)

// closestMatches returns the candidates whose Jaro-Winkler similarity to
// keyword is at least cutoff, best first, at most limit entries.
func closestMatches(keyword string, candidates []string, cutoff float64, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var matches []scored
	for _, candidate := range candidates {
		score := smetrics.JaroWinkler(keyword, candidate, boostThreshold, prefixSize)
		if score >= cutoff {
			matches = append(matches, scored{name: candidate, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}

// Suggest finds fuzzy matches for an unrecognized keyword. Tables are
// consulted in registration order and the first table with any match wins,
// with the exit keywords as a final fallback.
func (d *Dispatcher) Suggest(keyword string) []string {
	for _, table := range d.tables {
		if matches := closestMatches(keyword, table.keywords(), d.cfg.SuggestionCutoff, d.cfg.SuggestionLimit); len(matches) > 0 {
			return matches
		}
	}
	return closestMatches(keyword, exitKeywords, d.cfg.SuggestionCutoff, d.cfg.SuggestionLimit)
}
