// Package fuzzy implements approximate label matching for checklist
// evaluation. A similarity score is the maximum of three strategies:
// whole-string ratio, best-substring ratio, and token-sort ratio.
package fuzzy

import (
	"strings"

	fuzzywuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// DefaultThreshold is the minimum similarity score (0-100) counted as a
// match. Calibration knob inherited from production data; not empirically
// validated beyond that.
const DefaultThreshold = 60

// Config holds configuration options for the matcher.
type Config struct {
	Threshold int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold}
}

// Matcher computes similarity scores between text labels.
type Matcher struct {
	threshold int
}

// NewMatcher creates a matcher with the default threshold.
func NewMatcher() *Matcher {
	return NewMatcherWithConfig(DefaultConfig())
}

// NewMatcherWithConfig creates a matcher with custom configuration.
func NewMatcherWithConfig(cfg Config) *Matcher {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Threshold returns the configured match threshold.
func (m *Matcher) Threshold() int {
	return m.threshold
}

// Similarity returns a case-insensitive similarity score in [0,100]
// between two labels. The three strategies reward exact alignment,
// partial containment, and reordered words respectively; the best one wins.
func (m *Matcher) Similarity(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	score := fuzzywuzzy.Ratio(a, b)
	if s := fuzzywuzzy.PartialRatio(a, b); s > score {
		score = s
	}
	if s := fuzzywuzzy.TokenSortRatio(a, b); s > score {
		score = s
	}
	return score
}

// Match scores target against every candidate and keeps the best one.
// Ties are broken deterministically: the first candidate in the supplied
// order wins. Confidence is the best score normalized to [0,1] whether or
// not it clears the threshold.
func (m *Matcher) Match(candidates []string, target string) (isMatch bool, confidence float64, best string) {
	bestScore := 0
	for _, candidate := range candidates {
		if score := m.Similarity(target, candidate); score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	return bestScore >= m.threshold, float64(bestScore) / 100.0, best
}
