package core

import (
	"math"
	"strings"
)

const (
	// urgencyKeywordWeight is added for each distinct urgency keyword present
	urgencyKeywordWeight = 0.5
	// negativeWordWeight is added for each distinct negative keyword present
	negativeWordWeight = 0.1
	// negativeContributionCap bounds the negative-word term, which keeps it below UrgentThreshold
	negativeContributionCap = 0.5
	maxUrgency              = 1.0
)

// ScoreUrgency scores subject and body together on a 0..1 scale.
// The urgency-keyword term is uncapped until the final clamp.
func (a *Analyzer) ScoreUrgency(subject, body string) float64 {
	text := strings.ToLower(subject + " " + body)

	score := 0.0
	for _, kw := range a.lexicon.Urgency {
		if a.matcher.Contains(text, kw) {
			score += urgencyKeywordWeight
		}
	}

	neg := countPresent(a.matcher, text, a.lexicon.Negative)
	score += math.Min(negativeContributionCap, negativeWordWeight*float64(neg))

	return math.Min(score, maxUrgency)
}
