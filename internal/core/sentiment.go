package core

import "strings"

// ScoreSentiment counts the positive and negative keywords present in body.
// Each keyword contributes at most once however often it repeats.
func (a *Analyzer) ScoreSentiment(body string) Sentiment {
	text := strings.ToLower(body)
	pos := countPresent(a.matcher, text, a.lexicon.Positive)
	neg := countPresent(a.matcher, text, a.lexicon.Negative)
	score := pos - neg
	return Sentiment{
		Score:    score,
		Label:    LabelForScore(score),
		PosCount: pos,
		NegCount: neg,
	}
}
