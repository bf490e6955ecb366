package core

import "strings"

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// ExtractRequests returns the sentences of body that mention a request keyword,
// trimmed and in their original case, in source order
func (a *Analyzer) ExtractRequests(body string) []string {
	requests := []string{}
	for _, piece := range strings.FieldsFunc(body, isSentenceEnd) {
		sentence := strings.TrimSpace(piece)
		if sentence == "" {
			continue
		}
		if containsAny(a.matcher, strings.ToLower(sentence), a.lexicon.Request) {
			requests = append(requests, sentence)
		}
	}
	return requests
}
