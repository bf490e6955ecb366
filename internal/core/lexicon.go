package core

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Lexicon holds the lowercase keyword sets used by the scorers and extractors.
// A Lexicon is never mutated after construction and may be shared freely.
type Lexicon struct {
	Support  []string
	Urgency  []string
	Negative []string
	Positive []string
	Request  []string
}

// DefaultLexicon returns the built-in keyword sets
func DefaultLexicon() Lexicon {
	return Lexicon{
		Support:  []string{"support", "query", "request", "help"},
		Urgency:  []string{"urgent", "immediately", "critical", "cannot access", "asap", "escalate"},
		Negative: []string{"not", "never", "cancel", "wrong", "late", "delay", "missing", "unhappy", "angry", "problem", "issue", "frustrat"},
		Positive: []string{"thank", "great", "good", "happy", "love", "excellent", "appreciate"},
		Request:  []string{"need", "require", "help", "request", "issue", "problem", "cannot"},
	}
}

// clone returns a Lexicon that shares no backing arrays with l
func (l Lexicon) clone() Lexicon {
	return Lexicon{
		Support:  append([]string(nil), l.Support...),
		Urgency:  append([]string(nil), l.Urgency...),
		Negative: append([]string(nil), l.Negative...),
		Positive: append([]string(nil), l.Positive...),
		Request:  append([]string(nil), l.Request...),
	}
}

// all returns every keyword across all sets
func (l Lexicon) all() []string {
	words := make([]string, 0, len(l.Support)+len(l.Urgency)+len(l.Negative)+len(l.Positive)+len(l.Request))
	words = append(words, l.Support...)
	words = append(words, l.Urgency...)
	words = append(words, l.Negative...)
	words = append(words, l.Positive...)
	words = append(words, l.Request...)
	return words
}

// MatchMode selects how a keyword is located in text
type MatchMode string

const (
	// MatchSubstring counts a keyword wherever it occurs, so "frustrat" matches "frustrated"
	// and "not" matches "cannot".
	MatchSubstring MatchMode = "substring"
	// MatchWord only counts a keyword bounded by non-word characters.
	MatchWord MatchMode = "word"
)

// ParseMatchMode parses a configured match mode, defaulting to substring
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchWord:
		return MatchWord, nil
	default:
		return "", fmt.Errorf("unsupported match mode: %s", s)
	}
}

// Matcher tests keyword presence in already lowercased text
type Matcher interface {
	Contains(text, keyword string) bool
}

type substringMatcher struct{}

func (substringMatcher) Contains(text, keyword string) bool {
	return strings.Contains(text, keyword)
}

// wordMatcher compiles each keyword's pattern once. Lexicon keywords are
// compiled up front, others on first use.
type wordMatcher struct {
	patterns *sync.Map
}

func (m wordMatcher) pattern(keyword string) *regexp.Regexp {
	if re, ok := m.patterns.Load(keyword); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := m.patterns.LoadOrStore(keyword, wordPattern(keyword))
	return re.(*regexp.Regexp)
}

func (m wordMatcher) Contains(text, keyword string) bool {
	return m.pattern(keyword).MatchString(text)
}

func wordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
}

// NewMatcher builds a Matcher for the mode, precompiling patterns for the lexicon's keywords
func NewMatcher(mode MatchMode, lexicon Lexicon) Matcher {
	if mode != MatchWord {
		return substringMatcher{}
	}
	m := wordMatcher{patterns: &sync.Map{}}
	for _, w := range lexicon.all() {
		m.pattern(w)
	}
	return m
}

// countPresent counts how many distinct keywords occur in text; repeats of one keyword count once
func countPresent(m Matcher, text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if m.Contains(text, kw) {
			n++
		}
	}
	return n
}

// containsAny reports whether any keyword occurs in text
func containsAny(m Matcher, text string, keywords []string) bool {
	for _, kw := range keywords {
		if m.Contains(text, kw) {
			return true
		}
	}
	return false
}
