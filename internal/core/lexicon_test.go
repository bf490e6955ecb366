package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMatchMode(t *testing.T) {
	tests := []struct {
		in      string
		want    MatchMode
		wantErr bool
	}{
		{in: "", want: MatchSubstring},
		{in: "substring", want: MatchSubstring},
		{in: " Word ", want: MatchWord},
		{in: "fuzzy", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMatchMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcherGranularity(t *testing.T) {
	lex := DefaultLexicon()
	substring := NewMatcher(MatchSubstring, lex)
	word := NewMatcher(MatchWord, lex)

	assert.True(t, substring.Contains("i cannot log in", "not"))
	assert.False(t, word.Contains("i cannot log in", "not"))

	assert.True(t, substring.Contains("so frustrated", "frustrat"))
	assert.False(t, word.Contains("so frustrated", "frustrat"))

	assert.True(t, word.Contains("please cancel it", "cancel"))
	assert.True(t, word.Contains("we cannot access it", "cannot access"))
	// keywords outside the lexicon still work
	assert.True(t, word.Contains("a refund please", "refund"))
}

func TestWordModeAnalyzer(t *testing.T) {
	a := NewAnalyzer(DefaultLexicon(), MatchWord)
	s := a.ScoreSentiment("Thanks, no problems, I cannot complain")
	assert.Equal(t, 0, s.PosCount)
	assert.Equal(t, 0, s.NegCount)
	assert.Equal(t, SentimentNeutral, s.Label)
}

func TestDefaultLexiconIsFresh(t *testing.T) {
	a := DefaultLexicon()
	a.Urgency[0] = "changed"
	assert.Equal(t, "urgent", DefaultLexicon().Urgency[0])
}

func TestAnalyzerLexiconIsolated(t *testing.T) {
	lex := DefaultLexicon()
	a := NewAnalyzer(lex, MatchSubstring)

	lex.Urgency[2] = "zzz"
	got := a.Lexicon()
	got.Urgency[0] = "zzz"

	assert.Equal(t, 0.5, a.ScoreUrgency("urgent", ""))
	assert.Equal(t, 0.5, a.ScoreUrgency("critical", ""))
	assert.Equal(t, "urgent", a.Lexicon().Urgency[0])
}

func TestWordMatcherCachesAdHocKeywords(t *testing.T) {
	m := NewMatcher(MatchWord, DefaultLexicon()).(wordMatcher)

	assert.True(t, m.Contains("a refund please", "refund"))
	first := m.pattern("refund")
	assert.True(t, m.Contains("refund now", "refund"))
	assert.Same(t, first, m.pattern("refund"))
}
