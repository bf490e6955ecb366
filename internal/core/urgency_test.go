package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreUrgency(t *testing.T) {
	a := NewDefaultAnalyzer()

	tests := []struct {
		name    string
		subject string
		body    string
		want    float64
	}{
		{name: "empty", subject: "", body: "", want: 0},
		{name: "no keywords", subject: "Hello", body: "Just saying hi", want: 0},
		{name: "single urgency keyword", subject: "ASAP", body: "see below", want: 0.5},
		{name: "urgency plus one negative", subject: "urgent", body: "my parcel is late", want: 0.6},
		{name: "two urgency keywords saturate", subject: "urgent", body: "escalate please", want: 1.0},
		{
			name:    "many keywords clamp",
			subject: "URGENT: cannot access account",
			body:    "This is critical, please escalate",
			want:    1.0,
		},
		{name: "three negatives", subject: "", body: "wrong, late and missing", want: 0.3},
		{
			name:    "negatives capped at half",
			subject: "",
			body:    "never cancel wrong late delay missing unhappy angry problem issue",
			want:    0.5,
		},
		{name: "subject and body joined with a space", subject: "cannot", body: "access", want: 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.ScoreUrgency(tt.subject, tt.body)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestNegativeWordsAloneNeverUrgent(t *testing.T) {
	a := NewDefaultAnalyzer()
	body := ""
	for _, w := range DefaultLexicon().Negative {
		body += w + " "
		assert.False(t, IsUrgent(a.ScoreUrgency("", body)), "negatives %q", body)
	}
}

func TestUrgencyMonotonic(t *testing.T) {
	a := NewDefaultAnalyzer()
	prev := 0.0
	body := ""
	for _, w := range append(DefaultLexicon().Negative, DefaultLexicon().Urgency...) {
		body += " " + w
		got := a.ScoreUrgency("", body)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 1.0, prev)
}
