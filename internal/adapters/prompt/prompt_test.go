package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/mail-triage/internal/core"
)

func TestBuild(t *testing.T) {
	req := &core.PolishRequest{
		Message: core.Message{Sender: "jane@example.com", Subject: "Help"},
		Analysis: core.AnalysisRecord{
			Urgency:        0.7,
			SentimentLabel: core.SentimentNegative,
			Requests:       []string{"I need a refund", "Please help"},
		},
		Draft: "Hi Jane,\n\nThanks",
	}

	p := Build(req, "truncated body")

	assert.Contains(t, p, "From: jane@example.com")
	assert.Contains(t, p, "Priority: Urgent")
	assert.Contains(t, p, "Sentiment: Negative")
	assert.Contains(t, p, "- I need a refund\n- Please help")
	assert.Contains(t, p, "Body:\ntruncated body")
	assert.Contains(t, p, "Draft reply:\nHi Jane,\n\nThanks")
}

func TestBuildWithoutRequests(t *testing.T) {
	p := Build(&core.PolishRequest{}, "")
	assert.Contains(t, p, "Requests:\n(none)")
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain json", input: `{"reply": "Hello"}`, want: "Hello"},
		{name: "wrapped json", input: "Sure!\n```json\n{\"reply\": \" Hi there \"}\n```", want: "Hi there"},
		{name: "no json", input: "I cannot do that", wantErr: true},
		{name: "broken json", input: `{"reply": }`, wantErr: true},
		{name: "empty reply", input: `{"reply": "  "}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReply(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
