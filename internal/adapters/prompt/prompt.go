package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mikey/mail-triage/internal/core"
)

// SystemPrompt is sent as the system message where the provider supports one
const SystemPrompt = "You rewrite customer support reply drafts. Respond only with JSON."

const polishFormat = `You are a customer support assistant. Rewrite the draft reply below so it reads naturally.
Keep the greeting name, keep any apology, mention the same products and do not promise anything the draft does not.
Respond with a JSON object containing:
- reply: string (the rewritten reply, including the sign-off)

Customer email:
From: %s
Subject: %s
Priority: %s
Sentiment: %s
Requests:
%s
Body:
%s

Draft reply:
%s

Respond only with the JSON object and nothing else.`

// Response is the structured response expected from the model
type Response struct {
	Reply string `json:"reply"`
}

// Build formats the polishing prompt. body is the already truncated message body.
func Build(req *core.PolishRequest, body string) string {
	requests := "(none)"
	if len(req.Analysis.Requests) > 0 {
		requests = "- " + strings.Join(req.Analysis.Requests, "\n- ")
	}

	return fmt.Sprintf(polishFormat,
		req.Message.Sender,
		req.Message.Subject,
		core.PriorityLabel(req.Analysis.Urgency),
		req.Analysis.SentimentLabel,
		requests,
		body,
		req.Draft,
	)
}

// ParseReply extracts the rewritten reply from a model response. The JSON
// object may be wrapped in other text.
func ParseReply(responseText string) (string, error) {
	var resp Response
	if err := json.Unmarshal([]byte(responseText), &resp); err != nil {
		jsonStart := strings.Index(responseText, "{")
		jsonEnd := strings.LastIndex(responseText, "}")
		if jsonStart < 0 || jsonEnd < jsonStart {
			return "", fmt.Errorf("failed to extract JSON from LLM response: %w", err)
		}
		if err := json.Unmarshal([]byte(responseText[jsonStart:jsonEnd+1]), &resp); err != nil {
			return "", fmt.Errorf("failed to parse LLM response as JSON: %w", err)
		}
	}

	reply := strings.TrimSpace(resp.Reply)
	if reply == "" {
		return "", fmt.Errorf("LLM response has an empty reply")
	}
	return reply, nil
}
