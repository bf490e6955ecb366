package core

import (
	"regexp"
	"strings"
	"unicode"
)

var productPattern = regexp.MustCompile(`(?i)product\s*[:\-]?\s*([\p{L}\p{N}_]+)`)

const (
	apologyLine   = "We understand your frustration and apologize for any inconvenience caused.\n"
	signatureLine = "— Support Team"
)

// DisplayName derives a greeting name from a sender: the text before the first "@"
// (or the whole sender when there is none), with each whitespace-separated word title-cased
func DisplayName(sender string) string {
	local, _, _ := strings.Cut(sender, "@")

	var b strings.Builder
	b.Grow(len(local))
	wordStart := true
	for _, r := range local {
		switch {
		case unicode.IsSpace(r):
			wordStart = true
			b.WriteRune(r)
		case unicode.IsLetter(r):
			if wordStart {
				b.WriteRune(unicode.ToTitle(r))
				wordStart = false
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ProductMentions returns the word following each "product" mention in body, in order
func ProductMentions(body string) []string {
	var products []string
	for _, m := range productPattern.FindAllStringSubmatch(body, -1) {
		products = append(products, m[1])
	}
	return products
}

// IsFrustrated reports whether the reply should open with an apology
func IsFrustrated(rec AnalysisRecord) bool {
	return rec.SentimentLabel == SentimentNegative || IsUrgent(rec.Urgency)
}

// GenerateReply composes the templated draft reply for a message.
// The result depends only on the sender, body, sentiment label and urgency.
func GenerateReply(msg Message, rec AnalysisRecord) string {
	var b strings.Builder

	b.WriteString("Hi ")
	b.WriteString(DisplayName(msg.Sender))
	b.WriteString(",\n\n")

	if IsFrustrated(rec) {
		b.WriteString(apologyLine)
	}

	b.WriteString("Thank you for contacting us")
	if products := ProductMentions(msg.Body); len(products) > 0 {
		b.WriteString(" regarding the ")
		b.WriteString(strings.Join(products, ", "))
	}
	b.WriteString(". Our team is reviewing your request and will respond promptly.\n\n")

	b.WriteString(signatureLine)
	return b.String()
}
