package core

import (
	"time"
)

// Message represents an inbound email handed to the assistant by a source
type Message struct {
	ID         string
	Sender     string
	Subject    string
	Body       string
	ReceivedAt time.Time
	Source     string
}

// ContactInfo holds contact details found in a message body
type ContactInfo struct {
	Phones []string
	Emails []string
}

// SentimentLabel is the polarity of a message body
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// LabelForScore maps a sentiment score to its label
func LabelForScore(score int) SentimentLabel {
	switch {
	case score > 0:
		return SentimentPositive
	case score < 0:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Sentiment is the result of scoring a body for polarity
type Sentiment struct {
	Score    int
	Label    SentimentLabel
	PosCount int
	NegCount int
}

// AnalysisRecord is the structured analysis of a single message
type AnalysisRecord struct {
	Contacts       ContactInfo
	Requests       []string
	SentimentLabel SentimentLabel
	SentimentScore int
	PosCount       int
	NegCount       int
	Urgency        float64
	RawText        string
}

// Triage bundles a message with its analysis and draft replies
type Triage struct {
	Message  Message
	Analysis AnalysisRecord
	Draft    string

	// Polished is empty unless a reply polisher produced a rewrite
	Polished    string
	PolishModel string
}

// Reply returns the polished draft when one exists, otherwise the template draft
func (t *Triage) Reply() string {
	if t.Polished != "" {
		return t.Polished
	}
	return t.Draft
}

// CacheEntry is a cached polished draft
type CacheEntry struct {
	Key       string
	Polished  string
	Model     string
	CreatedAt time.Time
	ExpiresAt time.Time
}
