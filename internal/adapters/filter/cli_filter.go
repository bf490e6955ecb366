package filter

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/utils"
)

const previewRunes = 500

// CliFilter prints the analysis and draft reply of a single message
type CliFilter struct {
	service       *core.AssistantService
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
	out           io.Writer
	verbose       bool
}

// NewCliFilter creates a new CLI filter writing to out
func NewCliFilter(service *core.AssistantService, textProcessor *utils.TextProcessor, logger *zap.Logger, out io.Writer, verbose bool) (*CliFilter, error) {
	if out == nil {
		return nil, fmt.Errorf("output writer is required")
	}
	return &CliFilter{
		service:       service,
		textProcessor: textProcessor,
		logger:        logger,
		out:           out,
		verbose:       verbose,
	}, nil
}

// ProcessEmail triages a message and displays the results
func (f *CliFilter) ProcessEmail(ctx context.Context, msg *core.Message) (*core.Triage, error) {
	if msg == nil {
		return nil, fmt.Errorf("message is required")
	}
	f.logger.Debug("Processing email", zap.String("sender", msg.Sender))

	w := f.out
	fmt.Fprintf(w, "\n=== Email Summary ===\n")
	fmt.Fprintf(w, "From: %s\n", msg.Sender)
	fmt.Fprintf(w, "Subject: %s\n", msg.Subject)
	fmt.Fprintf(w, "Date: %s\n", msg.ReceivedAt.Format(time.RFC1123Z))
	fmt.Fprintf(w, "Body length: %d bytes\n", len(msg.Body))

	if f.verbose {
		fmt.Fprintf(w, "\nBody preview:\n%s\n", f.textProcessor.TruncateText(msg.Body, previewRunes))
	}

	startTime := time.Now()
	t := f.service.Triage(ctx, *msg)
	duration := time.Since(startTime)

	rec := t.Analysis
	fmt.Fprintf(w, "\n=== Analysis ===\n")
	fmt.Fprintf(w, "Priority: %s\n", core.PriorityLabel(rec.Urgency))
	fmt.Fprintf(w, "Urgency: %.2f\n", rec.Urgency)
	fmt.Fprintf(w, "Sentiment: %s (score %d, pos %d, neg %d)\n", rec.SentimentLabel, rec.SentimentScore, rec.PosCount, rec.NegCount)
	fmt.Fprintf(w, "Phones: %s\n", joinOrNone(rec.Contacts.Phones))
	fmt.Fprintf(w, "Emails: %s\n", joinOrNone(rec.Contacts.Emails))
	fmt.Fprintf(w, "Requests:\n")
	if len(rec.Requests) == 0 {
		fmt.Fprintf(w, "  (none)\n")
	}
	for _, req := range rec.Requests {
		fmt.Fprintf(w, "  - %s\n", req)
	}

	fmt.Fprintf(w, "\n=== Draft Reply ===\n%s\n", t.Draft)
	if t.Polished != "" {
		fmt.Fprintf(w, "\n=== Polished Reply (%s) ===\n%s\n", t.PolishModel, t.Polished)
	}
	fmt.Fprintf(w, "\nProcessing time: %v\n", duration)

	return t, nil
}

// Start is a no-op for the CLI filter
func (f *CliFilter) Start() error {
	return nil
}

// Stop is a no-op for the CLI filter
func (f *CliFilter) Stop() error {
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
