package ports

import (
	"context"

	"github.com/mikey/mail-triage/internal/core"
)

// MessageSource defines the interface for components that produce inbound messages
type MessageSource interface {
	// Name identifies the source in logs and metrics
	Name() string

	// FetchMessages returns the messages currently available from the source
	FetchMessages(ctx context.Context) ([]core.Message, error)
}
