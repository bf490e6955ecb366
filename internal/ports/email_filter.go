package ports

import (
	"context"

	"github.com/mikey/mail-triage/internal/core"
)

// EmailFilter defines the interface for mail intake filters
type EmailFilter interface {
	// ProcessEmail triages a message and returns the result
	ProcessEmail(ctx context.Context, msg *core.Message) (*core.Triage, error)

	// Start starts the filter service
	Start() error

	// Stop stops the filter service
	Stop() error
}
