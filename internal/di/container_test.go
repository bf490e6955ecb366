package di

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/mail-triage/internal/adapters/display"
	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/ports"
)

func TestCLIContainerResolvesPipeline(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("csv.path", "emails.csv")

	container, err := BuildCLIContainer(&CLIOptions{Config: config.NewFromViper(v)})
	require.NoError(t, err)

	err = container.Invoke(func(svc *core.AssistantService, src ports.MessageSource, r *display.Renderer) {
		assert.Equal(t, "csv", src.Name())
		assert.NotNil(t, r)

		tr := svc.Triage(context.Background(), core.Message{
			Sender:     "jane@example.com",
			Subject:    "Help",
			Body:       "This is urgent and the order is late.",
			ReceivedAt: time.Now(),
		})
		assert.True(t, core.IsUrgent(tr.Analysis.Urgency))
		assert.Empty(t, tr.Polished)
	})
	require.NoError(t, err)
}

func TestCLIContainerReportsBadSource(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("source.type", "pop3")

	container, err := BuildCLIContainer(&CLIOptions{Config: config.NewFromViper(v)})
	require.NoError(t, err)

	err = container.Invoke(func(ports.MessageSource) {})
	assert.ErrorContains(t, err, "unsupported source type")
}
