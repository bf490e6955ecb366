package filter

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/utils"
)

func newCli(t *testing.T, out *bytes.Buffer, verbose bool) *CliFilter {
	t.Helper()
	logger := zap.NewNop()
	service := core.NewAssistantService(core.NewDefaultAnalyzer(), nil, nil, nil, logger, false, 0)
	f, err := NewCliFilter(service, utils.NewTextProcessor(logger), logger, out, verbose)
	require.NoError(t, err)
	return f
}

func TestCliFilterPrintsAnalysis(t *testing.T) {
	var out bytes.Buffer
	msg := &core.Message{
		Sender:     "jane.doe@example.com",
		Subject:    "Support request",
		Body:       "I need a refund for product X. Call me on +1 415 555 0100.",
		ReceivedAt: time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
	}

	tr, err := newCli(t, &out, true).ProcessEmail(context.Background(), msg)
	require.NoError(t, err)

	printed := out.String()
	assert.Contains(t, printed, "From: jane.doe@example.com")
	assert.Contains(t, printed, "Body preview:")
	assert.Contains(t, printed, "Priority: Not urgent")
	assert.Contains(t, printed, "Phones: +1 415 555 0100")
	assert.Contains(t, printed, "  - I need a refund for product X")
	assert.Contains(t, printed, tr.Draft)
	assert.NotContains(t, printed, "Polished Reply")
}

func TestCliFilterQuiet(t *testing.T) {
	var out bytes.Buffer
	_, err := newCli(t, &out, false).ProcessEmail(context.Background(), &core.Message{Subject: "hi"})
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Body preview:")
	assert.Contains(t, out.String(), "  (none)")
}

func TestNewCliFilterRequiresWriter(t *testing.T) {
	_, err := NewCliFilter(nil, nil, zap.NewNop(), nil, false)
	assert.Error(t, err)
}
