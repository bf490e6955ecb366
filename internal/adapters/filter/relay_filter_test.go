package filter

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/emersion/go-message/textproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/mailparse"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/utils"
)

const urgentRaw = "From: jane@example.com\r\n" +
	"To: support@example.com\r\n" +
	"Subject: Help needed\r\n" +
	"Date: Mon, 03 Jun 2024 10:00:00 +0000\r\n" +
	"\r\n" +
	"This is urgent, the service is not working.\r\n"

const calmRaw = "From: bob@example.com\r\n" +
	"Subject: Query about pricing\r\n" +
	"\r\n" +
	"Thanks for the great support.\r\n"

func newRelay(modifySubject bool) *RelayFilter {
	logger := zap.NewNop()
	tp := utils.NewTextProcessor(logger)
	service := core.NewAssistantService(core.NewDefaultAnalyzer(), nil, nil, nil, logger, false, 0)
	return NewRelayFilter(service, mailparse.NewParser(tp, logger), logger, RelayOptions{
		Headers: RelayHeaders{
			Priority:  "X-Triage-Priority",
			Urgency:   "X-Triage-Urgency",
			Sentiment: "X-Triage-Sentiment",
		},
		ModifySubject: modifySubject,
	})
}

func readBack(t *testing.T, data []byte) (textproto.Header, string) {
	t.Helper()
	br := bufio.NewReader(bytes.NewReader(data))
	h, err := textproto.ReadHeader(br)
	require.NoError(t, err)
	body, err := io.ReadAll(br)
	require.NoError(t, err)
	return h, string(body)
}

func TestRelayAnnotatesUrgentMail(t *testing.T) {
	out := newRelay(false).handle(context.Background(), "envelope@example.com", []byte(urgentRaw))

	h, body := readBack(t, out)
	assert.Equal(t, core.PriorityUrgent, h.Get("X-Triage-Priority"))
	assert.Equal(t, "0.60", h.Get("X-Triage-Urgency"))
	assert.Equal(t, "Negative", h.Get("X-Triage-Sentiment"))
	assert.Equal(t, "Help needed", h.Get("Subject"))
	assert.Equal(t, "This is urgent, the service is not working.\r\n", body)
	assert.True(t, bytes.HasPrefix(out, []byte("X-Triage-Priority: Urgent\r\n")))
}

func TestRelayPrefixesUrgentSubject(t *testing.T) {
	out := newRelay(true).handle(context.Background(), "", []byte(urgentRaw))

	h, _ := readBack(t, out)
	assert.Equal(t, "[URGENT] Help needed", h.Get("Subject"))
}

func TestRelayLeavesCalmSubject(t *testing.T) {
	out := newRelay(true).handle(context.Background(), "", []byte(calmRaw))

	h, _ := readBack(t, out)
	assert.Equal(t, "Query about pricing", h.Get("Subject"))
	assert.Equal(t, core.PriorityNotUrgent, h.Get("X-Triage-Priority"))
	assert.Equal(t, "0.00", h.Get("X-Triage-Urgency"))
	assert.Equal(t, "Positive", h.Get("X-Triage-Sentiment"))
}

func TestRelayReplacesSpoofedHeaders(t *testing.T) {
	raw := "X-Triage-Priority: Urgent\r\n" + calmRaw
	out := newRelay(false).handle(context.Background(), "", []byte(raw))

	h, _ := readBack(t, out)
	assert.Equal(t, []string{core.PriorityNotUrgent}, h.Values("X-Triage-Priority"))
}

func TestAnnotateFailure(t *testing.T) {
	raw := []byte(calmRaw)
	out := annotateFailure(raw, assert.AnError)

	h, _ := readBack(t, out)
	assert.Equal(t, assert.AnError.Error(), h.Get(ErrorHeader))
	assert.True(t, bytes.HasSuffix(out, raw))
}

func TestRelayProcessEmail(t *testing.T) {
	msg := &core.Message{Sender: "jane@example.com", Subject: "Help", Body: "urgent please"}
	tr, err := newRelay(false).ProcessEmail(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, 0.5, tr.Analysis.Urgency)

	_, err = newRelay(false).ProcessEmail(context.Background(), nil)
	assert.Error(t, err)
}
