package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/mail-triage/internal/core"
)

func triaged(source string, urgency float64, label core.SentimentLabel) *core.Triage {
	return &core.Triage{
		Message:  core.Message{Source: source},
		Analysis: core.AnalysisRecord{Urgency: urgency, SentimentLabel: label},
	}
}

func TestObserveTriage(t *testing.T) {
	r := NewRecorder()

	r.ObserveTriage(triaged("imap", 0.9, core.SentimentNegative))
	r.ObserveTriage(triaged("imap", 0.6, core.SentimentNeutral))
	r.ObserveTriage(triaged("csv", 0.1, core.SentimentNegative))
	r.ObserveTriage(triaged("", 0.59, core.SentimentPositive))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.messages.WithLabelValues("imap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.messages.WithLabelValues("csv")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.messages.WithLabelValues("unknown")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.urgent))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.sentiment.WithLabelValues("Negative")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sentiment.WithLabelValues("Positive")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.urgencyObserved))
}

func TestObservePolishFailure(t *testing.T) {
	r := NewRecorder()
	r.ObservePolishFailure()
	r.ObservePolishFailure()
	assert.Equal(t, 2.0, testutil.ToFloat64(r.polishFailures))
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.ObserveTriage(triaged("csv", 1.0, core.SentimentNeutral))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `mail_triage_messages_total{source="csv"} 1`)
	assert.Contains(t, body, "mail_triage_urgent_total 1")
	assert.Contains(t, body, "mail_triage_urgency_count 1")
}

func TestRecorderSatisfiesObserver(t *testing.T) {
	var _ core.TriageObserver = NewRecorder()
}
