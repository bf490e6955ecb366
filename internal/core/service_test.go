package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPolisher struct {
	calls int
	err   error
}

func (p *stubPolisher) PolishReply(_ context.Context, req *PolishRequest) (*PolishedReply, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &PolishedReply{Text: "polished: " + req.Draft, Model: "stub"}, nil
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]*CacheEntry
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*CacheEntry)}
}

func (c *mapCache) Get(_ context.Context, key string) (*CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return e, nil
}

func (c *mapCache) Set(_ context.Context, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.Key] = entry
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *mapCache) Cleanup(context.Context) error { return nil }

type countingObserver struct {
	triaged  int
	failures int
}

func (o *countingObserver) ObserveTriage(*Triage) { o.triaged++ }
func (o *countingObserver) ObservePolishFailure() { o.failures++ }

func testMessage() Message {
	return Message{
		ID:      "1",
		Sender:  "jane.doe@example.com",
		Subject: "URGENT: cannot access account",
		Body:    "This is critical, please escalate",
	}
}

func TestTriageWithoutPolisher(t *testing.T) {
	obs := &countingObserver{}
	svc := NewAssistantService(NewDefaultAnalyzer(), nil, nil, obs, zap.NewNop(), true, time.Hour)

	tr := svc.Triage(context.Background(), testMessage())

	assert.Equal(t, 1.0, tr.Analysis.Urgency)
	assert.Equal(t, GenerateReply(tr.Message, tr.Analysis), tr.Draft)
	assert.Empty(t, tr.Polished)
	assert.Equal(t, tr.Draft, tr.Reply())
	assert.Equal(t, 1, obs.triaged)
}

func TestTriagePolishesAndCaches(t *testing.T) {
	polisher := &stubPolisher{}
	cache := newMapCache()
	svc := NewAssistantService(NewDefaultAnalyzer(), polisher, cache, nil, zap.NewNop(), true, time.Hour)

	first := svc.Triage(context.Background(), testMessage())
	second := svc.Triage(context.Background(), testMessage())

	assert.Equal(t, 1, polisher.calls)
	assert.Equal(t, "polished: "+first.Draft, first.Reply())
	assert.Equal(t, first.Polished, second.Polished)
	assert.Equal(t, "stub", second.PolishModel)

	entry, err := cache.Get(context.Background(), DraftKey(first.Message, first.Draft))
	require.NoError(t, err)
	assert.True(t, entry.ExpiresAt.After(entry.CreatedAt))
}

func TestTriagePolishFailureKeepsDraft(t *testing.T) {
	polisher := &stubPolisher{err: errors.New("boom")}
	obs := &countingObserver{}
	svc := NewAssistantService(NewDefaultAnalyzer(), polisher, nil, obs, zap.NewNop(), true, time.Hour)

	tr := svc.Triage(context.Background(), testMessage())

	assert.Empty(t, tr.Polished)
	assert.Equal(t, tr.Draft, tr.Reply())
	assert.Equal(t, 1, obs.failures)
}

func TestTriageAllKeepsOrder(t *testing.T) {
	svc := NewAssistantService(NewDefaultAnalyzer(), nil, nil, nil, zap.NewNop(), false, 0)
	msgs := []Message{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	out := svc.TriageAll(context.Background(), msgs)

	require.Len(t, out, 3)
	for i, tr := range out {
		assert.Equal(t, msgs[i].ID, tr.Message.ID)
	}
}

func TestTriageAllStopsOnCancel(t *testing.T) {
	svc := NewAssistantService(NewDefaultAnalyzer(), nil, nil, nil, zap.NewNop(), false, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Empty(t, svc.TriageAll(ctx, []Message{{ID: "a"}}))
}

func TestDraftKey(t *testing.T) {
	msg := testMessage()
	assert.Equal(t, DraftKey(msg, "x"), DraftKey(msg, "x"))
	assert.NotEqual(t, DraftKey(msg, "x"), DraftKey(msg, "y"))

	other := msg
	other.Body = msg.Body + "!"
	assert.NotEqual(t, DraftKey(msg, "x"), DraftKey(other, "x"))
}
