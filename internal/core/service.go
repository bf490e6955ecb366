package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
)

// AssistantService is the core service that triages inbound mail
type AssistantService struct {
	analyzer     *Analyzer
	polisher     ReplyPolisher
	cache        CacheRepository
	observer     TriageObserver
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
}

// NewAssistantService creates a new assistant service.
// polisher, cache and observer may be nil.
func NewAssistantService(
	analyzer *Analyzer,
	polisher ReplyPolisher,
	cache CacheRepository,
	observer TriageObserver,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
) *AssistantService {
	return &AssistantService{
		analyzer:     analyzer,
		polisher:     polisher,
		cache:        cache,
		observer:     observer,
		logger:       logger,
		cacheEnabled: cacheEnabled && cache != nil,
		cacheTTL:     cacheTTL,
	}
}

// Analyzer returns the analyzer used by the service
func (s *AssistantService) Analyzer() *Analyzer {
	return s.analyzer
}

// Triage analyzes a message and drafts a reply for it
func (s *AssistantService) Triage(ctx context.Context, msg Message) *Triage {
	rec := s.analyzer.AnalyzeMessage(msg)
	t := &Triage{
		Message:  msg,
		Analysis: rec,
		Draft:    GenerateReply(msg, rec),
	}

	if s.polisher != nil {
		s.polish(ctx, t)
	}

	s.logger.Debug("Triaged message",
		zap.String("id", msg.ID),
		zap.String("sender", msg.Sender),
		zap.Float64("urgency", rec.Urgency),
		zap.String("sentiment", string(rec.SentimentLabel)),
		zap.Int("requests", len(rec.Requests)))

	if s.observer != nil {
		s.observer.ObserveTriage(t)
	}
	return t
}

// TriageAll triages messages one after another, preserving their order
func (s *AssistantService) TriageAll(ctx context.Context, msgs []Message) []*Triage {
	out := make([]*Triage, 0, len(msgs))
	for _, msg := range msgs {
		if ctx.Err() != nil {
			s.logger.Warn("Triage interrupted", zap.Error(ctx.Err()), zap.Int("done", len(out)))
			break
		}
		out = append(out, s.Triage(ctx, msg))
	}
	return out
}

// polish asks the polisher for a rewrite, consulting the cache first.
// Failures leave the template draft in place.
func (s *AssistantService) polish(ctx context.Context, t *Triage) {
	key := DraftKey(t.Message, t.Draft)

	if s.cacheEnabled {
		if entry, err := s.cache.Get(ctx, key); err == nil {
			s.logger.Debug("Cache hit for draft", zap.String("key", key))
			t.Polished = entry.Polished
			t.PolishModel = entry.Model
			return
		}
	}

	polished, err := s.polisher.PolishReply(ctx, &PolishRequest{
		Message:  t.Message,
		Analysis: t.Analysis,
		Draft:    t.Draft,
	})
	if err != nil {
		s.logger.Error("Failed to polish draft, keeping template",
			zap.Error(err),
			zap.String("sender", t.Message.Sender))
		if s.observer != nil {
			s.observer.ObservePolishFailure()
		}
		return
	}

	t.Polished = polished.Text
	t.PolishModel = polished.Model

	if s.cacheEnabled {
		now := time.Now()
		entry := &CacheEntry{
			Key:       key,
			Polished:  polished.Text,
			Model:     polished.Model,
			CreatedAt: now,
			ExpiresAt: now.Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}
}

// DraftKey identifies a polished draft by the inputs that determine it
func DraftKey(msg Message, draft string) string {
	h := sha256.New()
	for _, part := range []string{msg.Sender, msg.Subject, msg.Body, draft} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
