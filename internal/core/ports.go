package core

import (
	"context"
	"time"
)

// PolishRequest carries a template draft and its context to a reply polisher
type PolishRequest struct {
	Message  Message
	Analysis AnalysisRecord
	Draft    string
}

// PolishedReply is a rewritten draft
type PolishedReply struct {
	Text         string
	Model        string
	ProcessingID string
	PolishedAt   time.Time
}

// ReplyPolisher defines the interface for services that rewrite a template draft
type ReplyPolisher interface {
	// PolishReply rewrites the draft in a natural tone without changing its commitments
	PolishReply(ctx context.Context, req *PolishRequest) (*PolishedReply, error)
}

// CacheRepository defines the interface for caching polished drafts
type CacheRepository interface {
	// Get retrieves a cached entry by key
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

// TriageObserver receives a notification for every triaged message
type TriageObserver interface {
	ObserveTriage(t *Triage)
	ObservePolishFailure()
}
