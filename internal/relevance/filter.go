package relevance

import (
	"strings"

	"go.uber.org/zap"
)

// Filter decides whether a subject line is relevant to support
type Filter struct {
	keywords []string
	logger   *zap.Logger
}

// NewFilter creates a new subject keyword filter
func NewFilter(keywords []string, logger *zap.Logger) *Filter {
	// Normalize keywords (lowercase)
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}

	if len(normalized) > 0 && logger != nil {
		logger.Debug("Initialized relevance filter", zap.Strings("keywords", normalized))
	}

	return &Filter{
		keywords: normalized,
		logger:   logger,
	}
}

// Keywords returns the normalized keywords
func (f *Filter) Keywords() []string {
	return f.keywords
}

// Matches checks whether any keyword occurs in the subject, ignoring case.
// A filter without keywords matches nothing.
func (f *Filter) Matches(subject string) bool {
	if len(f.keywords) == 0 {
		return false
	}

	lower := strings.ToLower(subject)
	for _, kw := range f.keywords {
		if strings.Contains(lower, kw) {
			if f.logger != nil {
				f.logger.Debug("Subject is relevant",
					zap.String("keyword", kw),
					zap.String("subject", subject))
			}
			return true
		}
	}

	return false
}
