package factory

import (
	"fmt"

	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
)

// AnalyzerFactory creates analyzers
type AnalyzerFactory struct {
	cfg *config.Config
}

// NewAnalyzerFactory creates a new analyzer factory
func NewAnalyzerFactory(cfg *config.Config) *AnalyzerFactory {
	return &AnalyzerFactory{cfg: cfg}
}

// CreateAnalyzer creates an analyzer over the default lexicon with the configured match mode
func (f *AnalyzerFactory) CreateAnalyzer() (*core.Analyzer, error) {
	mode, err := core.ParseMatchMode(f.cfg.GetString("analysis.match_mode"))
	if err != nil {
		return nil, fmt.Errorf("invalid analysis match mode: %w", err)
	}
	return core.NewAnalyzer(core.DefaultLexicon(), mode), nil
}
