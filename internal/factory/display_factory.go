package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/display"
	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/relevance"
	"github.com/mikey/mail-triage/internal/utils"
)

// DisplayFactory creates terminal renderers
type DisplayFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewDisplayFactory creates a new display factory
func NewDisplayFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *DisplayFactory {
	return &DisplayFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateRenderer creates a renderer using the configured display keywords and limits
func (f *DisplayFactory) CreateRenderer() *display.Renderer {
	d := f.cfg.GetDisplay()
	return display.NewRenderer(display.Options{
		MaxBody:    d.MaxBody,
		MaxSubject: d.MaxSubject,
		MaxDate:    d.MaxDate,
		ShowDrafts: d.ShowDrafts,
	}, relevance.NewFilter(d.Keywords, f.logger), f.textProcessor, f.logger)
}
