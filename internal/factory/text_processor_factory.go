package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/mailparse"
	"github.com/mikey/mail-triage/internal/utils"
)

// TextProcessorFactory creates text processors and the parsers built on them
type TextProcessorFactory struct {
	logger *zap.Logger
}

// NewTextProcessorFactory creates a new TextProcessorFactory
func NewTextProcessorFactory(logger *zap.Logger) *TextProcessorFactory {
	return &TextProcessorFactory{
		logger: logger,
	}
}

// CreateTextProcessor creates a new TextProcessor
func (f *TextProcessorFactory) CreateTextProcessor() *utils.TextProcessor {
	return utils.NewTextProcessor(f.logger)
}

// CreateParser creates a MIME parser sharing the given text processor
func (f *TextProcessorFactory) CreateParser(tp *utils.TextProcessor) *mailparse.Parser {
	return mailparse.NewParser(tp, f.logger)
}
