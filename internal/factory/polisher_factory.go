package factory

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/bedrock"
	"github.com/mikey/mail-triage/internal/adapters/gemini"
	"github.com/mikey/mail-triage/internal/adapters/openai"
	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/utils"
)

// ProviderNone disables draft polishing
const ProviderNone = "none"

// PolisherFactory creates reply polishers
type PolisherFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewPolisherFactory creates a new polisher factory
func NewPolisherFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *PolisherFactory {
	return &PolisherFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreatePolisher creates the configured reply polisher. It returns nil, nil
// when polishing is disabled.
func (f *PolisherFactory) CreatePolisher() (core.ReplyPolisher, error) {
	provider := strings.ToLower(strings.TrimSpace(f.cfg.GetPolish().Provider))

	switch provider {
	case "", ProviderNone:
		f.logger.Debug("Draft polishing disabled")
		return nil, nil
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreatePolisher()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreatePolisher()
	case "openai":
		return openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreatePolisher()
	default:
		return nil, fmt.Errorf("unsupported polish provider: %s", provider)
	}
}
