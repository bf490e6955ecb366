package factory

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/filter"
	"github.com/mikey/mail-triage/internal/adapters/mailparse"
	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/ports"
	"github.com/mikey/mail-triage/internal/utils"
)

// FilterFactory creates email filters based on configuration
type FilterFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	service       *core.AssistantService
	parser        *mailparse.Parser
	textProcessor *utils.TextProcessor
}

// NewFilterFactory creates a new filter factory
func NewFilterFactory(
	cfg *config.Config,
	logger *zap.Logger,
	service *core.AssistantService,
	parser *mailparse.Parser,
	textProcessor *utils.TextProcessor,
) *FilterFactory {
	return &FilterFactory{
		cfg:           cfg,
		logger:        logger,
		service:       service,
		parser:        parser,
		textProcessor: textProcessor,
	}
}

// CreateEmailFilter creates an email filter of the given type
func (f *FilterFactory) CreateEmailFilter(filterType string) (ports.EmailFilter, error) {
	switch filterType {
	case "relay":
		return f.CreateRelayFilter(), nil
	case "cli":
		return f.CreateCliFilter(os.Stdout, f.cfg.GetBool("cli.verbose"))
	default:
		return nil, fmt.Errorf("unsupported filter type: %s", filterType)
	}
}

// CreateRelayFilter creates the SMTP relay filter
func (f *FilterFactory) CreateRelayFilter() *filter.RelayFilter {
	relayCfg := f.cfg.GetRelay()
	return filter.NewRelayFilter(f.service, f.parser, f.logger, filter.RelayOptions{
		ListenAddr: relayCfg.ListenAddress,
		Headers: filter.RelayHeaders{
			Priority:  relayCfg.PriorityHeader,
			Urgency:   relayCfg.UrgencyHeader,
			Sentiment: relayCfg.SentimentHeader,
		},
		ModifySubject:     relayCfg.ModifySubject,
		SubjectPrefix:     relayCfg.SubjectPrefix,
		DownstreamEnabled: relayCfg.DownstreamEnabled,
		DownstreamAddr:    relayCfg.DownstreamAddress,
		DownstreamPort:    relayCfg.DownstreamPort,
	})
}

// CreateCliFilter creates a CLI filter writing to out
func (f *FilterFactory) CreateCliFilter(out io.Writer, verbose bool) (*filter.CliFilter, error) {
	return filter.NewCliFilter(f.service, f.textProcessor, f.logger, out, verbose)
}
