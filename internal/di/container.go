package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/display"
	"github.com/mikey/mail-triage/internal/adapters/mailparse"
	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/credential"
	"github.com/mikey/mail-triage/internal/factory"
	"github.com/mikey/mail-triage/internal/logging"
	"github.com/mikey/mail-triage/internal/metrics"
	"github.com/mikey/mail-triage/internal/ports"
	"github.com/mikey/mail-triage/internal/utils"
)

// BuildContainer creates and configures a dependency injection container for the relay daemon
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideCore(container); err != nil {
		return nil, err
	}

	// Register email filter
	if err := container.Provide(func(f *factory.FilterFactory) (ports.EmailFilter, error) {
		return f.CreateEmailFilter("relay")
	}); err != nil {
		return nil, err
	}

	// Register metrics server
	if err := container.Provide(func(cfg *config.Config, recorder *metrics.Recorder, logger *zap.Logger) *metrics.Server {
		return metrics.NewServer(cfg.GetMetrics().ListenAddress, recorder, logger)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideCore registers everything shared by the daemon and the CLI.
// The container must already provide *config.Config and *zap.Logger.
func provideCore(container *dig.Container) error {
	// Register factories
	for _, constructor := range []interface{}{
		factory.NewTextProcessorFactory,
		factory.NewAnalyzerFactory,
		factory.NewPolisherFactory,
		factory.NewCacheFactory,
		factory.NewFilterFactory,
		factory.NewDisplayFactory,
		factory.NewCredentialStore,
		metrics.NewRecorder,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Register text processor and parser
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.TextProcessorFactory, tp *utils.TextProcessor) *mailparse.Parser {
		return f.CreateParser(tp)
	}); err != nil {
		return err
	}

	// Register analyzer
	if err := container.Provide(func(f *factory.AnalyzerFactory) (*core.Analyzer, error) {
		return f.CreateAnalyzer()
	}); err != nil {
		return err
	}

	// Register reply polisher; nil when polishing is disabled
	if err := container.Provide(func(f *factory.PolisherFactory) (core.ReplyPolisher, error) {
		return f.CreatePolisher()
	}); err != nil {
		return err
	}

	// Register assistant service; the draft cache only exists when drafts are polished
	if err := container.Provide(func(
		f *factory.CacheFactory,
		analyzer *core.Analyzer,
		polisher core.ReplyPolisher,
		recorder *metrics.Recorder,
	) (*core.AssistantService, error) {
		return f.CreateAssistantService(analyzer, polisher, recorder)
	}); err != nil {
		return err
	}

	// Register message source
	if err := container.Provide(func(
		cfg *config.Config,
		logger *zap.Logger,
		tp *utils.TextProcessor,
		parser *mailparse.Parser,
		store *credential.Store,
	) (ports.MessageSource, error) {
		return factory.NewSourceFactory(cfg, logger, tp, parser, store).CreateMessageSource()
	}); err != nil {
		return err
	}

	// Register renderer
	if err := container.Provide(func(f *factory.DisplayFactory) *display.Renderer {
		return f.CreateRenderer()
	}); err != nil {
		return err
	}

	return nil
}
