package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/logging"
)

// CLIOptions contains the global settings of the command line application
type CLIOptions struct {
	Config  *config.Config
	Verbose bool
	JSONLog bool
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(opts *CLIOptions) (*dig.Container, error) {
	container := dig.New()

	// Register options
	if err := container.Provide(func() *CLIOptions { return opts }); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(opts *CLIOptions) *config.Config { return opts.Config }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(opts *CLIOptions) (*zap.Logger, error) {
		return logging.InitConsoleLogger(opts.Verbose, opts.JSONLog)
	}); err != nil {
		return nil, err
	}

	if err := provideCore(container); err != nil {
		return nil, err
	}

	return container, nil
}
