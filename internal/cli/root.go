package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/dig"

	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/di"
)

// app holds the global flags shared by every command
type app struct {
	configFile string
	verbose    bool
	jsonLog    bool
	cfg        *config.Config
}

// flagBinding maps a command line flag to the configuration key it overrides
type flagBinding struct {
	flag string
	key  string
}

// NewRootCmd creates the mail-triage command tree
func NewRootCmd(version string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "mail-triage",
		Short: "Triage customer support mail and draft replies",
		Long: `mail-triage reads support mail from a CSV export or an IMAP mailbox, scores each
message for urgency and sentiment, extracts contact details and customer requests,
and drafts a templated reply.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewWithFile(a.configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			a.cfg = cfg
			return bindFlags(cfg, cmd.Flags(), []flagBinding{
				{flag: "match-mode", key: "analysis.match_mode"},
				{flag: "polish", key: "polish.provider"},
			})
		},
	}
	cmd.SetVersionTemplate(`{{printf "mail-triage version %s\n" .Version}}`)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to config file (default: config.yaml in the standard locations)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&a.jsonLog, "json-log", false, "Output logs in JSON format")
	flags.String("match-mode", "substring", "Keyword matching: substring or word")
	flags.String("polish", "none", "Draft polisher: none, openai, gemini or bedrock")

	cmd.AddCommand(newTriageCmd(a))
	cmd.AddCommand(newAnalyzeCmd(a))
	cmd.AddCommand(newLoginCmd(a))

	return cmd
}

// Execute runs the command line application until it finishes or is interrupted
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// container builds the dependency container for a command
func (a *app) container() (*dig.Container, error) {
	container, err := di.BuildCLIContainer(&di.CLIOptions{
		Config:  a.cfg,
		Verbose: a.verbose,
		JSONLog: a.jsonLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency container: %w", err)
	}
	return container, nil
}

// bindFlags lets explicitly set flags override configuration values
func bindFlags(cfg *config.Config, flags *pflag.FlagSet, bindings []flagBinding) error {
	v := cfg.GetViper()
	for _, b := range bindings {
		f := flags.Lookup(b.flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(b.key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", b.flag, err)
		}
	}
	return nil
}
