package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/mailparse"
	"github.com/mikey/mail-triage/internal/factory"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a single RFC 5322 message and print its draft reply",
		Example: `  mail-triage analyze --file message.eml
  cat message.eml | mail-triage analyze`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			container, err := a.container()
			if err != nil {
				return err
			}

			return container.Invoke(func(
				parser *mailparse.Parser,
				filters *factory.FilterFactory,
				logger *zap.Logger,
			) error {
				defer logger.Sync()

				raw, err := readInput(cmd.InOrStdin(), inputFile)
				if err != nil {
					return err
				}

				msg, err := parser.Parse(raw, "cli")
				if err != nil {
					return fmt.Errorf("failed to parse email: %w", err)
				}

				cliFilter, err := filters.CreateCliFilter(cmd.OutOrStdout(), a.verbose)
				if err != nil {
					return err
				}
				_, err = cliFilter.ProcessEmail(cmd.Context(), &msg)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Input email file (stdin if not specified)")

	return cmd
}

// readInput reads the whole file, or stdin when path is empty
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}
