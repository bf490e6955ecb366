package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/display"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/ports"
)

func newTriageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Fetch support mail and show it urgent first with draft replies",
		Long: `Fetch messages from the configured source, keep those whose subject mentions one
of the display keywords, and print them as a table ordered by urgency followed by
one card per message with the extracted details and a draft reply.`,
		Example: `  mail-triage triage --source csv --file emails.csv
  mail-triage triage --source imap --imap-user me@example.com --keyring --limit 20`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(a.cfg, cmd.Flags(), []flagBinding{
				{flag: "source", key: "source.type"},
				{flag: "file", key: "csv.path"},
				{flag: "imap-host", key: "imap.host"},
				{flag: "imap-port", key: "imap.port"},
				{flag: "imap-user", key: "imap.username"},
				{flag: "mailbox", key: "imap.mailbox"},
				{flag: "limit", key: "imap.limit"},
				{flag: "keyring", key: "imap.use_keyring"},
				{flag: "keywords", key: "display.keywords"},
				{flag: "drafts", key: "display.show_drafts"},
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			container, err := a.container()
			if err != nil {
				return err
			}

			return container.Invoke(func(
				src ports.MessageSource,
				svc *core.AssistantService,
				renderer *display.Renderer,
				logger *zap.Logger,
			) error {
				defer logger.Sync()

				ctx := cmd.Context()
				msgs, err := src.FetchMessages(ctx)
				if err != nil {
					return fmt.Errorf("failed to fetch messages from %s: %w", src.Name(), err)
				}
				logger.Info("Fetched messages", zap.String("source", src.Name()), zap.Int("count", len(msgs)))

				return renderer.Render(cmd.OutOrStdout(), svc.TriageAll(ctx, msgs))
			})
		},
	}

	flags := cmd.Flags()
	flags.String("source", "csv", "Message source: csv or imap")
	flags.String("file", "", "CSV file with sender, subject, body and sent_date columns")
	flags.String("imap-host", "imap.gmail.com", "IMAP server host")
	flags.Int("imap-port", 993, "IMAP server port")
	flags.String("imap-user", "", "IMAP username")
	flags.String("mailbox", "INBOX", "IMAP mailbox to read")
	flags.Int("limit", 50, "Number of most recent IMAP messages to examine")
	flags.Bool("keyring", false, "Read the IMAP password from the system keyring")
	flags.StringSlice("keywords", []string{"Support", "Query", "Request", "Help"}, "Subject keywords to display")
	flags.Bool("drafts", true, "Show the detail cards with draft replies")

	return cmd
}
