package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/credential"
)

// secretSetter stores credentials
type secretSetter interface {
	Set(key, value string) error
}

func newLoginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the IMAP app password in the system keyring",
		Long: `Read an IMAP app password from stdin and store it in the system keyring so that
"mail-triage triage --source imap --keyring" can use it.`,
		Example: `  mail-triage login --imap-user me@example.com < password.txt`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(a.cfg, cmd.Flags(), []flagBinding{
				{flag: "imap-user", key: "imap.username"},
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			container, err := a.container()
			if err != nil {
				return err
			}

			return container.Invoke(func(cfg *config.Config, store *credential.Store) error {
				return storePassword(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.GetIMAP().Username, store)
			})
		},
	}

	cmd.Flags().String("imap-user", "", "IMAP username the password belongs to")

	return cmd
}

// storePassword reads one line from in and stores it as the user's IMAP password
func storePassword(in io.Reader, out io.Writer, username string, store secretSetter) error {
	if username == "" {
		return fmt.Errorf("imap username is required")
	}

	fmt.Fprintf(out, "IMAP app password for %s: ", username)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(out)

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	if err := store.Set(credential.IMAPPasswordKey(username), password); err != nil {
		return err
	}
	fmt.Fprintf(out, "Stored IMAP password for %s\n", username)
	return nil
}
