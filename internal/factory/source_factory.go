package factory

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/csvsource"
	"github.com/mikey/mail-triage/internal/adapters/imapsource"
	"github.com/mikey/mail-triage/internal/adapters/mailparse"
	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/credential"
	"github.com/mikey/mail-triage/internal/ports"
	"github.com/mikey/mail-triage/internal/relevance"
	"github.com/mikey/mail-triage/internal/utils"
)

// SecretGetter looks up stored credentials
type SecretGetter interface {
	Get(key string) (string, error)
}

// SourceFactory creates message sources based on configuration
type SourceFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	parser        *mailparse.Parser
	secrets       SecretGetter
}

// NewSourceFactory creates a new source factory. secrets may be nil when the
// keyring is not used.
func NewSourceFactory(
	cfg *config.Config,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
	parser *mailparse.Parser,
	secrets SecretGetter,
) *SourceFactory {
	return &SourceFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
		parser:        parser,
		secrets:       secrets,
	}
}

// NewCredentialStore creates the keyring store configured for IMAP passwords
func NewCredentialStore(cfg *config.Config) *credential.Store {
	return credential.NewStore(cfg.GetIMAP().KeyringDir)
}

// CreateMessageSource creates the configured message source
func (f *SourceFactory) CreateMessageSource() (ports.MessageSource, error) {
	sourceType := f.cfg.GetSource().Type

	switch sourceType {
	case "csv":
		path := f.cfg.GetCSV().Path
		if path == "" {
			return nil, fmt.Errorf("csv path is required")
		}
		return csvsource.NewSource(path, f.textProcessor, f.logger), nil
	case "imap":
		imapCfg, err := f.imapConfig()
		if err != nil {
			return nil, err
		}
		filter := relevance.NewFilter(f.cfg.GetIMAP().Keywords, f.logger)
		return imapsource.NewSource(imapCfg, filter, f.parser, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", sourceType)
	}
}

// imapConfig resolves the IMAP settings, reading the password from the
// keyring when configured and none is given
func (f *SourceFactory) imapConfig() (imapsource.Config, error) {
	c := f.cfg.GetIMAP()
	if c.Username == "" {
		return imapsource.Config{}, fmt.Errorf("imap username is required")
	}

	password := c.Password
	if password == "" && c.UseKeyring {
		if f.secrets == nil {
			return imapsource.Config{}, fmt.Errorf("keyring is not available")
		}
		secret, err := f.secrets.Get(credential.IMAPPasswordKey(c.Username))
		if err != nil {
			return imapsource.Config{}, fmt.Errorf("reading imap password from keyring: %w", err)
		}
		password = secret
	}
	if password == "" {
		return imapsource.Config{}, fmt.Errorf("imap password is required")
	}

	return imapsource.Config{
		Host:     c.Host,
		Port:     strconv.Itoa(c.Port),
		Username: c.Username,
		Password: password,
		Mailbox:  c.Mailbox,
		Limit:    c.Limit,
		TLS:      c.TLS,
	}, nil
}
