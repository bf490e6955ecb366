package imapsource

import (
	"context"
	"fmt"
	"net"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/mailparse"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/relevance"
)

// Config holds the IMAP connection settings
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	Mailbox  string
	Limit    int
	TLS      bool
}

// Source fetches recent support mail from an IMAP mailbox
type Source struct {
	cfg    Config
	filter *relevance.Filter
	parser *mailparse.Parser
	logger *zap.Logger
}

// NewSource creates a new IMAP source. Only messages whose subject passes
// filter are returned.
func NewSource(cfg Config, filter *relevance.Filter, parser *mailparse.Parser, logger *zap.Logger) *Source {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	return &Source{
		cfg:    cfg,
		filter: filter,
		parser: parser,
		logger: logger,
	}
}

// Name identifies the source
func (s *Source) Name() string {
	return "imap"
}

// connect dials the server and authenticates. The caller must log out.
func (s *Source) connect() (*imapclient.Client, error) {
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	var client *imapclient.Client
	var err error
	if s.cfg.TLS {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(s.cfg.Username, s.cfg.Password).Wait(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("authentication failed for %s: %w", s.cfg.Username, err)
	}

	return client, nil
}

// FetchMessages selects the mailbox, fetches the newest messages up to the
// configured limit and keeps the ones with a relevant subject
func (s *Source) FetchMessages(ctx context.Context) ([]core.Message, error) {
	client, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := client.Logout().Wait(); err != nil {
			s.logger.Debug("IMAP logout failed", zap.Error(err))
		}
	}()

	if _, err := client.Select(s.cfg.Mailbox, nil).Wait(); err != nil {
		return nil, fmt.Errorf("selecting %s: %w", s.cfg.Mailbox, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	searchData, err := client.UIDSearch(&imap.SearchCriteria{}, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching messages: %w", err)
	}

	uids := newestUIDs(searchData.AllUIDs(), s.cfg.Limit)
	if len(uids) == 0 {
		return []core.Message{}, nil
	}

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := client.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	})
	defer fetchCmd.Close()

	var raws [][]byte
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		msg := fetchCmd.Next()
		if msg == nil {
			break
		}

		buf, err := msg.Collect()
		if err != nil {
			s.logger.Warn("Skipping message that could not be fetched", zap.Error(err))
			continue
		}

		raw := buf.FindBodySection(bodySection)
		if raw == nil {
			s.logger.Warn("Skipping message without body", zap.Uint32("uid", uint32(buf.UID)))
			continue
		}
		raws = append(raws, raw)
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("fetching messages: %w", err)
	}

	messages := s.selectRelevant(raws)
	s.logger.Info("Fetched messages from IMAP",
		zap.String("mailbox", s.cfg.Mailbox),
		zap.Int("fetched", len(raws)),
		zap.Int("relevant", len(messages)))

	return messages, nil
}

// selectRelevant parses raw messages and keeps those with a relevant subject
func (s *Source) selectRelevant(raws [][]byte) []core.Message {
	messages := []core.Message{}
	for _, raw := range raws {
		msg, err := s.parser.Parse(raw, s.Name())
		if err != nil {
			s.logger.Warn("Skipping unparseable message", zap.Error(err))
			continue
		}
		if !s.filter.Matches(msg.Subject) {
			continue
		}
		messages = append(messages, msg)
	}
	return messages
}

// newestUIDs keeps the last limit UIDs; a non-positive limit keeps all
func newestUIDs(uids []imap.UID, limit int) []imap.UID {
	if limit > 0 && len(uids) > limit {
		return uids[len(uids)-limit:]
	}
	return uids
}
