package filter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/mailparse"
	"github.com/mikey/mail-triage/internal/core"
)

// ErrorHeader carries the reason a message was forwarded without triage headers
const ErrorHeader = "X-Triage-Error"

const (
	relaySource    = "relay"
	triageTimeout  = 30 * time.Second
	dialTimeout    = 10 * time.Second
	forwardTimeout = 30 * time.Second
)

// RelayHeaders names the headers stamped on relayed mail
type RelayHeaders struct {
	Priority  string
	Urgency   string
	Sentiment string
}

// RelayOptions configures the relay
type RelayOptions struct {
	ListenAddr        string
	Headers           RelayHeaders
	ModifySubject     bool
	SubjectPrefix     string
	DownstreamEnabled bool
	DownstreamAddr    string
	DownstreamPort    int
}

// RelayFilter is an SMTP content filter that stamps triage results on mail
// and hands it back to the downstream MTA. It never rejects mail.
type RelayFilter struct {
	service *core.AssistantService
	parser  *mailparse.Parser
	logger  *zap.Logger
	opts    RelayOptions
	server  *smtp.Server
}

// NewRelayFilter creates a new SMTP relay filter
func NewRelayFilter(service *core.AssistantService, parser *mailparse.Parser, logger *zap.Logger, opts RelayOptions) *RelayFilter {
	if opts.SubjectPrefix == "" && opts.ModifySubject {
		opts.SubjectPrefix = "[URGENT] "
	}

	return &RelayFilter{
		service: service,
		parser:  parser,
		logger:  logger,
		opts:    opts,
	}
}

// Start starts the SMTP listener
func (f *RelayFilter) Start() error {
	f.server = smtp.NewServer(&smtpBackend{filter: f})

	f.server.Addr = f.opts.ListenAddr
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	f.server.MaxRecipients = 50

	f.logger.Info("Relay filter starting", zap.String("address", f.opts.ListenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil && err != smtp.ErrServerClosed {
			f.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the SMTP listener
func (f *RelayFilter) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessEmail triages a message without relaying it
func (f *RelayFilter) ProcessEmail(ctx context.Context, msg *core.Message) (*core.Triage, error) {
	if msg == nil {
		return nil, fmt.Errorf("message is required")
	}
	return f.service.Triage(ctx, *msg), nil
}

// handle triages raw message data and returns the annotated message
func (f *RelayFilter) handle(ctx context.Context, envelopeFrom string, raw []byte) []byte {
	msg, err := f.parser.Parse(raw, relaySource)
	if err != nil {
		f.logger.Error("Failed to parse message, forwarding unannotated",
			zap.Error(err),
			zap.String("sender", envelopeFrom))
		return annotateFailure(raw, err)
	}
	if msg.Sender == "" {
		msg.Sender = envelopeFrom
	}

	t := f.service.Triage(ctx, msg)

	out, err := f.annotate(raw, t)
	if err != nil {
		f.logger.Error("Failed to annotate message, forwarding unannotated",
			zap.Error(err),
			zap.String("sender", msg.Sender))
		return annotateFailure(raw, err)
	}

	f.logger.Info("Processed email",
		zap.String("from", msg.Sender),
		zap.String("priority", core.PriorityLabel(t.Analysis.Urgency)),
		zap.Float64("urgency", t.Analysis.Urgency),
		zap.String("sentiment", string(t.Analysis.SentimentLabel)))
	return out
}

// annotate prepends the triage headers to raw and, for urgent mail, prefixes
// the subject when configured. The body is copied through untouched.
func (f *RelayFilter) annotate(raw []byte, t *core.Triage) ([]byte, error) {
	br := bufio.NewReader(bytes.NewReader(raw))
	h, err := textproto.ReadHeader(br)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	body, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	if f.opts.ModifySubject && core.IsUrgent(t.Analysis.Urgency) &&
		!strings.HasPrefix(t.Message.Subject, f.opts.SubjectPrefix) {
		mh := mail.Header{Header: message.Header{Header: h}}
		mh.SetSubject(f.opts.SubjectPrefix + t.Message.Subject)
		h = mh.Header.Header
	}

	h.Set(f.opts.Headers.Sentiment, string(t.Analysis.SentimentLabel))
	h.Set(f.opts.Headers.Urgency, fmt.Sprintf("%.2f", t.Analysis.Urgency))
	h.Set(f.opts.Headers.Priority, core.PriorityLabel(t.Analysis.Urgency))

	var buf bytes.Buffer
	if err := textproto.WriteHeader(&buf, h); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

// annotateFailure prepends the error header to an otherwise untouched message
func annotateFailure(raw []byte, cause error) []byte {
	reason := strings.Join(strings.Fields(cause.Error()), " ")

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s: %s\r\n", ErrorHeader, reason)
	buf.Write(raw)
	return buf.Bytes()
}

// sendDownstream hands the processed message back to the MTA
func (f *RelayFilter) sendDownstream(sender string, recipients []string, data []byte) error {
	addr := net.JoinHostPort(f.opts.DownstreamAddr, fmt.Sprint(f.opts.DownstreamPort))

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to downstream: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(forwardTimeout)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}

	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
			continue
		}
		recipientOK = true
	}
	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send email data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		// Already delivered
		f.logger.Warn("QUIT command failed", zap.Error(err))
	}
	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	filter *RelayFilter
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{filter: b.filter}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	filter     *RelayFilter
	sender     string
	recipients []string
}

func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = nil
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data triages the message and forwards it downstream
func (s *smtpSession) Data(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		s.filter.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), triageTimeout)
	defer cancel()

	out := s.filter.handle(ctx, s.sender, raw)

	if !s.filter.opts.DownstreamEnabled {
		s.filter.logger.Warn("Downstream forwarding disabled, message dropped after triage",
			zap.String("sender", s.sender))
		return nil
	}

	if err := s.filter.sendDownstream(s.sender, s.recipients, out); err != nil {
		s.filter.logger.Error("Failed to forward message downstream",
			zap.Error(err),
			zap.String("sender", s.sender))
		return err
	}
	return nil
}

func (s *smtpSession) Logout() error {
	return nil
}
