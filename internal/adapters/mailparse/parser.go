package mailparse

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/utils"
)

func init() {
	message.CharsetReader = charsetReader
}

// charsetReader decodes a MIME charset label into UTF-8
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.MIME.Encoding(strings.ToLower(label))
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// Parser turns raw RFC 5322 messages into core messages
type Parser struct {
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
	now           func() time.Time
}

// NewParser creates a new message parser
func NewParser(textProcessor *utils.TextProcessor, logger *zap.Logger) *Parser {
	return &Parser{
		textProcessor: textProcessor,
		logger:        logger,
		now:           time.Now,
	}
}

// Parse reads the sender, decoded subject, date and first plain-text body of a raw message.
// Parts that cannot be decoded yield empty strings rather than errors; only an
// unreadable header block is reported as an error.
func (p *Parser) Parse(raw []byte, source string) (core.Message, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return core.Message{}, fmt.Errorf("reading message header: %w", err)
	}
	defer mr.Close()

	msg := core.Message{
		ID:         uuid.NewString(),
		Sender:     p.headerText(mr.Header, "From"),
		Subject:    p.subject(mr.Header),
		ReceivedAt: p.date(mr.Header),
		Source:     source,
	}
	msg.Body = p.textProcessor.SanitizeUTF8(p.body(mr))

	return msg, nil
}

func (p *Parser) subject(h mail.Header) string {
	subject, err := h.Subject()
	if err != nil {
		p.logger.Debug("Failed to decode subject, using raw value", zap.Error(err))
		return p.textProcessor.SanitizeUTF8(h.Get("Subject"))
	}
	return p.textProcessor.SanitizeUTF8(subject)
}

func (p *Parser) headerText(h mail.Header, key string) string {
	value, err := h.Text(key)
	if err != nil {
		return p.textProcessor.SanitizeUTF8(h.Get(key))
	}
	return p.textProcessor.SanitizeUTF8(value)
}

func (p *Parser) date(h mail.Header) time.Time {
	t, err := h.Date()
	if err != nil || t.IsZero() {
		return p.now()
	}
	return t
}

// body returns the first inline text/plain part. A single-part message yields
// its only part whatever its type.
func (p *Parser) body(mr *mail.Reader) string {
	mediaType, _, _ := mr.Header.ContentType()
	multipart := strings.HasPrefix(strings.ToLower(mediaType), "multipart/")

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			p.logger.Debug("Failed to read message part", zap.Error(err))
			break
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			// Skip attachments
			continue
		}

		contentType, _, _ := h.ContentType()
		if multipart && !strings.HasPrefix(strings.ToLower(contentType), "text/plain") {
			continue
		}

		data, err := io.ReadAll(part.Body)
		if err != nil {
			p.logger.Debug("Failed to decode message body", zap.Error(err))
			return ""
		}
		return string(data)
	}

	return ""
}
