package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/utils"
)

// Column names recognised in the header row
const (
	ColumnSender   = "sender"
	ColumnSubject  = "subject"
	ColumnBody     = "body"
	ColumnSentDate = "sent_date"
)

// DateLayout is the preferred textual timestamp format
const DateLayout = "2006-01-02 15:04:05"

// Source reads messages from a CSV export
type Source struct {
	path          string
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
	now           func() time.Time
}

// NewSource creates a new CSV source for the file at path
func NewSource(path string, textProcessor *utils.TextProcessor, logger *zap.Logger) *Source {
	return &Source{
		path:          path,
		textProcessor: textProcessor,
		logger:        logger,
		now:           time.Now,
	}
}

// Name identifies the source
func (s *Source) Name() string {
	return "csv"
}

// FetchMessages reads every row of the configured file
func (s *Source) FetchMessages(ctx context.Context) ([]core.Message, error) {
	if s.path == "" {
		return nil, fmt.Errorf("csv path is required")
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	s.logger.Info("Reading messages from CSV", zap.String("file", s.path))
	return s.Parse(ctx, f)
}

// Parse reads messages from CSV data with a header row. Columns may appear in
// any order; missing cells become empty strings and a missing or unparseable
// sent_date becomes the current time. Malformed rows are skipped.
func (s *Source) Parse(ctx context.Context, r io.Reader) ([]core.Message, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return []core.Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	columns := indexColumns(header)

	messages := []core.Message{}
	for {
		if err := ctx.Err(); err != nil {
			return messages, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				s.logger.Warn("Skipping malformed csv row", zap.Error(err))
				continue
			}
			return messages, fmt.Errorf("failed to read csv row: %w", err)
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return s.textProcessor.SanitizeUTF8(record[i])
		}

		messages = append(messages, core.Message{
			ID:         uuid.NewString(),
			Sender:     field(ColumnSender),
			Subject:    field(ColumnSubject),
			Body:       field(ColumnBody),
			ReceivedAt: ParseTimestamp(field(ColumnSentDate), s.now),
			Source:     s.Name(),
		})
	}

	s.logger.Debug("Parsed csv messages", zap.Int("count", len(messages)))
	return messages, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	return columns
}

// ParseTimestamp accepts epoch seconds or a date string and falls back to now()
func ParseTimestamp(value string, now func() time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return now()
	}

	if secs, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(secs) && !math.IsInf(secs, 0) {
		whole, frac := math.Modf(secs)
		return time.Unix(int64(whole), int64(frac*1e9))
	}

	for _, layout := range []string{DateLayout, time.RFC3339, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}

	return now()
}
