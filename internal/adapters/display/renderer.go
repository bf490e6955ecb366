package display

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/relevance"
	"github.com/mikey/mail-triage/internal/utils"
)

// DateLayout is the sent date format shown to the user
const DateLayout = "2006-01-02"

// NoMatchesText is printed when the keyword filter leaves nothing to show
const NoMatchesText = "No emails match the selected subject keywords."

var tableHeaders = []string{"Sender", "Subject", "Body", "Sent Date", "Priority", "Sentiment"}

const (
	colPriority  = 4
	colSentiment = 5
)

// Options controls what the renderer shows
type Options struct {
	MaxBody    int
	MaxSubject int
	MaxDate    int
	ShowDrafts bool
}

// Renderer renders triaged messages for a terminal
type Renderer struct {
	opts          Options
	filter        *relevance.Filter
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
}

// NewRenderer creates a new renderer. filter selects which subjects are shown.
func NewRenderer(opts Options, filter *relevance.Filter, textProcessor *utils.TextProcessor, logger *zap.Logger) *Renderer {
	return &Renderer{
		opts:          opts,
		filter:        filter,
		textProcessor: textProcessor,
		logger:        logger,
	}
}

// Select keeps items whose subject passes the filter and orders them by
// descending urgency; items with equal urgency keep their arrival order
func Select(items []*core.Triage, filter *relevance.Filter) []*core.Triage {
	selected := make([]*core.Triage, 0, len(items))
	for _, it := range items {
		if filter.Matches(it.Message.Subject) {
			selected = append(selected, it)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Analysis.Urgency > selected[j].Analysis.Urgency
	})
	return selected
}

// Render writes the summary table followed by one card per message
func (r *Renderer) Render(w io.Writer, items []*core.Triage) error {
	selected := Select(items, r.filter)
	r.logger.Debug("Rendering messages",
		zap.Int("total", len(items)),
		zap.Int("selected", len(selected)))

	if len(selected) == 0 {
		_, err := fmt.Fprintln(w, NoMatchesText)
		return err
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Filtered Emails (%d), urgent first", len(selected))))
	b.WriteString("\n")
	b.WriteString(r.RenderTable(selected))
	b.WriteString("\n")

	if r.opts.ShowDrafts {
		b.WriteString(titleStyle.Render("Draft Replies & Extracted Info"))
		b.WriteString("\n")
		b.WriteString(r.RenderCards(selected))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// tableRow returns the display cells for one message
func (r *Renderer) tableRow(it *core.Triage) []string {
	tp := r.textProcessor
	return []string{
		it.Message.Sender,
		tp.TruncateText(tp.FlattenLines(it.Message.Subject), r.opts.MaxSubject),
		tp.TruncateText(tp.FlattenLines(it.Message.Body), r.opts.MaxBody),
		tp.TruncateText(it.Message.ReceivedAt.Local().Format(DateLayout), r.opts.MaxDate),
		core.PriorityLabel(it.Analysis.Urgency),
		string(it.Analysis.SentimentLabel),
	}
}

// RenderTable renders items as a table in the order given
func (r *Renderer) RenderTable(items []*core.Triage) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, r.tableRow(it))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			if row < 0 || row >= len(rows) {
				return cellStyle
			}
			switch col {
			case colPriority:
				if rows[row][colPriority] == core.PriorityUrgent {
					return urgentCellStyle
				}
			case colSentiment:
				return sentimentStyle(rows[row][colSentiment])
			}
			return cellStyle
		}).
		Headers(tableHeaders...).
		Rows(rows...)

	return t.String()
}

// RenderCards renders one detail card per message
func (r *Renderer) RenderCards(items []*core.Triage) string {
	cards := make([]string, 0, len(items))
	for _, it := range items {
		cards = append(cards, r.renderCard(it))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (r *Renderer) renderCard(it *core.Triage) string {
	rec := it.Analysis
	line := func(label, value string) string {
		return labelStyle.Render(label+":") + " " + value
	}

	emails := rec.Contacts.Emails
	if len(emails) == 0 && it.Message.Sender != "" {
		emails = []string{it.Message.Sender}
	}

	lines := []string{
		line("Sender", it.Message.Sender),
		line("Subject", it.Message.Subject),
		line("Body", it.Message.Body),
		line("Sent Date", it.Message.ReceivedAt.Local().Format(DateLayout)),
		line("Priority", core.PriorityLabel(rec.Urgency)),
		line("Contacts Extracted", fmt.Sprintf("Emails: %s, Phones: %s", listText(emails), listText(rec.Contacts.Phones))),
		line("Customer Requests / Requirements", listText(rec.Requests)),
		line("Sentiment", fmt.Sprintf("%s (Pos:%d Neg:%d)", rec.SentimentLabel, rec.PosCount, rec.NegCount)),
	}

	draftTitle := "Draft Reply:"
	if it.Polished != "" {
		draftTitle = fmt.Sprintf("Draft Reply (%s):", it.PolishModel)
	}
	draft := draftStyle.Render(labelStyle.Render(draftTitle) + "\n" + it.Reply())

	return cardStyle.Render(strings.Join(lines, "\n") + "\n" + draft)
}

func listText(items []string) string {
	if len(items) == 0 {
		return mutedStyle.Render("none")
	}
	return strings.Join(items, "; ")
}
