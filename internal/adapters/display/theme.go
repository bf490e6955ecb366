package display

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	colorLavender = lipgloss.AdaptiveColor{Dark: "#BFA5D4", Light: "#7B5E99"}
	colorTan      = lipgloss.AdaptiveColor{Dark: "#D2B48C", Light: "#8B6B3E"}
	colorRed      = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	colorGreen    = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	colorGray     = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	colorBorder   = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	urgentCellStyle = cellStyle.Foreground(colorRed).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorLavender).
			Padding(0, 1).
			MarginBottom(1)

	draftStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorTan).
			Padding(0, 2).
			MarginLeft(2)

	labelStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorGray)
)

func sentimentStyle(label string) lipgloss.Style {
	switch label {
	case "Positive":
		return cellStyle.Foreground(colorGreen)
	case "Negative":
		return cellStyle.Foreground(colorRed)
	default:
		return cellStyle
	}
}
