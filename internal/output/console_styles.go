package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Console palette
var (
	ColorText    = lipgloss.Color("#E6EDF3")
	ColorMuted   = lipgloss.Color("#7D8590")
	ColorBorder  = lipgloss.Color("#30363D")
	ColorAccent  = lipgloss.Color("#58A6FF")
	ColorSuccess = lipgloss.Color("#3FB950")
	ColorWarning = lipgloss.Color("#D29922")
	ColorDanger  = lipgloss.Color("#F85149")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)

// classStyle colors a value by its success class
func classStyle(class string) lipgloss.Style {
	switch class {
	case "success":
		return lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	case "warning":
		return lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	}
}

// renderTitle renders a centered title bar in a bordered box.
func renderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(60).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// table is a bordered text table; the first column is left aligned and
// the rest right aligned.
type table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func (t table) widths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	return widths
}

func (t table) rule(widths []int, left, mid, right string) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
	return b.String()
}

func (t table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}
	widths := t.widths()

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(t.rule(widths, "╭", "┬", "╮"))

	b.WriteString(dimStyle.Render("│"))
	for i, h := range t.Headers {
		b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
		b.WriteString(dimStyle.Render("│"))
	}
	b.WriteString("\n")
	b.WriteString(t.rule(widths, "├", "┼", "┤"))

	for _, row := range t.Rows {
		b.WriteString(dimStyle.Render("│"))
		for i, w := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", w-lipgloss.Width(cell))
			if i == 0 {
				b.WriteString(" " + valueStyle.Render(cell) + pad + " ")
			} else {
				b.WriteString(" " + pad + valueStyle.Render(cell) + " ")
			}
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	b.WriteString(t.rule(widths, "╰", "┴", "╯"))
	return b.String()
}
