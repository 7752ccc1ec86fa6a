package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Noyack/webapp-sub003/internal/tui/tuistyles"
)

// MetricCard displays a single result figure with a label and caption
type MetricCard struct {
	Label   string
	Value   string
	Caption string
	Level   string // tuistyles level; empty keeps the default color
	Width   int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 22,
	}
}

// WithCaption adds a muted line under the value
func (m *MetricCard) WithCaption(caption string) *MetricCard {
	m.Caption = caption
	return m
}

// WithLevel colors the value by success level
func (m *MetricCard) WithLevel(level string) *MetricCard {
	m.Level = level
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	valueStyle := tuistyles.MetricValueStyle
	if m.Level != "" {
		valueStyle = valueStyle.Foreground(tuistyles.LevelColor(m.Level))
	}

	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + valueStyle.Render(m.Value)
	if m.Caption != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Caption)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricRow joins cards side by side, wrapping after columns cards
func MetricRow(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns <= 0 {
		columns = len(cards)
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
