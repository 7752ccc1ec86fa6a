// Package tuistyles holds the shared palette so components and the root
// model can style output without importing each other.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A9BD5")
	ColorSuccess   = lipgloss.Color("#04B575")
	ColorWarning   = lipgloss.Color("#F2B134")
	ColorDanger    = lipgloss.Color("#E74C3C")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#6C7086")
	ColorBorder     = lipgloss.Color("#45475A")

	ColorBandOuter  = lipgloss.Color("#3B5B7A")
	ColorBandInner  = lipgloss.Color("#5A9BD5")
	ColorBandMedian = lipgloss.Color("#F9E2AF")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			MarginTop(1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)
)

// Success levels shared by the gauge and the metric cards
const (
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// SuccessLevel grades a success probability percentage
func SuccessLevel(pct float64) string {
	switch {
	case pct >= 85:
		return LevelSuccess
	case pct >= 70:
		return LevelWarning
	default:
		return LevelDanger
	}
}

// LevelColor returns the color for a success level
func LevelColor(level string) lipgloss.Color {
	switch level {
	case LevelSuccess:
		return ColorSuccess
	case LevelWarning:
		return ColorWarning
	case LevelDanger:
		return ColorDanger
	default:
		return ColorForeground
	}
}
