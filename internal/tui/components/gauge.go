package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Noyack/webapp-sub003/internal/tui/tuistyles"
)

// Gauge shows a success probability as a filled bar colored by its level
type Gauge struct {
	Percent float64 // 0-100
	Width   int
	Label   string
}

// NewGauge creates a gauge for a percentage
func NewGauge(percent float64) *Gauge {
	return &Gauge{
		Percent: percent,
		Width:   30,
	}
}

// WithLabel sets the gauge label
func (g *Gauge) WithLabel(label string) *Gauge {
	g.Label = label
	return g
}

// WithWidth sets the bar width
func (g *Gauge) WithWidth(width int) *Gauge {
	g.Width = width
	return g
}

// Filled returns the number of filled cells
func (g *Gauge) Filled() int {
	pct := math.Min(math.Max(g.Percent, 0), 100)
	return int(math.Round(pct / 100 * float64(g.Width)))
}

// Level grades the gauge value
func (g *Gauge) Level() string {
	return tuistyles.SuccessLevel(g.Percent)
}

// Render returns the styled gauge
func (g *Gauge) Render() string {
	filled := g.Filled()
	color := tuistyles.LevelColor(g.Level())

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", g.Width-filled))

	value := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%5.1f%%", g.Percent))

	var label string
	if g.Label != "" {
		label = tuistyles.MetricLabelStyle.Render(g.Label) + " "
	}
	return label + bar + " " + value
}
