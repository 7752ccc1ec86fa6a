package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/Noyack/webapp-sub003/internal/tui/tuistyles"
)

const (
	yAxisWidth = 8

	cellEmpty  = ' '
	cellOuter  = '░'
	cellInner  = '▒'
	cellMedian = '●'
)

// Band is one age column of the fan chart
type Band struct {
	Age                        int
	P10, P25, Median, P75, P90 float64
}

// FanChart draws the yearly percentile bands of a Monte Carlo run
type FanChart struct {
	Title      string
	Bands      []Band
	Width      int
	Height     int
	ShowLegend bool
}

// NewFanChart creates an empty fan chart
func NewFanChart(title string) *FanChart {
	return &FanChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// WithProjections loads the bands from yearly projections
func (c *FanChart) WithProjections(projections []domain.YearlyProjection) *FanChart {
	c.Bands = make([]Band, len(projections))
	for i, p := range projections {
		c.Bands[i] = Band{
			Age:    p.Age,
			P10:    p.P10.InexactFloat64(),
			P25:    p.P25.InexactFloat64(),
			Median: p.Median.InexactFloat64(),
			P75:    p.P75.InexactFloat64(),
			P90:    p.P90.InexactFloat64(),
		}
	}
	return c
}

// WithSize sets the chart dimensions, axis included
func (c *FanChart) WithSize(width, height int) *FanChart {
	c.Width = width
	c.Height = height
	return c
}

// PlotWidth is the number of data columns after the y-axis
func (c *FanChart) PlotWidth() int {
	return max(c.Width-yAxisWidth-3, 1)
}

// Render returns the styled chart
func (c *FanChart) Render() string {
	if len(c.Bands) == 0 {
		return tuistyles.SubtitleStyle.Render("No projections to display")
	}

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		out.WriteString("\n\n")
	}

	height := max(c.Height, 3)
	top := c.maxValue()
	grid := c.grid(height, top)

	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	for r, row := range grid {
		label := ""
		switch r {
		case 0:
			label = formatChartValue(top)
		case height / 2:
			label = formatChartValue(top * float64(height-1-r) / float64(height-1))
		case height - 1:
			label = formatChartValue(0)
		}
		out.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yAxisWidth, label)))
		out.WriteString(" │ ")
		out.WriteString(renderCells(row))
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", len(grid[0])))
	out.WriteString("\n")
	out.WriteString(axisStyle.Render(c.xAxisLabels(len(grid[0]))))

	if c.ShowLegend {
		out.WriteString("\n")
		out.WriteString(renderLegend())
	}
	return out.String()
}

// grid lays the bands out as rows of cells, top row first
func (c *FanChart) grid(height int, top float64) [][]rune {
	width := c.PlotWidth()
	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(cellEmpty), width))
	}

	for col := 0; col < width; col++ {
		b := c.Bands[c.bandIndex(col, width)]
		fill(grid, col, rowFor(b.P10, top, height), rowFor(b.P90, top, height), cellOuter)
		fill(grid, col, rowFor(b.P25, top, height), rowFor(b.P75, top, height), cellInner)
		grid[rowFor(b.Median, top, height)][col] = cellMedian
	}
	return grid
}

// bandIndex maps a plot column onto a band, spreading ages across the width
func (c *FanChart) bandIndex(col, width int) int {
	n := len(c.Bands)
	if n == 1 || width == 1 {
		return 0
	}
	return col * (n - 1) / (width - 1)
}

func (c *FanChart) maxValue() float64 {
	top := 0.0
	for _, b := range c.Bands {
		top = math.Max(top, b.P90)
	}
	if top <= 0 {
		return 1
	}
	return top
}

// rowFor converts a value into a grid row, zero at the bottom
func rowFor(value, top float64, height int) int {
	level := int(math.Round(math.Max(0, value) / top * float64(height-1)))
	level = min(max(level, 0), height-1)
	return height - 1 - level
}

// fill marks rows between two grid rows in one column
func fill(grid [][]rune, col, rowA, rowB int, cell rune) {
	if rowA > rowB {
		rowA, rowB = rowB, rowA
	}
	for r := rowA; r <= rowB; r++ {
		grid[r][col] = cell
	}
}

func renderCells(row []rune) string {
	outer := lipgloss.NewStyle().Foreground(tuistyles.ColorBandOuter)
	inner := lipgloss.NewStyle().Foreground(tuistyles.ColorBandInner)
	median := lipgloss.NewStyle().Foreground(tuistyles.ColorBandMedian)

	var b strings.Builder
	for _, cell := range row {
		switch cell {
		case cellOuter:
			b.WriteString(outer.Render(string(cell)))
		case cellInner:
			b.WriteString(inner.Render(string(cell)))
		case cellMedian:
			b.WriteString(median.Render(string(cell)))
		default:
			b.WriteRune(cell)
		}
	}
	return b.String()
}

// xAxisLabels prints the first, middle and last age under the plot
func (c *FanChart) xAxisLabels(width int) string {
	first := fmt.Sprintf("%d", c.Bands[0].Age)
	last := fmt.Sprintf("%d", c.Bands[len(c.Bands)-1].Age)
	line := []rune(strings.Repeat(" ", width))

	place := func(at int, label string) {
		for i, r := range label {
			if at+i >= 0 && at+i < len(line) {
				line[at+i] = r
			}
		}
	}
	place(0, first)
	if len(c.Bands) > 2 && width > 3*len(last)+2 {
		mid := c.Bands[c.bandIndex(width/2, width)].Age
		place(width/2-1, fmt.Sprintf("%d", mid))
	}
	place(width-len(last), last)

	return strings.Repeat(" ", yAxisWidth+3) + string(line)
}

func renderLegend() string {
	outer := lipgloss.NewStyle().Foreground(tuistyles.ColorBandOuter).Render(string(cellOuter))
	inner := lipgloss.NewStyle().Foreground(tuistyles.ColorBandInner).Render(string(cellInner))
	median := lipgloss.NewStyle().Foreground(tuistyles.ColorBandMedian).Render(string(cellMedian))
	return tuistyles.SubtitleStyle.Render("Legend: ") +
		fmt.Sprintf("%s 10th-90th  %s 25th-75th  %s median", outer, inner, median)
}

// formatChartValue formats a value for display on the y-axis
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1000000:
		return fmt.Sprintf("$%.1fM", value/1000000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("$%.0fK", value/1000)
	default:
		return fmt.Sprintf("$%.0f", value)
	}
}
