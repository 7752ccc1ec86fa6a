package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with an SVG fan chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatDollars,
	"pct":     FormatPercentage,
	"ordinal": Ordinal,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*Report
		Chart FanChart
	}{report, NewFanChart(report.Results, chartWidth, chartHeight)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const (
	chartWidth  = 800
	chartHeight = 320
)

// FanChart holds SVG point lists for the yearly percentile bands
type FanChart struct {
	Width, Height int
	OuterBand     string // p10..p90 polygon
	InnerBand     string // p25..p75 polygon
	Median        string // median polyline
	MaxLabel      string
	FirstAge      int
	LastAge       int
}

// NewFanChart scales the yearly projections into an SVG viewport
func NewFanChart(res *domain.MonteCarloResults, width, height int) FanChart {
	chart := FanChart{Width: width, Height: height}
	if res == nil || len(res.YearlyProjections) == 0 {
		return chart
	}
	years := res.YearlyProjections
	chart.FirstAge = years[0].Age
	chart.LastAge = years[len(years)-1].Age

	top := decimal.Zero
	for _, yp := range years {
		if yp.P90.GreaterThan(top) {
			top = yp.P90
		}
	}
	chart.MaxLabel = FormatDollars(top)
	maxValue := top.InexactFloat64()
	if maxValue <= 0 {
		maxValue = 1
	}

	x := func(i int) float64 {
		if len(years) == 1 {
			return 0
		}
		return float64(i) * float64(width) / float64(len(years)-1)
	}
	y := func(v decimal.Decimal) float64 {
		return float64(height) - v.InexactFloat64()/maxValue*float64(height)
	}
	point := func(i int, v decimal.Decimal) string {
		return fmt.Sprintf("%.1f,%.1f", x(i), y(v))
	}

	band := func(lower, upper func(domain.YearlyProjection) decimal.Decimal) string {
		pts := make([]string, 0, 2*len(years))
		for i, yp := range years {
			pts = append(pts, point(i, upper(yp)))
		}
		for i := len(years) - 1; i >= 0; i-- {
			pts = append(pts, point(i, lower(years[i])))
		}
		return strings.Join(pts, " ")
	}

	chart.OuterBand = band(
		func(yp domain.YearlyProjection) decimal.Decimal { return yp.P10 },
		func(yp domain.YearlyProjection) decimal.Decimal { return yp.P90 },
	)
	chart.InnerBand = band(
		func(yp domain.YearlyProjection) decimal.Decimal { return yp.P25 },
		func(yp domain.YearlyProjection) decimal.Decimal { return yp.P75 },
	)

	median := make([]string, 0, len(years))
	for i, yp := range years {
		median = append(median, point(i, yp.Median))
	}
	chart.Median = strings.Join(median, " ")

	return chart
}
