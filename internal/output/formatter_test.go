package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "MONTE CARLO RETIREMENT ANALYSIS")
	assert.Contains(t, content, "PLAN: Test Plan")
	assert.Contains(t, content, "60 now, retire at 62, plan to 66")
	assert.Contains(t, content, "$500,000")
	assert.Contains(t, content, "87.50%")
	assert.Contains(t, content, "Median Depletion Age:")
	assert.Contains(t, content, "FINAL BALANCE DISTRIBUTION")
	assert.Contains(t, content, "25th")
	assert.Contains(t, content, "$910,000")
	assert.Contains(t, content, "BALANCE PROJECTION")
	assert.Contains(t, content, "KEY ASSUMPTIONS")
}

func TestConsoleFormatter_ProjectionStride(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)

	// ages 60 and 65 by stride plus the final age 66
	assert.Contains(t, content, "$750,000")
	assert.Contains(t, content, "$250,000")
	assert.Contains(t, content, "$240,000")
	assert.NotContains(t, content, "$290,000")
}

func TestConsoleFormatter_EmptyResults(t *testing.T) {
	report := buildTestReport()
	report.Results = &domain.MonteCarloResults{}

	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "No simulations were run.")
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Len(t, records[1], len(records[0]))

	assert.Equal(t, "Plan", records[0][0])
	assert.Equal(t, "Test Plan", records[1][0])
	assert.Equal(t, "1000", records[1][1])
	assert.Equal(t, "42", records[1][2])
	assert.Equal(t, "87.50", records[1][3])
	assert.Equal(t, "65", records[1][10])
	assert.Equal(t, "100.0", records[1][12])
}

func TestYearlyCSVExporter(t *testing.T) {
	out, err := YearlyCSVExporter{}.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 8)

	assert.Equal(t, []string{"Age", "Phase", "P10", "P25", "Median", "P75", "P90"}, records[0])
	assert.Equal(t, []string{"60", "accumulation", "300000.00", "400000.00", "500000.00", "600000.00", "700000.00"}, records[1])
	assert.Equal(t, "withdrawal", records[3][1])
	assert.Equal(t, "66", records[7][0])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Test Plan", decoded["planName"])

	results, ok := decoded["results"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "87.5", results["successProbability"])
	assert.Len(t, results["yearlyProjections"], 7)
}

func TestHTMLFormatter(t *testing.T) {
	report := buildTestReport()
	report.PlanName = "<Plan & Co>"

	out, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "Retirement Monte Carlo Analysis")
	assert.Contains(t, content, "&lt;Plan &amp; Co&gt;")
	assert.NotContains(t, content, "<Plan & Co>")
	assert.Contains(t, content, "87.50%")
	assert.Contains(t, content, `class="summary-card success"`)
	assert.Contains(t, content, "<polyline")
	assert.Contains(t, content, "median depletion age 65")
	assert.Contains(t, content, "Seed 42")
}

func TestNewFanChart(t *testing.T) {
	chart := NewFanChart(buildTestReport().Results, 600, 300)

	assert.Equal(t, 60, chart.FirstAge)
	assert.Equal(t, 66, chart.LastAge)
	assert.Equal(t, "$760,000", chart.MaxLabel)
	// first median point sits at x=0, last at the right edge
	assert.True(t, strings.HasPrefix(chart.Median, "0.0,"))
	assert.True(t, strings.Contains(chart.Median, " 600.0,"))
	// top-right of the outer band is the chart maximum
	assert.Contains(t, chart.OuterBand, "600.0,0.0")

	empty := NewFanChart(nil, 600, 300)
	assert.Empty(t, empty.Median)
}

func TestGetFormatterByName(t *testing.T) {
	tests := map[string]string{
		"console":     "console",
		" JSON ":      "json",
		"verbose":     "console",
		"yearly":      "yearly-csv",
		"csv-summary": "csv",
		"html-report": "html",
	}
	for in, want := range tests {
		f := GetFormatterByName(in)
		require.NotNil(t, f, in)
		assert.Equal(t, want, f.Name())
	}

	assert.Nil(t, GetFormatterByName("pdf"))
	assert.Equal(t, []string{"console", "csv", "html", "json", "yearly-csv"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "bands")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "csv", Extension("yearly-csv"))
	assert.Equal(t, "csv", Extension("summary"))
	assert.Equal(t, "json", Extension("json"))
	assert.Equal(t, "html", Extension("html"))
	assert.Equal(t, "txt", Extension("console"))
}

func TestWriteFormatted(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	report := buildTestReport()

	path, err := WriteFormatted(JSONFormatter{}, report, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test_plan_20240601_120000.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	failing := FormatterFunc{ID: "broken", F: func(*Report) ([]byte, error) {
		return nil, assert.AnError
	}}
	_, err := WriteFormatted(failing, buildTestReport(), t.TempDir())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1234.57", FormatCurrency(mustDecimal("1234.567")))
	assert.Equal(t, "12.35%", FormatPercentage(mustDecimal("12.3456")))

	dollars := map[string]string{
		"0":          "$0",
		"999":        "$999",
		"100000":     "$100,000",
		"1234567.89": "$1,234,568",
		"-1500":      "-$1,500",
	}
	for in, want := range dollars {
		assert.Equal(t, want, FormatDollars(mustDecimal(in)), in)
	}

	assert.Equal(t, "1st", Ordinal(1))
	assert.Equal(t, "11th", Ordinal(11))
	assert.Equal(t, "22nd", Ordinal(22))
	assert.Equal(t, "90th", Ordinal(90))

	assert.Equal(t, "my_plan_2024", reportSlug("My Plan 2024!"))
	assert.Equal(t, "retirement_report", reportSlug("  "))
}
