package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("RETIREMENT PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Base Plan:     %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString(fmt.Sprintf("Simulations:   %d (seed %d)\n", compSet.NumSimulations, compSet.Seed))
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Success",
		numWidth, "Median Final",
		numWidth, "10th Pct",
		numWidth, "Depletes At"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 88) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))

			sb.WriteString(fmt.Sprintf("  Success:          %s%s points\n",
				tf.deltaSymbol(alt.SuccessDiffFromBase),
				alt.SuccessDiffFromBase.StringFixed(1)))

			sb.WriteString(fmt.Sprintf("  Median Final:     %s$%s (%s%%)\n",
				tf.signPrefix(alt.MedianDiffFromBase),
				tf.formatDecimal(alt.MedianDiffFromBase.Abs()),
				alt.MedianPctFromBase.StringFixed(1)))

			if !alt.P10DiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  10th Percentile:  %s$%s\n",
					tf.signPrefix(alt.P10DiffFromBase),
					tf.formatDecimal(alt.P10DiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	depletion := "never"
	if result.MedianDepletionAge != nil {
		depletion = fmt.Sprintf("age %d", *result.MedianDepletionAge)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, result.SuccessProbability.StringFixed(1)+"%",
		numWidth, "$"+tf.formatDecimal(result.MedianOutcome),
		numWidth, "$"+tf.formatDecimal(result.Percentile10Outcome),
		numWidth, depletion)
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns the prefix for a delta that prints its own minus sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// signPrefix returns the sign for a delta printed as an absolute value
func (tf *TableFormatter) signPrefix(delta decimal.Decimal) string {
	switch {
	case delta.IsPositive():
		return "+"
	case delta.IsNegative():
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s", compSet.BaseScenarioName))
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf(" (%s%%)", compSet.BaseResult.SuccessProbability.StringFixed(1)))
	}
	sb.WriteString(" | ")

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.SuccessDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.SuccessDiffFromBase) + alt.SuccessDiffFromBase.StringFixed(1) + "pt"
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
