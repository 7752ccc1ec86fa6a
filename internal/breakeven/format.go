package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Noyack/webapp-sub003/internal/output"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one solve
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("GOAL SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Target:       %s\n", targetLabel(result.Target)))
	sb.WriteString(fmt.Sprintf("Goal:         %s%% success\n", result.Goal.StringFixed(1)))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Evaluations:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	if result.Results != nil {
		sb.WriteString(fmt.Sprintf("Simulations:  %d (seed %d)\n", result.Results.NumSimulations, result.Results.Seed))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIRED CHANGE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.Success {
		sb.WriteString(describeChange(*result) + "\n")
	} else {
		sb.WriteString(fmt.Sprintf("%s alone cannot reach the goal; best tried: %s\n",
			targetLabel(result.Target), describeChange(*result)))
	}
	sb.WriteString("\n")

	if result.Results != nil && result.BaseResults != nil {
		sb.WriteString("PROJECTED RESULTS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("%-18s %14s %14s %14s\n", "", "Base Plan", "With Change", "Difference"))
		sb.WriteString(fmt.Sprintf("%-18s %14s %14s %14s\n", "Success",
			result.BaseResults.SuccessProbability.StringFixed(1)+"%",
			result.Results.SuccessProbability.StringFixed(1)+"%",
			tf.deltaSymbol(result.SuccessDiffFromBase)+result.SuccessDiffFromBase.StringFixed(1)+" pts"))
		sb.WriteString(fmt.Sprintf("%-18s %14s %14s %14s\n", "Median Final",
			output.FormatDollars(result.BaseResults.MedianOutcome),
			output.FormatDollars(result.Results.MedianOutcome),
			tf.deltaSymbol(result.MedianDiffFromBase)+output.FormatDollars(result.MedianDiffFromBase)))
		sb.WriteString(fmt.Sprintf("%-18s %14s %14s\n", "10th Percentile",
			output.FormatDollars(result.BaseResults.Percentile10Outcome),
			output.FormatDollars(result.Results.Percentile10Outcome)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMulti formats the results of SolveAll
func (tf *TableFormatter) FormatMulti(multi *MultiTargetResult) string {
	var sb strings.Builder

	sb.WriteString("GOAL SOLVER: ALL TARGETS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Goal: %s%% success (seed %d)\n\n", multi.Goal.StringFixed(1), multi.Seed))

	sb.WriteString(fmt.Sprintf("%-24s %-10s %-28s %10s\n", "Target", "Status", "Required Change", "Success"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for i := range multi.Results {
		r := &multi.Results[i]
		success := "-"
		if r.Results != nil {
			success = r.Results.SuccessProbability.StringFixed(1) + "%"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-10s %-28s %10s\n",
			tf.truncate(targetLabel(r.Target), 24),
			tf.formatStatus(r.Success),
			tf.truncate(describeChange(*r), 28),
			success))
	}
	sb.WriteString("\n")

	if len(multi.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i, rec := range multi.Recommendations {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return sb.String()
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON for one solve
func (jf *JSONFormatter) Format(result *SolveResult) (string, error) {
	return jf.marshal(result)
}

// FormatMulti generates JSON for SolveAll results
func (jf *JSONFormatter) FormatMulti(multi *MultiTargetResult) (string, error) {
	return jf.marshal(multi)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Reached"
	}
	return "✗ Missed"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
