package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Retirement Age",
		"Monthly Contribution",
		"Success Probability",
		"Median Outcome",
		"10th Percentile",
		"90th Percentile",
		"Median Depletion Age",
		"Success Diff (pts)",
		"Median Diff from Base",
		"Median % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	depletionAge := ""
	if result.MedianDepletionAge != nil {
		depletionAge = strconv.Itoa(*result.MedianDepletionAge)
	}

	return []string{
		result.ScenarioName,
		scenarioType,
		strconv.Itoa(result.RetirementAge),
		result.MonthlyContribution.StringFixed(2),
		result.SuccessProbability.StringFixed(2),
		result.MedianOutcome.StringFixed(2),
		result.Percentile10Outcome.StringFixed(2),
		result.Percentile90Outcome.StringFixed(2),
		depletionAge,
		result.SuccessDiffFromBase.StringFixed(2),
		result.MedianDiffFromBase.StringFixed(2),
		result.MedianPctFromBase.StringFixed(2),
	}
}
