package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVSummarizer implements the one-row summary CSV output.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Plan", "Simulations", "Seed", "SuccessProbability", "ProbabilityOfDepletion",
		"MedianOutcome", "P10Outcome", "P90Outcome", "MeanOutcome", "OutcomeStdDev",
		"MedianDepletionAge", "WithdrawalNeed", "CostOfLivingIndex",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	res := report.Results
	depletionAge := ""
	if res.MedianDepletionAge != nil {
		depletionAge = strconv.Itoa(*res.MedianDepletionAge)
	}
	row := []string{
		report.PlanName,
		strconv.Itoa(res.NumSimulations),
		strconv.FormatUint(res.Seed, 10),
		res.SuccessProbability.StringFixed(2),
		res.ProbabilityOfDepletion.StringFixed(2),
		res.MedianOutcome.StringFixed(2),
		res.Percentile10Outcome.StringFixed(2),
		res.Percentile90Outcome.StringFixed(2),
		res.MeanOutcome.StringFixed(2),
		res.OutcomeStdDev.StringFixed(2),
		depletionAge,
		strconv.FormatFloat(report.Baseline.Needed, 'f', 2, 64),
		report.CostOfLivingIndex.StringFixed(1),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
