package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/Noyack/webapp-sub003/internal/calculation"
)

// YearlyCSVExporter writes the per-age balance percentile bands.
type YearlyCSVExporter struct{}

func (y YearlyCSVExporter) Name() string { return "yearly-csv" }

func (y YearlyCSVExporter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Age", "Phase", "P10", "P25", "Median", "P75", "P90"}); err != nil {
		return nil, err
	}
	for _, yp := range report.Results.YearlyProjections {
		phase := calculation.PhaseAccumulation
		if report.Inputs.RetirementAge < report.Inputs.LifeExpectancy && yp.Age >= report.Inputs.RetirementAge {
			phase = calculation.PhaseWithdrawal
		}
		row := []string{
			strconv.Itoa(yp.Age),
			string(phase),
			yp.P10.StringFixed(2),
			yp.P25.StringFixed(2),
			yp.Median.StringFixed(2),
			yp.P75.StringFixed(2),
			yp.P90.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
