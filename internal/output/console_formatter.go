package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// yearlyStride is the age step for the console projection table
const yearlyStride = 5

// ConsoleFormatter renders the styled terminal report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	res := report.Results
	in := report.Inputs

	fmt.Fprintln(&buf, renderTitle("MONTE CARLO RETIREMENT ANALYSIS"))
	fmt.Fprintln(&buf)

	line := func(label, value string) {
		fmt.Fprintf(&buf, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-26s", label)), valueStyle.Render(value))
	}

	fmt.Fprintln(&buf, headerStyle.Render("PLAN: "+report.PlanName))
	line("Ages:", fmt.Sprintf("%d now, retire at %d, plan to %d", in.CurrentAge, in.RetirementAge, in.LifeExpectancy))
	line("Current Savings:", FormatDollars(in.CurrentSavings))
	line("Monthly Contribution:", FormatDollars(in.MonthlyContribution))
	line("Monthly Expenses:", FormatDollars(in.MonthlyExpenses.Total()))
	line("Guaranteed Income:", FormatDollars(in.AnnualGuaranteedIncome())+" / yr")
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, headerStyle.Render("FIRST-YEAR WITHDRAWAL NEED"))
	line("Income Replacement:", FormatDollars(decimal.NewFromFloat(report.Baseline.IncomeReplacement)))
	line("Expense Based:", FormatDollars(decimal.NewFromFloat(report.Baseline.ExpenseBased)))
	line("Withdrawal Need:", FormatDollars(decimal.NewFromFloat(report.Baseline.Needed)))
	fmt.Fprintln(&buf)

	if res.IsEmpty() {
		fmt.Fprintln(&buf, labelStyle.Render("  No simulations were run."))
		return buf.Bytes(), nil
	}

	fmt.Fprintln(&buf, headerStyle.Render("OUTCOME"))
	line("Simulations:", fmt.Sprintf("%d (seed %d)", res.NumSimulations, res.Seed))
	fmt.Fprintf(&buf, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-26s", "Probability of Success:")),
		classStyle(report.SuccessClass()).Render(FormatPercentage(res.SuccessProbability)))
	line("Probability of Depletion:", FormatPercentage(res.ProbabilityOfDepletion))
	line("Risk Level:", report.RiskLevel())
	if res.MedianDepletionAge != nil {
		line("Median Depletion Age:", strconv.Itoa(*res.MedianDepletionAge))
	}
	line("Mean Final Balance:", FormatDollars(res.MeanOutcome))
	line("Std Deviation:", FormatDollars(res.OutcomeStdDev))
	fmt.Fprintln(&buf)

	intervals := table{
		Title:   "FINAL BALANCE DISTRIBUTION",
		Headers: []string{"Percentile", "Final Balance"},
	}
	for _, ci := range res.ConfidenceIntervals {
		intervals.Rows = append(intervals.Rows, []string{Ordinal(ci.Percentile), FormatDollars(ci.Value)})
	}
	fmt.Fprint(&buf, intervals.Render())
	fmt.Fprintln(&buf)

	if len(res.YearlyProjections) > 0 {
		projections := table{
			Title:   "BALANCE PROJECTION",
			Headers: []string{"Age", "10th", "25th", "Median", "75th", "90th"},
		}
		last := len(res.YearlyProjections) - 1
		for i, yp := range res.YearlyProjections {
			if i%yearlyStride != 0 && i != last {
				continue
			}
			projections.Rows = append(projections.Rows, []string{
				strconv.Itoa(yp.Age),
				FormatDollars(yp.P10),
				FormatDollars(yp.P25),
				FormatDollars(yp.Median),
				FormatDollars(yp.P75),
				FormatDollars(yp.P90),
			})
		}
		fmt.Fprint(&buf, projections.Render())
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, headerStyle.Render("KEY ASSUMPTIONS"))
	for _, a := range report.Assumptions() {
		fmt.Fprintf(&buf, "  • %s\n", a)
	}

	return buf.Bytes(), nil
}
