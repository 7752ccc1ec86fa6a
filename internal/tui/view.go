package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Noyack/webapp-sub003/internal/calculation"
	"github.com/Noyack/webapp-sub003/internal/output"
	"github.com/Noyack/webapp-sub003/internal/tui/components"
	"github.com/Noyack/webapp-sub003/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = m.renderError()
	case m.scene == SceneLoading:
		content = tuistyles.SubtitleStyle.Render("Loading plan " + m.planPath + "...")
	case m.scene == SceneRunning:
		content = m.renderRunning()
	case m.scene == SceneResults:
		content = m.renderResults()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		"",
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("NESTEGG")
	subtitle := "Monte Carlo Retirement Simulator"
	if m.plan != nil {
		subtitle = m.plan.Name
	}
	return title + " " + tuistyles.SubtitleStyle.Render(subtitle) + "\n"
}

func (m Model) renderError() string {
	return tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
		tuistyles.SubtitleStyle.Render("Press q to quit")
}

func (m Model) renderRunning() string {
	var b strings.Builder
	b.WriteString(m.renderPlanSummary())
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Simulating %d scenarios (seed %d)\n\n", m.numSimulations, m.seed))
	b.WriteString(m.progress.View())
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("%d / %d", m.done, m.total)))
	return b.String()
}

func (m Model) renderPlanSummary() string {
	in := m.plan.Inputs
	lines := []string{
		fmt.Sprintf("Ages %d → %d, planning to %d", in.CurrentAge, in.RetirementAge, in.LifeExpectancy),
		fmt.Sprintf("Savings %s, contributing %s/month",
			output.FormatDollars(in.CurrentSavings), output.FormatDollars(in.MonthlyContribution)),
		fmt.Sprintf("Cost of living %s (%s), withdrawal need %s/year",
			m.colIndex.StringFixed(1), m.colSource, output.FormatDollars(decimal.NewFromFloat(m.baseline.Needed))),
	}
	return tuistyles.MetricLabelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderResults() string {
	res := m.results
	if res.IsEmpty() {
		return m.renderPlanSummary() + "\n\n" + tuistyles.SubtitleStyle.Render("No simulations were run.")
	}

	success := res.SuccessProbability.InexactFloat64()
	gauge := components.NewGauge(success).WithLabel("Success probability").WithWidth(40)

	depletion := "never (median)"
	if res.MedianDepletionAge != nil {
		depletion = fmt.Sprintf("age %d (median)", *res.MedianDepletionAge)
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("Success", output.FormatPercentage(res.SuccessProbability)).
			WithLevel(tuistyles.SuccessLevel(success)).
			WithCaption(fmt.Sprintf("%d of %d", successCount(res.SuccessProbability, res.NumSimulations), res.NumSimulations)),
		components.NewMetricCard("Median Final", output.FormatDollars(res.MedianOutcome)).
			WithCaption("mean " + output.FormatDollars(res.MeanOutcome)),
		components.NewMetricCard("10th Percentile", output.FormatDollars(res.Percentile10Outcome)).
			WithCaption("downside"),
		components.NewMetricCard("Depletes At", depletion).
			WithCaption(fmt.Sprintf("%s depleted", output.FormatPercentage(res.ProbabilityOfDepletion))),
	}

	chart := components.NewFanChart("Balance by age").
		WithProjections(res.YearlyProjections).
		WithSize(min(max(m.width-4, 40), 100), 12)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderPlanSummary(),
		"",
		gauge.Render(),
		"",
		components.MetricRow(cards, columnsFor(m.width)),
		tuistyles.SectionStyle.Render("Final balance percentiles"),
		m.renderPercentileTable(),
		"",
		chart.Render(),
	)
}

func (m Model) renderPercentileTable() string {
	header := tuistyles.TableHeaderStyle.Render(fmt.Sprintf("  %-12s %16s", "Percentile", "Final Balance"))
	rows := []string{header}
	for _, p := range calculation.ReportedPercentiles {
		value, ok := m.results.Interval(p)
		if !ok {
			continue
		}
		rows = append(rows, tuistyles.TableCellStyle.Render(
			fmt.Sprintf("  %-12s %16s", output.Ordinal(p), output.FormatDollars(value))))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.scene == SceneResults && m.results != nil:
		status = fmt.Sprintf("%d simulations • seed %d • %s",
			m.results.NumSimulations, m.results.Seed, m.elapsed.Round(time.Millisecond))
	case m.scene == SceneRunning:
		status = fmt.Sprintf("next: %d simulations", m.numSimulations)
	}

	helpView := m.help.View(m.keys)
	if status == "" {
		return helpView
	}
	return tuistyles.StatusBarStyle.Render(status) + "\n" + helpView
}

// successCount converts a success percentage back to a simulation count
func successCount(pct decimal.Decimal, n int) int {
	return int(pct.Mul(decimal.NewFromInt(int64(n))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
}

// columnsFor picks how many metric cards fit on a row
func columnsFor(width int) int {
	switch {
	case width >= 100:
		return 4
	case width >= 50:
		return 2
	default:
		return 1
	}
}
