package compare

import (
	"fmt"

	"github.com/Noyack/webapp-sub003/internal/calculation"
	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single plan variant with calculated metrics
type ComparisonResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description"`

	// Key Metrics
	SuccessProbability  decimal.Decimal `json:"successProbability"`
	MedianOutcome       decimal.Decimal `json:"medianOutcome"`
	Percentile10Outcome decimal.Decimal `json:"percentile10Outcome"`
	Percentile90Outcome decimal.Decimal `json:"percentile90Outcome"`
	MedianDepletionAge  *int            `json:"medianDepletionAge,omitempty"`
	AnnualNeed          decimal.Decimal `json:"annualNeed"` // first-year withdrawal need from savings

	// Comparison to Base
	SuccessDiffFromBase decimal.Decimal `json:"successDiffFromBase"` // percentage points
	MedianDiffFromBase  decimal.Decimal `json:"medianDiffFromBase"`
	MedianPctFromBase   decimal.Decimal `json:"medianPctFromBase"`
	P10DiffFromBase     decimal.Decimal `json:"p10DiffFromBase"`

	// Plan specifics for display
	RetirementAge       int             `json:"retirementAge"`
	LifeExpectancy      int             `json:"lifeExpectancy"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	MonthlyExpenses     decimal.Decimal `json:"monthlyExpenses"`

	Results *domain.MonteCarloResults `json:"-"`
}

// ComparisonSet represents a base plan and its what-if variants. All members
// were simulated with the same seed.
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
	Seed               uint64             `json:"seed"`
	NumSimulations     int                `json:"numSimulations"`
	CostOfLivingIndex  decimal.Decimal    `json:"costOfLivingIndex"`
}

// MetricsCalculator extracts key metrics from Monte Carlo results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one simulated plan
func (mc *MetricsCalculator) CalculateMetrics(name string, inputs domain.RetirementInputs, colIndex decimal.Decimal, results *domain.MonteCarloResults) ComparisonResult {
	need := calculation.WithdrawalNeed(inputs, colIndex)

	return ComparisonResult{
		ScenarioName:        name,
		SuccessProbability:  results.SuccessProbability,
		MedianOutcome:       results.MedianOutcome,
		Percentile10Outcome: results.Percentile10Outcome,
		Percentile90Outcome: results.Percentile90Outcome,
		MedianDepletionAge:  results.MedianDepletionAge,
		AnnualNeed:          decimal.NewFromFloat(need.Needed).Round(2),
		RetirementAge:       inputs.RetirementAge,
		LifeExpectancy:      inputs.LifeExpectancy,
		MonthlyContribution: inputs.MonthlyContribution,
		MonthlyExpenses:     inputs.MonthlyExpenses.Total(),
		Results:             results,
	}
}

// CalculateComparison computes deltas between a variant and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.SuccessDiffFromBase = scenario.SuccessProbability.Sub(base.SuccessProbability)
	scenario.MedianDiffFromBase = scenario.MedianOutcome.Sub(base.MedianOutcome)
	scenario.P10DiffFromBase = scenario.Percentile10Outcome.Sub(base.Percentile10Outcome)

	if !base.MedianOutcome.IsZero() {
		scenario.MedianPctFromBase = scenario.MedianDiffFromBase.
			Div(base.MedianOutcome).
			Mul(decimal.NewFromInt(100))
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Highest probability of success
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.SuccessProbability.GreaterThan(best.SuccessProbability) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Odds: %s raises the chance of success by %s points to %s%%",
				best.ScenarioName,
				best.SuccessProbability.Sub(base.SuccessProbability).StringFixed(1),
				best.SuccessProbability.StringFixed(1)))
	}

	// Largest median ending balance
	richest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.MedianOutcome.GreaterThan(richest.MedianOutcome) {
			richest = alt
		}
	}
	if richest != base {
		recommendations = append(recommendations,
			"Largest Legacy: "+richest.ScenarioName+" leaves $"+
				richest.MedianOutcome.Sub(base.MedianOutcome).StringFixed(0)+
				" more in the median case")
	}

	// Best protection in bad markets
	safest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Percentile10Outcome.GreaterThan(safest.Percentile10Outcome) {
			safest = alt
		}
	}
	if safest != base {
		recommendations = append(recommendations,
			"Best Downside: "+safest.ScenarioName+" improves the 10th percentile outcome by $"+
				safest.Percentile10Outcome.Sub(base.Percentile10Outcome).StringFixed(0))
	}

	if base.SuccessProbability.LessThan(decimal.NewFromInt(75)) && best == base {
		recommendations = append(recommendations,
			"None of the variants improve on the base plan; consider larger changes to savings or retirement age")
	}

	return recommendations
}
