package domain

import (
	"github.com/shopspring/decimal"
)

// MarketScenario is one randomized path of annual market returns and
// same-year inflation rates. Both sequences have one entry per projected age.
type MarketScenario struct {
	Returns        []float64 `json:"returns"`
	InflationRates []float64 `json:"inflationRates"`
}

// Years returns the number of projected years in the scenario
func (ms MarketScenario) Years() int {
	return len(ms.Returns)
}

// ReturnAt returns the market return for a year index, or fallback when the
// scenario has no data for it
func (ms MarketScenario) ReturnAt(yearIndex int, fallback float64) float64 {
	if yearIndex < 0 || yearIndex >= len(ms.Returns) {
		return fallback
	}
	return ms.Returns[yearIndex]
}

// InflationAt returns the inflation rate for a year index, or fallback when
// the scenario has no data for it
func (ms MarketScenario) InflationAt(yearIndex int, fallback float64) float64 {
	if yearIndex < 0 || yearIndex >= len(ms.InflationRates) {
		return fallback
	}
	return ms.InflationRates[yearIndex]
}

// ScenarioOutcome is the result of one simulated lifecycle
type ScenarioOutcome struct {
	ScenarioID    int             `json:"scenarioId"`
	FinalBalance  decimal.Decimal `json:"finalBalance"`
	Success       bool            `json:"success"`
	YearsDepleted *int            `json:"yearsDepleted,omitempty"` // age at which savings ran out
}

// ConfidenceInterval is a single percentile of the final-balance distribution
type ConfidenceInterval struct {
	Percentile int             `json:"percentile"`
	Value      decimal.Decimal `json:"value"`
}

// YearlyProjection holds the cross-sectional balance percentiles at one age
type YearlyProjection struct {
	Age    int             `json:"age"`
	P10    decimal.Decimal `json:"p10"`
	P25    decimal.Decimal `json:"p25"`
	Median decimal.Decimal `json:"median"`
	P75    decimal.Decimal `json:"p75"`
	P90    decimal.Decimal `json:"p90"`
}

// MonteCarloResults is the aggregate output of a Monte Carlo run.
// Probabilities are percentages in [0, 100].
type MonteCarloResults struct {
	NumSimulations         int                  `json:"numSimulations"`
	YearsProjected         int                  `json:"yearsProjected"`
	Seed                   uint64               `json:"seed"`
	SuccessProbability     decimal.Decimal      `json:"successProbability"`
	ProbabilityOfDepletion decimal.Decimal      `json:"probabilityOfDepletion"`
	MedianOutcome          decimal.Decimal      `json:"medianOutcome"`
	Percentile10Outcome    decimal.Decimal      `json:"percentile10Outcome"`
	Percentile90Outcome    decimal.Decimal      `json:"percentile90Outcome"`
	ConfidenceIntervals    []ConfidenceInterval `json:"confidenceIntervals"`
	Scenarios              []ScenarioOutcome    `json:"scenarios"`
	YearlyProjections      []YearlyProjection   `json:"yearlyProjections"`

	MeanOutcome        decimal.Decimal `json:"meanOutcome"`
	OutcomeStdDev      decimal.Decimal `json:"outcomeStdDev"`
	MedianDepletionAge *int            `json:"medianDepletionAge,omitempty"`
}

// IsEmpty reports whether the run produced no simulations
func (r *MonteCarloResults) IsEmpty() bool {
	return r == nil || r.NumSimulations == 0
}

// Interval returns the confidence interval value for a percentile
func (r *MonteCarloResults) Interval(percentile int) (decimal.Decimal, bool) {
	for _, ci := range r.ConfidenceIntervals {
		if ci.Percentile == percentile {
			return ci.Value, true
		}
	}
	return decimal.Zero, false
}
