package output

import (
	"fmt"
	"time"

	"github.com/Noyack/webapp-sub003/internal/calculation"
	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is everything a formatter needs to render one simulated plan
type Report struct {
	PlanName           string                         `json:"planName"`
	GeneratedAt        time.Time                      `json:"generatedAt"`
	Inputs             domain.RetirementInputs        `json:"inputs"`
	CostOfLivingIndex  decimal.Decimal                `json:"costOfLivingIndex"`
	CostOfLivingSource string                         `json:"costOfLivingSource,omitempty"`
	Baseline           calculation.WithdrawalBaseline `json:"baseline"`
	Market             calculation.MarketModel        `json:"market"`
	Policy             calculation.LifecyclePolicy    `json:"policy"`
	Results            *domain.MonteCarloResults      `json:"results"`
}

// NewReport assembles a report from an engine run
func NewReport(planName string, inputs domain.RetirementInputs, colIndex decimal.Decimal, engine *calculation.MonteCarloEngine, results *domain.MonteCarloResults) *Report {
	return &Report{
		PlanName:          planName,
		GeneratedAt:       time.Now(),
		Inputs:            inputs,
		CostOfLivingIndex: colIndex,
		Baseline:          calculation.WithdrawalNeed(inputs, colIndex),
		Market:            engine.MarketModel(),
		Policy:            engine.Policy(),
		Results:           results,
	}
}

// Assumptions lists the modeling assumptions behind the report
func (r *Report) Assumptions() []string {
	m, p := r.Market, r.Policy
	col := fmt.Sprintf("Cost of living index: %s", r.CostOfLivingIndex.StringFixed(1))
	if r.CostOfLivingSource != "" {
		col += fmt.Sprintf(" (%s)", r.CostOfLivingSource)
	}
	return []string{
		fmt.Sprintf("Market return: %.1f%% mean, %.1f%% standard deviation", m.MeanReturn*100, m.ReturnStdDev*100),
		fmt.Sprintf("Inflation: %.1f%% base, %.1f%% volatility, %.2f correlation with returns",
			m.BaseInflation*100, m.InflationVolatility*100, m.ReturnInflationCorrelation),
		fmt.Sprintf("Glide path: %d minus age in equities, held between %d%% and %d%%",
			p.GlidePathBase, p.MinEquityPct, p.MaxEquityPct),
		fmt.Sprintf("Bond return: %.1f%%", p.BondReturn*100),
		fmt.Sprintf("Sequence risk: %.1f point penalty for the first %d retirement years, %.1f%% return floor",
			p.SequenceRiskPenalty*100, p.SequenceRiskYears, p.MinRetirementReturn*100),
		col,
	}
}

// SuccessClass is a coarse rating of the success probability
func (r *Report) SuccessClass() string {
	if r.Results == nil {
		return "danger"
	}
	switch s := r.Results.SuccessProbability; {
	case s.GreaterThanOrEqual(decimal.NewFromInt(85)):
		return "success"
	case s.GreaterThanOrEqual(decimal.NewFromInt(70)):
		return "warning"
	default:
		return "danger"
	}
}

// RiskLevel describes the depletion risk in words
func (r *Report) RiskLevel() string {
	switch r.SuccessClass() {
	case "success":
		return "Low"
	case "warning":
		return "Moderate"
	default:
		return "High"
	}
}
