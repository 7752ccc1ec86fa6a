package calculation

import (
	"fmt"
	"math"

	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// Phase is the lifecycle state for one simulated age
type Phase string

const (
	PhaseAccumulation Phase = "accumulation"
	PhaseWithdrawal   Phase = "withdrawal"
)

// LifecyclePolicy holds the glide path and sequence-of-returns heuristics.
// Equity bounds are whole percentages; returns are decimal fractions.
type LifecyclePolicy struct {
	GlidePathBase       int // equity % = GlidePathBase - age before clamping
	MinEquityPct        int
	MaxEquityPct        int
	BondReturn          float64
	SequenceRiskPenalty float64 // subtracted from the blended return early in retirement
	SequenceRiskYears   int
	MinRetirementReturn float64
}

// DefaultLifecyclePolicy returns the "110 minus age" glide path with a one
// point penalty over the first five retirement years.
func DefaultLifecyclePolicy() LifecyclePolicy {
	return LifecyclePolicy{
		GlidePathBase:       110,
		MinEquityPct:        20,
		MaxEquityPct:        80,
		BondReturn:          0.035,
		SequenceRiskPenalty: 0.01,
		SequenceRiskYears:   5,
		MinRetirementReturn: 0.005,
	}
}

// Validate checks the policy for inconsistent bounds
func (p LifecyclePolicy) Validate() error {
	if p.MinEquityPct < 0 || p.MaxEquityPct > 100 {
		return fmt.Errorf("equity bounds must be within [0, 100], got [%d, %d]", p.MinEquityPct, p.MaxEquityPct)
	}
	if p.MinEquityPct > p.MaxEquityPct {
		return fmt.Errorf("min equity %d%% exceeds max equity %d%%", p.MinEquityPct, p.MaxEquityPct)
	}
	if p.SequenceRiskYears < 0 {
		return fmt.Errorf("sequence risk years cannot be negative, got %d", p.SequenceRiskYears)
	}
	return nil
}

// EquityFraction returns the equity share of the portfolio at an age
func (p LifecyclePolicy) EquityFraction(age int) float64 {
	pct := p.GlidePathBase - age
	if pct < p.MinEquityPct {
		pct = p.MinEquityPct
	}
	if pct > p.MaxEquityPct {
		pct = p.MaxEquityPct
	}
	return float64(pct) / 100
}

// RetirementReturn blends the market return through the glide path and
// applies the early-retirement penalty and the return floor.
func (p LifecyclePolicy) RetirementReturn(age, yearsIntoRetirement int, marketReturn float64) float64 {
	equity := p.EquityFraction(age)
	blended := equity*marketReturn + (1-equity)*p.BondReturn
	if yearsIntoRetirement < p.SequenceRiskYears {
		blended -= p.SequenceRiskPenalty
	}
	return math.Max(blended, p.MinRetirementReturn)
}

// WithdrawalBaseline is the annual amount needed from savings in the first
// retirement year, in dollars of that year.
type WithdrawalBaseline struct {
	IncomeReplacement float64
	ExpenseBased      float64
	Needed            float64
}

// WithdrawalNeed computes the income-replacement and expense-based estimates
// and keeps the larger one.
func WithdrawalNeed(inputs domain.RetirementInputs, colIndex decimal.Decimal) WithdrawalBaseline {
	col := colIndex.InexactFloat64() / 100
	guaranteed := inputs.AnnualGuaranteedIncome().InexactFloat64()

	replacement := inputs.CurrentAnnualIncome.InexactFloat64() *
		inputs.DesiredIncomeReplacement.InexactFloat64() / 100 * col
	incomeReplacement := math.Max(0, replacement-guaranteed)

	yearsToRetirement := float64(inputs.YearsToRetirement())
	inflationGrowth := math.Pow(1+inputs.ExpectedInflation.InexactFloat64()/100, yearsToRetirement)
	annualExpenses := inputs.MonthlyExpenses.Total().InexactFloat64() * 12 * inflationGrowth * col
	expenseBased := math.Max(0, annualExpenses-guaranteed)

	return WithdrawalBaseline{
		IncomeReplacement: incomeReplacement,
		ExpenseBased:      expenseBased,
		Needed:            math.Max(incomeReplacement, expenseBased),
	}
}

// TraceYear is the state at the end of one simulated age
type TraceYear struct {
	Age        int
	Phase      Phase
	Return     float64 // return applied to the balance this year
	Inflation  float64
	Withdrawal float64
	Balance    float64
}

// LifecycleTrace is the full year-by-year path of one scenario
type LifecycleTrace struct {
	Baseline     WithdrawalBaseline
	Years        []TraceYear
	FinalBalance float64
	Success      bool
	DepletionAge *int
}

// Balances returns the end-of-year balance for every age
func (t LifecycleTrace) Balances() []float64 {
	out := make([]float64, len(t.Years))
	for i, y := range t.Years {
		out[i] = y.Balance
	}
	return out
}

// Outcome converts the trace into a scenario outcome
func (t LifecycleTrace) Outcome(scenarioID int) domain.ScenarioOutcome {
	outcome := domain.ScenarioOutcome{
		ScenarioID:   scenarioID,
		FinalBalance: decimal.NewFromFloat(t.FinalBalance),
		Success:      t.Success,
	}
	if t.DepletionAge != nil {
		age := *t.DepletionAge
		outcome.YearsDepleted = &age
	}
	return outcome
}

// Simulator runs the accumulation/withdrawal state machine over a scenario
type Simulator struct {
	Model  MarketModel
	Policy LifecyclePolicy
}

// NewSimulator creates a simulator with the given model and policy
func NewSimulator(model MarketModel, policy LifecyclePolicy) *Simulator {
	return &Simulator{Model: model, Policy: policy}
}

// lifecyclePlan is the float64 view of the inputs used inside the age loop
type lifecyclePlan struct {
	currentAge         int
	retirementAge      int
	lifeExpectancy     int
	startingBalance    float64
	annualContribution float64
	baseline           WithdrawalBaseline
}

func newLifecyclePlan(inputs domain.RetirementInputs, colIndex decimal.Decimal) lifecyclePlan {
	return lifecyclePlan{
		currentAge:         inputs.CurrentAge,
		retirementAge:      inputs.RetirementAge,
		lifeExpectancy:     inputs.LifeExpectancy,
		startingBalance:    math.Max(0, inputs.CurrentSavings.InexactFloat64()),
		annualContribution: inputs.AnnualContribution().InexactFloat64(),
		baseline:           WithdrawalNeed(inputs, colIndex),
	}
}

// Trace simulates every age from current age through life expectancy
func (s *Simulator) Trace(inputs domain.RetirementInputs, colIndex decimal.Decimal, scenario domain.MarketScenario) LifecycleTrace {
	return s.trace(newLifecyclePlan(inputs, colIndex), scenario)
}

// Simulate returns only the outcome of Trace
func (s *Simulator) Simulate(inputs domain.RetirementInputs, colIndex decimal.Decimal, scenario domain.MarketScenario) domain.ScenarioOutcome {
	return s.Trace(inputs, colIndex, scenario).Outcome(0)
}

func (s *Simulator) trace(plan lifecyclePlan, scenario domain.MarketScenario) LifecycleTrace {
	horizon := plan.lifeExpectancy - plan.currentAge + 1
	if horizon < 0 {
		horizon = 0
	}

	result := LifecycleTrace{
		Baseline: plan.baseline,
		Years:    make([]TraceYear, 0, horizon),
		Success:  true,
	}

	// retiring at or after life expectancy leaves no withdrawal years
	retires := plan.retirementAge < plan.lifeExpectancy
	balance := plan.startingBalance
	cumulativeInflation := 1.0

	for i := 0; i < horizon; i++ {
		age := plan.currentAge + i
		marketReturn := scenario.ReturnAt(i, s.Model.MeanReturn)
		inflation := scenario.InflationAt(i, s.Model.BaseInflation)

		year := TraceYear{Age: age, Inflation: inflation}

		if !retires || age < plan.retirementAge {
			year.Phase = PhaseAccumulation
			year.Return = marketReturn
			balance = math.Max(0, balance+balance*marketReturn+plan.annualContribution)
		} else {
			yearsIntoRetirement := age - plan.retirementAge
			if yearsIntoRetirement > 0 {
				cumulativeInflation *= 1 + inflation
			}

			year.Phase = PhaseWithdrawal
			year.Return = s.Policy.RetirementReturn(age, yearsIntoRetirement, marketReturn)
			year.Withdrawal = plan.baseline.Needed * cumulativeInflation
			balance = balance + balance*year.Return - year.Withdrawal

			if balance <= 0 {
				balance = 0
				if result.Success {
					result.Success = false
					depletedAt := age
					result.DepletionAge = &depletedAt
				}
			}
		}

		year.Balance = balance
		result.Years = append(result.Years, year)
	}

	result.FinalBalance = balance
	return result
}
