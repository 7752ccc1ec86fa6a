package domain

import (
	"github.com/shopspring/decimal"
)

// MonthlyExpenses is the monthly spending breakdown used for the expense-based
// withdrawal estimate
type MonthlyExpenses struct {
	Housing        decimal.Decimal `yaml:"housing" json:"housing"`
	Utilities      decimal.Decimal `yaml:"utilities" json:"utilities"`
	Food           decimal.Decimal `yaml:"food" json:"food"`
	Transportation decimal.Decimal `yaml:"transportation" json:"transportation"`
	Healthcare     decimal.Decimal `yaml:"healthcare" json:"healthcare"`
	Entertainment  decimal.Decimal `yaml:"entertainment" json:"entertainment"`
	Other          decimal.Decimal `yaml:"other" json:"other"`
}

// Total returns the sum of all expense categories
func (e MonthlyExpenses) Total() decimal.Decimal {
	return e.Housing.
		Add(e.Utilities).
		Add(e.Food).
		Add(e.Transportation).
		Add(e.Healthcare).
		Add(e.Entertainment).
		Add(e.Other)
}

// Scale returns a copy with every category multiplied by factor
func (e MonthlyExpenses) Scale(factor decimal.Decimal) MonthlyExpenses {
	return MonthlyExpenses{
		Housing:        e.Housing.Mul(factor),
		Utilities:      e.Utilities.Mul(factor),
		Food:           e.Food.Mul(factor),
		Transportation: e.Transportation.Mul(factor),
		Healthcare:     e.Healthcare.Mul(factor),
		Entertainment:  e.Entertainment.Mul(factor),
		Other:          e.Other.Mul(factor),
	}
}

// RetirementInputs holds the caller-supplied assumptions for one plan.
// Monetary amounts are in today's dollars; SocialSecurityBenefits and
// OtherIncome are monthly; DesiredIncomeReplacement and ExpectedInflation
// are percentages (80 means 80%).
type RetirementInputs struct {
	CurrentAge               int             `yaml:"current_age" json:"currentAge"`
	RetirementAge            int             `yaml:"retirement_age" json:"retirementAge"`
	LifeExpectancy           int             `yaml:"life_expectancy" json:"lifeExpectancy"`
	CurrentSavings           decimal.Decimal `yaml:"current_savings" json:"currentSavings"`
	MonthlyContribution      decimal.Decimal `yaml:"monthly_contribution" json:"monthlyContribution"`
	CurrentAnnualIncome      decimal.Decimal `yaml:"current_annual_income" json:"currentAnnualIncome"`
	DesiredIncomeReplacement decimal.Decimal `yaml:"desired_income_replacement" json:"desiredIncomeReplacement"`
	SocialSecurityBenefits   decimal.Decimal `yaml:"social_security_benefits" json:"socialSecurityBenefits"`
	OtherIncome              decimal.Decimal `yaml:"other_income" json:"otherIncome"`
	MonthlyExpenses          MonthlyExpenses `yaml:"monthly_expenses" json:"monthlyExpenses"`
	ExpectedInflation        decimal.Decimal `yaml:"expected_inflation" json:"expectedInflation"`
}

// HorizonYears is the number of projected ages, currentAge through
// lifeExpectancy inclusive. Zero when life expectancy is below current age.
func (ri RetirementInputs) HorizonYears() int {
	years := ri.LifeExpectancy - ri.CurrentAge + 1
	if years < 0 {
		return 0
	}
	return years
}

// YearsToRetirement returns the accumulation length, never negative
func (ri RetirementInputs) YearsToRetirement() int {
	if ri.RetirementAge <= ri.CurrentAge {
		return 0
	}
	return ri.RetirementAge - ri.CurrentAge
}

// AnnualContribution is the monthly contribution annualized
func (ri RetirementInputs) AnnualContribution() decimal.Decimal {
	return ri.MonthlyContribution.Mul(decimal.NewFromInt(12))
}

// AnnualGuaranteedIncome is social security plus other income, annualized
func (ri RetirementInputs) AnnualGuaranteedIncome() decimal.Decimal {
	return ri.SocialSecurityBenefits.Add(ri.OtherIncome).Mul(decimal.NewFromInt(12))
}

// Location identifies where the plan holder lives for cost-of-living lookup
type Location struct {
	State string `yaml:"state" json:"state"`
	City  string `yaml:"city,omitempty" json:"city,omitempty"`
}

// SimulationSettings controls the Monte Carlo run for a plan document
type SimulationSettings struct {
	NumSimulations int    `yaml:"num_simulations" json:"numSimulations"`
	Seed           uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`
	Workers        int    `yaml:"workers,omitempty" json:"workers,omitempty"`
	SampleSize     int    `yaml:"sample_size,omitempty" json:"sampleSize,omitempty"`
}

// MarketAssumptions optionally overrides the stochastic market model.
// Nil fields keep the engine defaults.
type MarketAssumptions struct {
	MeanReturn                 *float64 `yaml:"mean_return,omitempty" json:"meanReturn,omitempty"`
	ReturnStdDev               *float64 `yaml:"return_std_dev,omitempty" json:"returnStdDev,omitempty"`
	BaseInflation              *float64 `yaml:"base_inflation,omitempty" json:"baseInflation,omitempty"`
	InflationVolatility        *float64 `yaml:"inflation_volatility,omitempty" json:"inflationVolatility,omitempty"`
	ReturnInflationCorrelation *float64 `yaml:"return_inflation_correlation,omitempty" json:"returnInflationCorrelation,omitempty"`
}

// PolicyAssumptions optionally overrides glide path and sequence-risk policy
type PolicyAssumptions struct {
	GlidePathBase       *int     `yaml:"glide_path_base,omitempty" json:"glidePathBase,omitempty"`
	MinEquityPct        *int     `yaml:"min_equity_pct,omitempty" json:"minEquityPct,omitempty"`
	MaxEquityPct        *int     `yaml:"max_equity_pct,omitempty" json:"maxEquityPct,omitempty"`
	BondReturn          *float64 `yaml:"bond_return,omitempty" json:"bondReturn,omitempty"`
	SequenceRiskPenalty *float64 `yaml:"sequence_risk_penalty,omitempty" json:"sequenceRiskPenalty,omitempty"`
	SequenceRiskYears   *int     `yaml:"sequence_risk_years,omitempty" json:"sequenceRiskYears,omitempty"`
	MinRetirementReturn *float64 `yaml:"min_retirement_return,omitempty" json:"minRetirementReturn,omitempty"`
}

// PlanConfiguration is the top-level plan document loaded from YAML
type PlanConfiguration struct {
	Name              string             `yaml:"name" json:"name"`
	Inputs            RetirementInputs   `yaml:"inputs" json:"inputs"`
	Location          *Location          `yaml:"location,omitempty" json:"location,omitempty"`
	CostOfLivingIndex *decimal.Decimal   `yaml:"cost_of_living_index,omitempty" json:"costOfLivingIndex,omitempty"`
	Simulation        SimulationSettings `yaml:"simulation" json:"simulation"`
	Market            *MarketAssumptions `yaml:"market,omitempty" json:"market,omitempty"`
	Policy            *PolicyAssumptions `yaml:"policy,omitempty" json:"policy,omitempty"`
}
