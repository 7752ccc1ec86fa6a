package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestMonthlyExpenses_TotalAndScale(t *testing.T) {
	e := MonthlyExpenses{
		Housing:        decimal.NewFromInt(1800),
		Utilities:      decimal.NewFromInt(300),
		Food:           decimal.NewFromInt(700),
		Transportation: decimal.NewFromInt(500),
		Healthcare:     decimal.NewFromInt(600),
		Entertainment:  decimal.NewFromInt(300),
		Other:          decimal.NewFromInt(300),
	}

	assert.True(t, decimal.NewFromInt(4500).Equal(e.Total()))

	scaled := e.Scale(decimal.NewFromFloat(0.9))
	assert.True(t, decimal.NewFromInt(4050).Equal(scaled.Total()))
	assert.True(t, decimal.NewFromInt(1620).Equal(scaled.Housing))
	assert.True(t, decimal.NewFromInt(1800).Equal(e.Housing), "scale must not mutate the receiver")

	assert.True(t, MonthlyExpenses{}.Total().IsZero())
}

func TestRetirementInputs_Horizon(t *testing.T) {
	tests := []struct {
		name              string
		current, retire   int
		life              int
		horizon, toRetire int
	}{
		{"typical", 35, 65, 90, 56, 30},
		{"single year", 90, 95, 90, 1, 5},
		{"life below current", 70, 75, 65, 0, 5},
		{"already retired", 70, 65, 90, 21, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := RetirementInputs{CurrentAge: tt.current, RetirementAge: tt.retire, LifeExpectancy: tt.life}
			assert.Equal(t, tt.horizon, in.HorizonYears())
			assert.Equal(t, tt.toRetire, in.YearsToRetirement())
		})
	}
}

func TestRetirementInputs_AnnualAmounts(t *testing.T) {
	in := RetirementInputs{
		MonthlyContribution:    decimal.NewFromInt(1000),
		SocialSecurityBenefits: decimal.NewFromInt(1800),
		OtherIncome:            decimal.NewFromInt(200),
	}

	assert.True(t, decimal.NewFromInt(12000).Equal(in.AnnualContribution()))
	assert.True(t, decimal.NewFromInt(24000).Equal(in.AnnualGuaranteedIncome()))
}

func TestMarketScenario_Fallbacks(t *testing.T) {
	ms := MarketScenario{
		Returns:        []float64{0.05, -0.1},
		InflationRates: []float64{0.02},
	}

	assert.Equal(t, 2, ms.Years())
	assert.Equal(t, -0.1, ms.ReturnAt(1, 0.07))
	assert.Equal(t, 0.07, ms.ReturnAt(2, 0.07))
	assert.Equal(t, 0.07, ms.ReturnAt(-1, 0.07))
	assert.Equal(t, 0.02, ms.InflationAt(0, 0.03))
	assert.Equal(t, 0.03, ms.InflationAt(1, 0.03))
}

func TestMonteCarloResults_Helpers(t *testing.T) {
	var nilResults *MonteCarloResults
	assert.True(t, nilResults.IsEmpty())
	assert.True(t, (&MonteCarloResults{}).IsEmpty())

	res := &MonteCarloResults{
		NumSimulations: 10,
		ConfidenceIntervals: []ConfidenceInterval{
			{Percentile: 10, Value: decimal.NewFromInt(100)},
			{Percentile: 50, Value: decimal.NewFromInt(500)},
		},
	}
	assert.False(t, res.IsEmpty())

	v, ok := res.Interval(50)
	assert.True(t, ok)
	assert.True(t, decimal.NewFromInt(500).Equal(v))

	_, ok = res.Interval(90)
	assert.False(t, ok)
}

func TestPlanConfiguration_YAML(t *testing.T) {
	doc := `
name: "Test"
inputs:
  current_age: 40
  retirement_age: 67
  life_expectancy: 92
  current_savings: 125000.50
  monthly_expenses:
    housing: 1500
location:
  state: TX
  city: Austin
cost_of_living_index: 101.5
simulation:
  num_simulations: 2500
  seed: 99
market:
  mean_return: 0.06
policy:
  sequence_risk_years: 3
`
	var plan PlanConfiguration
	assert.NoError(t, yaml.Unmarshal([]byte(doc), &plan))

	assert.Equal(t, "Test", plan.Name)
	assert.Equal(t, 67, plan.Inputs.RetirementAge)
	assert.True(t, decimal.NewFromFloat(125000.50).Equal(plan.Inputs.CurrentSavings))
	assert.True(t, decimal.NewFromInt(1500).Equal(plan.Inputs.MonthlyExpenses.Housing))
	if assert.NotNil(t, plan.Location) {
		assert.Equal(t, "Austin", plan.Location.City)
	}
	if assert.NotNil(t, plan.CostOfLivingIndex) {
		assert.True(t, decimal.NewFromFloat(101.5).Equal(*plan.CostOfLivingIndex))
	}
	assert.Equal(t, uint64(99), plan.Simulation.Seed)
	if assert.NotNil(t, plan.Market) && assert.NotNil(t, plan.Market.MeanReturn) {
		assert.Equal(t, 0.06, *plan.Market.MeanReturn)
	}
	assert.Nil(t, plan.Market.ReturnStdDev)
	if assert.NotNil(t, plan.Policy) && assert.NotNil(t, plan.Policy.SequenceRiskYears) {
		assert.Equal(t, 3, *plan.Policy.SequenceRiskYears)
	}
}
