package calculation

import (
	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// sequenceSource replays a fixed list of uniforms, cycling at the end
type sequenceSource struct {
	values []float64
	next   int
}

func (s *sequenceSource) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// createExampleInputs returns the reference plan: age 35 retiring at 65,
// planning to 90, $100k saved and $1,000 a month going in.
func createExampleInputs() domain.RetirementInputs {
	return domain.RetirementInputs{
		CurrentAge:               35,
		RetirementAge:            65,
		LifeExpectancy:           90,
		CurrentSavings:           decimal.NewFromInt(100000),
		MonthlyContribution:      decimal.NewFromInt(1000),
		CurrentAnnualIncome:      decimal.NewFromInt(80000),
		DesiredIncomeReplacement: decimal.NewFromInt(80),
		SocialSecurityBenefits:   decimal.NewFromInt(1800),
		OtherIncome:              decimal.Zero,
		MonthlyExpenses: domain.MonthlyExpenses{
			Housing:        decimal.NewFromInt(1800),
			Utilities:      decimal.NewFromInt(300),
			Food:           decimal.NewFromInt(700),
			Transportation: decimal.NewFromInt(500),
			Healthcare:     decimal.NewFromInt(600),
			Entertainment:  decimal.NewFromInt(300),
			Other:          decimal.NewFromInt(300),
		},
		ExpectedInflation: decimal.NewFromInt(1),
	}
}

// constantScenario repeats one return and inflation rate for every year
func constantScenario(years int, ret, inflation float64) domain.MarketScenario {
	s := domain.MarketScenario{
		Returns:        make([]float64, years),
		InflationRates: make([]float64, years),
	}
	for i := 0; i < years; i++ {
		s.Returns[i] = ret
		s.InflationRates[i] = inflation
	}
	return s
}

var nationalAverage = decimal.NewFromInt(100)
