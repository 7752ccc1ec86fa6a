package compare

import (
	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

func createTestInputs() domain.RetirementInputs {
	return domain.RetirementInputs{
		CurrentAge:               40,
		RetirementAge:            65,
		LifeExpectancy:           90,
		CurrentSavings:           decimal.NewFromInt(150000),
		MonthlyContribution:      decimal.NewFromInt(800),
		CurrentAnnualIncome:      decimal.NewFromInt(90000),
		DesiredIncomeReplacement: decimal.NewFromInt(75),
		SocialSecurityBenefits:   decimal.NewFromInt(2000),
		MonthlyExpenses: domain.MonthlyExpenses{
			Housing:        decimal.NewFromInt(1600),
			Utilities:      decimal.NewFromInt(250),
			Food:           decimal.NewFromInt(650),
			Transportation: decimal.NewFromInt(400),
			Healthcare:     decimal.NewFromInt(500),
			Entertainment:  decimal.NewFromInt(250),
			Other:          decimal.NewFromInt(200),
		},
		ExpectedInflation: decimal.NewFromFloat(2.5),
	}
}

func createTestComparisonSet() *ComparisonSet {
	depleted := 84
	base := ComparisonResult{
		ScenarioName:        "Base Plan",
		Description:         "Plan as written",
		SuccessProbability:  decimal.NewFromFloat(72.5),
		MedianOutcome:       decimal.NewFromInt(450000),
		Percentile10Outcome: decimal.Zero,
		Percentile90Outcome: decimal.NewFromInt(1800000),
		MedianDepletionAge:  &depleted,
		RetirementAge:       65,
		MonthlyContribution: decimal.NewFromInt(800),
	}

	calc := NewMetricsCalculator()
	better := calc.CalculateComparison(ComparisonResult{
		ScenarioName:        "save_500_more",
		Description:         "Increase monthly contribution by $500",
		SuccessProbability:  decimal.NewFromFloat(81.0),
		MedianOutcome:       decimal.NewFromInt(600000),
		Percentile10Outcome: decimal.NewFromInt(25000),
		Percentile90Outcome: decimal.NewFromInt(2100000),
		RetirementAge:       65,
		MonthlyContribution: decimal.NewFromInt(1300),
	}, base)
	worse := calc.CalculateComparison(ComparisonResult{
		ScenarioName:        "replace_70pct",
		Description:         "Target 70% income replacement",
		SuccessProbability:  decimal.NewFromFloat(70.0),
		MedianOutcome:       decimal.NewFromInt(430000),
		Percentile10Outcome: decimal.Zero,
		Percentile90Outcome: decimal.NewFromInt(1750000),
		RetirementAge:       65,
		MonthlyContribution: decimal.NewFromInt(800),
	}, base)

	set := &ComparisonSet{
		BaseScenarioName:   "Base Plan",
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{better, worse},
		ConfigPath:         "plan.yaml",
		Seed:               42,
		NumSimulations:     1000,
	}
	set.Recommendations = GenerateRecommendations(set)
	return set
}
