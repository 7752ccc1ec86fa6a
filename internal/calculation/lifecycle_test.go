package calculation

import (
	"testing"

	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createShortInputs() domain.RetirementInputs {
	return domain.RetirementInputs{
		CurrentAge:          60,
		RetirementAge:       62,
		LifeExpectancy:      64,
		CurrentSavings:      decimal.NewFromInt(100000),
		MonthlyContribution: decimal.NewFromInt(1000),
		MonthlyExpenses:     domain.MonthlyExpenses{Housing: decimal.NewFromInt(1000)},
	}
}

func TestLifecyclePolicy_EquityFraction(t *testing.T) {
	p := DefaultLifecyclePolicy()

	tests := []struct {
		age      int
		expected float64
	}{
		{20, 0.80},
		{30, 0.80},
		{50, 0.60},
		{65, 0.45},
		{90, 0.20},
		{100, 0.20},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, p.EquityFraction(tt.age), 1e-12, "age %d", tt.age)
	}
}

func TestLifecyclePolicy_RetirementReturn(t *testing.T) {
	p := DefaultLifecyclePolicy()

	// 45% equity at 65: 0.45*0.10 + 0.55*0.035 = 0.06425
	assert.InDelta(t, 0.05425, p.RetirementReturn(65, 0, 0.10), 1e-12)
	assert.InDelta(t, 0.05425, p.RetirementReturn(65, 4, 0.10), 1e-12)
	assert.InDelta(t, 0.06425, p.RetirementReturn(65, 5, 0.10), 1e-12)

	assert.Equal(t, 0.005, p.RetirementReturn(65, 0, -0.50))
	assert.Equal(t, 0.005, p.RetirementReturn(80, 10, -0.30))
}

func TestLifecyclePolicy_Validate(t *testing.T) {
	p := DefaultLifecyclePolicy()
	require.NoError(t, p.Validate())

	p.MinEquityPct = 90
	assert.Error(t, p.Validate())

	p = DefaultLifecyclePolicy()
	p.MaxEquityPct = 120
	assert.Error(t, p.Validate())
}

func TestWithdrawalNeed(t *testing.T) {
	t.Run("income replacement dominates", func(t *testing.T) {
		inputs := createExampleInputs()
		inputs.ExpectedInflation = decimal.Zero

		need := WithdrawalNeed(inputs, nationalAverage)
		// 80,000 * 80% - 1,800 * 12
		assert.InDelta(t, 42400, need.IncomeReplacement, 1e-6)
		// 4,500 * 12 - 21,600
		assert.InDelta(t, 32400, need.ExpenseBased, 1e-6)
		assert.InDelta(t, 42400, need.Needed, 1e-6)
	})

	t.Run("inflated expenses dominate", func(t *testing.T) {
		inputs := createExampleInputs()
		inputs.ExpectedInflation = decimal.NewFromInt(3)

		need := WithdrawalNeed(inputs, nationalAverage)
		assert.InDelta(t, 109472.17, need.ExpenseBased, 0.01)
		assert.Equal(t, need.ExpenseBased, need.Needed)
	})

	t.Run("cost of living scales both estimates", func(t *testing.T) {
		inputs := createExampleInputs()
		inputs.ExpectedInflation = decimal.Zero

		need := WithdrawalNeed(inputs, decimal.NewFromInt(150))
		assert.InDelta(t, 80000*0.8*1.5-21600, need.IncomeReplacement, 1e-6)
		assert.InDelta(t, 54000*1.5-21600, need.ExpenseBased, 1e-6)
	})

	t.Run("guaranteed income covers everything", func(t *testing.T) {
		inputs := createExampleInputs()
		inputs.SocialSecurityBenefits = decimal.NewFromInt(10000)

		need := WithdrawalNeed(inputs, nationalAverage)
		assert.Equal(t, 0.0, need.IncomeReplacement)
		assert.Equal(t, 0.0, need.ExpenseBased)
		assert.Equal(t, 0.0, need.Needed)
	})

	t.Run("already retired does not deflate expenses", func(t *testing.T) {
		inputs := createExampleInputs()
		inputs.CurrentAge = 70
		inputs.ExpectedInflation = decimal.NewFromInt(3)

		need := WithdrawalNeed(inputs, nationalAverage)
		assert.InDelta(t, 32400, need.ExpenseBased, 1e-6)
	})
}

func TestSimulator_TraceGolden(t *testing.T) {
	sim := NewSimulator(DefaultMarketModel(), DefaultLifecyclePolicy())
	inputs := createShortInputs()

	trace := sim.Trace(inputs, nationalAverage, constantScenario(5, 0.10, 0.02))

	require.Len(t, trace.Years, 5)
	expected := []struct {
		age        int
		phase      Phase
		withdrawal float64
		balance    float64
	}{
		{60, PhaseAccumulation, 0, 122000},
		{61, PhaseAccumulation, 0, 146200},
		{62, PhaseWithdrawal, 12000, 142416.44},
		{63, PhaseWithdrawal, 12240, 138087.673242},
		{64, PhaseWithdrawal, 12484.8, 133183.8865029858},
	}
	for i, want := range expected {
		got := trace.Years[i]
		assert.Equal(t, want.age, got.Age)
		assert.Equal(t, want.phase, got.Phase)
		assert.InDelta(t, want.withdrawal, got.Withdrawal, 1e-6)
		assert.InDelta(t, want.balance, got.Balance, 1e-6)
	}

	assert.True(t, trace.Success)
	assert.Nil(t, trace.DepletionAge)
	assert.InDelta(t, 12000, trace.Baseline.Needed, 1e-9)
}

func TestSimulator_TraceMatchesSimulate(t *testing.T) {
	sim := NewSimulator(DefaultMarketModel(), DefaultLifecyclePolicy())
	inputs := createExampleInputs()

	for stream := uint64(0); stream < 50; stream++ {
		scenario := NewScenarioGenerator(DefaultMarketModel(), NewSource(11, stream)).Generate(inputs.HorizonYears())

		trace := sim.Trace(inputs, nationalAverage, scenario)
		outcome := sim.Simulate(inputs, nationalAverage, scenario)

		require.NotEmpty(t, trace.Years)
		last := trace.Years[len(trace.Years)-1].Balance
		assert.Equal(t, last, outcome.FinalBalance.InexactFloat64())
		assert.Equal(t, trace.Success, outcome.Success)
		if trace.DepletionAge != nil {
			require.NotNil(t, outcome.YearsDepleted)
			assert.Equal(t, *trace.DepletionAge, *outcome.YearsDepleted)
		}
	}
}

func TestSimulator_Depletion(t *testing.T) {
	sim := NewSimulator(DefaultMarketModel(), DefaultLifecyclePolicy())
	inputs := createShortInputs()
	inputs.CurrentSavings = decimal.NewFromInt(1000)
	inputs.MonthlyContribution = decimal.Zero
	inputs.MonthlyExpenses = domain.MonthlyExpenses{Housing: decimal.NewFromInt(5000)}

	trace := sim.Trace(inputs, nationalAverage, constantScenario(5, 0.05, 0.02))

	assert.False(t, trace.Success)
	require.NotNil(t, trace.DepletionAge)
	assert.Equal(t, 62, *trace.DepletionAge)
	assert.Equal(t, 0.0, trace.FinalBalance)

	// pinned at zero, loop still runs to life expectancy
	require.Len(t, trace.Years, 5)
	for _, y := range trace.Years[2:] {
		assert.Equal(t, 0.0, y.Balance)
		assert.Greater(t, y.Withdrawal, 0.0)
	}
}

func TestSimulator_NeverNegative(t *testing.T) {
	sim := NewSimulator(DefaultMarketModel(), DefaultLifecyclePolicy())
	inputs := createExampleInputs()

	// a crash bigger than -100% in accumulation must not produce a negative balance
	trace := sim.Trace(inputs, nationalAverage, constantScenario(inputs.HorizonYears(), -1.5, 0.03))
	for _, y := range trace.Years {
		assert.GreaterOrEqual(t, y.Balance, 0.0)
	}
}

func TestSimulator_MissingScenarioDataFallsBack(t *testing.T) {
	sim := NewSimulator(DefaultMarketModel(), DefaultLifecyclePolicy())
	inputs := createShortInputs()

	short := constantScenario(2, 0.07, 0.025)
	full := constantScenario(5, 0.07, 0.025)

	assert.Equal(t, sim.Trace(inputs, nationalAverage, full), sim.Trace(inputs, nationalAverage, short))

	empty := sim.Trace(inputs, nationalAverage, domain.MarketScenario{})
	assert.Equal(t, sim.Trace(inputs, nationalAverage, full).FinalBalance, empty.FinalBalance)
}

func TestSimulator_RetireAtOrAfterLifeExpectancy(t *testing.T) {
	sim := NewSimulator(DefaultMarketModel(), DefaultLifecyclePolicy())

	for _, retireAt := range []int{64, 70} {
		inputs := createShortInputs()
		inputs.RetirementAge = retireAt
		inputs.CurrentSavings = decimal.Zero
		inputs.MonthlyContribution = decimal.Zero

		trace := sim.Trace(inputs, nationalAverage, constantScenario(5, -0.2, 0.02))
		assert.True(t, trace.Success)
		assert.Nil(t, trace.DepletionAge)
		for _, y := range trace.Years {
			assert.Equal(t, PhaseAccumulation, y.Phase)
			assert.Equal(t, 0.0, y.Withdrawal)
		}
	}
}

func TestSimulator_ZeroHorizon(t *testing.T) {
	sim := NewSimulator(DefaultMarketModel(), DefaultLifecyclePolicy())
	inputs := createShortInputs()
	inputs.LifeExpectancy = inputs.CurrentAge - 1

	outcome := sim.Simulate(inputs, nationalAverage, domain.MarketScenario{})
	assert.True(t, outcome.Success)
	assert.True(t, outcome.FinalBalance.Equal(decimal.NewFromInt(100000)))
	assert.Empty(t, sim.Trace(inputs, nationalAverage, domain.MarketScenario{}).Years)
}

func TestSimulator_MonotonicInContribution(t *testing.T) {
	sim := NewSimulator(DefaultMarketModel(), DefaultLifecyclePolicy())
	base := createExampleInputs()

	for stream := uint64(0); stream < 25; stream++ {
		scenario := NewScenarioGenerator(DefaultMarketModel(), NewSource(5, stream)).Generate(base.HorizonYears())

		previous := -1.0
		for _, monthly := range []int64{0, 250, 1000, 2500} {
			inputs := base
			inputs.MonthlyContribution = decimal.NewFromInt(monthly)
			final := sim.Trace(inputs, nationalAverage, scenario).FinalBalance
			assert.GreaterOrEqual(t, final, previous, "stream %d monthly %d", stream, monthly)
			previous = final
		}
	}
}
