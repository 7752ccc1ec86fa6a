package calculation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEngine(n int, seed uint64, workers int, opts ...EngineOption) *MonteCarloEngine {
	return NewMonteCarloEngine(MonteCarloConfig{
		NumSimulations: n,
		Seed:           seed,
		Workers:        workers,
	}, opts...)
}

func assertOrdered(t *testing.T, values ...decimal.Decimal) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		assert.True(t, values[i-1].LessThanOrEqual(values[i]), "%s > %s", values[i-1], values[i])
	}
}

func TestNewMonteCarloEngine_Defaults(t *testing.T) {
	e := NewMonteCarloEngine(MonteCarloConfig{NumSimulations: 10})

	assert.Equal(t, DefaultSampleSize, e.Config().SampleSize)
	assert.Greater(t, e.Config().Workers, 0)
	assert.Equal(t, DefaultMarketModel(), e.MarketModel())
	assert.Equal(t, DefaultLifecyclePolicy(), e.Policy())

	d := DefaultMonteCarloConfig()
	assert.Equal(t, 1000, d.NumSimulations)
	assert.Equal(t, 100, d.SampleSize)
}

func TestMonteCarloEngine_EndToEndExample(t *testing.T) {
	inputs := createExampleInputs()
	engine := createTestEngine(5000, 20240601, 4)

	results, err := engine.Run(context.Background(), inputs, nationalAverage)
	require.NoError(t, err)

	assert.Equal(t, 5000, results.NumSimulations)
	assert.Equal(t, 56, results.YearsProjected)
	assert.Equal(t, uint64(20240601), results.Seed)

	success := results.SuccessProbability.InexactFloat64()
	assert.GreaterOrEqual(t, success, 60.0)
	assert.LessOrEqual(t, success, 90.0)
	assert.True(t, results.MedianOutcome.GreaterThan(inputs.CurrentSavings))

	assert.True(t, results.SuccessProbability.Add(results.ProbabilityOfDepletion).Equal(decimal.NewFromInt(100)))

	require.Len(t, results.ConfidenceIntervals, 5)
	var values []decimal.Decimal
	for i, ci := range results.ConfidenceIntervals {
		assert.Equal(t, ReportedPercentiles[i], ci.Percentile)
		values = append(values, ci.Value)
	}
	assertOrdered(t, values...)
	assert.True(t, results.Percentile10Outcome.Equal(values[0]))
	assert.True(t, results.MedianOutcome.Equal(values[2]))
	assert.True(t, results.Percentile90Outcome.Equal(values[4]))

	require.Len(t, results.YearlyProjections, 56)
	for i, yp := range results.YearlyProjections {
		assert.Equal(t, 35+i, yp.Age)
		assertOrdered(t, decimal.Zero, yp.P10, yp.P25, yp.Median, yp.P75, yp.P90)
	}

	require.Len(t, results.Scenarios, 100)
	for i, s := range results.Scenarios {
		assert.Equal(t, i, s.ScenarioID)
		assert.False(t, s.FinalBalance.IsNegative())
		assert.Equal(t, !s.Success, s.YearsDepleted != nil)
	}

	require.NotNil(t, results.MedianDepletionAge)
	assert.GreaterOrEqual(t, *results.MedianDepletionAge, inputs.RetirementAge)
	assert.LessOrEqual(t, *results.MedianDepletionAge, inputs.LifeExpectancy)
	assert.True(t, results.MeanOutcome.IsPositive())
	assert.True(t, results.OutcomeStdDev.IsPositive())
}

func TestMonteCarloEngine_Reproducible(t *testing.T) {
	inputs := createExampleInputs()

	first, err := createTestEngine(400, 77, 1).Run(context.Background(), inputs, nationalAverage)
	require.NoError(t, err)
	second, err := createTestEngine(400, 77, 8).Run(context.Background(), inputs, nationalAverage)
	require.NoError(t, err)

	assert.Equal(t, first, second, "worker count must not change results")

	other, err := createTestEngine(400, 78, 8).Run(context.Background(), inputs, nationalAverage)
	require.NoError(t, err)
	assert.False(t, first.MedianOutcome.Equal(other.MedianOutcome))
}

func TestMonteCarloEngine_MatchesSingleScenario(t *testing.T) {
	inputs := createExampleInputs()
	results, err := createTestEngine(20, 3, 2).Run(context.Background(), inputs, nationalAverage)
	require.NoError(t, err)

	sim := NewSimulator(DefaultMarketModel(), DefaultLifecyclePolicy())
	for i, s := range results.Scenarios {
		scenario := NewScenarioGenerator(DefaultMarketModel(), NewSource(3, uint64(i))).Generate(inputs.HorizonYears())
		outcome := sim.Simulate(inputs, nationalAverage, scenario)
		assert.True(t, outcome.FinalBalance.Round(2).Equal(s.FinalBalance), "scenario %d", i)
		assert.Equal(t, outcome.Success, s.Success)
	}
}

func TestMonteCarloEngine_DegenerateRuns(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		mutate  func(*domain.RetirementInputs)
		horizon int
	}{
		{name: "zero simulations", n: 0},
		{name: "negative simulations", n: -10},
		{name: "zero horizon", n: 100, mutate: func(in *domain.RetirementInputs) { in.LifeExpectancy = in.CurrentAge - 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := createExampleInputs()
			if tt.mutate != nil {
				tt.mutate(&inputs)
			}

			results, err := createTestEngine(tt.n, 1, 2).Run(context.Background(), inputs, nationalAverage)
			require.NoError(t, err)

			assert.True(t, results.IsEmpty())
			assert.True(t, results.SuccessProbability.IsZero())
			assert.True(t, results.ProbabilityOfDepletion.IsZero())
			assert.True(t, results.MedianOutcome.IsZero())
			assert.NotNil(t, results.Scenarios)
			assert.NotNil(t, results.YearlyProjections)
			assert.Empty(t, results.Scenarios)
			assert.Empty(t, results.YearlyProjections)
			assert.Len(t, results.ConfidenceIntervals, 5)
			assert.Nil(t, results.MedianDepletionAge)
		})
	}
}

func TestMonteCarloEngine_RetireAfterLifeExpectancy(t *testing.T) {
	inputs := createExampleInputs()
	inputs.RetirementAge = 95

	results, err := createTestEngine(200, 9, 4).Run(context.Background(), inputs, nationalAverage)
	require.NoError(t, err)

	assert.True(t, results.SuccessProbability.Equal(decimal.NewFromInt(100)))
	assert.True(t, results.ProbabilityOfDepletion.IsZero())
	assert.Nil(t, results.MedianDepletionAge)
}

func TestMonteCarloEngine_SingleSimulation(t *testing.T) {
	results, err := createTestEngine(1, 4, 4).Run(context.Background(), createExampleInputs(), nationalAverage)
	require.NoError(t, err)

	assert.Equal(t, 1, results.NumSimulations)
	assert.True(t, results.OutcomeStdDev.IsZero())
	assert.True(t, results.Percentile10Outcome.Equal(results.Percentile90Outcome))
}

func TestMonteCarloEngine_SuccessPlusDepletionIsHundred(t *testing.T) {
	inputs := createExampleInputs()
	inputs.ExpectedInflation = decimal.NewFromInt(2)

	for _, n := range []int{3, 7, 333} {
		results, err := createTestEngine(n, 12, 2).Run(context.Background(), inputs, nationalAverage)
		require.NoError(t, err)

		sum := results.SuccessProbability.Add(results.ProbabilityOfDepletion)
		assert.True(t, sum.Equal(decimal.NewFromInt(100)), "n=%d sum=%s", n, sum)
		assert.True(t, results.SuccessProbability.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, results.SuccessProbability.LessThanOrEqual(decimal.NewFromInt(100)))
	}
}

func TestMonteCarloEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := createTestEngine(1000, 1, 2).Run(ctx, createExampleInputs(), nationalAverage)
	assert.Nil(t, results)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMonteCarloEngine_CancelledMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := createTestEngine(2000, 1, 1, WithProgress(func(done, total int) {
		if done >= total/10 {
			cancel()
		}
	}))

	_, err := engine.Run(ctx, createExampleInputs(), nationalAverage)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMonteCarloEngine_Progress(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []int
	)
	engine := createTestEngine(1000, 5, 4, WithProgress(func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1000, total)
		calls = append(calls, done)
	}))

	_, err := engine.Run(context.Background(), createExampleInputs(), nationalAverage)
	require.NoError(t, err)

	require.NotEmpty(t, calls)
	assert.LessOrEqual(t, len(calls), 100)
	assert.Equal(t, 1000, calls[len(calls)-1])
	for i := 1; i < len(calls); i++ {
		assert.Greater(t, calls[i], calls[i-1])
	}
}

func TestMonteCarloEngine_InvalidModel(t *testing.T) {
	model := DefaultMarketModel()
	model.ReturnStdDev = 0

	_, err := createTestEngine(10, 1, 1, WithMarketModel(model)).Run(context.Background(), createExampleInputs(), nationalAverage)
	assert.ErrorContains(t, err, "invalid market model")

	policy := DefaultLifecyclePolicy()
	policy.MinEquityPct = 95
	_, err = createTestEngine(10, 1, 1, WithPolicy(policy)).Run(context.Background(), createExampleInputs(), nationalAverage)
	assert.ErrorContains(t, err, "invalid lifecycle policy")
}

func TestMonteCarloEngine_SeedFromProvider(t *testing.T) {
	original := seedFunc
	SetSeedFunc(func() uint64 { return 4242 })
	defer SetSeedFunc(original)

	results, err := createTestEngine(10, 0, 1).Run(context.Background(), createExampleInputs(), nationalAverage)
	require.NoError(t, err)
	assert.Equal(t, uint64(4242), results.Seed)
}

type recordingLogger struct {
	NopLogger
	mu    sync.Mutex
	infos int
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos++
}

func TestMonteCarloEngine_Logs(t *testing.T) {
	logger := &recordingLogger{}
	_, err := createTestEngine(10, 1, 1, WithLogger(logger)).Run(context.Background(), createExampleInputs(), nationalAverage)
	require.NoError(t, err)
	assert.Equal(t, 1, logger.infos)
}
