package calculation

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultNumSimulations is used when a plan does not choose a count
	DefaultNumSimulations = 1000
	// DefaultSampleSize bounds the raw outcomes returned for display
	DefaultSampleSize = 100
)

// ProgressFunc receives the number of finished simulations. It is called
// from worker goroutines, serialized, at most once per 1% of the run and
// always at completion.
type ProgressFunc func(done, total int)

// MonteCarloConfig holds the run-level settings for a Monte Carlo simulation
type MonteCarloConfig struct {
	NumSimulations int
	Seed           uint64 // zero picks a fresh seed, reported back in the results
	Workers        int    // zero uses GOMAXPROCS
	SampleSize     int
}

// DefaultMonteCarloConfig returns the settings used when nothing is specified
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		NumSimulations: DefaultNumSimulations,
		Workers:        runtime.GOMAXPROCS(0),
		SampleSize:     DefaultSampleSize,
	}
}

// MonteCarloEngine runs many independent lifecycle simulations and
// aggregates them into percentile statistics
type MonteCarloEngine struct {
	config   MonteCarloConfig
	model    MarketModel
	policy   LifecyclePolicy
	logger   Logger
	progress ProgressFunc
}

// EngineOption customizes a MonteCarloEngine
type EngineOption func(*MonteCarloEngine)

// WithMarketModel replaces the default market model
func WithMarketModel(m MarketModel) EngineOption {
	return func(e *MonteCarloEngine) { e.model = m }
}

// WithPolicy replaces the default lifecycle policy
func WithPolicy(p LifecyclePolicy) EngineOption {
	return func(e *MonteCarloEngine) { e.policy = p }
}

// WithLogger sets the engine logger
func WithLogger(l Logger) EngineOption {
	return func(e *MonteCarloEngine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithProgress registers a progress callback
func WithProgress(fn ProgressFunc) EngineOption {
	return func(e *MonteCarloEngine) { e.progress = fn }
}

// NewMonteCarloEngine creates a new Monte Carlo engine
func NewMonteCarloEngine(cfg MonteCarloConfig, opts ...EngineOption) *MonteCarloEngine {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = DefaultSampleSize
	}

	e := &MonteCarloEngine{
		config: cfg,
		model:  DefaultMarketModel(),
		policy: DefaultLifecyclePolicy(),
		logger: NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's run settings
func (e *MonteCarloEngine) Config() MonteCarloConfig { return e.config }

// MarketModel returns the market model in use
func (e *MonteCarloEngine) MarketModel() MarketModel { return e.model }

// Policy returns the lifecycle policy in use
func (e *MonteCarloEngine) Policy() LifecyclePolicy { return e.policy }

// simulationBatch is a contiguous range of simulation indices
type simulationBatch struct {
	start, end int
}

// Run simulates the plan NumSimulations times and aggregates the outcomes.
// Simulation i always draws from stream i of the seed, so results do not
// depend on the worker count. The only error paths are an invalid model or
// policy and context cancellation.
func (e *MonteCarloEngine) Run(ctx context.Context, inputs domain.RetirementInputs, colIndex decimal.Decimal) (*domain.MonteCarloResults, error) {
	if err := e.model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid market model: %w", err)
	}
	if err := e.policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lifecycle policy: %w", err)
	}

	seed := e.config.Seed
	if seed == 0 {
		seed = seedFunc()
	}

	n := e.config.NumSimulations
	horizon := inputs.HorizonYears()
	if n <= 0 || horizon <= 0 {
		e.logger.Warnf("monte carlo: nothing to simulate (simulations=%d, horizon=%d years)", n, horizon)
		return EmptyResults(seed), nil
	}

	workers := e.config.Workers
	if workers > n {
		workers = n
	}

	e.logger.Debugf("monte carlo: %d simulations over %d years, %d workers, seed %d", n, horizon, workers, seed)
	started := time.Now()

	plan := newLifecyclePlan(inputs, colIndex)
	sim := NewSimulator(e.model, e.policy)

	finals := make([]float64, n)
	succeeded := make([]bool, n)
	depletionAges := make([]int, n)
	balances := make([][]float64, horizon)
	for y := range balances {
		balances[y] = make([]float64, n)
	}

	report := e.progressReporter(n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, batch := range splitBatches(n) {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			for i := batch.start; i < batch.end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}

				gen := NewScenarioGenerator(e.model, NewSource(seed, uint64(i)))
				trace := sim.trace(plan, gen.Generate(horizon))

				finals[i] = trace.FinalBalance
				succeeded[i] = trace.Success
				if trace.DepletionAge != nil {
					depletionAges[i] = *trace.DepletionAge
				}
				for y, year := range trace.Years {
					balances[y][i] = year.Balance
				}
			}
			report(batch.end - batch.start)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("monte carlo run interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("monte carlo run interrupted: %w", err)
	}

	results := e.aggregate(inputs, seed, finals, succeeded, depletionAges, balances)
	e.logger.Infof("monte carlo: %d simulations finished in %s, success %s%%",
		n, time.Since(started).Round(time.Millisecond), results.SuccessProbability.StringFixed(1))
	return results, nil
}

// splitBatches cuts n simulations into roughly 1% slices
func splitBatches(n int) []simulationBatch {
	size := (n + 99) / 100
	batches := make([]simulationBatch, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		batches = append(batches, simulationBatch{start: start, end: end})
	}
	return batches
}

// progressReporter returns a goroutine-safe counter that forwards monotonic
// progress to the configured callback
func (e *MonteCarloEngine) progressReporter(total int) func(int) {
	if e.progress == nil {
		return func(int) {}
	}
	var (
		mu       sync.Mutex
		done     atomic.Int64
		reported int
	)
	return func(finished int) {
		current := int(done.Add(int64(finished)))
		mu.Lock()
		defer mu.Unlock()
		if current > reported {
			reported = current
			e.progress(current, total)
		}
	}
}

// aggregate reduces per-simulation arrays into the published statistics.
// It runs after all workers have joined.
func (e *MonteCarloEngine) aggregate(inputs domain.RetirementInputs, seed uint64, finals []float64, succeeded []bool, depletionAges []int, balances [][]float64) *domain.MonteCarloResults {
	n := len(finals)

	sampleSize := e.config.SampleSize
	if sampleSize > n {
		sampleSize = n
	}
	scenarios := make([]domain.ScenarioOutcome, sampleSize)
	for i := 0; i < sampleSize; i++ {
		scenarios[i] = domain.ScenarioOutcome{
			ScenarioID:   i,
			FinalBalance: money(finals[i]),
			Success:      succeeded[i],
		}
		if !succeeded[i] {
			age := depletionAges[i]
			scenarios[i].YearsDepleted = &age
		}
	}

	successCount := 0
	var depleted []float64
	for i, ok := range succeeded {
		if ok {
			successCount++
			continue
		}
		depleted = append(depleted, float64(depletionAges[i]))
	}

	mean, stdDev := meanStdDev(finals)

	sorted := make([]float64, n)
	copy(sorted, finals)
	final := Percentiles(sorted)

	intervals := make([]domain.ConfidenceInterval, 0, len(ReportedPercentiles))
	for _, p := range ReportedPercentiles {
		intervals = append(intervals, domain.ConfidenceInterval{Percentile: p, Value: money(final.At(p))})
	}

	yearly := make([]domain.YearlyProjection, len(balances))
	for y, column := range balances {
		band := Percentiles(column)
		yearly[y] = domain.YearlyProjection{
			Age:    inputs.CurrentAge + y,
			P10:    money(band.P10),
			P25:    money(band.P25),
			Median: money(band.P50),
			P75:    money(band.P75),
			P90:    money(band.P90),
		}
	}

	success := decimal.NewFromInt(int64(successCount) * 100).Div(decimal.NewFromInt(int64(n)))

	results := &domain.MonteCarloResults{
		NumSimulations:         n,
		YearsProjected:         len(balances),
		Seed:                   seed,
		SuccessProbability:     success,
		ProbabilityOfDepletion: decimal.NewFromInt(100).Sub(success),
		MedianOutcome:          money(final.P50),
		Percentile10Outcome:    money(final.P10),
		Percentile90Outcome:    money(final.P90),
		ConfidenceIntervals:    intervals,
		Scenarios:              scenarios,
		YearlyProjections:      yearly,
		MeanOutcome:            money(mean),
		OutcomeStdDev:          money(stdDev),
	}

	if len(depleted) > 0 {
		sort.Float64s(depleted)
		age := int(NearestRank(depleted, 50))
		results.MedianDepletionAge = &age
	}

	return results
}

// EmptyResults is the neutral result for a run with no simulations or no
// projected years: zero statistics and empty, non-nil tables.
func EmptyResults(seed uint64) *domain.MonteCarloResults {
	intervals := make([]domain.ConfidenceInterval, 0, len(ReportedPercentiles))
	for _, p := range ReportedPercentiles {
		intervals = append(intervals, domain.ConfidenceInterval{Percentile: p, Value: decimal.Zero})
	}
	return &domain.MonteCarloResults{
		Seed:                   seed,
		SuccessProbability:     decimal.Zero,
		ProbabilityOfDepletion: decimal.Zero,
		MedianOutcome:          decimal.Zero,
		Percentile10Outcome:    decimal.Zero,
		Percentile90Outcome:    decimal.Zero,
		ConfidenceIntervals:    intervals,
		Scenarios:              []domain.ScenarioOutcome{},
		YearlyProjections:      []domain.YearlyProjection{},
		MeanOutcome:            decimal.Zero,
		OutcomeStdDev:          decimal.Zero,
	}
}

// money converts an engine float to a cent-rounded decimal
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
