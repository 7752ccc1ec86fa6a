package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Noyack/webapp-sub003/internal/calculation"
	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/Noyack/webapp-sub003/internal/transform"
)

// Solver searches for the smallest change to one plan lever that reaches a
// success probability goal. Every evaluation reuses one engine and seed, so
// success only moves because the plan moved.
type Solver struct {
	Config        calculation.MonteCarloConfig
	EngineOptions []calculation.EngineOption
	Options       SolverOptions
}

// NewSolver creates a new goal solver
func NewSolver(cfg calculation.MonteCarloConfig, options SolverOptions, opts ...calculation.EngineOption) *Solver {
	return &Solver{
		Config:        cfg,
		EngineOptions: opts,
		Options:       options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(cfg calculation.MonteCarloConfig, opts ...calculation.EngineOption) *Solver {
	return NewSolver(cfg, DefaultSolverOptions(), opts...)
}

// point is one evaluated plan
type point struct {
	x       decimal.Decimal
	inputs  domain.RetirementInputs
	results *domain.MonteCarloResults
}

// evaluator runs plans against a fixed engine and counts evaluations
type evaluator struct {
	ctx        context.Context
	engine     *calculation.MonteCarloEngine
	colIndex   decimal.Decimal
	goal       decimal.Decimal
	iterations int
}

func (ev *evaluator) run(x decimal.Decimal, inputs domain.RetirementInputs) (*point, error) {
	if err := ev.ctx.Err(); err != nil {
		return nil, err
	}
	ev.iterations++
	results, err := ev.engine.Run(ev.ctx, inputs, ev.colIndex)
	if err != nil {
		return nil, err
	}
	return &point{x: x, inputs: inputs, results: results}, nil
}

func (ev *evaluator) meets(p *point) bool {
	return p.results.SuccessProbability.GreaterThanOrEqual(ev.goal)
}

// Solve performs a goal search for the requested target
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	ev, base, err := s.prepare(ctx, &req)
	if err != nil {
		return nil, err
	}
	return s.solveTarget(ev, req, base)
}

// prepare validates the request, pins the seed and evaluates the base plan
func (s *Solver) prepare(ctx context.Context, req *SolveRequest) (*evaluator, *point, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, nil, err
	}
	if !req.Goal.IsPositive() || req.Goal.GreaterThan(decimal.NewFromInt(100)) {
		return nil, nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("goal must be between 0 and 100 percent, got %s", req.Goal),
		}
	}
	if s.Config.NumSimulations <= 0 {
		return nil, nil, &BreakEvenError{
			Operation: "solve",
			Message:   "at least one simulation is required",
		}
	}

	req.Constraints = req.Constraints.withDefaults()
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	cfg := s.Config
	if cfg.Seed == 0 {
		cfg.Seed = calculation.NewSeed()
	}

	ev := &evaluator{
		ctx:      ctx,
		engine:   calculation.NewMonteCarloEngine(cfg, s.EngineOptions...),
		colIndex: req.CostOfLivingIndex,
		goal:     req.Goal,
	}
	base, err := ev.run(decimal.Zero, req.Inputs)
	if err != nil {
		return nil, nil, &BreakEvenError{
			Operation: "solve",
			Message:   "failed to simulate base plan",
			Cause:     err,
		}
	}
	return ev, base, nil
}

func (s *Solver) solveTarget(ev *evaluator, req SolveRequest, base *point) (*SolveResult, error) {
	// every target starts from the base evaluation
	ev.iterations = 1

	if ev.meets(base) {
		result := s.newResult(req, base, base, ev.iterations)
		result.Success = true
		result.AlreadyMet = true
		result.ConvergenceInfo = "Plan already meets the goal"
		return result, nil
	}

	var (
		best    *point
		reached bool
		err     error
	)

	switch req.Target {
	case TargetContribution:
		best, reached, err = s.bisect(ev, req, *req.Constraints.MaxExtraContribution, s.Options.ContributionTolerance, 0,
			func(x decimal.Decimal) transform.InputTransform {
				return &transform.AdjustContribution{MonthlyDelta: x}
			})
	case TargetSavings:
		best, reached, err = s.bisect(ev, req, *req.Constraints.MaxExtraSavings, s.Options.SavingsTolerance, 0,
			func(x decimal.Decimal) transform.InputTransform {
				return &transform.AdjustSavings{Delta: x}
			})
	case TargetExpenses:
		best, reached, err = s.bisect(ev, req, *req.Constraints.MaxExpenseCut, s.Options.ExpenseTolerance, 1,
			func(x decimal.Decimal) transform.InputTransform {
				return &transform.ScaleExpenses{Percent: x.Neg()}
			})
	case TargetRetirementAge:
		best, reached, err = s.scanRetirementAge(ev, req)
	default:
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported target: %s", req.Target),
		}
	}
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "solve_" + string(req.Target),
			Message:   "failed to evaluate plan",
			Cause:     err,
		}
	}

	result := s.newResult(req, base, best, ev.iterations)
	result.Success = reached
	switch {
	case !reached:
		result.ConvergenceInfo = "Goal not reachable within constraints"
	case req.Target == TargetRetirementAge:
		result.ConvergenceInfo = "Earliest qualifying age found"
	default:
		result.ConvergenceInfo = "Bisection converged"
	}
	return result, nil
}

// bisect finds the smallest lever value in (0, hi] that meets the goal,
// assuming success never falls as the value grows. Midpoints are rounded to
// places decimal places.
func (s *Solver) bisect(
	ev *evaluator,
	req SolveRequest,
	hi, tolerance decimal.Decimal,
	places int32,
	lever func(decimal.Decimal) transform.InputTransform,
) (*point, bool, error) {

	eval := func(x decimal.Decimal) (*point, error) {
		inputs, err := transform.ApplyTransforms(req.Inputs, []transform.InputTransform{lever(x)})
		if err != nil {
			return nil, err
		}
		return ev.run(x, inputs)
	}

	top, err := eval(hi)
	if err != nil {
		return nil, false, err
	}
	if !ev.meets(top) {
		return top, false, nil
	}

	lo := decimal.Zero
	best := top
	two := decimal.NewFromInt(2)

	for ev.iterations < req.MaxIterations && best.x.Sub(lo).GreaterThan(tolerance) {
		mid := lo.Add(best.x).Div(two).Round(places)
		if !mid.GreaterThan(lo) || !mid.LessThan(best.x) {
			break
		}

		p, err := eval(mid)
		if err != nil {
			return nil, false, err
		}
		if ev.meets(p) {
			best = p
		} else {
			lo = mid
		}
	}
	return best, true, nil
}

// scanRetirementAge tries each later retirement age in turn. Success is not
// monotonic in age because the glide path shifts, so the scan keeps the
// first age that qualifies.
func (s *Solver) scanRetirementAge(ev *evaluator, req SolveRequest) (*point, bool, error) {
	last := min(*req.Constraints.MaxRetirementAge, req.Inputs.LifeExpectancy-1)

	var latest *point
	for age := req.Inputs.RetirementAge + 1; age <= last; age++ {
		years := age - req.Inputs.RetirementAge
		inputs, err := transform.ApplyTransforms(req.Inputs, []transform.InputTransform{
			&transform.RetireLater{Years: years},
		})
		if err != nil {
			return nil, false, err
		}

		p, err := ev.run(decimal.NewFromInt(int64(age)), inputs)
		if err != nil {
			return nil, false, err
		}
		if ev.meets(p) {
			return p, true, nil
		}
		latest = p
	}

	if latest == nil {
		return &point{x: decimal.NewFromInt(int64(req.Inputs.RetirementAge)), inputs: req.Inputs}, false, nil
	}
	return latest, false, nil
}

// newResult fills the shared fields of a solve result
func (s *Solver) newResult(req SolveRequest, base, best *point, iterations int) *SolveResult {
	result := &SolveResult{
		Target:      req.Target,
		Goal:        req.Goal,
		Iterations:  iterations,
		Inputs:      best.inputs,
		Results:     best.results,
		BaseResults: base.results,
	}
	if best.results == nil {
		result.Results = base.results
	}
	result.SuccessDiffFromBase = result.Results.SuccessProbability.Sub(base.results.SuccessProbability)
	result.MedianDiffFromBase = result.Results.MedianOutcome.Sub(base.results.MedianOutcome)

	x := best.x
	switch req.Target {
	case TargetContribution:
		result.ExtraContribution = &x
	case TargetSavings:
		result.ExtraSavings = &x
	case TargetExpenses:
		result.ExpenseCut = &x
	case TargetRetirementAge:
		age := int(x.IntPart())
		if base == best {
			age = req.Inputs.RetirementAge
		}
		result.RetirementAge = &age
	}
	return result
}
