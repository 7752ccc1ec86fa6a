package breakeven

import (
	"github.com/shopspring/decimal"

	"github.com/Noyack/webapp-sub003/internal/domain"
)

// SolveTarget names the plan lever the solver moves
type SolveTarget string

const (
	TargetContribution  SolveTarget = "contribution"
	TargetSavings       SolveTarget = "savings"
	TargetExpenses      SolveTarget = "expenses"
	TargetRetirementAge SolveTarget = "retirement_age"
)

// Targets lists every single-lever target in the order SolveAll tries them
func Targets() []SolveTarget {
	return []SolveTarget{TargetContribution, TargetSavings, TargetExpenses, TargetRetirementAge}
}

// ParseTarget converts a command line name into a SolveTarget
func ParseTarget(name string) (SolveTarget, error) {
	for _, t := range Targets() {
		if string(t) == name {
			return t, nil
		}
	}
	return "", &BreakEvenError{
		Operation: "parse_target",
		Message:   "unknown target " + name + " (valid: contribution, savings, expenses, retirement_age)",
	}
}

// Constraints bound how far the solver may move each lever. Nil fields use
// the defaults in DefaultConstraints.
type Constraints struct {
	// Extra monthly contribution on top of the plan
	MaxExtraContribution *decimal.Decimal `json:"max_extra_contribution,omitempty"`

	// Extra lump sum added to current savings
	MaxExtraSavings *decimal.Decimal `json:"max_extra_savings,omitempty"`

	// Largest expense cut, in percent
	MaxExpenseCut *decimal.Decimal `json:"max_expense_cut,omitempty"`

	// Latest retirement age to try
	MaxRetirementAge *int `json:"max_retirement_age,omitempty"`
}

// DefaultConstraints returns sensible default constraints
func DefaultConstraints() Constraints {
	contribution := decimal.NewFromInt(10000)
	savings := decimal.NewFromInt(5000000)
	cut := decimal.NewFromInt(50)
	age := 75

	return Constraints{
		MaxExtraContribution: &contribution,
		MaxExtraSavings:      &savings,
		MaxExpenseCut:        &cut,
		MaxRetirementAge:     &age,
	}
}

// withDefaults fills nil bounds from DefaultConstraints
func (c Constraints) withDefaults() Constraints {
	d := DefaultConstraints()
	if c.MaxExtraContribution == nil {
		c.MaxExtraContribution = d.MaxExtraContribution
	}
	if c.MaxExtraSavings == nil {
		c.MaxExtraSavings = d.MaxExtraSavings
	}
	if c.MaxExpenseCut == nil {
		c.MaxExpenseCut = d.MaxExpenseCut
	}
	if c.MaxRetirementAge == nil {
		c.MaxRetirementAge = d.MaxRetirementAge
	}
	return c
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MaxExtraContribution != nil && !c.MaxExtraContribution.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max_extra_contribution must be positive",
		}
	}
	if c.MaxExtraSavings != nil && !c.MaxExtraSavings.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max_extra_savings must be positive",
		}
	}
	if c.MaxExpenseCut != nil {
		if !c.MaxExpenseCut.IsPositive() || c.MaxExpenseCut.GreaterThanOrEqual(decimal.NewFromInt(100)) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "max_expense_cut must be between 0 and 100 percent",
			}
		}
	}
	if c.MaxRetirementAge != nil && *c.MaxRetirementAge > 120 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max_retirement_age cannot exceed 120",
		}
	}
	return nil
}

// SolveRequest defines one goal-seeking run
type SolveRequest struct {
	Inputs            domain.RetirementInputs
	CostOfLivingIndex decimal.Decimal
	Target            SolveTarget
	Goal              decimal.Decimal // required success probability, percent
	Constraints       Constraints
	MaxIterations     int
}

// SolveResult contains the outcome of a solve
type SolveResult struct {
	Target          SolveTarget     `json:"target"`
	Goal            decimal.Decimal `json:"goal"`
	Success         bool            `json:"success"`
	AlreadyMet      bool            `json:"already_met"`
	Iterations      int             `json:"iterations"`
	ConvergenceInfo string          `json:"convergence_info"`

	// Required change, only the field for Target is set
	ExtraContribution *decimal.Decimal `json:"extra_contribution,omitempty"`
	ExtraSavings      *decimal.Decimal `json:"extra_savings,omitempty"`
	ExpenseCut        *decimal.Decimal `json:"expense_cut,omitempty"`
	RetirementAge     *int             `json:"retirement_age,omitempty"`

	// Plan and results at the solution (or at the bound when unreachable)
	Inputs  domain.RetirementInputs   `json:"inputs"`
	Results *domain.MonteCarloResults `json:"results"`

	// Comparison to the unchanged plan
	BaseResults         *domain.MonteCarloResults `json:"base_results"`
	SuccessDiffFromBase decimal.Decimal           `json:"success_diff_from_base"`
	MedianDiffFromBase  decimal.Decimal           `json:"median_diff_from_base"`
}

// MultiTargetResult holds one solve per target
type MultiTargetResult struct {
	Goal            decimal.Decimal `json:"goal"`
	Seed            uint64          `json:"seed"`
	Results         []SolveResult   `json:"results"`
	Recommendations []string        `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	ContributionTolerance decimal.Decimal // dollars per month
	SavingsTolerance      decimal.Decimal // dollars
	ExpenseTolerance      decimal.Decimal // percentage points
	MaxIterations         int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		ContributionTolerance: decimal.NewFromInt(10),
		SavingsTolerance:      decimal.NewFromInt(1000),
		ExpenseTolerance:      decimal.NewFromFloat(0.5),
		MaxIterations:         40,
	}
}

// BreakEvenError represents errors from the goal solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
