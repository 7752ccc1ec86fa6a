package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Noyack/webapp-sub003/internal/calculation"
	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	maxAge            = 120
	maxSimulations    = 100000
	maxReplacementPct = 200
)

// ValidationError reports a single invalid field in a plan document
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InputParser handles parsing of plan files
type InputParser struct {
	defaults *Settings
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// WithSettings makes the parser fill unset plan fields from user preferences
func (ip *InputParser) WithSettings(s Settings) *InputParser {
	ip.defaults = &s
	return ip
}

// LoadFromFile loads a plan from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.PlanConfiguration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	plan, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}
	if plan.Name == "" {
		plan.Name = planNameFromFile(filename)
	}
	return plan, nil
}

// Parse decodes, defaults and validates a plan document
func (ip *InputParser) Parse(data []byte) (*domain.PlanConfiguration, error) {
	var plan domain.PlanConfiguration
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&plan)

	if err := ip.ValidateConfiguration(&plan); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &plan, nil
}

// ApplyDefaults fills the settings a plan leaves out, first from user
// preferences and then from the engine defaults. Values written in the plan
// always win.
func (ip *InputParser) ApplyDefaults(plan *domain.PlanConfiguration) {
	if prefs := ip.defaults; prefs != nil {
		if plan.Simulation.NumSimulations == 0 {
			plan.Simulation.NumSimulations = prefs.Simulation.NumSimulations
		}
		if plan.Simulation.Workers == 0 {
			plan.Simulation.Workers = prefs.Simulation.Workers
		}
		if plan.Simulation.Seed == 0 {
			plan.Simulation.Seed = prefs.Simulation.Seed
		}
		if plan.Location == nil && prefs.Location.State != "" {
			plan.Location = &domain.Location{State: prefs.Location.State, City: prefs.Location.City}
		}
	}

	if plan.Simulation.NumSimulations == 0 {
		plan.Simulation.NumSimulations = calculation.DefaultNumSimulations
	}
	if plan.Simulation.SampleSize == 0 {
		plan.Simulation.SampleSize = calculation.DefaultSampleSize
	}
	if plan.Location != nil {
		plan.Location.State = strings.ToUpper(strings.TrimSpace(plan.Location.State))
		plan.Location.City = strings.TrimSpace(plan.Location.City)
	}
}

// ValidateConfiguration validates a loaded plan
func (ip *InputParser) ValidateConfiguration(plan *domain.PlanConfiguration) error {
	if err := ip.ValidateInputs(&plan.Inputs); err != nil {
		return fmt.Errorf("inputs validation failed: %w", err)
	}
	if err := ip.validateSimulation(&plan.Simulation); err != nil {
		return fmt.Errorf("simulation validation failed: %w", err)
	}
	if plan.Location != nil && len(plan.Location.State) != 2 {
		return invalid("location.state", "must be a two-letter state code, got %q", plan.Location.State)
	}
	if plan.CostOfLivingIndex != nil && !plan.CostOfLivingIndex.IsPositive() {
		return invalid("cost_of_living_index", "must be positive")
	}

	model := calculation.ApplyMarketAssumptions(calculation.DefaultMarketModel(), plan.Market)
	if err := model.Validate(); err != nil {
		return fmt.Errorf("market assumptions validation failed: %w", err)
	}
	policy := calculation.ApplyPolicyAssumptions(calculation.DefaultLifecyclePolicy(), plan.Policy)
	if err := policy.Validate(); err != nil {
		return fmt.Errorf("policy assumptions validation failed: %w", err)
	}
	return nil
}

// ValidateInputs checks the retirement inputs the engine trusts blindly
func (ip *InputParser) ValidateInputs(in *domain.RetirementInputs) error {
	if in.CurrentAge <= 0 || in.CurrentAge > maxAge {
		return invalid("current_age", "must be between 1 and %d", maxAge)
	}
	if in.RetirementAge <= in.CurrentAge {
		return invalid("retirement_age", "must be greater than current age %d", in.CurrentAge)
	}
	if in.RetirementAge > maxAge {
		return invalid("retirement_age", "cannot exceed %d", maxAge)
	}
	if in.LifeExpectancy <= in.CurrentAge || in.LifeExpectancy > maxAge {
		return invalid("life_expectancy", "must be between current age %d and %d", in.CurrentAge, maxAge)
	}

	money := []struct {
		field string
		value decimal.Decimal
	}{
		{"current_savings", in.CurrentSavings},
		{"monthly_contribution", in.MonthlyContribution},
		{"current_annual_income", in.CurrentAnnualIncome},
		{"social_security_benefits", in.SocialSecurityBenefits},
		{"other_income", in.OtherIncome},
		{"monthly_expenses.housing", in.MonthlyExpenses.Housing},
		{"monthly_expenses.utilities", in.MonthlyExpenses.Utilities},
		{"monthly_expenses.food", in.MonthlyExpenses.Food},
		{"monthly_expenses.transportation", in.MonthlyExpenses.Transportation},
		{"monthly_expenses.healthcare", in.MonthlyExpenses.Healthcare},
		{"monthly_expenses.entertainment", in.MonthlyExpenses.Entertainment},
		{"monthly_expenses.other", in.MonthlyExpenses.Other},
	}
	for _, m := range money {
		if m.value.IsNegative() {
			return invalid(m.field, "cannot be negative")
		}
	}

	if in.DesiredIncomeReplacement.IsNegative() || in.DesiredIncomeReplacement.GreaterThan(decimal.NewFromInt(maxReplacementPct)) {
		return invalid("desired_income_replacement", "must be between 0 and %d percent", maxReplacementPct)
	}
	if in.ExpectedInflation.LessThan(decimal.NewFromInt(-10)) || in.ExpectedInflation.GreaterThan(decimal.NewFromInt(25)) {
		return invalid("expected_inflation", "must be between -10 and 25 percent")
	}
	return nil
}

func (ip *InputParser) validateSimulation(s *domain.SimulationSettings) error {
	if s.NumSimulations < 0 || s.NumSimulations > maxSimulations {
		return invalid("simulation.num_simulations", "must be between 0 and %d", maxSimulations)
	}
	if s.Workers < 0 {
		return invalid("simulation.workers", "cannot be negative")
	}
	if s.SampleSize < 0 {
		return invalid("simulation.sample_size", "cannot be negative")
	}
	return nil
}

// planNameFromFile derives a display name from the file name
func planNameFromFile(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
