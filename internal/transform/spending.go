package transform

import (
	"fmt"

	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ScaleExpenses changes every monthly expense category by a percentage.
// Percent -10 cuts spending by 10%.
type ScaleExpenses struct {
	Percent decimal.Decimal
}

func (se *ScaleExpenses) Name() string {
	return "scale_expenses"
}

func (se *ScaleExpenses) Description() string {
	if se.Percent.IsNegative() {
		return fmt.Sprintf("Cut monthly expenses by %s%%", se.Percent.Neg().String())
	}
	return fmt.Sprintf("Raise monthly expenses by %s%%", se.Percent.String())
}

func (se *ScaleExpenses) Validate(base domain.RetirementInputs) error {
	if se.Percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("percent must be greater than -100, got %s", se.Percent), nil)
	}
	return nil
}

func (se *ScaleExpenses) Apply(base domain.RetirementInputs) (domain.RetirementInputs, error) {
	modified := base
	factor := hundred.Add(se.Percent).Div(hundred)
	modified.MonthlyExpenses = base.MonthlyExpenses.Scale(factor)
	return modified, nil
}

// SetReplacementRatio sets the desired income replacement percentage
type SetReplacementRatio struct {
	Percent decimal.Decimal
}

func (sr *SetReplacementRatio) Name() string {
	return "set_replacement"
}

func (sr *SetReplacementRatio) Description() string {
	return fmt.Sprintf("Target %s%% income replacement", sr.Percent.String())
}

func (sr *SetReplacementRatio) Validate(base domain.RetirementInputs) error {
	if sr.Percent.IsNegative() || sr.Percent.GreaterThan(decimal.NewFromInt(200)) {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("replacement must be between 0 and 200 percent, got %s", sr.Percent), nil)
	}
	return nil
}

func (sr *SetReplacementRatio) Apply(base domain.RetirementInputs) (domain.RetirementInputs, error) {
	modified := base
	modified.DesiredIncomeReplacement = sr.Percent
	return modified, nil
}

// SetInflation changes the expected inflation used to project expenses
type SetInflation struct {
	Percent decimal.Decimal
}

func (si *SetInflation) Name() string {
	return "set_inflation"
}

func (si *SetInflation) Description() string {
	return fmt.Sprintf("Assume %s%% expected inflation", si.Percent.String())
}

func (si *SetInflation) Validate(base domain.RetirementInputs) error {
	if si.Percent.LessThan(decimal.NewFromInt(-10)) || si.Percent.GreaterThan(decimal.NewFromInt(25)) {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("inflation must be between -10 and 25 percent, got %s", si.Percent), nil)
	}
	return nil
}

func (si *SetInflation) Apply(base domain.RetirementInputs) (domain.RetirementInputs, error) {
	modified := base
	modified.ExpectedInflation = si.Percent
	return modified, nil
}
