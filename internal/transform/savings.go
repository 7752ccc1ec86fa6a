package transform

import (
	"fmt"

	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustContribution changes the monthly contribution by a fixed amount
type AdjustContribution struct {
	MonthlyDelta decimal.Decimal
}

func (ac *AdjustContribution) Name() string {
	return "adjust_contribution"
}

func (ac *AdjustContribution) Description() string {
	if ac.MonthlyDelta.IsNegative() {
		return fmt.Sprintf("Save $%s less per month", ac.MonthlyDelta.Neg().StringFixed(0))
	}
	return fmt.Sprintf("Save $%s more per month", ac.MonthlyDelta.StringFixed(0))
}

func (ac *AdjustContribution) Validate(base domain.RetirementInputs) error {
	if base.MonthlyContribution.Add(ac.MonthlyDelta).IsNegative() {
		return NewTransformError(ac.Name(), "validate", fmt.Sprintf("monthly contribution would drop below zero (%s + %s)", base.MonthlyContribution, ac.MonthlyDelta), nil)
	}
	return nil
}

func (ac *AdjustContribution) Apply(base domain.RetirementInputs) (domain.RetirementInputs, error) {
	modified := base
	modified.MonthlyContribution = base.MonthlyContribution.Add(ac.MonthlyDelta)
	return modified, nil
}

// AdjustSavings adds a lump sum to (or removes one from) current savings
type AdjustSavings struct {
	Delta decimal.Decimal
}

func (as *AdjustSavings) Name() string {
	return "adjust_savings"
}

func (as *AdjustSavings) Description() string {
	if as.Delta.IsNegative() {
		return fmt.Sprintf("Withdraw $%s from savings today", as.Delta.Neg().StringFixed(0))
	}
	return fmt.Sprintf("Add $%s to savings today", as.Delta.StringFixed(0))
}

func (as *AdjustSavings) Validate(base domain.RetirementInputs) error {
	if base.CurrentSavings.Add(as.Delta).IsNegative() {
		return NewTransformError(as.Name(), "validate", "current savings would drop below zero", nil)
	}
	return nil
}

func (as *AdjustSavings) Apply(base domain.RetirementInputs) (domain.RetirementInputs, error) {
	modified := base
	modified.CurrentSavings = base.CurrentSavings.Add(as.Delta)
	return modified, nil
}
