package transform

import (
	"fmt"

	"github.com/Noyack/webapp-sub003/internal/domain"
)

const maxPlanAge = 120

// RetireLater moves the retirement age by a number of years.
// This is useful for exploring "work one more year" scenarios.
type RetireLater struct {
	Years int // may be negative to retire earlier
}

func (rl *RetireLater) Name() string {
	return "retire_later"
}

func (rl *RetireLater) Description() string {
	if rl.Years < 0 {
		return fmt.Sprintf("Retire %d years earlier", -rl.Years)
	}
	return fmt.Sprintf("Retire %d years later", rl.Years)
}

func (rl *RetireLater) Validate(base domain.RetirementInputs) error {
	newAge := base.RetirementAge + rl.Years
	if newAge <= base.CurrentAge {
		return NewTransformError(rl.Name(), "validate", fmt.Sprintf("retirement age %d would not be after current age %d", newAge, base.CurrentAge), nil)
	}
	if newAge > maxPlanAge {
		return NewTransformError(rl.Name(), "validate", fmt.Sprintf("retirement age %d exceeds %d", newAge, maxPlanAge), nil)
	}
	return nil
}

func (rl *RetireLater) Apply(base domain.RetirementInputs) (domain.RetirementInputs, error) {
	modified := base
	modified.RetirementAge += rl.Years
	return modified, nil
}

// ExtendLifeExpectancy plans for a longer (or shorter) life
type ExtendLifeExpectancy struct {
	Years int
}

func (el *ExtendLifeExpectancy) Name() string {
	return "extend_life"
}

func (el *ExtendLifeExpectancy) Description() string {
	return fmt.Sprintf("Plan for life expectancy %+d years", el.Years)
}

func (el *ExtendLifeExpectancy) Validate(base domain.RetirementInputs) error {
	newAge := base.LifeExpectancy + el.Years
	if newAge <= base.CurrentAge || newAge > maxPlanAge {
		return NewTransformError(el.Name(), "validate", fmt.Sprintf("life expectancy %d must be between current age %d and %d", newAge, base.CurrentAge, maxPlanAge), nil)
	}
	return nil
}

func (el *ExtendLifeExpectancy) Apply(base domain.RetirementInputs) (domain.RetirementInputs, error) {
	modified := base
	modified.LifeExpectancy += el.Years
	return modified, nil
}
