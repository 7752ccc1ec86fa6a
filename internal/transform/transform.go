package transform

import (
	"fmt"
	"strings"

	"github.com/Noyack/webapp-sub003/internal/domain"
)

// InputTransform defines the interface for all what-if transformations.
// Transforms are composable operations that derive a variant plan from a base
// plan, enabling scenario comparison and interactive exploration.
type InputTransform interface {
	// Apply returns a modified copy of the base inputs. The base is never mutated.
	Apply(base domain.RetirementInputs) (domain.RetirementInputs, error)

	// Name returns a short identifier for this transform (e.g., "retire_later").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid for the base inputs.
	Validate(base domain.RetirementInputs) error
}

// ApplyTransforms applies a sequence of transforms to the base inputs.
// Each transform receives the output of the previous one.
func ApplyTransforms(base domain.RetirementInputs, transforms []InputTransform) (domain.RetirementInputs, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// Describe joins the descriptions of a transform chain
func Describe(transforms []InputTransform) string {
	parts := make([]string, 0, len(transforms))
	for _, t := range transforms {
		parts = append(parts, t.Description())
	}
	return strings.Join(parts, "; ")
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
