package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("retire_later", createRetireLater)
	registry.Register("extend_life", createExtendLifeExpectancy)
	registry.Register("adjust_contribution", createAdjustContribution)
	registry.Register("adjust_savings", createAdjustSavings)
	registry.Register("scale_expenses", createScaleExpenses)
	registry.Register("set_replacement", createSetReplacementRatio)
	registry.Register("set_inflation", createSetInflation)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "retire_later:years=2"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func intParam(transform, key string, params map[string]string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func decimalParam(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createRetireLater(params map[string]string) (InputTransform, error) {
	years, err := intParam("retire_later", "years", params)
	if err != nil {
		return nil, err
	}
	return &RetireLater{Years: years}, nil
}

func createExtendLifeExpectancy(params map[string]string) (InputTransform, error) {
	years, err := intParam("extend_life", "years", params)
	if err != nil {
		return nil, err
	}
	return &ExtendLifeExpectancy{Years: years}, nil
}

func createAdjustContribution(params map[string]string) (InputTransform, error) {
	delta, err := decimalParam("adjust_contribution", "monthly", params)
	if err != nil {
		return nil, err
	}
	return &AdjustContribution{MonthlyDelta: delta}, nil
}

func createAdjustSavings(params map[string]string) (InputTransform, error) {
	delta, err := decimalParam("adjust_savings", "amount", params)
	if err != nil {
		return nil, err
	}
	return &AdjustSavings{Delta: delta}, nil
}

func createScaleExpenses(params map[string]string) (InputTransform, error) {
	pct, err := decimalParam("scale_expenses", "percent", params)
	if err != nil {
		return nil, err
	}
	return &ScaleExpenses{Percent: pct}, nil
}

func createSetReplacementRatio(params map[string]string) (InputTransform, error) {
	pct, err := decimalParam("set_replacement", "percent", params)
	if err != nil {
		return nil, err
	}
	return &SetReplacementRatio{Percent: pct}, nil
}

func createSetInflation(params map[string]string) (InputTransform, error) {
	pct, err := decimalParam("set_inflation", "percent", params)
	if err != nil {
		return nil, err
	}
	return &SetInflation{Percent: pct}, nil
}
