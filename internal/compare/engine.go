package compare

import (
	"context"
	"fmt"

	"github.com/Noyack/webapp-sub003/internal/calculation"
	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/Noyack/webapp-sub003/internal/transform"
	"github.com/shopspring/decimal"
)

// CompareEngine orchestrates what-if comparisons of a plan
type CompareEngine struct {
	Config            calculation.MonteCarloConfig
	EngineOptions     []calculation.EngineOption
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine. Every variant runs with
// the same settings and seed as the base plan.
func NewCompareEngine(cfg calculation.MonteCarloConfig, opts ...calculation.EngineOption) *CompareEngine {
	return &CompareEngine{
		Config:            cfg,
		EngineOptions:     opts,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	PlanName   string   // Display name of the base plan
	Templates  []string // Template names to apply, one variant each
	Specs      []string // Transform specs ("name:k=v"), one variant each
	ConfigPath string
}

// variant is one what-if plan derived from the base
type variant struct {
	name        string
	description string
	transforms  []transform.InputTransform
}

// Compare simulates the base plan and every requested variant
func (ce *CompareEngine) Compare(
	ctx context.Context,
	inputs domain.RetirementInputs,
	colIndex decimal.Decimal,
	options CompareOptions,
) (*ComparisonSet, error) {

	variants, err := ce.resolveVariants(options)
	if err != nil {
		return nil, err
	}

	cfg := ce.Config
	if cfg.Seed == 0 {
		cfg.Seed = calculation.NewSeed()
	}
	engine := calculation.NewMonteCarloEngine(cfg, ce.EngineOptions...)

	baseName := options.PlanName
	if baseName == "" {
		baseName = "base"
	}

	baseResults, err := engine.Run(ctx, inputs, colIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate base plan: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, inputs, colIndex, baseResults)
	baseResult.Description = "Plan as written"

	alternatives := make([]ComparisonResult, 0, len(variants))
	for _, v := range variants {
		modified, err := transform.ApplyTransforms(inputs, v.transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", v.name, err)
		}

		results, err := engine.Run(ctx, modified, colIndex)
		if err != nil {
			return nil, fmt.Errorf("failed to simulate %s: %w", v.name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(v.name, modified, colIndex, results)
		altResult.Description = v.description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
		Seed:               cfg.Seed,
		NumSimulations:     baseResults.NumSimulations,
		CostOfLivingIndex:  colIndex,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// resolveVariants turns template names and transform specs into variants
func (ce *CompareEngine) resolveVariants(options CompareOptions) ([]variant, error) {
	variants := make([]variant, 0, len(options.Templates)+len(options.Specs))

	for _, name := range options.Templates {
		tmpl, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		variants = append(variants, variant{
			name:        tmpl.Name,
			description: tmpl.Description,
			transforms:  tmpl.Transforms,
		})
	}

	for _, spec := range options.Specs {
		tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}
		variants = append(variants, variant{
			name:        spec,
			description: tr.Description(),
			transforms:  []transform.InputTransform{tr},
		})
	}

	return variants, nil
}
