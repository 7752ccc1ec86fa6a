package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Category    string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const (
	categoryTiming    = "Retirement Timing"
	categorySavings   = "Saving"
	categorySpending  = "Spending"
	categoryLongevity = "Longevity"
)

var categoryOrder = []string{categoryTiming, categorySavings, categorySpending, categoryLongevity, "Other"}

// CreateBuiltInTemplates creates a template registry with common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "retire_1yr_later",
		Category:    categoryTiming,
		Description: "Work one more year before retiring",
		Transforms:  []InputTransform{&RetireLater{Years: 1}},
	})

	registry.Register(Template{
		Name:        "retire_3yr_later",
		Category:    categoryTiming,
		Description: "Work three more years before retiring",
		Transforms:  []InputTransform{&RetireLater{Years: 3}},
	})

	registry.Register(Template{
		Name:        "save_250_more",
		Category:    categorySavings,
		Description: "Contribute an extra $250 per month",
		Transforms:  []InputTransform{&AdjustContribution{MonthlyDelta: decimal.NewFromInt(250)}},
	})

	registry.Register(Template{
		Name:        "save_500_more",
		Category:    categorySavings,
		Description: "Contribute an extra $500 per month",
		Transforms:  []InputTransform{&AdjustContribution{MonthlyDelta: decimal.NewFromInt(500)}},
	})

	registry.Register(Template{
		Name:        "cut_expenses_10",
		Category:    categorySpending,
		Description: "Reduce every expense category by 10%",
		Transforms:  []InputTransform{&ScaleExpenses{Percent: decimal.NewFromInt(-10)}},
	})

	registry.Register(Template{
		Name:        "replace_70pct",
		Category:    categorySpending,
		Description: "Target 70% income replacement",
		Transforms:  []InputTransform{&SetReplacementRatio{Percent: decimal.NewFromInt(70)}},
	})

	registry.Register(Template{
		Name:        "live_to_95",
		Category:    categoryLongevity,
		Description: "Plan for a life expectancy of 95",
		Transforms:  []InputTransform{&setLifeExpectancy{Age: 95}},
	})

	registry.Register(Template{
		Name:        "work_longer_spend_less",
		Category:    categoryTiming,
		Description: "Retire two years later and cut expenses by 5%",
		Transforms: []InputTransform{
			&RetireLater{Years: 2},
			&ScaleExpenses{Percent: decimal.NewFromInt(-5)},
		},
	})

	return registry
}

// setLifeExpectancy pins the life expectancy to an absolute age
type setLifeExpectancy struct {
	Age int
}

func (s *setLifeExpectancy) Name() string { return "set_life_expectancy" }

func (s *setLifeExpectancy) Description() string {
	return fmt.Sprintf("Plan to age %d", s.Age)
}

func (s *setLifeExpectancy) Validate(base domain.RetirementInputs) error {
	return (&ExtendLifeExpectancy{Years: s.Age - base.LifeExpectancy}).Validate(base)
}

func (s *setLifeExpectancy) Apply(base domain.RetirementInputs) (domain.RetirementInputs, error) {
	modified := base
	modified.LifeExpectancy = s.Age
	return modified, nil
}

// ApplyTemplate applies a template to the base inputs
func ApplyTemplate(base domain.RetirementInputs, template Template) (domain.RetirementInputs, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	byCategory := make(map[string][]Template)
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := t.Category
		if category == "" {
			category = "Other"
		}
		byCategory[category] = append(byCategory[category], t)
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	for _, category := range categoryOrder {
		templates := byCategory[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  nestegg compare plan.yaml --with retire_1yr_later,save_500_more\n")
	sb.WriteString("  nestegg compare plan.yaml --transform scale_expenses:percent=-15\n")

	return sb.String()
}
