package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in plan templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []PlanTransform
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
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common planning alternatives
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "retire_early",
		Description: "Retire 3 years earlier",
		Transforms: []PlanTransform{
			&PostponeRetirement{Years: -3},
		},
	})

	registry.Register(Template{
		Name:        "retire_late",
		Description: "Work 3 more years",
		Transforms: []PlanTransform{
			&PostponeRetirement{Years: 3},
		},
	})

	registry.Register(Template{
		Name:        "aggressive_step_up",
		Description: "Step up SIPs by 15% a year from next year",
		Transforms: []PlanTransform{
			&SetStepUp{Percent: decimal.NewFromInt(15), FromYear: intPtr(1)},
		},
	})

	registry.Register(Template{
		Name:        "no_step_up",
		Description: "Keep SIPs flat",
		Transforms: []PlanTransform{
			&SetStepUp{Percent: decimal.Zero},
		},
	})

	registry.Register(Template{
		Name:        "conservative_returns",
		Description: "Equity returns of 9% and corpus return of 8%",
		Transforms: []PlanTransform{
			&AdjustReturn{Instrument: "mf", Rate: decimal.NewFromInt(9)},
			&AdjustReturn{Instrument: "corpus", Rate: decimal.NewFromInt(8)},
		},
	})

	registry.Register(Template{
		Name:        "high_inflation",
		Description: "Inflation of 8%",
		Transforms: []PlanTransform{
			&SetInflation{Rate: decimal.NewFromInt(8)},
		},
	})

	registry.Register(Template{
		Name:        "safe_4_percent",
		Description: "Plan withdrawals with the 4% rule",
		Transforms: []PlanTransform{
			&SetStrategy{Strategy: domain.StrategySafe4Percent},
		},
	})

	return registry
}

func intPtr(v int) *int {
	return &v
}

// ApplyTemplate applies a template to a base plan
func ApplyTemplate(base *domain.Plan, template Template) (*domain.Plan, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
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

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
	}

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  corpus compare plan.yaml --with retire_late,aggressive_step_up\n")
	sb.WriteString("  corpus compare plan.yaml --with conservative_returns\n")

	return sb.String()
}
