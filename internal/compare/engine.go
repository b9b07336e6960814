package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/corpus/internal/calculation"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/transform"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many variants are calculated at once
const DefaultConcurrency = 4

// CompareEngine orchestrates plan comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates   []string // built-in template names
	Transforms  []string // ad-hoc transform specs, e.g. "postpone_retirement:years=2"
	Concurrency int      // 0 uses DefaultConcurrency
	ConfigPath  string
}

// alternative is a named list of transforms to apply to the base plan
type alternative struct {
	name        string
	description string
	transforms  []transform.PlanTransform
}

// Compare calculates the base plan and every requested variant. Variants
// are calculated concurrently; results keep the order of the options.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	plan *domain.Plan,
	options CompareOptions,
) (*ComparisonSet, error) {

	if plan == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}

	alternatives, err := ce.resolveAlternatives(options)
	if err != nil {
		return nil, err
	}

	baseName := plan.Name
	if baseName == "" {
		baseName = "base"
	}

	// Apply transforms up front so invalid variants fail before any calculation
	plans := make([]*domain.Plan, len(alternatives))
	for i, alt := range alternatives {
		modified, err := transform.ApplyTransforms(plan, alt.transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", alt.name, err)
		}
		modified.Name = baseName + "_" + alt.name
		plans[i] = modified
	}

	limit := options.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	var baseResult *domain.Result
	results := make([]*domain.Result, len(plans))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	g.Go(func() error {
		res, err := ce.CalcEngine.Run(gCtx, plan)
		if err != nil {
			return fmt.Errorf("failed to calculate base plan: %w", err)
		}
		baseResult = res
		return nil
	})

	for i := range plans {
		g.Go(func() error {
			res, err := ce.CalcEngine.Run(gCtx, plans[i])
			if err != nil {
				return fmt.Errorf("failed to calculate %s: %w", alternatives[i].name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	base := ce.MetricsCalculator.CalculateMetrics(baseName, baseResult)
	base.Description = "Base plan"

	compared := make([]ComparisonResult, len(results))
	for i, res := range results {
		altResult := ce.MetricsCalculator.CalculateMetrics(plans[i].Name, res)
		altResult.Description = alternatives[i].description
		compared[i] = ce.MetricsCalculator.CalculateComparison(altResult, base)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &base,
		AlternativeResults: compared,
		ConfigPath:         options.ConfigPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) resolveAlternatives(options CompareOptions) ([]alternative, error) {
	var alternatives []alternative

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		alternatives = append(alternatives, alternative{
			name:        template.Name,
			description: template.Description,
			transforms:  template.Transforms,
		})
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}
		alternatives = append(alternatives, alternative{
			name:        t.Name(),
			description: t.Description(),
			transforms:  []transform.PlanTransform{t},
		})
	}

	if len(alternatives) == 0 {
		return nil, fmt.Errorf("no alternatives requested")
	}
	return alternatives, nil
}
