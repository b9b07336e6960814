package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/corpus/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan files
type InputParser struct {
	// Defaults fill every parameter the plan file leaves out
	Defaults domain.PlanningParameters
}

// NewInputParser creates a new input parser using the built-in defaults
func NewInputParser() *InputParser {
	return &InputParser{Defaults: DefaultParameters()}
}

// WithDefaults returns a parser whose missing parameters come from defaults,
// typically the assumptions saved in the settings repository.
func (ip *InputParser) WithDefaults(defaults domain.PlanningParameters) *InputParser {
	return &InputParser{Defaults: defaults}
}

// LoadFromFile loads a plan from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	plan, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return plan, nil
}

// Parse decodes a plan document on top of the parser defaults and validates it.
// Keys present in the document override the defaults, including explicit zeros.
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	plan := &domain.Plan{Parameters: ip.Defaults}
	if err := yaml.Unmarshal(data, plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.Prepare(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Prepare canonicalizes enum spellings and validates a plan decoded by some
// other transport, such as a JSON request body.
func (ip *InputParser) Prepare(plan *domain.Plan) error {
	if plan == nil {
		return fmt.Errorf("plan is required")
	}
	if err := normalizeEnums(plan); err != nil {
		return err
	}
	if err := ip.ValidatePlan(plan); err != nil {
		return fmt.Errorf("plan validation failed: %w", err)
	}
	return nil
}

// ValidatePlan checks the structural validity of a plan: record names and
// types, non-negative amounts and enum literals. Out-of-range financial
// assumptions are not errors; the engine clamps them and reports warnings.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if plan == nil {
		return fmt.Errorf("plan is required")
	}
	return validatePlan(plan)
}

// normalizeEnums maps the accepted spellings of strategy and optimizer mode
// onto their canonical values.
func normalizeEnums(plan *domain.Plan) error {
	p := &plan.Parameters
	if p.IncomeStrategy != "" {
		s, err := domain.ParseIncomeStrategy(string(p.IncomeStrategy))
		if err != nil {
			return err
		}
		p.IncomeStrategy = s
	}

	switch mode := domain.OptimizerMode(strings.ToLower(string(p.OptimizerMode))); mode {
	case "", domain.OptimizerFull, domain.OptimizerApproximate:
		p.OptimizerMode = mode
	default:
		return fmt.Errorf("unknown optimizer mode %q (want full or approximate)", p.OptimizerMode)
	}
	return nil
}

// SavePlan writes a plan as YAML
func SavePlan(filename string, plan *domain.Plan) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
