package whatif

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// SpecFactory builds a scenario request from string parameters
type SpecFactory func(params map[string]string) (domain.ScenarioSpec, error)

// Registry maps intervention names to factories, for CLI and HTTP input.
type Registry struct {
	factories map[string]SpecFactory
}

// NewRegistry creates a registry with the built-in interventions
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]SpecFactory)}
	r.Register(string(domain.ScenarioLumpSum), createLumpSum(domain.ScenarioLumpSum))
	r.Register(string(domain.ScenarioReinvest), createLumpSum(domain.ScenarioReinvest))
	r.Register(string(domain.ScenarioSIPIncrease), createSIPIncrease)
	return r
}

// Register adds a factory under name
func (r *Registry) Register(name string, factory SpecFactory) {
	r.factories[name] = factory
}

// Create builds a scenario request by name
func (r *Registry) Create(name string, params map[string]string) (domain.ScenarioSpec, error) {
	factory, ok := r.factories[name]
	if !ok {
		return domain.ScenarioSpec{}, fmt.Errorf("unknown intervention: %s", name)
	}
	return factory(params)
}

// List returns the registered intervention names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse reads "type:key=value,key=value", for example
// "lumpsum:amount=500000,year=3" or "sip-increase:percent=15".
func (r *Registry) Parse(spec string) (domain.ScenarioSpec, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ScenarioSpec{}, fmt.Errorf("invalid intervention spec %q, expected 'type:params'", spec)
	}

	params := make(map[string]string)
	if paramsStr = strings.TrimSpace(paramsStr); paramsStr != "" {
		for _, pair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return domain.ScenarioSpec{}, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return r.Create(name, params)
}

func createLumpSum(t domain.ScenarioType) SpecFactory {
	return func(params map[string]string) (domain.ScenarioSpec, error) {
		amountStr, ok := params["amount"]
		if !ok {
			return domain.ScenarioSpec{}, fmt.Errorf("%s requires 'amount' parameter", t)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return domain.ScenarioSpec{}, fmt.Errorf("invalid amount value: %w", err)
		}
		spec := domain.ScenarioSpec{Name: params["name"], Type: t, Amount: amount}
		if err := parseYear(params, &spec); err != nil {
			return domain.ScenarioSpec{}, err
		}
		return spec, nil
	}
}

func createSIPIncrease(params map[string]string) (domain.ScenarioSpec, error) {
	spec := domain.ScenarioSpec{Name: params["name"], Type: domain.ScenarioSIPIncrease}
	if v, ok := params["amount"]; ok {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return domain.ScenarioSpec{}, fmt.Errorf("invalid amount value: %w", err)
		}
		spec.Amount = amount
	}
	if v, ok := params["percent"]; ok {
		percent, err := decimal.NewFromString(v)
		if err != nil {
			return domain.ScenarioSpec{}, fmt.Errorf("invalid percent value: %w", err)
		}
		spec.Percent = percent
	}
	if spec.Amount.IsZero() && spec.Percent.IsZero() {
		spec.Percent = DefaultSIPIncreasePercent
	}
	if err := parseYear(params, &spec); err != nil {
		return domain.ScenarioSpec{}, err
	}
	return spec, nil
}

func parseYear(params map[string]string, spec *domain.ScenarioSpec) error {
	v, ok := params["year"]
	if !ok {
		return nil
	}
	year, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid year value: %w", err)
	}
	spec.Year = &year
	return nil
}
