package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (PlanTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_retirement_age", createSetRetirementAge)
	registry.Register("set_step_up", createSetStepUp)
	registry.Register("adjust_sip", createAdjustSIP)
	registry.Register("add_sip", createAddMonthlySIP)
	registry.Register("adjust_return", createAdjustReturn)
	registry.Register("set_inflation", createSetInflation)
	registry.Register("set_strategy", createSetStrategy)
	registry.Register("set_expenses", createSetMonthlyExpenses)
	registry.Register("add_goal", createAddGoal)
	registry.Register("remove_goal", createRemoveGoal)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (PlanTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
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
// Example: "postpone_retirement:years=2"
func (r *TransformRegistry) ParseTransformSpec(spec string) (PlanTransform, error) {
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

func requireInt(transform string, params map[string]string, key string) (int, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	v, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func createPostponeRetirement(params map[string]string) (PlanTransform, error) {
	years, err := requireInt("postpone_retirement", params, "years")
	if err != nil {
		return nil, err
	}
	return &PostponeRetirement{Years: years}, nil
}

func createSetRetirementAge(params map[string]string) (PlanTransform, error) {
	age, err := requireInt("set_retirement_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetRetirementAge{Age: age}, nil
}

func createSetStepUp(params map[string]string) (PlanTransform, error) {
	percent, err := requireDecimal("set_step_up", params, "percent")
	if err != nil {
		return nil, err
	}
	t := &SetStepUp{Percent: percent}
	if _, ok := params["from"]; ok {
		from, err := requireInt("set_step_up", params, "from")
		if err != nil {
			return nil, err
		}
		t.FromYear = &from
	}
	return t, nil
}

func createAdjustSIP(params map[string]string) (PlanTransform, error) {
	percent, err := requireDecimal("adjust_sip", params, "percent")
	if err != nil {
		return nil, err
	}
	return &AdjustSIP{Type: domain.InvestmentType(params["type"]), Percent: percent}, nil
}

func createAddMonthlySIP(params map[string]string) (PlanTransform, error) {
	amount, err := requireDecimal("add_sip", params, "amount")
	if err != nil {
		return nil, err
	}
	return &AddMonthlySIP{Amount: amount}, nil
}

func createAdjustReturn(params map[string]string) (PlanTransform, error) {
	instrument, ok := params["instrument"]
	if !ok {
		return nil, fmt.Errorf("adjust_return requires 'instrument' parameter")
	}
	rate, err := requireDecimal("adjust_return", params, "rate")
	if err != nil {
		return nil, err
	}
	return &AdjustReturn{Instrument: instrument, Rate: rate}, nil
}

func createSetInflation(params map[string]string) (PlanTransform, error) {
	rate, err := requireDecimal("set_inflation", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetInflation{Rate: rate}, nil
}

func createSetStrategy(params map[string]string) (PlanTransform, error) {
	name, ok := params["strategy"]
	if !ok {
		return nil, fmt.Errorf("set_strategy requires 'strategy' parameter")
	}
	strategy, err := domain.ParseIncomeStrategy(name)
	if err != nil {
		return nil, err
	}
	return &SetStrategy{Strategy: strategy}, nil
}

func createSetMonthlyExpenses(params map[string]string) (PlanTransform, error) {
	amount, err := requireDecimal("set_expenses", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetMonthlyExpenses{Amount: amount}, nil
}

func createAddGoal(params map[string]string) (PlanTransform, error) {
	name, ok := params["name"]
	if !ok {
		return nil, fmt.Errorf("add_goal requires 'name' parameter")
	}
	amount, err := requireDecimal("add_goal", params, "amount")
	if err != nil {
		return nil, err
	}
	year, err := requireInt("add_goal", params, "year")
	if err != nil {
		return nil, err
	}
	return &AddGoal{GoalName: name, Amount: amount, Year: year}, nil
}

func createRemoveGoal(params map[string]string) (PlanTransform, error) {
	name, ok := params["name"]
	if !ok {
		return nil, fmt.Errorf("remove_goal requires 'name' parameter")
	}
	return &RemoveGoal{GoalName: name}, nil
}
