package transform

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// AddGoal adds a one-off goal disbursement in a calendar year.
// The amount is in today's money and grows with inflation.
type AddGoal struct {
	GoalName string
	Amount   decimal.Decimal
	Year     int
}

func (ag *AddGoal) Name() string {
	return "add_goal"
}

func (ag *AddGoal) Description() string {
	return fmt.Sprintf("Add goal %q of %s in %d", ag.GoalName, ag.Amount.StringFixed(0), ag.Year)
}

func (ag *AddGoal) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(ag.Name(), "validate", "base plan cannot be nil", nil)
	}
	if ag.GoalName == "" {
		return NewTransformError(ag.Name(), "validate", "goal name cannot be empty", nil)
	}
	if !ag.Amount.IsPositive() {
		return NewTransformError(ag.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", ag.Amount), nil)
	}
	if base.AsOfYear > 0 && ag.Year < base.AsOfYear {
		return NewTransformError(ag.Name(), "validate", fmt.Sprintf("year %d is before the plan year %d", ag.Year, base.AsOfYear), nil)
	}
	return nil
}

func (ag *AddGoal) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Goals = append(modified.Goals, domain.GoalRecord{
		Name:       ag.GoalName,
		Amount:     ag.Amount,
		TargetDate: time.Date(ag.Year, time.June, 30, 0, 0, 0, 0, time.UTC),
	})
	return modified, nil
}

// RemoveGoal drops a goal by name
type RemoveGoal struct {
	GoalName string
}

func (rg *RemoveGoal) Name() string {
	return "remove_goal"
}

func (rg *RemoveGoal) Description() string {
	return fmt.Sprintf("Remove goal %q", rg.GoalName)
}

func (rg *RemoveGoal) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(rg.Name(), "validate", "base plan cannot be nil", nil)
	}
	for _, g := range base.Goals {
		if g.Name == rg.GoalName {
			return nil
		}
	}
	return NewTransformError(rg.Name(), "validate", fmt.Sprintf("goal %q not found in plan", rg.GoalName), nil)
}

func (rg *RemoveGoal) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	goals := modified.Goals[:0]
	for _, g := range modified.Goals {
		if g.Name != rg.GoalName {
			goals = append(goals, g)
		}
	}
	modified.Goals = goals
	return modified, nil
}
