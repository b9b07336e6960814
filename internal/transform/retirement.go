package transform

import (
	"fmt"

	"github.com/rgehrsitz/corpus/internal/domain"
)

// PostponeRetirement moves the retirement age by a number of years.
// Negative values retire earlier.
type PostponeRetirement struct {
	Years int
}

func (pr *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pr *PostponeRetirement) Description() string {
	if pr.Years < 0 {
		return fmt.Sprintf("Retire %d years earlier", -pr.Years)
	}
	return fmt.Sprintf("Postpone retirement by %d years", pr.Years)
}

func (pr *PostponeRetirement) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(pr.Name(), "validate", "base plan cannot be nil", nil)
	}
	if pr.Years == 0 {
		return NewTransformError(pr.Name(), "validate", "years must be non-zero", nil)
	}
	return validateRetirementAge(pr.Name(), base, base.Parameters.RetirementAge+pr.Years)
}

func (pr *PostponeRetirement) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Parameters.RetirementAge += pr.Years
	return modified, nil
}

// SetRetirementAge sets an absolute retirement age
type SetRetirementAge struct {
	Age int
}

func (sr *SetRetirementAge) Name() string {
	return "set_retirement_age"
}

func (sr *SetRetirementAge) Description() string {
	return fmt.Sprintf("Retire at age %d", sr.Age)
}

func (sr *SetRetirementAge) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base plan cannot be nil", nil)
	}
	return validateRetirementAge(sr.Name(), base, sr.Age)
}

func (sr *SetRetirementAge) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Parameters.RetirementAge = sr.Age
	return modified, nil
}

func validateRetirementAge(name string, base *domain.Plan, age int) error {
	p := base.Parameters
	if age <= p.CurrentAge {
		return NewTransformError(name, "validate", fmt.Sprintf("retirement age %d must be after current age %d", age, p.CurrentAge), nil)
	}
	if age >= p.LifeExpectancy {
		return NewTransformError(name, "validate", fmt.Sprintf("retirement age %d must be before life expectancy %d", age, p.LifeExpectancy), nil)
	}
	return nil
}
