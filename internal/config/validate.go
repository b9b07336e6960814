package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// planValidate validates plan records using their struct tags.
// decimal.Decimal fields are compared as float64.
var planValidate *validator.Validate

func init() {
	planValidate = validator.New()
	planValidate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	planValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// Validator returns the shared validator, for callers binding plans from
// other transports.
func Validator() *validator.Validate {
	return planValidate
}

// FieldError describes one invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every invalid field in a plan
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...interface{}) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func validatePlan(plan *domain.Plan) error {
	ve := &ValidationError{}

	if err := planValidate.Struct(plan); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validator: %w", err)
		}
		for _, fe := range verrs {
			ve.add(fieldPath(fe.Namespace()), "%s", describe(fe))
		}
	}

	for i, g := range plan.Goals {
		if g.TargetDate.IsZero() {
			ve.add(fmt.Sprintf("goals[%d].target_date", i), "is required")
		}
	}
	for i, ins := range plan.Insurance {
		if ins.MaturityAmount.IsPositive() && ins.MaturityDate == nil {
			ve.add(fmt.Sprintf("insurance[%d].maturity_date", i), "is required when maturity_amount is set")
		}
	}
	for i, inv := range plan.Investments {
		if inv.MaturityAmount.IsPositive() && inv.MaturityDate == nil {
			ve.add(fmt.Sprintf("investments[%d].maturity_date", i), "is required when maturity_amount is set")
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// fieldPath strips the root type name from a validator namespace
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value())
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
