package breakeven

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraints_Validate(t *testing.T) {
	tests := []struct {
		name        string
		constraints Constraints
		wantErr     string
	}{
		{name: "defaults", constraints: DefaultConstraints()},
		{name: "empty", constraints: Constraints{}},
		{name: "negative sip", constraints: Constraints{MinMonthlySIP: dp("-1")}, wantErr: "min_monthly_sip cannot be negative"},
		{name: "sip bounds inverted", constraints: Constraints{MinMonthlySIP: dp("5000"), MaxMonthlySIP: dp("100")}, wantErr: "greater than max_monthly_sip"},
		{name: "negative step-up", constraints: Constraints{MinStepUp: dp("-5")}, wantErr: "min_step_up cannot be negative"},
		{name: "age bounds inverted", constraints: Constraints{MinRetirementAge: intp(65), MaxRetirementAge: intp(60)}, wantErr: "max_retirement_age"},
		{name: "zero target", constraints: Constraints{TargetCorpus: dp("0")}, wantErr: "target_corpus must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.constraints.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "optimize", Message: "failed", Cause: cause}
	assert.Equal(t, "optimize: failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	plain := &BreakEvenError{Operation: "optimize", Message: "failed"}
	assert.Equal(t, "optimize: failed", plain.Error())
}

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()
	assert.Equal(t, 60, opts.MaxIterations)
	assert.True(t, opts.SIPTolerance.IsPositive())
	assert.True(t, opts.StepUpTolerance.IsPositive())
}
