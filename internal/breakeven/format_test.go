package breakeven

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFormatter_Format(t *testing.T) {
	result, err := newSolver().Optimize(context.Background(), OptimizationRequest{Plan: shortPlan(), Target: OptimizeMonthlySIP})
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(result)
	assert.Contains(t, out, "BREAK-EVEN OPTIMIZATION RESULTS")
	assert.Contains(t, out, "monthly_sip")
	assert.Contains(t, out, "Extra Monthly SIP:   ₹")
	assert.Contains(t, out, "✓ Goal met")
	assert.Contains(t, out, "none (surplus")
	assert.Contains(t, out, " Cr")
}

func TestTableFormatter_FormatMultiDimensional(t *testing.T) {
	result, err := newSolver().OptimizeAllTargets(context.Background(), shortPlan(), DefaultConstraints())
	require.NoError(t, err)

	out := (&TableFormatter{}).FormatMultiDimensional(result)
	assert.Contains(t, out, "SUMMARY OF ALL OPTIMIZATIONS")
	assert.Contains(t, out, "retirement_age")
	assert.Contains(t, out, "% step-up")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestJSONFormatter(t *testing.T) {
	result, err := newSolver().Optimize(context.Background(), OptimizationRequest{Plan: shortPlan(), Target: OptimizeStepUp})
	require.NoError(t, err)

	out, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "step_up", decoded["target"])
	assert.Equal(t, "close_gap", decoded["goal"])
	assert.NotNil(t, decoded["optimal_step_up"])
	assert.Nil(t, decoded["optimal_monthly_sip"])
}

func TestTableFormatter_Truncate(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "short", tf.truncate("short", 10))
	assert.Equal(t, "abcdefg...", tf.truncate("abcdefghijklmnop", 10))
}
