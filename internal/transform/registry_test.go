package transform

import (
	"testing"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransformRegistry(t *testing.T) {
	registry := NewTransformRegistry()
	assert.Contains(t, registry.List(), "postpone_retirement")
	assert.Contains(t, registry.List(), "set_step_up")
	assert.Len(t, registry.List(), 11)
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec string
		name string
	}{
		{"postpone_retirement:years=2", "postpone_retirement"},
		{"set_retirement_age:age=58", "set_retirement_age"},
		{"set_step_up:percent=12.5,from=2", "set_step_up"},
		{"adjust_sip:percent=20,type=ppf", "adjust_sip"},
		{"add_sip:amount=10000", "add_sip"},
		{"adjust_return:instrument=mf,rate=10", "adjust_return"},
		{"set_inflation:rate=7", "set_inflation"},
		{"set_strategy:strategy=safe-4-percent", "set_strategy"},
		{"set_expenses:amount=90000", "set_expenses"},
		{"add_goal:name=Car,amount=800000,year=2029", "add_goal"},
		{"remove_goal:name=College", "remove_goal"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.name, tr.Name())
			assert.NotEmpty(t, tr.Description())
		})
	}

	tr, err := registry.ParseTransformSpec("set_strategy:strategy=4%")
	require.NoError(t, err)
	assert.Equal(t, domain.StrategySafe4Percent, tr.(*SetStrategy).Strategy)
}

func TestTransformRegistry_ParseErrors(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec string
		want string
	}{
		{"postpone_retirement", "expected 'name:params'"},
		{"teleport:years=1", "unknown transform"},
		{"postpone_retirement:months=12", "requires 'years'"},
		{"postpone_retirement:years=two", "invalid years"},
		{"set_step_up:percent", "key=value"},
		{"set_strategy:strategy=moon", "unknown income strategy"},
		{"adjust_return:rate=5", "requires 'instrument'"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := registry.ParseTransformSpec(tt.spec)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
