package stdmath

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/phasorcalc/internal/config"
	"github.com/vk/phasorcalc/internal/ctyphasor"
	"github.com/vk/phasorcalc/internal/phasor"
	"github.com/vk/phasorcalc/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func load(t *testing.T, cfg map[string]cty.Value) *registry.Registry {
	t.Helper()
	reg := registry.New(nil)
	report := reg.Load(context.Background(), []registry.Module{&Module{}}, []*config.ModuleSpec{
		{Name: "std_math", Config: cfg},
	})
	require.Empty(t, report.Failed)
	return reg
}

func call(t *testing.T, reg *registry.Registry, name string, args ...cty.Value) cty.Value {
	t.Helper()
	fn, ok := reg.EvalContext().Functions[name]
	require.True(t, ok, "function %s not registered", name)
	v, err := fn.Call(args)
	require.NoError(t, err)
	return v
}

func num(t *testing.T, v cty.Value) float64 {
	t.Helper()
	require.True(t, v.Type().Equals(cty.Number))
	return ctyphasor.Float(v)
}

func TestTrig_RadianMode(t *testing.T) {
	reg := load(t, nil)
	assert.InDelta(t, 1, num(t, call(t, reg, "sin", cty.NumberFloatVal(math.Pi/2))), 1e-12)
	assert.InDelta(t, -1, num(t, call(t, reg, "cos", cty.NumberFloatVal(math.Pi))), 1e-12)
	assert.InDelta(t, math.Pi/4, num(t, call(t, reg, "atan", cty.NumberIntVal(1))), 1e-12)
}

func TestTrig_DegreeMode(t *testing.T) {
	reg := load(t, map[string]cty.Value{"degree_mode": cty.True})
	assert.InDelta(t, 0.5, num(t, call(t, reg, "sin", cty.NumberIntVal(30))), 1e-12)
	assert.InDelta(t, 1, num(t, call(t, reg, "tan", cty.NumberIntVal(45))), 1e-12)
	assert.InDelta(t, 60, num(t, call(t, reg, "acos", cty.NumberFloatVal(0.5))), 1e-9)
}

func TestLogsAndRoots(t *testing.T) {
	reg := load(t, nil)
	assert.InDelta(t, 3, num(t, call(t, reg, "log", cty.NumberIntVal(1000))), 1e-12)
	assert.InDelta(t, 3, num(t, call(t, reg, "log", cty.NumberIntVal(8), cty.NumberIntVal(2))), 1e-12)
	assert.InDelta(t, 1, num(t, call(t, reg, "ln", cty.NumberFloatVal(math.E))), 1e-12)
	assert.InDelta(t, 3, num(t, call(t, reg, "sqrt", cty.NumberIntVal(9))), 1e-12)

	fns := reg.EvalContext().Functions
	_, err := fns["sqrt"].Call([]cty.Value{cty.NumberIntVal(-1)})
	require.ErrorContains(t, err, "not a real number")
	_, err = fns["log"].Call([]cty.Value{cty.NumberIntVal(8), cty.NumberIntVal(1)})
	require.ErrorContains(t, err, "invalid logarithm base")
}

func TestExp(t *testing.T) {
	reg := load(t, nil)
	assert.InDelta(t, math.E, num(t, call(t, reg, "exp", cty.NumberIntVal(1))), 1e-12)

	// exp(iπ) = -1
	v := call(t, reg, "exp", ctyphasor.Val(phasor.FromComplex(complex(0, math.Pi))))
	p, ok := ctyphasor.Get(v)
	require.True(t, ok)
	assert.InDelta(t, -1, real(p.Rect()), 1e-12)
	assert.InDelta(t, 0, imag(p.Rect()), 1e-12)
}

func TestConstants(t *testing.T) {
	vars := load(t, nil).EvalContext().Variables
	assert.True(t, vars["pi"].RawEquals(cty.NumberFloatVal(math.Pi)))
	assert.True(t, vars["e"].RawEquals(cty.NumberFloatVal(math.E)))
}

func TestConfig_Rejected(t *testing.T) {
	reg := registry.New(nil)
	report := reg.Load(context.Background(), []registry.Module{&Module{}}, []*config.ModuleSpec{
		{Name: "std_math", Config: map[string]cty.Value{"radian_mode": cty.True}},
	})
	require.Len(t, report.Failed, 1)
	assert.ErrorContains(t, report.Failed[0].Err, "unknown config option 'radian_mode'")
}
