package ctyphasor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/phasorcalc/internal/phasor"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

func TestVal_RoundTrip(t *testing.T) {
	p := phasor.FromDegrees(2, 60)
	v := Val(p)
	require.True(t, v.Type().Equals(Type))

	got, ok := Get(v)
	require.True(t, ok)
	assert.Equal(t, p, got)

	_, ok = Get(cty.NumberIntVal(1))
	assert.False(t, ok)
	_, ok = Get(cty.NullVal(Type))
	assert.False(t, ok)
}

func TestEquals_UsesRectangularForm(t *testing.T) {
	a := Val(phasor.FromRadians(1, 0))
	b := Val(phasor.FromRadians(1, 0))
	c := Val(phasor.FromRadians(1, math.Pi))

	assert.True(t, a.Equals(b).True())
	assert.False(t, a.Equals(c).True())
	assert.True(t, a.RawEquals(b))
}

func TestOperand(t *testing.T) {
	o, err := Operand(cty.NumberFloatVal(2.5))
	require.NoError(t, err)
	assert.Equal(t, phasor.Real(2.5), o)

	p := phasor.FromDegrees(1, 90)
	o, err = Operand(Val(p))
	require.NoError(t, err)
	assert.Equal(t, p, o)

	_, err = Operand(cty.StringVal("x"))
	require.ErrorContains(t, err, "expected number or phasor")
	_, err = Operand(cty.NullVal(cty.Number))
	require.Error(t, err)

	lifted, err := Lift(cty.NumberIntVal(-3))
	require.NoError(t, err)
	assert.Equal(t, 3.0, lifted.Magnitude())
	assert.InDelta(t, math.Pi, lifted.Angle(), 1e-12)
}

func TestNumberVal(t *testing.T) {
	v, err := NumberVal(1.5)
	require.NoError(t, err)
	assert.True(t, v.RawEquals(cty.NumberFloatVal(1.5)))

	_, err = NumberVal(math.NaN())
	require.Error(t, err)
}

func TestConvert_FromNumber(t *testing.T) {
	v, err := convert.Convert(cty.NumberIntVal(-2), Type)
	require.NoError(t, err)

	p, ok := Get(v)
	require.True(t, ok)
	assert.Equal(t, 2.0, p.Magnitude())
	assert.InDelta(t, math.Pi, p.Angle(), 1e-12)

	_, err = convert.Convert(cty.StringVal("x"), Type)
	require.Error(t, err)
}
