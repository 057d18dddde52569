package phasor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func ptr(f float64) *float64 { return &f }

func TestNew_RectangularInput(t *testing.T) {
	p, warn, err := New(Args{Positional: []any{complex(1, 1)}})
	require.NoError(t, err)
	require.Nil(t, warn)

	m, a := p.Radians()
	assert.InDelta(t, math.Sqrt2, m, tol)
	assert.InDelta(t, math.Pi/4, a, tol)
	assert.Equal(t, "1.41 <0.79", p.Format(Display{Unit: Radian, Glyph: ASCII, Precision: 2}))
}

func TestNew_CopiesPhasorFields(t *testing.T) {
	// An angle outside (-π, π] would be lost by a round trip through Rect.
	src := FromRadians(2, 5*math.Pi)
	p, warn, err := New(Args{Positional: []any{src}})
	require.NoError(t, err)
	require.Nil(t, warn)
	assert.Equal(t, src.Magnitude(), p.Magnitude())
	assert.Equal(t, src.Angle(), p.Angle())
}

func TestNew_ZeroHasZeroAngle(t *testing.T) {
	p, _, err := New(Args{Positional: []any{0.0}})
	require.NoError(t, err)
	assert.Zero(t, p.Magnitude())
	assert.Zero(t, p.Angle())
}

func TestNew_ExplicitUnit(t *testing.T) {
	t.Run("degrees", func(t *testing.T) {
		p, warn, err := New(Args{Positional: []any{2.0}, Deg: ptr(90)})
		require.NoError(t, err)
		require.Nil(t, warn)
		assert.InDelta(t, 2, p.Magnitude(), tol)
		assert.InDelta(t, math.Pi/2, p.Angle(), tol)
	})

	t.Run("radians", func(t *testing.T) {
		p, _, err := New(Args{Positional: []any{3}, Rad: ptr(1)})
		require.NoError(t, err)
		assert.Equal(t, 3.0, p.Magnitude())
		assert.Equal(t, 1.0, p.Angle())
	})

	t.Run("negative magnitude folds into angle", func(t *testing.T) {
		p, _, err := New(Args{Positional: []any{-2.0}, Deg: ptr(30)})
		require.NoError(t, err)
		assert.Equal(t, 2.0, p.Magnitude())
		_, deg := p.Degrees()
		assert.InDelta(t, -150, deg, tol)

		// Same rectangular point as the signed input.
		want := complex(-2*math.Cos(math.Pi/6), -2*math.Sin(math.Pi/6))
		assert.InDelta(t, real(want), real(p.Rect()), tol)
		assert.InDelta(t, imag(want), imag(p.Rect()), tol)
	})

	t.Run("complex magnitude is rejected", func(t *testing.T) {
		_, _, err := New(Args{Positional: []any{complex(1, 1)}, Rad: ptr(0)})
		require.ErrorIs(t, err, ErrInvalidConstruction)
	})
}

func TestNew_AmbiguousPathWarns(t *testing.T) {
	t.Run("small angle is radians", func(t *testing.T) {
		p, warn, err := New(Args{Positional: []any{1.0, math.Pi / 2}})
		require.NoError(t, err)
		require.NotNil(t, warn)
		assert.Equal(t, Radian, warn.Inferred)
		assert.InDelta(t, math.Pi/2, p.Angle(), tol)
		assert.Contains(t, warn.String(), "radian")
	})

	t.Run("large angle is degrees", func(t *testing.T) {
		p, warn, err := New(Args{Positional: []any{1.0, 45.0}})
		require.NoError(t, err)
		require.NotNil(t, warn)
		assert.Equal(t, Degree, warn.Inferred)
		assert.InDelta(t, math.Pi/4, p.Angle(), tol)
	})

	t.Run("negative large angle is degrees", func(t *testing.T) {
		_, warn, err := New(Args{Positional: []any{1.0, -90.0}})
		require.NoError(t, err)
		assert.Equal(t, Degree, warn.Inferred)
	})

	t.Run("negative magnitude", func(t *testing.T) {
		p, warn, err := New(Args{Positional: []any{-1.0, 0.5}})
		require.NoError(t, err)
		require.NotNil(t, warn)
		assert.Equal(t, 1.0, p.Magnitude())
		assert.InDelta(t, 0.5+math.Pi, p.Angle(), tol)
	})
}

func TestNew_InvalidShapes(t *testing.T) {
	cases := map[string]Args{
		"no arguments":          {},
		"keyword only":          {Rad: ptr(1)},
		"both keywords":         {Positional: []any{1.0}, Rad: ptr(1), Deg: ptr(1)},
		"two positional + unit": {Positional: []any{1.0, 2.0}, Deg: ptr(1)},
		"three positional":      {Positional: []any{1.0, 2.0, 3.0}},
		"non-numeric":           {Positional: []any{"1+1j"}},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			p, warn, err := New(args)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConstruction))
			var ce *ConstructionError
			assert.ErrorAs(t, err, &ce)
			assert.Nil(t, warn)
			assert.Equal(t, Phasor{}, p)
		})
	}
}

func TestFromComplex_RoundTrip(t *testing.T) {
	for _, z := range []complex128{
		complex(1, 0), complex(0, 1), complex(-1, 0), complex(0, -1),
		complex(3, 4), complex(-3, 4), complex(-3, -4), complex(3, -4),
		complex(1e-6, 2e6), complex(-0.25, 1e-3),
	} {
		got := FromComplex(z).Rect()
		assert.InDelta(t, real(z), real(got), 1e-9*math.Max(1, math.Abs(real(z))), "real part of %v", z)
		assert.InDelta(t, imag(z), imag(got), 1e-9*math.Max(1, math.Abs(imag(z))), "imag part of %v", z)
	}
}
