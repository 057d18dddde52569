// Package stdmath provides the basic math namespace: trigonometry, roots,
// logarithms and the constants e and pi.
package stdmath

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/vk/phasorcalc/internal/ctxlog"
	"github.com/vk/phasorcalc/internal/ctyphasor"
	"github.com/vk/phasorcalc/internal/phasor"
	"github.com/vk/phasorcalc/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Module implements registry.Module for the std_math namespace.
type Module struct {
	degreeMode bool
}

// Name implements registry.Module.
func (m *Module) Name() string { return "std_math" }

// ConfigSchema implements registry.Configurable.
func (m *Module) ConfigSchema() map[string]cty.Type {
	return map[string]cty.Type{"degree_mode": cty.Bool}
}

// Init implements registry.Initializer. With degree_mode the trig functions
// take degrees and the inverse functions return degrees.
func (m *Module) Init(ctx context.Context, cfg map[string]cty.Value) error {
	m.degreeMode = registry.Bool(cfg, "degree_mode", false)
	ctxlog.FromContext(ctx).Debug("std_math configured.", "degree_mode", m.degreeMode)
	return nil
}

// Register implements registry.Module.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFunction("sin", unary("Sine.", m.trig(math.Sin)))
	r.RegisterFunction("cos", unary("Cosine.", m.trig(math.Cos)))
	r.RegisterFunction("tan", unary("Tangent.", m.trig(math.Tan)))
	r.RegisterFunction("asin", unary("Inverse sine.", m.inverse(math.Asin)))
	r.RegisterFunction("acos", unary("Inverse cosine.", m.inverse(math.Acos)))
	r.RegisterFunction("atan", unary("Inverse tangent.", m.inverse(math.Atan)))
	r.RegisterFunction("sqrt", unary("Square root of a non-negative number.", math.Sqrt))
	r.RegisterFunction("ln", unary("Natural logarithm.", math.Log))
	r.RegisterFunction("log", logFunc())
	r.RegisterFunction("exp", expFunc())

	r.RegisterVariable("e", cty.NumberFloatVal(math.E))
	r.RegisterVariable("pi", cty.NumberFloatVal(math.Pi))
}

func (m *Module) trig(fn func(float64) float64) func(float64) float64 {
	return func(x float64) float64 {
		if m.degreeMode {
			x = x * math.Pi / 180
		}
		return fn(x)
	}
}

func (m *Module) inverse(fn func(float64) float64) func(float64) float64 {
	return func(x float64) float64 {
		y := fn(x)
		if m.degreeMode {
			y = y * 180 / math.Pi
		}
		return y
	}
}

// unary wraps a float function as a one-argument cty function.
func unary(desc string, fn func(float64) float64) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params:      []function.Parameter{{Name: "x", Type: cty.Number}},
		Type:        function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return ctyphasor.NumberVal(fn(ctyphasor.Float(args[0])))
		},
	})
}

// logFunc is log(x) in base 10, or log(x, base).
func logFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Logarithm of x, base 10 unless a base is given.",
		Params:      []function.Parameter{{Name: "x", Type: cty.Number}},
		VarParam:    &function.Parameter{Name: "base", Type: cty.Number},
		Type:        function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			x := ctyphasor.Float(args[0])
			switch len(args) {
			case 1:
				return ctyphasor.NumberVal(math.Log10(x))
			case 2:
				base := ctyphasor.Float(args[1])
				if base <= 0 || base == 1 {
					return cty.NilVal, fmt.Errorf("invalid logarithm base %g", base)
				}
				return ctyphasor.NumberVal(math.Log(x) / math.Log(base))
			default:
				return cty.NilVal, fmt.Errorf("log takes at most 2 arguments, got %d", len(args))
			}
		},
	})
}

// expFunc accepts a number or a phasor; phasors use the complex exponential.
func expFunc() function.Function {
	return function.New(&function.Spec{
		Description: "e raised to x. Phasor arguments use the complex exponential.",
		Params:      []function.Parameter{{Name: "x", Type: cty.DynamicPseudoType}},
		Type: func(args []cty.Value) (cty.Type, error) {
			switch ty := args[0].Type(); {
			case ty.Equals(ctyphasor.Type):
				return ctyphasor.Type, nil
			case ty.Equals(cty.Number):
				return cty.Number, nil
			case ty.Equals(cty.DynamicPseudoType):
				return cty.DynamicPseudoType, nil
			default:
				return cty.NilType, fmt.Errorf("expected number or phasor, got %s", ty.FriendlyName())
			}
		},
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if p, ok := ctyphasor.Get(args[0]); ok {
				return ctyphasor.Val(phasor.FromComplex(cmplx.Exp(p.Rect()))), nil
			}
			return ctyphasor.NumberVal(math.Exp(ctyphasor.Float(args[0])))
		},
	})
}
