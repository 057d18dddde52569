// Package phasor registers the phasor type and its operations with the
// calculator.
//
// The expression language has no operator overloading, so phasor arithmetic
// is spelled with functions:
//
//	par(resistor(100), capacitor(1e-6))
//	mul(phasor(2, {deg = 30}), j)
//	deg(div(phasor(10), rect(3, 4)))
package phasor

import (
	"context"
	"fmt"

	"github.com/vk/phasorcalc/internal/ctxlog"
	"github.com/vk/phasorcalc/internal/ctyphasor"
	ph "github.com/vk/phasorcalc/internal/phasor"
	"github.com/vk/phasorcalc/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Module implements registry.Module for the phasor functions.
type Module struct {
	unicode bool
}

// Name implements registry.Module.
func (m *Module) Name() string { return "phasor" }

// ConfigSchema implements registry.Configurable.
func (m *Module) ConfigSchema() map[string]cty.Type {
	return map[string]cty.Type{"enable_unicode": cty.Bool}
}

// Init implements registry.Initializer.
func (m *Module) Init(ctx context.Context, cfg map[string]cty.Value) error {
	m.unicode = registry.Bool(cfg, "enable_unicode", false)
	ctxlog.FromContext(ctx).Debug("phasor configured.", "enable_unicode", m.unicode)
	return nil
}

// AdjustDisplay implements registry.DisplayAdjuster.
func (m *Module) AdjustDisplay(d ph.Display) ph.Display {
	if m.unicode {
		d.Glyph = ph.Unicode
	}
	return d
}

// Register implements registry.Module.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFunction("phasor", ctyphasor.ConstructorFunc(func(msg string) {
		r.Warn(m.Name(), msg)
	}))
	r.RegisterFunction("polar_rad", polar("Builds a phasor from a magnitude and an angle in radians.", ph.FromRadians))
	r.RegisterFunction("polar_deg", polar("Builds a phasor from a magnitude and an angle in degrees.", ph.FromDegrees))
	r.RegisterFunction("rect", rectFunc())

	r.RegisterFunction("add", binary("Sum of two phasors or numbers.", func(a ph.Phasor, b ph.Operand) (ph.Phasor, error) {
		return a.Add(b), nil
	}))
	r.RegisterFunction("sub", binary("Difference of two phasors or numbers.", func(a ph.Phasor, b ph.Operand) (ph.Phasor, error) {
		return a.Sub(b), nil
	}))
	r.RegisterFunction("mul", binary("Product of two phasors or numbers.", func(a ph.Phasor, b ph.Operand) (ph.Phasor, error) {
		return a.Mul(b), nil
	}))
	r.RegisterFunction("div", binary("Quotient of two phasors or numbers.", ph.Phasor.Div))
	r.RegisterFunction("pow", binary("Raises a phasor to a real or complex power.", func(a ph.Phasor, b ph.Operand) (ph.Phasor, error) {
		return a.Pow(b), nil
	}))
	r.RegisterFunction("neg", negFunc())
	r.RegisterFunction("par", parFunc())

	r.RegisterFunction("mag", accessor("Magnitude.", func(p ph.Phasor) (cty.Value, error) {
		return ctyphasor.NumberVal(p.Magnitude())
	}))
	r.RegisterFunction("angle", accessor("Angle in radians, normalized to (-pi, pi].", func(p ph.Phasor) (cty.Value, error) {
		_, a := p.Radians()
		return ctyphasor.NumberVal(a)
	}))
	r.RegisterFunction("rad", accessor("Magnitude and normalized angle in radians.", func(p ph.Phasor) (cty.Value, error) {
		return pair(p.Radians())
	}))
	r.RegisterFunction("deg", accessor("Magnitude and normalized angle in degrees.", func(p ph.Phasor) (cty.Value, error) {
		return pair(p.Degrees())
	}))
	r.RegisterFunction("re", accessor("Real part.", func(p ph.Phasor) (cty.Value, error) {
		return ctyphasor.NumberVal(real(p.Rect()))
	}))
	r.RegisterFunction("im", accessor("Imaginary part.", func(p ph.Phasor) (cty.Value, error) {
		return ctyphasor.NumberVal(imag(p.Rect()))
	}))

	r.RegisterFunction("cmp", compare("Compares magnitudes: -1, 0 or 1.", func(a ph.Phasor, b ph.Operand) cty.Value {
		return cty.NumberIntVal(int64(a.CompareMagnitude(b)))
	}))
	r.RegisterFunction("eq", compare("Exact equality of the rectangular forms.", func(a ph.Phasor, b ph.Operand) cty.Value {
		return cty.BoolVal(a.Equal(b))
	}))
	r.RegisterFunction("lt", compare("Magnitude less than.", func(a ph.Phasor, b ph.Operand) cty.Value {
		return cty.BoolVal(a.Less(b))
	}))
	r.RegisterFunction("le", compare("Magnitude less than or equal.", func(a ph.Phasor, b ph.Operand) cty.Value {
		return cty.BoolVal(a.LessEqual(b))
	}))
	r.RegisterFunction("gt", compare("Magnitude greater than.", func(a ph.Phasor, b ph.Operand) cty.Value {
		return cty.BoolVal(a.Greater(b))
	}))
	r.RegisterFunction("ge", compare("Magnitude greater than or equal.", func(a ph.Phasor, b ph.Operand) cty.Value {
		return cty.BoolVal(a.GreaterEqual(b))
	}))

	r.RegisterVariable("j", ctyphasor.Val(ph.FromComplex(1i)))
}

func polar(desc string, build func(m, a float64) ph.Phasor) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params: []function.Parameter{
			{Name: "magnitude", Type: cty.Number},
			{Name: "angle", Type: cty.Number},
		},
		Type: function.StaticReturnType(ctyphasor.Type),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return ctyphasor.Val(build(ctyphasor.Float(args[0]), ctyphasor.Float(args[1]))), nil
		},
	})
}

func rectFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Builds a phasor from its real and imaginary parts.",
		Params: []function.Parameter{
			{Name: "re", Type: cty.Number},
			{Name: "im", Type: cty.Number},
		},
		Type: function.StaticReturnType(ctyphasor.Type),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			z := complex(ctyphasor.Float(args[0]), ctyphasor.Float(args[1]))
			return ctyphasor.Val(ph.FromComplex(z)), nil
		},
	})
}

// binary lifts the left operand to a phasor and passes the right one through
// untouched so scalar fast paths apply.
func binary(desc string, op func(ph.Phasor, ph.Operand) (ph.Phasor, error)) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params: []function.Parameter{
			{Name: "a", Type: cty.DynamicPseudoType},
			{Name: "b", Type: cty.DynamicPseudoType},
		},
		Type: function.StaticReturnType(ctyphasor.Type),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			a, b, err := operands(args)
			if err != nil {
				return cty.NilVal, err
			}
			res, err := op(a, b)
			if err != nil {
				return cty.NilVal, err
			}
			return ctyphasor.Val(res), nil
		},
	})
}

func compare(desc string, op func(ph.Phasor, ph.Operand) cty.Value) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params: []function.Parameter{
			{Name: "a", Type: cty.DynamicPseudoType},
			{Name: "b", Type: cty.DynamicPseudoType},
		},
		Type: func([]cty.Value) (cty.Type, error) {
			return op(ph.Phasor{}, ph.Phasor{}).Type(), nil
		},
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			a, b, err := operands(args)
			if err != nil {
				return cty.NilVal, err
			}
			return op(a, b), nil
		},
	})
}

func operands(args []cty.Value) (ph.Phasor, ph.Operand, error) {
	a, err := ctyphasor.Lift(args[0])
	if err != nil {
		return ph.Phasor{}, nil, function.NewArgError(0, err)
	}
	b, err := ctyphasor.Operand(args[1])
	if err != nil {
		return ph.Phasor{}, nil, function.NewArgError(1, err)
	}
	return a, b, nil
}

func negFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Negation: same magnitude, angle rotated by pi.",
		Params:      []function.Parameter{{Name: "x", Type: cty.DynamicPseudoType}},
		Type:        function.StaticReturnType(ctyphasor.Type),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			p, err := ctyphasor.Lift(args[0])
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			return ctyphasor.Val(p.Neg()), nil
		},
	})
}

func parFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Parallel combination of two or more impedances: 1/(1/a + 1/b + ...).",
		Params:      []function.Parameter{{Name: "a", Type: cty.DynamicPseudoType}},
		VarParam:    &function.Parameter{Name: "rest", Type: cty.DynamicPseudoType},
		Type:        function.StaticReturnType(ctyphasor.Type),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if len(args) < 2 {
				return cty.NilVal, fmt.Errorf("par needs at least 2 arguments, got %d", len(args))
			}
			first, err := ctyphasor.Lift(args[0])
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			rest := make([]ph.Operand, 0, len(args)-1)
			for i, arg := range args[1:] {
				o, err := ctyphasor.Operand(arg)
				if err != nil {
					return cty.NilVal, function.NewArgError(i+1, err)
				}
				rest = append(rest, o)
			}
			res, err := ph.ParallelAll(first, rest...)
			if err != nil {
				return cty.NilVal, err
			}
			return ctyphasor.Val(res), nil
		},
	})
}

func accessor(desc string, get func(ph.Phasor) (cty.Value, error)) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params:      []function.Parameter{{Name: "x", Type: cty.DynamicPseudoType}},
		Type: func([]cty.Value) (cty.Type, error) {
			// rad and deg return tuples, the rest numbers.
			v, err := get(ph.Phasor{})
			if err != nil {
				return cty.NilType, err
			}
			return v.Type(), nil
		},
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			p, err := ctyphasor.Lift(args[0])
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			return get(p)
		},
	})
}

func pair(mag, angle float64) (cty.Value, error) {
	m, err := ctyphasor.NumberVal(mag)
	if err != nil {
		return cty.NilVal, err
	}
	a, err := ctyphasor.NumberVal(angle)
	if err != nil {
		return cty.NilVal, err
	}
	return cty.TupleVal([]cty.Value{m, a}), nil
}
