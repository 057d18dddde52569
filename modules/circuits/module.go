// Package circuits provides impedance constructors for AC circuit analysis.
// Reactive components use the module's angular frequency, which defaults
// to 1 and can be changed with set_frequency.
package circuits

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/phasorcalc/internal/ctxlog"
	"github.com/vk/phasorcalc/internal/ctyphasor"
	"github.com/vk/phasorcalc/internal/phasor"
	"github.com/vk/phasorcalc/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Module implements registry.Module for the circuits namespace.
type Module struct {
	abbreviate bool
	useW       bool

	mu        sync.RWMutex
	frequency float64
}

// Name implements registry.Module.
func (m *Module) Name() string { return "circuits" }

// ConfigSchema implements registry.Configurable.
func (m *Module) ConfigSchema() map[string]cty.Type {
	return map[string]cty.Type{
		"abbreviate_names": cty.Bool,
		"use_w":            cty.Bool,
		"frequency":        cty.Number,
	}
}

// Init implements registry.Initializer.
func (m *Module) Init(ctx context.Context, cfg map[string]cty.Value) error {
	m.abbreviate = registry.Bool(cfg, "abbreviate_names", false)
	m.useW = registry.Bool(cfg, "use_w", false)
	m.frequency = registry.Float(cfg, "frequency", 1)
	ctxlog.FromContext(ctx).Debug("circuits configured.",
		"abbreviate_names", m.abbreviate,
		"use_w", m.useW,
		"frequency", m.frequency,
	)
	return nil
}

// Register implements registry.Module.
func (m *Module) Register(r *registry.Registry) {
	resistor := component("Resistor with impedance r.", "r", func(r float64) (phasor.Phasor, error) {
		return phasor.FromComplex(complex(r, 0)), nil
	})
	capacitor := component("Capacitor with impedance 1/(jwC).", "c", m.capacitor)
	inductor := component("Inductor with impedance jwL.", "l", m.inductor)

	r.RegisterFunction("resistor", resistor)
	r.RegisterFunction("capacitor", capacitor)
	r.RegisterFunction("inductor", inductor)
	r.RegisterFunction("set_frequency", m.setFrequencyFunc())
	r.RegisterFunction("frequency", m.frequencyFunc())

	if m.abbreviate {
		r.RegisterFunction("R", resistor)
		r.RegisterFunction("C", capacitor)
		r.RegisterFunction("L", inductor)
		r.RegisterFunction("Ph", ctyphasor.ConstructorFunc(func(msg string) {
			r.Warn(m.Name(), msg)
		}))
	}
	if m.useW {
		r.RegisterDynamic("w", func() cty.Value {
			return cty.NumberFloatVal(m.omega())
		})
	}
}

func (m *Module) omega() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.frequency
}

func (m *Module) capacitor(c float64) (phasor.Phasor, error) {
	z, err := phasor.FromComplex(1).Div(phasor.Scalar(complex(0, m.omega()*c)))
	if err != nil {
		return phasor.Phasor{}, fmt.Errorf("capacitor with w*C = 0: %w", err)
	}
	return z, nil
}

func (m *Module) inductor(l float64) (phasor.Phasor, error) {
	return phasor.FromComplex(complex(0, m.omega()*l)), nil
}

func (m *Module) setFrequencyFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Sets the angular frequency used by capacitor and inductor.",
		Params:      []function.Parameter{{Name: "x", Type: cty.Number}},
		Type:        function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			f := ctyphasor.Float(args[0])
			m.mu.Lock()
			m.frequency = f
			m.mu.Unlock()
			return cty.NumberFloatVal(f), nil
		},
	})
}

func (m *Module) frequencyFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Current angular frequency.",
		Type:        function.StaticReturnType(cty.Number),
		Impl: func([]cty.Value, cty.Type) (cty.Value, error) {
			return cty.NumberFloatVal(m.omega()), nil
		},
	})
}

func component(desc, param string, build func(float64) (phasor.Phasor, error)) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params:      []function.Parameter{{Name: param, Type: cty.Number}},
		Type:        function.StaticReturnType(ctyphasor.Type),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			z, err := build(ctyphasor.Float(args[0]))
			if err != nil {
				return cty.NilVal, err
			}
			return ctyphasor.Val(z), nil
		},
	})
}
