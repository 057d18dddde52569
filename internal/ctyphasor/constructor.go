package ctyphasor

import (
	"fmt"
	"sort"

	"github.com/vk/phasorcalc/internal/phasor"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// ConstructorFunc returns the generic `phasor(...)` function. It accepts the
// argument shapes of phasor.New, with unit keywords passed as a trailing
// object:
//
//	phasor(rect(1, 1))         rectangular input
//	phasor(2, {deg = 30})      magnitude and explicit unit
//	phasor(2, 30)              legacy form, unit guessed, warns
//
// warn receives the message of every ambiguous construction.
func ConstructorFunc(warn func(string)) function.Function {
	return function.New(&function.Spec{
		Description: "Builds a phasor from rectangular input, a magnitude with a {deg} or {rad} unit, or a bare (magnitude, angle) pair.",
		VarParam: &function.Parameter{
			Name: "args",
			Type: cty.DynamicPseudoType,
		},
		Type: function.StaticReturnType(Type),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			pa, err := toArgs(args)
			if err != nil {
				return cty.NilVal, err
			}
			p, ambiguous, err := phasor.New(pa)
			if err != nil {
				return cty.NilVal, err
			}
			if ambiguous != nil && warn != nil {
				warn(ambiguous.String())
			}
			return Val(p), nil
		},
	})
}

// toArgs maps cty call arguments onto phasor.Args. A trailing object or map
// argument carries the unit keywords.
func toArgs(args []cty.Value) (phasor.Args, error) {
	var pa phasor.Args

	if n := len(args); n > 0 {
		last := args[n-1]
		if ty := last.Type(); ty.IsObjectType() || ty.IsMapType() {
			if err := applyKeywords(&pa, last); err != nil {
				return pa, err
			}
			args = args[:n-1]
		}
	}

	for i, arg := range args {
		if arg.IsNull() {
			return pa, &phasor.ConstructionError{Reason: fmt.Sprintf("argument %d is null", i+1)}
		}
		switch {
		case arg.Type().Equals(Type):
			p, _ := Get(arg)
			pa.Positional = append(pa.Positional, p)
		case arg.Type().Equals(cty.Number):
			pa.Positional = append(pa.Positional, Float(arg))
		default:
			return pa, &phasor.ConstructionError{Reason: fmt.Sprintf("argument %d must be a number or phasor, got %s", i+1, arg.Type().FriendlyName())}
		}
	}
	return pa, nil
}

func applyKeywords(pa *phasor.Args, obj cty.Value) error {
	if obj.IsNull() {
		return &phasor.ConstructionError{Reason: "unit keywords are null"}
	}
	attrs := obj.AsValueMap()
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v := attrs[name]
		if v.IsNull() || !v.Type().Equals(cty.Number) {
			return &phasor.ConstructionError{Reason: fmt.Sprintf("keyword '%s' must be a number", name)}
		}
		f := Float(v)
		switch name {
		case "rad":
			pa.Rad = &f
		case "deg":
			pa.Deg = &f
		default:
			return &phasor.ConstructionError{Reason: fmt.Sprintf("unknown keyword '%s'", name)}
		}
	}
	return nil
}
