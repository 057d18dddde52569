// Package ctyphasor exposes phasor.Phasor to the expression language as a
// cty capsule type, together with conversions between cty values and the
// phasor operand contract.
package ctyphasor

import (
	"fmt"
	"math"
	"reflect"

	"github.com/vk/phasorcalc/internal/phasor"
	"github.com/zclconf/go-cty/cty"
)

// Type is the cty type of phasor values. The == and != operators of the
// expression language compare rectangular forms exactly. Numbers convert to
// phasors on the real axis.
var Type = cty.CapsuleWithOps("phasor", reflect.TypeOf(phasor.Phasor{}), &cty.CapsuleOps{
	GoString: func(v interface{}) string {
		return v.(*phasor.Phasor).GoString()
	},
	TypeGoString: func(reflect.Type) string {
		return "ctyphasor.Type"
	},
	Equals: func(a, b interface{}) cty.Value {
		return cty.BoolVal(a.(*phasor.Phasor).EqualRect(*b.(*phasor.Phasor)))
	},
	RawEquals: func(a, b interface{}) bool {
		return *a.(*phasor.Phasor) == *b.(*phasor.Phasor)
	},
	ConversionTo: func(src cty.Type) func(cty.Value, cty.Path) (interface{}, error) {
		if !src.Equals(cty.Number) {
			return nil
		}
		return func(v cty.Value, _ cty.Path) (interface{}, error) {
			p := phasor.FromComplex(complex(Float(v), 0))
			return &p, nil
		}
	},
})

// Val wraps p in a cty value.
func Val(p phasor.Phasor) cty.Value {
	return cty.CapsuleVal(Type, &p)
}

// Get unwraps a phasor value.
func Get(v cty.Value) (phasor.Phasor, bool) {
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(Type) {
		return phasor.Phasor{}, false
	}
	return *v.EncapsulatedValue().(*phasor.Phasor), true
}

// Operand converts a number or phasor value into a phasor.Operand. Numbers
// stay bare scalars so operators can take their scalar fast paths.
func Operand(v cty.Value) (phasor.Operand, error) {
	if p, ok := Get(v); ok {
		return p, nil
	}
	if v.IsNull() {
		return nil, fmt.Errorf("expected number or phasor, got null")
	}
	if v.Type().Equals(cty.Number) {
		return phasor.Real(Float(v)), nil
	}
	return nil, fmt.Errorf("expected number or phasor, got %s", v.Type().FriendlyName())
}

// Lift converts a number or phasor value into a Phasor through the
// rectangular construction path.
func Lift(v cty.Value) (phasor.Phasor, error) {
	o, err := Operand(v)
	if err != nil {
		return phasor.Phasor{}, err
	}
	if p, ok := o.(phasor.Phasor); ok {
		return p, nil
	}
	return phasor.FromComplex(o.Rect()), nil
}

// Float returns the float64 nearest to a known number value.
func Float(v cty.Value) float64 {
	f, _ := v.AsBigFloat().Float64()
	return f
}

// NumberVal wraps f, rejecting NaN which cty numbers cannot represent.
func NumberVal(f float64) (cty.Value, error) {
	if math.IsNaN(f) {
		return cty.NilVal, fmt.Errorf("result is not a real number")
	}
	return cty.NumberFloatVal(f), nil
}
