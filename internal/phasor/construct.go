package phasor

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Args is the argument shape handed to New. It mirrors a call with
// positional values and optional rad/deg keywords.
type Args struct {
	Positional []any
	Rad        *float64
	Deg        *float64
}

// New builds a Phasor from one of four argument shapes:
//
//  1. one positional value (complex, real or Phasor), no keyword: rectangular input;
//  2. one positional real magnitude plus exactly one of Rad or Deg;
//  3. two positional reals (magnitude, angle): the legacy ambiguous form,
//     which also returns an AmbiguousAngleUnit warning;
//  4. anything else: an error matching ErrInvalidConstruction.
func New(args Args) (Phasor, *AmbiguousAngleUnit, error) {
	hasRad, hasDeg := args.Rad != nil, args.Deg != nil

	switch n := len(args.Positional); {
	case n == 1 && !hasRad && !hasDeg:
		p, err := fromValue(args.Positional[0])
		return p, nil, err

	case n == 1 && hasRad != hasDeg:
		m, err := realScalar(args.Positional[0], "magnitude")
		if err != nil {
			return Phasor{}, nil, err
		}
		if hasRad {
			return FromRadians(m, *args.Rad), nil, nil
		}
		return FromDegrees(m, *args.Deg), nil, nil

	case n == 2 && !hasRad && !hasDeg:
		m, err := realScalar(args.Positional[0], "magnitude")
		if err != nil {
			return Phasor{}, nil, err
		}
		a, err := realScalar(args.Positional[1], "angle")
		if err != nil {
			return Phasor{}, nil, err
		}
		p, warn := FromAmbiguous(m, a)
		return p, &warn, nil

	default:
		return Phasor{}, nil, &ConstructionError{Reason: describeArgs(args)}
	}
}

// FromComplex converts a rectangular value to polar form. The zero value
// gets angle 0.
func FromComplex(z complex128) Phasor {
	return Phasor{magnitude: cmplx.Abs(z), angle: math.Atan2(imag(z), real(z))}
}

// FromRadians builds a Phasor from a magnitude and an angle in radians. A
// negative magnitude is folded into the angle.
func FromRadians(m, rad float64) Phasor {
	if m < 0 {
		return Phasor{magnitude: -m, angle: rad + math.Pi}
	}
	return Phasor{magnitude: m, angle: rad}
}

// FromDegrees builds a Phasor from a magnitude and an angle in degrees.
func FromDegrees(m, deg float64) Phasor {
	return FromRadians(m, degToRad(deg))
}

// FromAmbiguous is the legacy construction path for a bare (magnitude, angle)
// pair. Angles whose absolute value exceeds 2π are taken as degrees, anything
// else as radians. The returned warning names the unit that was assumed and
// must be surfaced to the user; prefer FromRadians or FromDegrees.
func FromAmbiguous(m, angle float64) (Phasor, AmbiguousAngleUnit) {
	unit := Radian
	if math.Abs(angle) > 2*math.Pi {
		unit = Degree
	}
	warn := AmbiguousAngleUnit{Inferred: unit, Angle: angle}
	if unit == Degree {
		return FromDegrees(m, angle), warn
	}
	return FromRadians(m, angle), warn
}

// fromValue handles construction mode 1.
func fromValue(v any) (Phasor, error) {
	switch x := v.(type) {
	case Phasor:
		return x, nil
	case *Phasor:
		if x == nil {
			return Phasor{}, &ConstructionError{Reason: "nil phasor"}
		}
		return *x, nil
	case Scalar:
		return FromComplex(complex128(x)), nil
	case complex128:
		return FromComplex(x), nil
	case complex64:
		return FromComplex(complex128(x)), nil
	}
	f, err := realScalar(v, "value")
	if err != nil {
		return Phasor{}, err
	}
	return FromComplex(complex(f, 0)), nil
}

func realScalar(v any, what string) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case Scalar:
		if imag(x) == 0 {
			return real(x), nil
		}
	case complex128:
		if imag(x) == 0 {
			return real(x), nil
		}
	}
	return 0, &ConstructionError{Reason: fmt.Sprintf("%s must be a real number, got %T", what, v)}
}

func describeArgs(args Args) string {
	var kw []string
	if args.Rad != nil {
		kw = append(kw, "rad")
	}
	if args.Deg != nil {
		kw = append(kw, "deg")
	}
	if len(kw) == 0 {
		return fmt.Sprintf("unrecognized argument shape: %d positional, no unit keyword", len(args.Positional))
	}
	return fmt.Sprintf("unrecognized argument shape: %d positional with keywords %s", len(args.Positional), strings.Join(kw, ", "))
}
