package phasor

import (
	"math"
	"math/cmplx"
)

// Operand is anything a Phasor operator accepts on its right-hand side: either
// another Phasor or a bare Scalar.
type Operand interface {
	Rect() complex128
}

// Scalar is a bare real or complex number used as an operand.
type Scalar complex128

// Real wraps a real number as a Scalar.
func Real(x float64) Scalar {
	return Scalar(complex(x, 0))
}

// Rect implements Operand.
func (s Scalar) Rect() complex128 {
	return complex128(s)
}

// Phasor is a complex quantity stored as a non-negative magnitude and an
// angle in radians. The angle is kept exactly as computed; normalization only
// happens in Radians, Degrees and Format.
type Phasor struct {
	magnitude float64
	angle     float64
}

// Arithmetic is the operator set a calculator value type provides. Phasor is
// its only implementation.
type Arithmetic[T any] interface {
	Add(o Operand) T
	Sub(o Operand) T
	Mul(o Operand) T
	Div(o Operand) (T, error)
	Neg() T
	Pow(o Operand) T
	Parallel(o Operand) (T, error)
	CompareMagnitude(o Operand) int
	EqualRect(o Operand) bool
}

var _ Arithmetic[Phasor] = Phasor{}

// Magnitude returns the stored magnitude.
func (p Phasor) Magnitude() float64 {
	return p.magnitude
}

// Angle returns the stored, unnormalized angle in radians.
func (p Phasor) Angle() float64 {
	return p.angle
}

// Rect returns the rectangular form. It is recomputed on every call.
func (p Phasor) Rect() complex128 {
	return cmplx.Rect(p.magnitude, p.angle)
}

// IsZero reports whether the magnitude is exactly zero.
func (p Phasor) IsZero() bool {
	return p.magnitude == 0
}

// Radians returns the magnitude and the canonical angle in (-π, π].
func (p Phasor) Radians() (float64, float64) {
	return p.magnitude, CanonicalAngle(p.angle)
}

// Degrees returns the magnitude and the canonical angle in (-180, 180].
func (p Phasor) Degrees() (float64, float64) {
	return p.magnitude, radToDeg(CanonicalAngle(p.angle))
}

// CanonicalAngle folds any angle into the half-open interval (-π, π].
func CanonicalAngle(theta float64) float64 {
	r := math.Mod(theta+math.Pi, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	r -= math.Pi
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

func radToDeg(r float64) float64 {
	return r * 180 / math.Pi
}
