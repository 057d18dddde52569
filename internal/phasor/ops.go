package phasor

import (
	"math"
	"math/cmplx"
)

// Add returns p + o, computed in rectangular form.
func (p Phasor) Add(o Operand) Phasor {
	return FromComplex(p.Rect() + o.Rect())
}

// Sub returns p - o, computed in rectangular form.
func (p Phasor) Sub(o Operand) Phasor {
	return FromComplex(p.Rect() - o.Rect())
}

// Mul returns p * o. Phasor operands multiply in polar form; a real scalar
// only scales the magnitude.
func (p Phasor) Mul(o Operand) Phasor {
	switch v := o.(type) {
	case Phasor:
		return Phasor{magnitude: p.magnitude * v.magnitude, angle: p.angle + v.angle}
	case Scalar:
		if imag(v) == 0 {
			return p.scale(real(v))
		}
	}
	return p.Mul(FromComplex(o.Rect()))
}

// Div returns p / o. Division by an exact zero fails with ErrDivisionByZero.
func (p Phasor) Div(o Operand) (Phasor, error) {
	d := o.Rect()
	if d == 0 {
		return Phasor{}, ErrDivisionByZero
	}
	if s, ok := o.(Scalar); ok && imag(s) == 0 {
		return p.scale(1 / real(s)), nil
	}
	return FromComplex(p.Rect() / d), nil
}

// Neg rotates p by half a turn. The magnitude stays non-negative.
func (p Phasor) Neg() Phasor {
	return Phasor{magnitude: p.magnitude, angle: p.angle + math.Pi}
}

// Pow raises the rectangular value of p to the rectangular value of o. Real
// and complex exponents are both accepted.
func (p Phasor) Pow(o Operand) Phasor {
	return FromComplex(cmplx.Pow(p.Rect(), o.Rect()))
}

// Parallel combines p and o like two impedances in parallel: 1/(1/p + 1/o).
func (p Phasor) Parallel(o Operand) (Phasor, error) {
	b := o.Rect()
	if p.magnitude == 0 || b == 0 {
		return Phasor{}, ErrDivisionByZero
	}
	sum := 1/p.Rect() + 1/b
	if sum == 0 {
		return Phasor{}, ErrDivisionByZero
	}
	return FromComplex(1 / sum), nil
}

// ParallelAll folds Parallel over its arguments left to right.
func ParallelAll(first Phasor, rest ...Operand) (Phasor, error) {
	acc := first
	for _, o := range rest {
		next, err := acc.Parallel(o)
		if err != nil {
			return Phasor{}, err
		}
		acc = next
	}
	return acc, nil
}

// CompareMagnitude returns -1, 0 or +1 comparing magnitudes only.
func (p Phasor) CompareMagnitude(o Operand) int {
	a, b := math.Abs(p.magnitude), magnitudeOf(o)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// EqualRect reports exact equality of the rectangular forms. No tolerance
// is applied.
func (p Phasor) EqualRect(o Operand) bool {
	return p.Rect() == o.Rect()
}

// Less orders by magnitude only.
func (p Phasor) Less(o Operand) bool { return p.CompareMagnitude(o) < 0 }

// LessEqual orders by magnitude only.
func (p Phasor) LessEqual(o Operand) bool { return p.CompareMagnitude(o) <= 0 }

// Greater orders by magnitude only.
func (p Phasor) Greater(o Operand) bool { return p.CompareMagnitude(o) > 0 }

// GreaterEqual orders by magnitude only.
func (p Phasor) GreaterEqual(o Operand) bool { return p.CompareMagnitude(o) >= 0 }

// Equal is EqualRect.
func (p Phasor) Equal(o Operand) bool { return p.EqualRect(o) }

// NotEqual is the negation of Equal.
func (p Phasor) NotEqual(o Operand) bool { return !p.EqualRect(o) }

// AddAssign rebinds p to p + o.
func (p *Phasor) AddAssign(o Operand) { *p = p.Add(o) }

// SubAssign rebinds p to p - o.
func (p *Phasor) SubAssign(o Operand) { *p = p.Sub(o) }

// MulAssign rebinds p to p * o.
func (p *Phasor) MulAssign(o Operand) { *p = p.Mul(o) }

// DivAssign rebinds p to p / o. On error p is left untouched.
func (p *Phasor) DivAssign(o Operand) error {
	q, err := p.Div(o)
	if err != nil {
		return err
	}
	*p = q
	return nil
}

func (p Phasor) scale(s float64) Phasor {
	if s < 0 {
		return Phasor{magnitude: p.magnitude * -s, angle: p.angle + math.Pi}
	}
	return Phasor{magnitude: p.magnitude * s, angle: p.angle}
}

func magnitudeOf(o Operand) float64 {
	if v, ok := o.(Phasor); ok {
		return math.Abs(v.magnitude)
	}
	return cmplx.Abs(o.Rect())
}
