package phasor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AngleUnit selects how angles are shown.
type AngleUnit int

const (
	Radian AngleUnit = iota
	Degree
)

func (u AngleUnit) String() string {
	switch u {
	case Radian:
		return "radian"
	case Degree:
		return "degree"
	default:
		return fmt.Sprintf("AngleUnit(%d)", int(u))
	}
}

// ParseAngleUnit accepts "radian", "rad", "degree" and "deg".
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "radian", "radians", "rad":
		return Radian, nil
	case "degree", "degrees", "deg":
		return Degree, nil
	}
	return 0, fmt.Errorf("unknown angle unit %q: must be 'radian' or 'degree'", s)
}

// Glyph selects the separator between magnitude and angle.
type Glyph int

const (
	ASCII Glyph = iota
	Unicode
)

func (g Glyph) String() string {
	switch g {
	case ASCII:
		return "ascii"
	case Unicode:
		return "unicode"
	default:
		return fmt.Sprintf("Glyph(%d)", int(g))
	}
}

// Symbol returns the separator character.
func (g Glyph) Symbol() string {
	if g == Unicode {
		return "∠"
	}
	return "<"
}

// ParseGlyph accepts "ascii" and "unicode".
func ParseGlyph(s string) (Glyph, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascii":
		return ASCII, nil
	case "unicode":
		return Unicode, nil
	}
	return 0, fmt.Errorf("unknown glyph %q: must be 'ascii' or 'unicode'", s)
}

// Display carries the presentation settings used by Format.
type Display struct {
	Unit      AngleUnit
	Glyph     Glyph
	Precision int
}

// DefaultDisplay is radians, ascii glyph, two decimals.
var DefaultDisplay = Display{Unit: Radian, Glyph: ASCII, Precision: 2}

// Validate rejects out-of-range settings.
func (d Display) Validate() error {
	if d.Unit != Radian && d.Unit != Degree {
		return fmt.Errorf("invalid angle unit %s", d.Unit)
	}
	if d.Glyph != ASCII && d.Glyph != Unicode {
		return fmt.Errorf("invalid glyph %s", d.Glyph)
	}
	if d.Precision < 0 {
		return fmt.Errorf("display precision must be >= 0, got %d", d.Precision)
	}
	return nil
}

// Format renders p as "<magnitude> <glyph><angle>" using d. The angle is
// normalized into (-π, π] first and converted to degrees when d asks for it.
func (p Phasor) Format(d Display) string {
	m, a := p.Radians()
	if d.Unit == Degree {
		a = radToDeg(a)
	}
	return fmt.Sprintf("%s %s%s", FormatNumber(m, d.Precision), d.Glyph.Symbol(), FormatNumber(a, d.Precision))
}

// String formats p with DefaultDisplay.
func (p Phasor) String() string {
	return p.Format(DefaultDisplay)
}

// GoString is used by %#v.
func (p Phasor) GoString() string {
	return "Phasor " + p.String()
}

// FormatNumber rounds x to the given number of decimals and prints the
// shortest representation, keeping a trailing ".0" on whole numbers.
func FormatNumber(x float64, precision int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	scale := math.Pow(10, float64(precision))
	if scaled := x * scale; !math.IsInf(scaled, 0) {
		x = math.Round(scaled) / scale
	}
	if x == 0 {
		x = 0 // drop the sign of negative zero
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
