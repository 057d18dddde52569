package phasor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConstruction is returned when the supplied arguments match
	// none of the construction modes.
	ErrInvalidConstruction = errors.New("phasor: invalid construction")

	// ErrDivisionByZero is returned by Div and Parallel when the computation
	// needs to divide by an exactly-zero complex value.
	ErrDivisionByZero = errors.New("phasor: division by zero")
)

// ConstructionError describes why an argument shape was rejected.
type ConstructionError struct {
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidConstruction, e.Reason)
}

// Is lets errors.Is match ErrInvalidConstruction.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrInvalidConstruction
}

// AmbiguousAngleUnit is the warning produced by the legacy two-argument
// construction path, where the angle unit is guessed from the angle's size.
// It is a signal, not a failure: the phasor is still built.
type AmbiguousAngleUnit struct {
	Inferred AngleUnit
	Angle    float64
}

func (w AmbiguousAngleUnit) String() string {
	return fmt.Sprintf("phasor angle unit assumed to be %s for angle %g; pass an explicit deg or rad unit instead", w.Inferred, w.Angle)
}
