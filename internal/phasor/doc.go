// Package phasor implements the calculator's complex value type: a quantity
// held in polar form (magnitude, angle in radians) with a full operator set,
// angle normalization for display, and a parallel-combination operator that
// models reciprocal-sum impedance combination.
//
// Values are immutable by convention. Every operator returns a new Phasor and
// no operator mutates its operands, so a Phasor may be shared freely between
// goroutines. Display settings are never global: they travel in an explicit
// Display value handed to Format.
//
// Ordering and equality deliberately disagree. Less, LessEqual and
// CompareMagnitude look only at magnitudes, while Equal compares the exact
// rectangular forms. Two phasors with the same magnitude and different angles
// are therefore neither less nor greater than each other, yet not equal.
package phasor
