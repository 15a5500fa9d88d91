package munsell

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// quintic coefficients of the ASTM D1535 relation between Munsell Value and
// luminous reflectance, in percent. y10 normalizes the polynomial so that
// valueToY(10) == 1 exactly, keeping Y in [0, 1] as spec §3 requires.
const (
	q1 = 1.1914
	q2 = -0.22533
	q3 = 0.23352
	q4 = -0.020484
	q5 = 0.00081939
)

var y10 = quinticY(10)

func quinticY(v float64) float64 {
	return q1*v + q2*v*v + q3*v*v*v + q4*v*v*v*v + q5*v*v*v*v*v
}

func quinticDY(v float64) float64 {
	return q1 + 2*q2*v + 3*q3*v*v + 4*q4*v*v*v + 5*q5*v*v*v*v
}

// valueToY evaluates the forward ASTM D1535 relation: relative luminance Y
// for a given Munsell Value V.
func valueToY(v float64) float64 {
	return quinticY(v) / y10
}

// valueToYDeriv evaluates dY/dV of the normalized relation.
func valueToYDeriv(v float64) float64 {
	return quinticDY(v) / y10
}

// yToValue inverts valueToY: given Y in [0, 1], returns V in [0, 10] such
// that valueToY(V) == Y within ValueTolerance. It uses Newton-Raphson with a
// bisection fallback, per spec §4.2.
func yToValue(y float64) (float64, error) {
	if y <= 0 {
		return 0, nil
	}
	if y >= 1 {
		return 10, nil
	}

	lo, hi := 0.0, 10.0
	v := 10 * math.Pow(y, 1.0/2.2)
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}

	for i := 0; i < MaxValueIterations; i++ {
		fv := valueToY(v) - y
		if scalar.EqualWithinAbsOrRel(valueToY(v), y, 0, ValueTolerance) {
			return v, nil
		}

		// Keep a bisection bracket alive in case Newton misbehaves.
		if fv > 0 {
			hi = v
		} else {
			lo = v
		}

		d := valueToYDeriv(v)
		if d <= 0 {
			return 0, &Error{Kind: NonMonotone, Input: y, Best: v}
		}

		step := fv / d
		next := v - step
		if next <= lo || next >= hi || math.IsNaN(next) {
			// Newton escaped the bracket; fall back to bisection.
			next = (lo + hi) / 2
		}
		if math.Abs(next-v) < 1e-12 {
			return next, nil
		}
		v = next
	}
	return v, &Error{Kind: DidNotConverge, Input: y, Best: v}
}
