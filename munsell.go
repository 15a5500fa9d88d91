// Package munsell converts between the CIE xyY chromaticity representation
// of a color and its Munsell notation (Hue, Value, Chroma) under the
// standardized Illuminant C observer.
//
// # Converting colors
//
// The two directions of conversion are [XyYToMunsell] and [MunsellToXyY].
// MunsellToXyY evaluates the tabulated Munsell Renotation Data directly and
// never fails to converge; XyYToMunsell numerically inverts it against a
// requested chromaticity and can fail to converge within its iteration
// budget (see "Tolerances and non-convergence" below).
//
//	n, err := XyYToMunsell(0.4331, 0.5050, 0.3)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(n)
//
// A [Notation] with Chroma 0 is achromatic and renders as "N <value>/";
// every other notation renders as "<hue> <value>/<chroma>". [ParseNotation]
// is the inverse of [Notation.String].
//
// # Tolerances and non-convergence
//
// The Inverse Solver's dual hue/chroma loop is bounded by the iteration
// budgets and tolerances declared in tolerance.go. A query that does not
// converge within those budgets returns an [*Error] with Kind one of
// HueDidNotConverge, ChromaDidNotConverge, or DidNotConverge, carrying the
// best-so-far estimate and its residual. A caller that would rather accept
// a near-miss than fail outright can pass [AllowBestEffort].
package munsell

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// Notation is a fully resolved Munsell color specification: either a
// chromatic hue/value/chroma triple, or an achromatic grey identified by
// Value alone (spec §3 "Notation").
type Notation struct {
	Achromatic bool
	Hue        Hue
	Value      float64
	Chroma     float64
}

// String renders n in the canonical textual form: "H V/C" for chromatic
// notations, "N V/" for achromatic ones, value and chroma rounded to one
// decimal (spec §6 "Outputs").
func (n Notation) String() string {
	if n.Achromatic {
		return fmt.Sprintf("N %.1f/", n.Value)
	}
	return fmt.Sprintf("%s %.1f/%.1f", n.Hue.String(), n.Value, n.Chroma)
}

// ParseNotation parses the canonical textual form produced by
// Notation.String, e.g. "5R 4.0/14.0" or "N 9.5/".
func ParseNotation(s string) (Notation, error) {
	s = strings.TrimSpace(s)
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Notation{}, fmt.Errorf("malformed munsell notation %q", s)
	}
	huePart, vc := parts[0], parts[1]

	slash := strings.IndexByte(vc, '/')
	if slash < 0 {
		return Notation{}, fmt.Errorf("malformed munsell notation %q: missing '/'", s)
	}
	vStr, cStr := vc[:slash], vc[slash+1:]

	v, err := strconv.ParseFloat(vStr, 64)
	if err != nil {
		return Notation{}, fmt.Errorf("malformed value in %q: %w", s, err)
	}

	if huePart == "N" {
		if cStr != "" {
			return Notation{}, fmt.Errorf("achromatic notation %q must not carry a chroma", s)
		}
		return Notation{Achromatic: true, Value: v}, nil
	}

	code, err := parseHueLabel(huePart)
	if err != nil {
		return Notation{}, err
	}
	c, err := strconv.ParseFloat(cStr, 64)
	if err != nil {
		return Notation{}, fmt.Errorf("malformed chroma in %q: %w", s, err)
	}
	return Notation{Hue: code.ToHue(), Value: v, Chroma: c}, nil
}

// config holds the options accumulated from XyYToMunsell's variadic Option
// arguments (spec §7).
type config struct {
	bestEffort          bool
	bestEffortTolerance float64
}

// Option configures optional XyYToMunsell behavior.
type Option func(*config)

// AllowBestEffort makes XyYToMunsell return the Inverse Solver's last
// iterate, instead of an error, when it fails to converge but its residual
// is within tol of the target chromaticity (spec §7's caller-selectable
// best-effort policy).
func AllowBestEffort(tol float64) Option {
	return func(c *config) {
		c.bestEffort = true
		c.bestEffortTolerance = tol
	}
}

// XyYToMunsell converts a CIE xyY color under Illuminant C to its Munsell
// notation (spec §6 "Public Façade").
func XyYToMunsell(x, y, Y float64, opts ...Option) (Notation, error) {
	if x < 0 || x > 1 || y < 0 || y > 1 {
		return Notation{}, &Error{Kind: InvalidInput, Input: [2]float64{x, y}}
	}
	if Y < 0 || Y > 1 {
		return Notation{}, &Error{Kind: InvalidInput, Input: Y}
	}

	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	v, err := yToValue(Y)
	if err != nil {
		return Notation{}, err
	}

	res, err := InverseSolve(v, x, y)
	if err != nil {
		convErr, ok := err.(*Error)
		isConvergenceFailure := ok && (convErr.Kind == DidNotConverge || convErr.Kind == HueDidNotConverge || convErr.Kind == ChromaDidNotConverge)
		if !isConvergenceFailure || !cfg.bestEffort || res.Residual > cfg.bestEffortTolerance {
			return Notation{}, err
		}
	}

	value := roundTo(v, 1)
	if res.C < AchromaticRadius {
		return Notation{Achromatic: true, Value: value}, nil
	}
	return Notation{
		Hue:    canonicalizeHue(roundTo(float64(res.H), 1)),
		Value:  value,
		Chroma: roundTo(res.C, 1),
	}, nil
}

// MunsellToXyY converts a Munsell notation to its CIE xyY color under
// Illuminant C (spec §6 "Public Façade").
func MunsellToXyY(n Notation) (x, y, Y float64, err error) {
	if n.Value < 0 || n.Value > 10 {
		return 0, 0, 0, &Error{Kind: ValueOutOfRange, Input: n.Value}
	}
	Y = valueToY(n.Value)

	if n.Achromatic || n.Chroma == 0 {
		return GreyX, GreyY, Y, nil
	}
	if n.Chroma < 0 {
		return 0, 0, 0, &Error{Kind: InvalidInput, Input: n.Chroma}
	}

	res, err := Forward(canonicalizeHue(float64(n.Hue)), n.Value, n.Chroma)
	if err != nil {
		return 0, 0, 0, err
	}
	return res.X, res.Y, Y, nil
}

func roundTo(x float64, prec int) float64 {
	return scalar.Round(x, prec)
}
