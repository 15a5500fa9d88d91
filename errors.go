package munsell

import "fmt"

// Kind categorizes the structured error surface of spec §6/§7. It is not a
// Go error type itself; *Error wraps a Kind with the offending input and,
// where meaningful, a best-effort partial result.
type Kind int

const (
	// InvalidInput covers malformed or out-of-domain input: x or y outside
	// [0, 1], Y outside [0, 1], a malformed hue code.
	InvalidInput Kind = iota
	// ValueOutOfRange reports a Munsell Value outside [0, 10].
	ValueOutOfRange
	// NotTabulated reports a query against hues or values the MRD Table
	// Store has no data for, and for which no extrapolation rule applies.
	NotTabulated
	// ChromaOutOfGamut reports a chroma beyond the Extrapolator's supported
	// range at a given (H, V).
	ChromaOutOfGamut
	// HueDidNotConverge reports that the Inverse Solver's hue inner loop
	// exhausted its iteration budget.
	HueDidNotConverge
	// ChromaDidNotConverge reports that the Inverse Solver's chroma inner
	// loop exhausted its iteration budget.
	ChromaDidNotConverge
	// DidNotConverge reports that the Inverse Solver's outer loop (or the
	// Value Solver) exhausted its iteration budget.
	DidNotConverge
	// NonMonotone reports that the Value Solver observed a non-positive
	// derivative of the ASTM D1535 quintic; this is never expected to
	// trigger in practice.
	NonMonotone
	// TableIntegrity reports that the embedded MRD dataset failed its
	// load-time validation.
	TableIntegrity
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case ValueOutOfRange:
		return "ValueOutOfRange"
	case NotTabulated:
		return "NotTabulated"
	case ChromaOutOfGamut:
		return "ChromaOutOfGamut"
	case HueDidNotConverge:
		return "HueDidNotConverge"
	case ChromaDidNotConverge:
		return "ChromaDidNotConverge"
	case DidNotConverge:
		return "DidNotConverge"
	case NonMonotone:
		return "NonMonotone"
	case TableIntegrity:
		return "TableIntegrity"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the structured error value returned by every fallible operation
// in this package. It carries the offending input and, for convergence
// failures, the best-so-far estimate so callers can inspect near-misses
// instead of only learning that something failed.
type Error struct {
	Kind Kind
	// Input is the offending input, whose concrete type depends on Kind
	// (e.g. a Y value for NonMonotone, a chroma for ChromaOutOfGamut).
	Input any
	// Best is the best-effort partial result available at failure time, if
	// any. Its concrete type mirrors Input's.
	Best any
	// Residual is the remaining xy (or value/chroma) error at failure time,
	// for convergence failures.
	Residual float64
}

func (e *Error) Error() string {
	if e.Residual != 0 {
		return fmt.Sprintf("munsell: %s (input=%v, best=%v, residual=%g)", e.Kind, e.Input, e.Best, e.Residual)
	}
	return fmt.Sprintf("munsell: %s (input=%v, best=%v)", e.Kind, e.Input, e.Best)
}
