package munsell

import (
	_ "embed"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
)

//go:embed mrd_table.csv
var mrdCSV string

// GreyX and GreyY are the CIE 1931 chromaticity coordinates of Illuminant C,
// the fixed center point of all Munsell geometry in this package (spec §3
// "Grey axis", §4.6.4's center-point correctness invariant). Every polar
// computation in the Forward Interpolator and Inverse Solver is relative to
// this point, never to any other illuminant's white point.
const (
	GreyX = 0.3101
	GreyY = 0.3162
)

// numAnchors is the number of Munsell hue anchors tabulated by the MRD,
// spaced every 2.5 steps around the 100-step circle (spec §3 "MRD sample").
const numAnchors = 40

const anchorStep = 100.0 / numAnchors

// anchorIndex maps a canonicalized hue to the index of its nearest anchor,
// valid only when h truly lies on an anchor (used while loading the table,
// where every row's hue is by construction a multiple of anchorStep).
func anchorIndex(h Hue) int {
	idx := int(math.Round(float64(h) / anchorStep))
	return idx % numAnchors
}

func anchorHue(idx int) float64 {
	return float64(idx) * anchorStep
}

// mrdSample is one (H, V, C) -> (x, y, Y) row of the Munsell Renotation
// Dataset.
type mrdSample struct {
	V, C    int
	X, Y    float64
	Lum     float64
}

// mrdTable is the immutable, index-addressable MRD Table Store of spec
// §4.1. It is built once from the embedded dataset and is safe for
// concurrent, lock-free reads thereafter (spec §5): every field is
// populated during loadTable's sync.Once and never mutated again.
type mrdTable struct {
	// cells[anchorIdx][v-1] holds that (hue, value) slice's samples, sorted
	// ascending by chroma.
	cells [numAnchors][10][]mrdSample
}

var (
	tableOnce   sync.Once
	sharedTable *mrdTable
	tableErr    error
)

// loadTable returns the process-wide MRD Table Store, parsing the embedded
// dataset exactly once.
func loadTable() (*mrdTable, error) {
	tableOnce.Do(func() {
		sharedTable, tableErr = parseMRDTable(mrdCSV)
	})
	return sharedTable, tableErr
}

func parseMRDTable(csv string) (*mrdTable, error) {
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	if len(lines) < 2 {
		return nil, &Error{Kind: TableIntegrity, Input: "mrd table has no data rows"}
	}
	if lines[0] != "H_anchor,V_int,C_int,x,y,Y" {
		return nil, &Error{Kind: TableIntegrity, Input: "unexpected mrd table header: " + lines[0]}
	}

	t := &mrdTable{}
	seenAnchors := map[int]bool{}
	rows := 0
	for i, line := range lines[1:] {
		lineNo := i + 2
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 6 {
			return nil, &Error{Kind: TableIntegrity, Input: fmt.Sprintf("line %d: expected 6 columns, got %d", lineNo, len(fields))}
		}

		code, err := parseHueLabel(fields[0])
		if err != nil {
			return nil, &Error{Kind: TableIntegrity, Input: fmt.Sprintf("line %d: %v", lineNo, err)}
		}
		h := code.ToHue()
		idx := anchorIndex(h)
		if math.Abs(anchorHue(idx)-float64(h)) > boundaryEps && math.Abs(anchorHue(idx)-float64(h)-100) > boundaryEps {
			return nil, &Error{Kind: TableIntegrity, Input: fmt.Sprintf("line %d: %q is not a tabulated anchor hue", lineNo, fields[0])}
		}

		v, err := strconv.Atoi(fields[1])
		if err != nil || v < 1 || v > 9 {
			return nil, &Error{Kind: TableIntegrity, Input: fmt.Sprintf("line %d: V=%q out of range [1,9]", lineNo, fields[1])}
		}
		c, err := strconv.Atoi(fields[2])
		if err != nil || c < 2 || c%2 != 0 {
			return nil, &Error{Kind: TableIntegrity, Input: fmt.Sprintf("line %d: C=%q must be an even integer >= 2", lineNo, fields[2])}
		}
		x, err := strconv.ParseFloat(fields[3], 64)
		if err != nil || x < 0 || x > 1 {
			return nil, &Error{Kind: TableIntegrity, Input: fmt.Sprintf("line %d: x=%q out of range [0,1]", lineNo, fields[3])}
		}
		y, err := strconv.ParseFloat(fields[4], 64)
		if err != nil || y < 0 || y > 1 {
			return nil, &Error{Kind: TableIntegrity, Input: fmt.Sprintf("line %d: y=%q out of range [0,1]", lineNo, fields[4])}
		}
		lum, err := strconv.ParseFloat(fields[5], 64)
		if err != nil || lum < 0 || lum > 1.2 {
			return nil, &Error{Kind: TableIntegrity, Input: fmt.Sprintf("line %d: Y=%q out of range", lineNo, fields[5])}
		}

		cell := &t.cells[idx][v-1]
		if n := len(*cell); n > 0 && (*cell)[n-1].C >= c {
			return nil, &Error{Kind: TableIntegrity, Input: fmt.Sprintf("line %d: chroma %d is not sorted/unique within its cell", lineNo, c)}
		}
		*cell = append(*cell, mrdSample{V: v, C: c, X: x, Y: y, Lum: lum})
		seenAnchors[idx] = true
		rows++
	}

	if rows == 0 {
		return nil, &Error{Kind: TableIntegrity, Input: "mrd table has no data rows"}
	}
	if len(seenAnchors) != numAnchors {
		return nil, &Error{Kind: TableIntegrity, Input: fmt.Sprintf("expected samples at all %d anchor hues, saw %d", numAnchors, len(seenAnchors))}
	}
	return t, nil
}

// chromasAt returns the sorted, tabulated chromas at the given anchor hue
// index and integer value, or an empty slice if that cell has no data.
func (t *mrdTable) chromasAt(anchorIdx, v int) []int {
	samples := t.cells[anchorIdx][v-1]
	out := make([]int, len(samples))
	for i, s := range samples {
		out[i] = s.C
	}
	return out
}

// maxChroma returns the largest tabulated chroma at the given anchor hue
// index and integer value.
func (t *mrdTable) maxChroma(anchorIdx, v int) (int, bool) {
	samples := t.cells[anchorIdx][v-1]
	if len(samples) == 0 {
		return 0, false
	}
	return samples[len(samples)-1].C, true
}

// sampleAt looks up the tabulated sample exactly at (anchorIdx, v, c).
func (t *mrdTable) sampleAt(anchorIdx, v, c int) (mrdSample, bool) {
	samples := t.cells[anchorIdx][v-1]
	i := sort.Search(len(samples), func(i int) bool { return samples[i].C >= c })
	if i < len(samples) && samples[i].C == c {
		return samples[i], true
	}
	return mrdSample{}, false
}

// bracketChromas returns the two tabulated chromas bracketing c at the given
// cell. The caller must have already established that c lies above the
// cell's smallest tabulated chroma and at most its largest; chromas outside
// that range are handled by anchorPolarAtChroma directly (the grey point
// up to the minimum, the Extrapolator above the maximum).
func (t *mrdTable) bracketChromas(anchorIdx, v int, c float64) (lo, hi int) {
	samples := t.cells[anchorIdx][v-1]
	for i := 1; i < len(samples); i++ {
		if float64(samples[i].C) >= c {
			return samples[i-1].C, samples[i].C
		}
	}
	last := samples[len(samples)-1].C
	return last, last
}

// neighborHues returns the indices of the two anchor hues bracketing the
// real hue h, modulo the 100-step circle (spec §4.1 "Neighboring-hue
// iteration"). If h lands exactly on an anchor, lo == hi.
func neighborHues(h Hue) (loIdx, hiIdx int, hLo, hHi float64) {
	hv := float64(canonicalizeHue(float64(h)))
	k := hv / anchorStep
	lo := int(math.Floor(k))
	hLo = anchorHue(lo % numAnchors)
	if math.Abs(hv-hLo) < boundaryEps {
		return lo % numAnchors, lo % numAnchors, hLo, hLo
	}
	hi := (lo + 1) % numAnchors
	return lo % numAnchors, hi, hLo, anchorHue(hi)
}

// neighborValues returns the bracketing integer values (floor, ceil) for a
// real Value v, clamped to [1, 9] (spec §4.1 "Neighboring-value iteration").
func neighborValues(v float64) (vLo, vHi int) {
	lo := int(math.Floor(v))
	hi := int(math.Ceil(v))
	if lo < 1 {
		lo = 1
	}
	if hi < 1 {
		hi = 1
	}
	if lo > 9 {
		lo = 9
	}
	if hi > 9 {
		hi = 9
	}
	return lo, hi
}
