package munsell

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// InverseResult is the output of InverseSolve: the (H, C) pair that
// reproduces a requested (x, y) at a fixed Value, plus diagnostics the
// Public Façade uses to decide whether to surface a warning.
type InverseResult struct {
	H            Hue
	C            float64
	Extrapolated bool
	Saturated    bool
	Residual     float64
}

// assertCenterPoint enforces the center-point correctness invariant of spec
// §4.6.4: every polar computation in the Inverse Solver must be centered on
// the Illuminant C chromaticity, never any other white point. GreyX/GreyY
// are the package's only center-point constants, so this can only fail if a
// future change threads a different center through by mistake.
func assertCenterPoint(cx, cy float64) {
	if cx != GreyX || cy != GreyY {
		panic("munsell: inverse solver center point must be the Illuminant C chromaticity")
	}
}

// InverseSolve finds (H, C) such that Forward(H, v, C) reproduces the
// target (xt, yt) within XYTolerance, implementing the dual Gauss-Seidel
// loop of spec §4.6.
func InverseSolve(v, xt, yt float64) (InverseResult, error) {
	if xt < 0 || xt > 1 || yt < 0 || yt > 1 {
		return InverseResult{}, &Error{Kind: InvalidInput, Input: [2]float64{xt, yt}}
	}
	if v < 0 || v > 10 {
		return InverseResult{}, &Error{Kind: ValueOutOfRange, Input: v}
	}
	assertCenterPoint(GreyX, GreyY)

	t, err := loadTable()
	if err != nil {
		return InverseResult{}, err
	}

	rhoT, phiT := toPolar(xt, yt)
	if rhoT < AchromaticRadius {
		// The target is achromatic: any hue is canonical, chroma is zero.
		return InverseResult{H: 0, C: 0}, nil
	}

	h := initialHueGuess(v, phiT)
	c := 5.0
	maxC := chromaBound(t, h, v)

	var extrapolated, saturated bool
	var lastResidual float64

	for outer := 0; outer < MaxOuterIterations; outer++ {
		newH, extH, convH := solveHue(v, c, phiT, h)
		extrapolated = extrapolated || extH
		if !convH {
			d := xyResidual(newH, v, c, xt, yt)
			return InverseResult{H: canonicalizeHue(newH), C: c, Extrapolated: extrapolated, Saturated: saturated, Residual: d},
				&Error{Kind: HueDidNotConverge, Input: [2]float64{v, c}, Best: [2]float64{newH, c}, Residual: d}
		}
		h = newH

		newC, sat, extC, convC := solveChroma(v, h, rhoT, c, maxC)
		extrapolated = extrapolated || extC
		saturated = saturated || sat
		if !convC {
			d := xyResidual(h, v, newC, xt, yt)
			return InverseResult{H: canonicalizeHue(h), C: newC, Extrapolated: extrapolated, Saturated: saturated, Residual: d},
				&Error{Kind: ChromaDidNotConverge, Input: [2]float64{v, h}, Best: [2]float64{h, newC}, Residual: d}
		}
		c = newC

		res, err := Forward(canonicalizeHue(h), v, c)
		if err != nil {
			return InverseResult{}, err
		}
		extrapolated = extrapolated || res.Extrapolated

		d := floats.Distance([]float64{res.X, res.Y}, []float64{xt, yt}, 2)
		lastResidual = d
		if d < XYTolerance {
			return InverseResult{H: canonicalizeHue(h), C: c, Extrapolated: extrapolated, Saturated: saturated, Residual: d}, nil
		}
	}

	return InverseResult{H: canonicalizeHue(h), C: c, Extrapolated: extrapolated, Saturated: saturated, Residual: lastResidual},
		&Error{Kind: DidNotConverge, Input: [2]float64{xt, yt}, Best: [2]float64{float64(canonicalizeHue(h)), c}, Residual: lastResidual}
}

// xyResidual evaluates Forward at (h, v, c) and returns its Euclidean xy
// distance from the target (xt, yt). The non-convergence failure branches of
// InverseSolve use this to populate Residual with the true xy error, rather
// than leaving it at its zero value, so a best-effort caller (spec §7) gates
// on an actual distance instead of an uncomputed one.
func xyResidual(h, v, c, xt, yt float64) float64 {
	res, err := Forward(canonicalizeHue(h), v, c)
	if err != nil {
		return math.Inf(1)
	}
	return floats.Distance([]float64{res.X, res.Y}, []float64{xt, yt}, 2)
}

// initialHueGuess matches φt to the nearest anchor hue's φ at mid-chroma on
// the requested value plane (spec §4.6.1).
func initialHueGuess(v, phiT float64) float64 {
	const midChroma = 5.0
	best := 0.0
	bestDiff := math.MaxFloat64
	for k := 0; k < numAnchors; k++ {
		h := anchorHue(k)
		res, err := Forward(Hue(h), v, midChroma)
		if err != nil {
			continue
		}
		_, phi := toPolar(res.X, res.Y)
		if d := math.Abs(angleDiff(phiT, phi)); d < bestDiff {
			bestDiff = d
			best = h
		}
	}
	return best
}

// chromaBound returns the clamp ceiling (tabulated max chroma plus an
// extrapolation margin) used by the chroma inner loop's gamut clamp.
func chromaBound(t *mrdTable, h, v float64) float64 {
	loIdx, hiIdx, _, _ := neighborHues(Hue(canonicalizeHue(h)))
	vLo, vHi := neighborValues(v)
	maxC := 2.0
	for _, ai := range [2]int{loIdx, hiIdx} {
		for _, vi := range [2]int{vLo, vHi} {
			if mc, ok := t.maxChroma(ai, vi); ok && float64(mc) > maxC {
				maxC = float64(mc)
			}
		}
	}
	return maxC * 1.5
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// solveHue is the hue inner loop of spec §4.6.2: at fixed chroma c, adjusts
// H to match phiT, using an adaptive step size with sign-change bracketing
// and linear zero-crossing estimation once a bracket is found.
func solveHue(v, c, phiT, hStart float64) (h float64, extrapolated bool, converged bool) {
	eval := func(hh float64) (diff float64, ext bool) {
		res, err := Forward(canonicalizeHue(hh), v, c)
		if err != nil {
			return 0, false
		}
		_, phi := toPolar(res.X, res.Y)
		return angleDiff(phiT, phi), res.Extrapolated
	}

	h = hStart
	k := 1.0
	diff, ext := eval(h)
	extrapolated = ext
	if math.Abs(diff) < HueAngleTolerance {
		return h, extrapolated, true
	}

	var haveBracket bool
	var hA, diffA, hB, diffB float64
	var prevStep float64

	for i := 0; i < MaxHueIterations; i++ {
		var hNew, diffNew float64
		var extNew bool

		if haveBracket {
			// Linear zero-crossing estimate on the (H, Δφ) bracket (spec
			// §4.6.2 step 5), falling back to the bracket midpoint when both
			// ends have the same Δφ.
			if diffB == diffA {
				hNew = (hA + hB) / 2
			} else {
				hNew = hA - diffA*(hB-hA)/(diffB-diffA)
			}
			diffNew, extNew = eval(hNew)
			extrapolated = extrapolated || extNew
			if sign(diffNew) == sign(diffA) {
				hA, diffA = hNew, diffNew
			} else {
				hB, diffB = hNew, diffNew
			}
		} else {
			step := k * diff
			hNew = h + step
			diffNew, extNew = eval(hNew)
			extrapolated = extrapolated || extNew

			if sign(diffNew) != sign(diff) {
				hA, diffA = h, diff
				hB, diffB = hNew, diffNew
				haveBracket = true
			}

			// Adaptive trust region (spec §4.6.3): shrink on oscillation,
			// grow on two consecutive agreeing, improving steps.
			if i > 0 {
				if sign(step) != sign(prevStep) {
					k *= 0.5
				} else if math.Abs(diffNew) < math.Abs(diff) {
					k = math.Min(k*1.5, 2.0)
				}
			}
			prevStep = step
		}

		if math.Abs(diffNew) < HueAngleTolerance {
			return hNew, extrapolated, true
		}
		h, diff = hNew, diffNew
	}
	return h, extrapolated, false
}

// solveChroma is the chroma inner loop of spec §4.6.2: at fixed hue h,
// adjusts C to match rhoT by exponential scaling, falling back to bisection
// on a bracket once ρ crosses the target, with a gamut clamp that marks the
// result saturated when it activates.
func solveChroma(v, h, rhoT, cStart, maxC float64) (c float64, saturated, extrapolated, converged bool) {
	eval := func(cc float64) (rho float64, ext bool) {
		res, err := Forward(canonicalizeHue(h), v, cc)
		if err != nil {
			return 0, false
		}
		rho, _ = toPolar(res.X, res.Y)
		return rho, res.Extrapolated
	}

	clamp := func(cc float64) (float64, bool) {
		if cc < 0 {
			return 0, true
		}
		if cc > maxC {
			return maxC, true
		}
		return cc, false
	}

	c = cStart
	if c <= 0 {
		c = 0.01
	}

	var haveBracket bool
	var cA, rhoA, cB float64

	for i := 0; i < MaxChromaIterations; i++ {
		rho, ext := eval(c)
		extrapolated = extrapolated || ext
		if scalar.EqualWithinAbsOrRel(rho, rhoT, 0, ChromaRelTolerance) {
			return c, saturated, extrapolated, true
		}

		var cNew float64
		if haveBracket {
			cNew = (cA + cB) / 2
		} else if rho <= 0 {
			cNew = c * 2
		} else {
			cNew = c * math.Pow(rhoT/rho, 1.0)
		}

		var sat bool
		cNew, sat = clamp(cNew)
		saturated = saturated || sat

		rhoNew, extNew := eval(cNew)
		extrapolated = extrapolated || extNew

		if !haveBracket && (rho-rhoT)*(rhoNew-rhoT) < 0 {
			cA, rhoA = c, rho
			cB = cNew
			haveBracket = true
		} else if haveBracket {
			if (rhoNew-rhoT)*(rhoA-rhoT) < 0 {
				cB = cNew
			} else {
				cA, rhoA = cNew, rhoNew
			}
		}

		if scalar.EqualWithinAbsOrRel(rhoNew, rhoT, 0, ChromaRelTolerance) {
			return cNew, saturated, extrapolated, true
		}
		c = cNew
	}
	return c, saturated, extrapolated, false
}
