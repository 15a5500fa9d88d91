package munsell

import "math"

// ForwardResult is the output of Forward: a chromaticity point plus a tag
// recording whether the Extrapolator had to be used to produce it. The
// Inverse Solver carries this tag into InverseResult.Extrapolated; it does
// not withhold convergence because of it, so a converged result may still
// lie in an extrapolated, out-of-gamut region.
type ForwardResult struct {
	X, Y         float64
	Extrapolated bool
}

// Forward evaluates the MRD forward model at (h, v, c): given a Munsell
// hue, value, and chroma, it returns the corresponding CIE xy chromaticity
// under Illuminant C (spec §4.4).
func Forward(h Hue, v, c float64) (ForwardResult, error) {
	if v < 0 || v > 10 {
		return ForwardResult{}, &Error{Kind: ValueOutOfRange, Input: v}
	}
	if c < 0 {
		return ForwardResult{}, &Error{Kind: InvalidInput, Input: c}
	}
	if c == 0 {
		// Edge policy: Forward(H, V, 0) = grey exactly, for all H, V, never
		// entering the polar code path (spec §3 invariant, §4.4.1).
		return ForwardResult{X: GreyX, Y: GreyY}, nil
	}

	t, err := loadTable()
	if err != nil {
		return ForwardResult{}, err
	}

	switch {
	case v < 1:
		return forwardBelowV1(t, h, v, c)
	case v > 9:
		return forwardAboveV9(t, h, v, c)
	default:
		return forwardInGamutValue(t, h, v, c)
	}
}

// forwardInGamutValue implements spec §4.4's pipeline for V in [1, 9]:
// split into bracketing integer values, evaluate each value-plane, and
// blend linearly in V.
func forwardInGamutValue(t *mrdTable, h Hue, v, c float64) (ForwardResult, error) {
	vLo, vHi := neighborValues(v)
	lo, extLo, err := valuePlanePoint(t, h, vLo, c)
	if err != nil {
		return ForwardResult{}, err
	}
	if vLo == vHi {
		// V is an integer: skip the V-blend (spec §4.4.1 edge policy).
		return ForwardResult{X: lo.x, Y: lo.y, Extrapolated: extLo}, nil
	}
	hi, extHi, err := valuePlanePoint(t, h, vHi, c)
	if err != nil {
		return ForwardResult{}, err
	}
	frac := v - float64(vLo)
	return ForwardResult{
		X:            lo.x*(1-frac) + hi.x*frac,
		Y:            lo.y*(1-frac) + hi.y*frac,
		Extrapolated: extLo || extHi,
	}, nil
}

// forwardBelowV1 linearly extrapolates between the grey point at V=0 and
// the interpolated chromatic point at V=1, per spec §4.5.
func forwardBelowV1(t *mrdTable, h Hue, v, c float64) (ForwardResult, error) {
	p1, _, err := valuePlanePoint(t, h, 1, c)
	if err != nil {
		return ForwardResult{}, err
	}
	return ForwardResult{
		X:            GreyX + (p1.x-GreyX)*v,
		Y:            GreyY + (p1.y-GreyY)*v,
		Extrapolated: true,
	}, nil
}

// forwardAboveV9 symmetrically extrapolates between the interpolated
// chromatic point at V=9 and the grey point at V=10: the MRD does not
// tabulate V=10 because ideal white is achromatic by construction, just as
// it does not tabulate V=0.
func forwardAboveV9(t *mrdTable, h Hue, v, c float64) (ForwardResult, error) {
	p9, _, err := valuePlanePoint(t, h, 9, c)
	if err != nil {
		return ForwardResult{}, err
	}
	frac := v - 9
	return ForwardResult{
		X:            p9.x + (GreyX-p9.x)*frac,
		Y:            p9.y + (GreyY-p9.y)*frac,
		Extrapolated: true,
	}, nil
}

type xyPoint struct{ x, y float64 }

// valuePlanePoint implements spec §4.4.1: at fixed integer Value, interpolate
// the MRD in polar coordinates around the grey point, bracketing both hue
// anchors and tabulated chromas.
func valuePlanePoint(t *mrdTable, h Hue, vInt int, c float64) (xyPoint, bool, error) {
	loIdx, hiIdx, hLo, hHi := neighborHues(h)

	rhoLo, phiLo, extLo, err := anchorPolarAtChroma(t, loIdx, vInt, c)
	if err != nil {
		return xyPoint{}, false, err
	}
	if loIdx == hiIdx {
		x, y := fromPolar(rhoLo, phiLo)
		return xyPoint{x, y}, extLo, nil
	}

	rhoHi, phiHi, extHi, err := anchorPolarAtChroma(t, hiIdx, vInt, c)
	if err != nil {
		return xyPoint{}, false, err
	}

	rhoLo, phiLo, rhoHi, phiHi = polarGuard(rhoLo, phiLo, rhoHi, phiHi)

	aLo, aHi := hueToAngle(hLo), hueToAngle(hHi)
	span := angleDiff(aHi, aLo)
	if span == 0 {
		span = 360
	}
	hCanon := hueToAngle(float64(canonicalizeHue(float64(h))))
	frac := angleDiff(hCanon, aLo) / span

	rho := rhoLo + (rhoHi-rhoLo)*frac
	phi := phiLo + angleDiff(phiHi, phiLo)*frac
	x, y := fromPolar(rho, phi)
	return xyPoint{x, y}, extLo || extHi, nil
}

// anchorPolarAtChroma returns the (ρ, φ) polar coordinates, relative to the
// grey point, of the radial at a fixed anchor hue and integer value,
// evaluated at chroma c. It interpolates between the implicit grey point
// (C=0) and the first tabulated sample when c is below the smallest
// tabulated chroma, interpolates between bracketing tabulated chromas in the
// interior, and calls the Extrapolator beyond the tabulated maximum.
func anchorPolarAtChroma(t *mrdTable, anchorIdx, vInt int, c float64) (rho, phi float64, extrapolated bool, err error) {
	samples := t.cells[anchorIdx][vInt-1]
	if len(samples) == 0 {
		return 0, 0, false, &Error{Kind: NotTabulated, Input: [3]float64{anchorHue(anchorIdx), float64(vInt), c}}
	}
	first, last := samples[0], samples[len(samples)-1]

	if float64(first.C) >= c {
		rho1, phi1 := toPolar(first.X, first.Y)
		if c == float64(first.C) {
			return rho1, phi1, false, nil
		}
		return rho1 * (c / float64(first.C)), phi1, false, nil
	}

	if c > float64(last.C) {
		if len(samples) < 2 {
			return 0, 0, false, &Error{Kind: ChromaOutOfGamut, Input: c}
		}
		a := samples[len(samples)-2]
		rhoA, phiA := toPolar(a.X, a.Y)
		rhoB, phiB := toPolar(last.X, last.Y)
		rho, phi = extrapolateRadial(float64(a.C), rhoA, phiA, float64(last.C), rhoB, phiB, c)
		return rho, phi, true, nil
	}

	lo, hi := t.bracketChromas(anchorIdx, vInt, c)
	sLo, _ := t.sampleAt(anchorIdx, vInt, lo)
	sHi, _ := t.sampleAt(anchorIdx, vInt, hi)
	if lo == hi {
		rho1, phi1 := toPolar(sLo.X, sLo.Y)
		return rho1, phi1, false, nil
	}
	rhoLo, phiLo := toPolar(sLo.X, sLo.Y)
	rhoHi, phiHi := toPolar(sHi.X, sHi.Y)
	rhoLo, phiLo, rhoHi, phiHi = polarGuard(rhoLo, phiLo, rhoHi, phiHi)
	frac := (c - float64(lo)) / float64(hi-lo)
	rho = rhoLo + (rhoHi-rhoLo)*frac
	phi = phiLo + angleDiff(phiHi, phiLo)*frac
	return rho, phi, false, nil
}

// toPolar converts an xy chromaticity to polar coordinates relative to the
// Illuminant C grey point, with φ in degrees. Every production code path in
// this package goes through toPolar, never toPolarAround directly, which is
// what makes the center-point correctness invariant of spec §4.6.4 hold by
// construction rather than by convention.
func toPolar(x, y float64) (rho, phi float64) {
	return toPolarAround(GreyX, GreyY, x, y)
}

// toPolarAround is toPolar generalized to an arbitrary center point. It
// exists so tests can demonstrate that the grey point genuinely matters to
// the polar geometry (spec §8's center-point correctness property); nothing
// in the solver itself calls it with a center other than (GreyX, GreyY).
func toPolarAround(cx, cy, x, y float64) (rho, phi float64) {
	dx, dy := x-cx, y-cy
	return math.Hypot(dx, dy), math.Atan2(dy, dx) * 180 / math.Pi
}

// fromPolar is the inverse of toPolar.
func fromPolar(rho, phi float64) (x, y float64) {
	rad := phi * math.Pi / 180
	return GreyX + rho*math.Cos(rad), GreyY + rho*math.Sin(rad)
}
