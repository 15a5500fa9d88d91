package munsell

// extrapolateRadial extends the radial relation ρ(C), φ(C) beyond the last
// two tabulated points (ca, ρa, φa) and (cb, ρb, φb) with ca < cb <= c, per
// spec §4.5: linear extrapolation of both ρ and φ using the final tabulated
// segment's slope.
func extrapolateRadial(ca, rhoA, phiA, cb, rhoB, phiB, c float64) (rho, phi float64) {
	rhoA, phiA, rhoB, phiB = polarGuard(rhoA, phiA, rhoB, phiB)
	span := cb - ca
	rho = rhoB + (c-cb)*(rhoB-rhoA)/span
	phi = phiB + (c-cb)*angleDiff(phiB, phiA)/span
	return rho, phi
}

// polarGuard implements the "ρ values below 1e-12 are treated as zero and φ
// is taken from the other bracket" rule of spec §4.4.1, avoiding an
// undefined angle when one of two polar points sits on the grey axis.
func polarGuard(rhoA, phiA, rhoB, phiB float64) (float64, float64, float64, float64) {
	if rhoA < 1e-12 {
		phiA = phiB
	}
	if rhoB < 1e-12 {
		phiB = phiA
	}
	return rhoA, phiA, rhoB, phiB
}
