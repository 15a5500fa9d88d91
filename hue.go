package munsell

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Family is one of the ten Munsell hue families, in their canonical cyclic
// order.
type Family int

const (
	R Family = iota
	YR
	Y
	GY
	G
	BG
	B
	PB
	P
	RP
)

var familyNames = [10]string{"R", "YR", "Y", "GY", "G", "BG", "B", "PB", "P", "RP"}

func (f Family) String() string {
	if f < R || f > RP {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// Hue is a point on the 100-step Munsell hue circle, the "ASTM index" of
// spec §3. Values are expected to lie in [0, 100); use canonicalizeHue to
// bring an arbitrary real number into that range.
type Hue float64

// HueCode is the "code form" encoding of a hue: a step in (0, 10] within one
// of the ten families.
type HueCode struct {
	Family Family
	Step   float64
}

// ToHue converts a code-form hue to its ASTM index, canonicalizing the
// RP/10 boundary to 0 per spec §3 ("h=0.0 is canonicalized to 10RP").
func (hc HueCode) ToHue() Hue {
	h := float64(hc.Family)*10 + hc.Step
	if h >= 100 {
		h -= 100
	}
	return Hue(h)
}

// boundaryEps absorbs floating point error when deciding whether a hue sits
// exactly on a family boundary (a multiple of 10).
const boundaryEps = 1e-9

// Code converts h to its code-form encoding, applying the boundary
// convention of spec §3: an integer multiple of 10 belongs to the family
// ending there (h=10.0 is "10R", not "0YR"), and h=0 is "10RP".
func (h Hue) Code() HueCode {
	hv := float64(h)
	if hv < boundaryEps {
		return HueCode{Family: RP, Step: 10}
	}
	m := math.Mod(hv, 10)
	if m < boundaryEps || m > 10-boundaryEps {
		idx := int(math.Round(hv/10)) - 1
		return HueCode{Family: Family(idx), Step: 10}
	}
	idx := int(math.Floor(hv / 10))
	return HueCode{Family: Family(idx), Step: hv - float64(idx)*10}
}

// String renders h in the canonical "<step><family>" textual form with the
// step rounded to one decimal, e.g. "7.2R" or "10.0PB" (spec §6 "Outputs").
// Achromatic notation is handled by Notation, not Hue.
func (h Hue) String() string {
	c := h.Code()
	return fmt.Sprintf("%.1f%s", c.Step, c.Family)
}

// canonicalizeHue brings an arbitrary real hue into [0, 100).
func canonicalizeHue(h float64) Hue {
	h = math.Mod(h, 100)
	if h < 0 {
		h += 100
	}
	return Hue(h)
}

// hueToAngle maps the 100-step hue circle onto a 360° circle for trig.
func hueToAngle(h float64) float64 {
	return h * 3.6
}

// angleToHue is the inverse of hueToAngle.
func angleToHue(a float64) float64 {
	return a / 3.6
}

// angleDiff returns the signed shortest-arc difference a-b in (-180, 180],
// on the 360° circle.
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

// hueInterp linearly interpolates between hLo and hHi along the shortest
// arc, wrapping through the 100↔0 boundary, and returns a canonicalized hue.
func hueInterp(hLo, hHi, t float64) Hue {
	aLo := hueToAngle(hLo)
	aHi := hueToAngle(hHi)
	d := angleDiff(aHi, aLo)
	return canonicalizeHue(angleToHue(aLo + d*t))
}

func familyFromName(s string) (Family, bool) {
	for i, name := range familyNames {
		if name == s {
			return Family(i), true
		}
	}
	return 0, false
}

// parseHueLabel parses the code-form textual representation of a hue, e.g.
// "7.2R", "10PB", "2.5YR", as used both by the embedded MRD dataset's
// H_anchor column and by Notation's textual form.
func parseHueLabel(s string) (HueCode, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && (s[i] == '.' || s[i] == '-' || s[i] == '+' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 || i == len(s) {
		return HueCode{}, fmt.Errorf("malformed hue code %q", s)
	}
	step, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return HueCode{}, fmt.Errorf("malformed hue code %q: %w", s, err)
	}
	if step <= 0 || step > 10 {
		return HueCode{}, fmt.Errorf("hue step %v out of range (0, 10] in %q", step, s)
	}
	fam, ok := familyFromName(s[i:])
	if !ok {
		return HueCode{}, fmt.Errorf("unknown hue family %q in %q", s[i:], s)
	}
	return HueCode{Family: fam, Step: step}, nil
}
