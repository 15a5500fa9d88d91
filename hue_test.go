package munsell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHueCodeRoundTrip(t *testing.T) {
	cases := []struct {
		h    Hue
		want string
	}{
		{0, "10.0RP"},
		{10, "10.0R"},
		{2.5, "2.5R"},
		{97.5, "7.5RP"},
		{50, "10.0G"},
		{99.999999999, "10.0RP"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.h.String(), "hue %v", float64(c.h))
	}
}

func TestCanonicalizeHueWraps(t *testing.T) {
	assert.Equal(t, Hue(0), canonicalizeHue(100))
	assert.Equal(t, Hue(0), canonicalizeHue(0))
	assert.InDelta(t, 99.5, float64(canonicalizeHue(-0.5)), 1e-9)
	assert.InDelta(t, 5, float64(canonicalizeHue(205)), 1e-9)
}

func TestAngleDiffShortestArc(t *testing.T) {
	assert.InDelta(t, 10.0, angleDiff(10, 0), 1e-9)
	assert.InDelta(t, -10.0, angleDiff(350, 0), 1e-9)
	assert.InDelta(t, 180.0, angleDiff(180, 0), 1e-9)
	assert.InDelta(t, -179.0, angleDiff(1, 180), 1e-9)
}

func TestParseHueLabel(t *testing.T) {
	code, err := parseHueLabel("7.5YR")
	require.NoError(t, err)
	assert.Equal(t, YR, code.Family)
	assert.InDelta(t, 7.5, code.Step, 1e-12)

	_, err = parseHueLabel("7.5XX")
	assert.Error(t, err)

	_, err = parseHueLabel("R")
	assert.Error(t, err)

	_, err = parseHueLabel("15R")
	assert.Error(t, err)
}

func TestHueInterpWrapsAcrossBoundary(t *testing.T) {
	h := hueInterp(98, 2, 0.5)
	assert.InDelta(t, 0, float64(h), 1e-9)
}

func TestFamilyStringUnknown(t *testing.T) {
	var f Family = 99
	assert.Contains(t, f.String(), "Family(99)")
}
