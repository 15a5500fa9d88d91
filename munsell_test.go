package munsell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ExampleXyYToMunsell converts Illuminant C's own chromaticity at full
// luminance back to its Munsell notation, which is achromatic by
// construction (spec §3's grey axis).
func ExampleXyYToMunsell() {
	n, err := XyYToMunsell(GreyX, GreyY, 1.0)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(n)
	// Output:
	// N 10.0/
}

// ExampleMunsellToXyY evaluates an achromatic notation, which resolves to
// the Illuminant C grey point at every value.
func ExampleMunsellToXyY() {
	x, y, Y, err := MunsellToXyY(Notation{Achromatic: true, Value: 10})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.4f %.4f %.4f\n", x, y, Y)
	// Output:
	// 0.3101 0.3162 1.0000
}

func TestNotationStringAchromatic(t *testing.T) {
	n := Notation{Achromatic: true, Value: 5}
	assert.Equal(t, "N 5.0/", n.String())
}

func TestNotationStringChromatic(t *testing.T) {
	n := Notation{Hue: Hue(anchorHue(0)), Value: 4, Chroma: 14}
	assert.Equal(t, "10.0RP 4.0/14.0", n.String())
}

func TestParseNotationRoundTrip(t *testing.T) {
	cases := []Notation{
		{Achromatic: true, Value: 9.5},
		{Hue: HueCode{Family: R, Step: 5}.ToHue(), Value: 4, Chroma: 14},
	}
	for _, n := range cases {
		parsed, err := ParseNotation(n.String())
		require.NoError(t, err)
		assert.Equal(t, n.Achromatic, parsed.Achromatic)
		assert.InDelta(t, n.Value, parsed.Value, 1e-9)
		if !n.Achromatic {
			assert.InDelta(t, float64(n.Hue), float64(parsed.Hue), 1e-9)
			assert.InDelta(t, n.Chroma, parsed.Chroma, 1e-9)
		}
	}
}

func TestParseNotationRejectsMalformed(t *testing.T) {
	_, err := ParseNotation("garbage")
	assert.Error(t, err)
	_, err = ParseNotation("5R 4.0")
	assert.Error(t, err)
	_, err = ParseNotation("N 5.0/3.0")
	assert.Error(t, err)
}

func TestMunsellToXyYGreyAtEveryValue(t *testing.T) {
	for _, v := range []float64{0, 2.5, 5, 7.5, 10} {
		x, y, _, err := MunsellToXyY(Notation{Achromatic: true, Value: v})
		require.NoError(t, err)
		assert.Equal(t, GreyX, x)
		assert.Equal(t, GreyY, y)
	}
}

func TestXyYToMunsellRoundTripsMunsellToXyY(t *testing.T) {
	table, err := loadTable()
	require.NoError(t, err)

	anchorIdx := 8
	chromas := table.chromasAt(anchorIdx, 5)
	require.NotEmpty(t, chromas)

	n := Notation{Hue: Hue(anchorHue(anchorIdx)), Value: 5, Chroma: float64(chromas[len(chromas)/2])}
	x, y, Y, err := MunsellToXyY(n)
	require.NoError(t, err)

	got, err := XyYToMunsell(x, y, Y)
	require.NoError(t, err)
	assert.InDelta(t, float64(n.Hue), float64(got.Hue), 0.5)
	assert.InDelta(t, n.Chroma, got.Chroma, 0.5)
	assert.InDelta(t, n.Value, got.Value, 0.1)
}

func TestXyYToMunsellGreyPointIsAchromatic(t *testing.T) {
	n, err := XyYToMunsell(GreyX, GreyY, 0.5)
	require.NoError(t, err)
	assert.True(t, n.Achromatic)
}

func TestXyYToMunsellRejectsOutOfRangeInputs(t *testing.T) {
	_, err := XyYToMunsell(-0.1, 0.3, 0.5)
	assert.Error(t, err)
	_, err = XyYToMunsell(0.3, 0.3, 1.5)
	assert.Error(t, err)
}

func BenchmarkParseNotation(b *testing.B) {
	for range b.N {
		ParseNotation("5.2PB 4.0/14.0")
	}
}

func FuzzParseNotation(f *testing.F) {
	f.Add("5.2PB 4.0/14.0")
	f.Add("10RP 4.0/14.0")
	f.Add("N 9.5/")
	f.Add("N 0.0/")
	f.Add("garbage")
	f.Add("5R 4.0")

	f.Fuzz(func(t *testing.T, s string) {
		ParseNotation(s)
	})
}
