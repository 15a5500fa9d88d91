package munsell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardZeroChromaIsGreyAtEveryHue(t *testing.T) {
	for _, h := range []Hue{0, 12.5, 37.5, 99.9} {
		res, err := Forward(h, 5, 0)
		require.NoError(t, err)
		assert.Equal(t, GreyX, res.X)
		assert.Equal(t, GreyY, res.Y)
		assert.False(t, res.Extrapolated)
	}
}

func TestForwardOnAnchorMatchesTabulatedSample(t *testing.T) {
	table, err := loadTable()
	require.NoError(t, err)

	anchorIdx := 4
	chromas := table.chromasAt(anchorIdx, 5)
	require.NotEmpty(t, chromas)
	sample, ok := table.sampleAt(anchorIdx, 5, chromas[0])
	require.True(t, ok)

	res, err := Forward(Hue(anchorHue(anchorIdx)), 5, float64(chromas[0]))
	require.NoError(t, err)
	assert.InDelta(t, sample.X, res.X, 1e-9)
	assert.InDelta(t, sample.Y, res.Y, 1e-9)
	assert.False(t, res.Extrapolated)
}

func TestForwardIsPeriodicInHue(t *testing.T) {
	res1, err := Forward(Hue(5), 5, 4)
	require.NoError(t, err)
	res2, err := Forward(Hue(105), 5, 4)
	require.NoError(t, err)
	assert.InDelta(t, res1.X, res2.X, 1e-9)
	assert.InDelta(t, res1.Y, res2.Y, 1e-9)
}

func TestForwardBelowV1ExtrapolatesTowardGrey(t *testing.T) {
	res, err := Forward(Hue(5), 0, 4)
	require.NoError(t, err)
	assert.True(t, res.Extrapolated)
	assert.InDelta(t, GreyX, res.X, 1e-9)
	assert.InDelta(t, GreyY, res.Y, 1e-9)
}

func TestForwardAboveV9ExtrapolatesTowardGrey(t *testing.T) {
	res, err := Forward(Hue(5), 10, 4)
	require.NoError(t, err)
	assert.True(t, res.Extrapolated)
	assert.InDelta(t, GreyX, res.X, 1e-9)
	assert.InDelta(t, GreyY, res.Y, 1e-9)
}

func TestForwardBeyondGamutExtrapolates(t *testing.T) {
	table, err := loadTable()
	require.NoError(t, err)
	mc, ok := table.maxChroma(0, 5)
	require.True(t, ok)

	res, err := Forward(Hue(anchorHue(0)), 5, float64(mc)+4)
	require.NoError(t, err)
	assert.True(t, res.Extrapolated)
}

func TestForwardRejectsOutOfRangeValue(t *testing.T) {
	_, err := Forward(Hue(5), -1, 4)
	assert.Error(t, err)
	_, err = Forward(Hue(5), 11, 4)
	assert.Error(t, err)
}

func TestForwardRejectsNegativeChroma(t *testing.T) {
	_, err := Forward(Hue(5), 5, -1)
	assert.Error(t, err)
}
