package munsell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInverseSolveAchromaticAtGreyPoint(t *testing.T) {
	res, err := InverseSolve(5, GreyX, GreyY)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.C)
}

func TestInverseSolveRoundTripsForwardSamples(t *testing.T) {
	table, err := loadTable()
	require.NoError(t, err)

	tested := 0
	for anchorIdx := 0; anchorIdx < numAnchors && tested < 8; anchorIdx += 5 {
		chromas := table.chromasAt(anchorIdx, 5)
		if len(chromas) == 0 {
			continue
		}
		wantH := anchorHue(anchorIdx)
		wantC := float64(chromas[len(chromas)/2])

		fwd, err := Forward(Hue(wantH), 5, wantC)
		require.NoError(t, err)

		res, err := InverseSolve(5, fwd.X, fwd.Y)
		require.NoError(t, err)
		assert.InDelta(t, wantH, float64(res.H), 0.5, "hue for anchor %d", anchorIdx)
		assert.InDelta(t, wantC, res.C, 0.5, "chroma for anchor %d", anchorIdx)
		tested++
	}
	require.Greater(t, tested, 0)
}

func TestInverseSolveCenterPointUsesIlluminantC(t *testing.T) {
	rhoC, _ := toPolar(GreyX, GreyY)
	assert.Equal(t, 0.0, rhoC)

	const d65x, d65y = 0.3127, 0.3290
	rhoD65, phiD65 := toPolarAround(d65x, d65y, GreyX+0.02, GreyY+0.01)
	rhoC2, phiC := toPolar(GreyX+0.02, GreyY+0.01)
	assert.NotEqual(t, rhoD65, rhoC2)
	assert.NotEqual(t, phiD65, phiC)
}

func TestInverseSolveRejectsOutOfRangeInputs(t *testing.T) {
	_, err := InverseSolve(5, -0.1, 0.3)
	assert.Error(t, err)
	_, err = InverseSolve(-1, 0.31, 0.32)
	assert.Error(t, err)
}
