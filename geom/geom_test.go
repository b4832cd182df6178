package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointAddSub(t *testing.T) {
	p := Point{X: 10, Y: -5}
	q := Point{X: 3, Y: 7}
	assert.Equal(t, Point{X: 13, Y: 2}, p.Add(q))
	assert.Equal(t, Point{X: 7, Y: -12}, p.Sub(q))
}

func TestEdgeFlipPreservesControl(t *testing.T) {
	ctrl := Point{X: 1, Y: 2}
	e := Edge{From: Point{0, 0}, To: Point{10, 10}, Control: &ctrl}
	flipped := e.Flip()
	require.NotNil(t, flipped.Control)
	assert.Equal(t, Point{10, 10}, flipped.From)
	assert.Equal(t, Point{0, 0}, flipped.To)
	assert.Same(t, &ctrl, flipped.Control)
}

func TestFixedPointConversions(t *testing.T) {
	assert.InDelta(t, 1.0, FixedFromFloat64(1.0).Float64(), 1e-9)
	assert.InDelta(t, -2.5, FixedFromFloat64(-2.5).Float64(), 1e-4)
	var mul Fixed8_8 = 256
	assert.InDelta(t, 1.0, mul.Float64(), 1e-9)
}

// matrixRoundTrip checks that Recompose(Decompose(M)) reproduces M's linear
// part within 1e-9 whenever a^2+b^2>0 and c^2+d^2>0. M is compared after
// its 16.16 quantization, since the inputs are not all exactly representable.
func matrixRoundTrip(t *testing.T, a, b, c, d float64) {
	t.Helper()
	m := Matrix{
		ScaleX:      FixedFromFloat64(a),
		RotateSkew1: FixedFromFloat64(b),
		RotateSkew0: FixedFromFloat64(c),
		ScaleY:      FixedFromFloat64(d),
		TranslateX:  17,
		TranslateY:  -42,
	}
	decomposed := Decompose(m)
	recomposed := Recompose(decomposed)

	assert.InDelta(t, m.ScaleX.Float64(), recomposed.A, 1e-9)
	assert.InDelta(t, m.RotateSkew1.Float64(), recomposed.B, 1e-9)
	assert.InDelta(t, m.RotateSkew0.Float64(), recomposed.C, 1e-9)
	assert.InDelta(t, m.ScaleY.Float64(), recomposed.D, 1e-9)
	assert.Equal(t, int32(17), decomposed.TranslateX)
	assert.Equal(t, int32(-42), decomposed.TranslateY)
}

func TestMatrixRoundTripIdentity(t *testing.T) {
	matrixRoundTrip(t, 1, 0, 0, 1)
}

func TestMatrixRoundTripScaleOnly(t *testing.T) {
	matrixRoundTrip(t, 2.5, 0, 0, 0.5)
}

func TestMatrixRoundTripRotated(t *testing.T) {
	theta := 37.0 * math.Pi / 180
	matrixRoundTrip(t, math.Cos(theta), math.Sin(theta), -math.Sin(theta), math.Cos(theta))
}

func TestMatrixRoundTripSkewed(t *testing.T) {
	matrixRoundTrip(t, 1.2, 0.3, 0.1, 0.9)
}

func TestMatrixRoundTripGeneral(t *testing.T) {
	matrixRoundTrip(t, 0.8, -0.6, 0.6, 0.8)
	matrixRoundTrip(t, 3.0, 1.5, -0.5, 2.0)
}
