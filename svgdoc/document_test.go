package svgdoc

import (
	"strings"
	"testing"

	"filmstrip/dict"
	"filmstrip/geom"
	"filmstrip/internal/diag"
	"filmstrip/shape"
	"filmstrip/timeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleEmptyMovie(t *testing.T) {
	d := dict.New()
	root := timeline.New()
	root.FrameCount = 1

	out, err := Assemble(geom.Rect{XMax: 100, YMax: 100}, 24, 1, nil, false, d, root, diag.NewSink())
	require.NoError(t, err)
	assert.Contains(t, out, `viewBox="0 0 100 100"`)
	assert.Contains(t, out, `background: black`)
	assert.Contains(t, out, `viewBox_clip`)
}

// TestAssembleSolidTriangleCharacter covers spec.md §8 scenario 2 end to
// end: the dictionary entry for a solid-filled triangle renders as a
// single <path> with the exact expected "d" and a #ff0000 fill.
func TestAssembleSolidTriangleCharacter(t *testing.T) {
	d := dict.New()
	tri := shape.Shape{
		Fills: []shape.StyledPath[shape.FillStyle]{
			{
				Style: shape.FillStyle{Kind: shape.FillSolid, Solid: geom.Opaque(255, 0, 0)},
				Edges: []geom.Edge{
					{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 100, Y: 0}},
					{From: geom.Point{X: 100, Y: 0}, To: geom.Point{X: 50, Y: 87}},
					{From: geom.Point{X: 50, Y: 87}, To: geom.Point{X: 0, Y: 0}},
				},
			},
		},
	}
	require.NoError(t, d.Define(1, dict.Character{Kind: dict.KindShape, Shape: tri}))

	root := timeline.New()
	root.FrameCount = 1

	out, err := Assemble(geom.Rect{XMax: 200, YMax: 200}, 24, 1, nil, false, d, root, diag.NewSink())
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, `d="M0,0 L100,0 L50,87 Z"`))
	assert.True(t, strings.Contains(out, `fill="#ff0000"`))
	assert.Contains(t, out, `id="c_1"`)
}

func TestAssembleScriptedModeEmbedsDataAndRuntime(t *testing.T) {
	d := dict.New()
	root := timeline.New()
	root.FrameCount = 1

	out, err := Assemble(geom.Rect{XMax: 10, YMax: 10}, 24, 1, nil, true, d, root, diag.NewSink())
	require.NoError(t, err)
	assert.Contains(t, out, `id="body"`)
	assert.Contains(t, out, `__filmstripData`)
	assert.Contains(t, out, `__filmstripRuntime`)
}

func TestAssembleExplicitBackground(t *testing.T) {
	d := dict.New()
	root := timeline.New()
	root.FrameCount = 1
	bg := geom.Opaque(10, 20, 30)

	out, err := Assemble(geom.Rect{XMax: 10, YMax: 10}, 24, 1, &bg, false, d, root, diag.NewSink())
	require.NoError(t, err)
	assert.Contains(t, out, "background: #0a141e")
}
