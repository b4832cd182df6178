package anim

import (
	"testing"

	"filmstrip/geom"
	"filmstrip/svgxml"
	"filmstrip/timeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLayer(entries map[geom.Frame]*timeline.Object) *timeline.Layer {
	frames := make([]geom.Frame, 0, len(entries))
	for f := range entries {
		frames = append(frames, f)
	}
	for i := 0; i < len(frames); i++ {
		for j := i + 1; j < len(frames); j++ {
			if frames[j] < frames[i] {
				frames[i], frames[j] = frames[j], frames[i]
			}
		}
	}
	layer := &timeline.Layer{}
	for _, f := range frames {
		layer.Set(f, entries[f])
	}
	return layer
}

func findAttr(n *svgxml.Node, name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func assertAttr(t *testing.T, n *svgxml.Node, name, want string) {
	t.Helper()
	v, ok := findAttr(n, name)
	require.True(t, ok, "missing attribute %q", name)
	assert.Equal(t, want, v)
}

// TestRenderLayerTranslationOnly is spec.md §8 scenario 4: a character
// translated from (0,0) at frame 0 to (100,0) at frame 30 in a 60-frame
// movie yields a translate group with keyTimes="0;0.5" values="0,0;100,0".
func TestRenderLayerTranslationOnly(t *testing.T) {
	m0 := geom.IdentityMatrix
	m30 := geom.IdentityMatrix
	m30.TranslateX = 100

	layer := buildLayer(map[geom.Frame]*timeline.Object{
		0:  {Character: 1, Matrix: m0, ColorTransform: geom.IdentityColorTransform},
		30: {Character: 1, Matrix: m30, ColorTransform: geom.IdentityColorTransform},
	})

	out := RenderLayer(layer, 60, 1.0, "f_0")
	require.NotNil(t, out.Group)
	assert.Nil(t, out.Filter)

	// Outermost group must be the translate group.
	require.Equal(t, "g", out.Group.Tag)
	require.Len(t, out.Group.Children, 2)
	animateTransform := out.Group.Children[0]
	assert.Equal(t, "animateTransform", animateTransform.Tag)
	assertAttr(t, animateTransform, "type", "translate")
	assertAttr(t, animateTransform, "keyTimes", "0;0.5")
	assertAttr(t, animateTransform, "values", "0,0;100,0")
}

func countAnimateTransform(n *svgxml.Node) int {
	count := 0
	if n.Tag == "animateTransform" {
		count++
	}
	for _, c := range n.Children {
		count += countAnimateTransform(c)
	}
	return count
}

// TestRenderLayerNoChangesOmitsGroups verifies a layer with a single static
// placement never wraps its <use> in a discrete-mode animation group.
func TestRenderLayerNoChangesOmitsGroups(t *testing.T) {
	layer := buildLayer(map[geom.Frame]*timeline.Object{
		0: {Character: 1, Matrix: geom.IdentityMatrix, ColorTransform: geom.IdentityColorTransform},
	})
	out := RenderLayer(layer, 20, 1.0, "f_0")
	assert.Nil(t, out.Filter)
	assert.Equal(t, 0, countAnimateTransform(out.Group))
}

func TestRenderLayerColorChangeProducesFilter(t *testing.T) {
	ct0 := geom.IdentityColorTransform
	ct1 := geom.IdentityColorTransform
	ct1.RAdd = 50

	layer := buildLayer(map[geom.Frame]*timeline.Object{
		0:  {Character: 1, Matrix: geom.IdentityMatrix, ColorTransform: ct0},
		10: {Character: 1, Matrix: geom.IdentityMatrix, ColorTransform: ct1},
	})
	out := RenderLayer(layer, 20, 1.0, "f_7")
	require.NotNil(t, out.Filter)
	assertAttr(t, out.Filter, "id", "f_7")
}
