package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatString(s string) string { return s }

func TestAnimationNoChangesOmitsAttribute(t *testing.T) {
	a := New(20, "1s", "#c_1", formatString)
	r := a.Resolve()
	assert.Equal(t, ResultNone, r.Kind)
}

// TestAnimationIdempotence is spec.md §8: add(frame, v) with v == current
// leaves the key-times/values strings unchanged.
func TestAnimationIdempotence(t *testing.T) {
	a := New(20, "1s", "#c_1", formatString)
	a.Add(0, "#c_1")
	before := a.Resolve()
	a.Add(5, "#c_1")
	after := a.Resolve()
	assert.Equal(t, before, after)
}

// TestFirstChangeAnchoring is spec.md §8: if the first recorded add(f, v)
// has f > 0, keyTimes begins with "0;…" and values begins with
// "initial_value;…".
func TestFirstChangeAnchoring(t *testing.T) {
	a := New(20, "1s", "#c_1", formatString)
	a.Add(10, "#")
	r := a.Resolve()
	require.Equal(t, ResultDiscrete, r.Kind)
	assert.Equal(t, "0;0.5", r.KeyTimes)
	assert.Equal(t, "#c_1;#", r.Values)
}

// TestStaticAttributeCollapse is spec.md §8: an animation with exactly one
// entry at frame 0 emits a static attribute, not an animation.
func TestStaticAttributeCollapse(t *testing.T) {
	a := New(20, "1s", "#c_1", formatString)
	a.Add(0, "#c_2")
	r := a.Resolve()
	require.Equal(t, ResultStatic, r.Kind)
	assert.Equal(t, "#c_2", r.StaticValue)
}

// TestCharacterHrefSwitch is spec.md §8 scenario 3: a character-href
// animation switching from #c_1 to # at key_time 0.5 over 20 frames.
func TestCharacterHrefSwitch(t *testing.T) {
	a := New(20, "1s", "#c_1", formatString)
	a.Add(0, "#c_1")
	a.Add(10, "#")
	r := a.Resolve()
	require.Equal(t, ResultDiscrete, r.Kind)
	assert.Equal(t, "0;0.5", r.KeyTimes)
	assert.Equal(t, "#c_1;#", r.Values)
}

// TestPureTranslation is spec.md §8 scenario 4: a character translated
// from (0,0) at frame 0 to (100,0) at frame 30 in a 60-frame movie emits
// keyTimes="0;0.5", values="0,0;100,0".
func TestPureTranslation(t *testing.T) {
	a := New(60, FormatDuration(1), translation{0, 0}, formatTranslate)
	a.Add(0, translation{0, 0})
	a.Add(30, translation{100, 0})
	r := a.Resolve()
	require.Equal(t, ResultDiscrete, r.Kind)
	assert.Equal(t, "0;0.5", r.KeyTimes)
	assert.Equal(t, "0,0;100,0", r.Values)
}
