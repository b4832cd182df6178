package dict

import (
	"testing"

	"filmstrip/geom"
	"filmstrip/shape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDictionaryUniqueness is spec.md §8's universal property: defining
// the same id twice is a fatal error.
func TestDictionaryUniqueness(t *testing.T) {
	d := New()
	require.NoError(t, d.Define(1, Character{Kind: KindShape, Shape: shape.Shape{}}))
	err := d.Define(1, Character{Kind: KindShape, Shape: shape.Shape{}})
	assert.Error(t, err)
}

func TestGetMissingCharacter(t *testing.T) {
	d := New()
	_, ok := d.Get(42)
	assert.False(t, ok)
}

func TestIdsAreAscending(t *testing.T) {
	d := New()
	require.NoError(t, d.Define(5, Character{Kind: KindShape}))
	require.NoError(t, d.Define(1, Character{Kind: KindShape}))
	require.NoError(t, d.Define(3, Character{Kind: KindShape}))
	assert.Equal(t, []geom.CharacterID{1, 3, 5}, d.Ids())
}
