package timeline

import (
	"testing"

	"filmstrip/geom"
	"filmstrip/internal/diag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup map[geom.CharacterID]bool

func (f fakeLookup) Exists(id geom.CharacterID) bool { return f[id] }

func cid(id uint16) *geom.CharacterID {
	v := geom.CharacterID(id)
	return &v
}

// TestStaticPlacementThenRemoval is spec.md §8 scenario 3: place character
// 1 at depth 5 frame 0 with an identity matrix, remove at depth 5 frame 10,
// over a 20-frame movie.
func TestStaticPlacementThenRemoval(t *testing.T) {
	sink := diag.NewSink()
	b := NewBuilder(sink, fakeLookup{1: true})

	require.NoError(t, b.PlaceObject(PlaceObjectEvent{
		Depth:       5,
		CharacterID: cid(1),
		Matrix:      &geom.IdentityMatrix,
	}))

	for i := 0; i < 10; i++ {
		b.ShowFrame()
	}

	require.NoError(t, b.RemoveObject(RemoveObjectEvent{Depth: 5}))

	for i := 0; i < 10; i++ {
		b.ShowFrame()
	}

	tl := b.Finish(20)

	layer := tl.Layers[5]
	require.NotNil(t, layer)
	frames := layer.Frames()
	require.Equal(t, []geom.Frame{0, 10}, frames)
	require.NotNil(t, layer.ValueAtIndex(0))
	assert.Equal(t, geom.CharacterID(1), layer.ValueAtIndex(0).Character)
	assert.Nil(t, layer.ValueAtIndex(1))
	assert.Equal(t, geom.Frame(20), tl.FrameCount)
}

// TestFrameMonotonicity is the property from spec.md §8: querying a layer
// at any frame in [f1, f2) yields the value stored at f1.
func TestFrameMonotonicity(t *testing.T) {
	sink := diag.NewSink()
	b := NewBuilder(sink, nil)

	require.NoError(t, b.PlaceObject(PlaceObjectEvent{Depth: 0, CharacterID: cid(1)}))
	for i := 0; i < 5; i++ {
		b.ShowFrame()
	}
	require.NoError(t, b.PlaceObject(PlaceObjectEvent{Depth: 0, CharacterID: cid(2), IsMove: true}))
	for i := 0; i < 5; i++ {
		b.ShowFrame()
	}

	tl := b.Finish(10)
	layer := tl.Layers[0]

	for f := geom.Frame(0); f < 5; f++ {
		obj := layer.At(f)
		require.NotNil(t, obj)
		assert.Equal(t, geom.CharacterID(1), obj.Character, "frame %d", f)
	}
	for f := geom.Frame(5); f < 10; f++ {
		obj := layer.At(f)
		require.NotNil(t, obj)
		assert.Equal(t, geom.CharacterID(2), obj.Character, "frame %d", f)
	}
}

func TestCarryForwardAppliesFieldsOnTopOfPrevious(t *testing.T) {
	sink := diag.NewSink()
	b := NewBuilder(sink, nil)

	m := geom.Matrix{ScaleX: geom.FixedFromFloat64(2)}
	require.NoError(t, b.PlaceObject(PlaceObjectEvent{Depth: 0, CharacterID: cid(1), Matrix: &m}))
	b.ShowFrame()

	name := "clip"
	require.NoError(t, b.PlaceObject(PlaceObjectEvent{Depth: 0, Name: &name}))

	tl := b.Finish(2)
	obj := tl.Layers[0].At(1)
	require.NotNil(t, obj)
	assert.Equal(t, geom.CharacterID(1), obj.Character)
	assert.Equal(t, m, obj.Matrix)
	require.NotNil(t, obj.Name)
	assert.Equal(t, "clip", *obj.Name)
}

func TestPlaceObjectNonMoveCharacterMismatchIsStructuralError(t *testing.T) {
	sink := diag.NewSink()
	b := NewBuilder(sink, nil)

	require.NoError(t, b.PlaceObject(PlaceObjectEvent{Depth: 0, CharacterID: cid(1)}))
	b.ShowFrame()

	err := b.PlaceObject(PlaceObjectEvent{Depth: 0, CharacterID: cid(2)})
	assert.Error(t, err)
}

func TestSecondSoundStreamHeadIsError(t *testing.T) {
	sink := diag.NewSink()
	b := NewBuilder(sink, nil)

	require.NoError(t, b.SoundStreamHead(SoundStreamHeadEvent{Format: AudioMP3}))
	err := b.SoundStreamHead(SoundStreamHeadEvent{Format: AudioMP3})
	assert.Error(t, err)
}

func TestSoundStreamBlockStripsMP3Header(t *testing.T) {
	sink := diag.NewSink()
	b := NewBuilder(sink, nil)

	require.NoError(t, b.SoundStreamHead(SoundStreamHeadEvent{Format: AudioMP3}))
	b.SoundStreamBlock(SoundStreamBlockEvent{Payload: []byte{0x01, 0x02, 0x03, 0x04, 0xAA, 0xBB}})

	tl := b.Finish(1)
	assert.Equal(t, []byte{0xAA, 0xBB}, tl.SoundStream.Payload)
}

func TestStartSoundWarnsOnUndefinedCharacter(t *testing.T) {
	sink := diag.NewSink()
	b := NewBuilder(sink, fakeLookup{})

	b.StartSound(StartSoundEvent{SoundID: 9})
	require.Equal(t, 1, sink.Len())
	assert.Contains(t, sink.Entries()[0].Message, "9")
}
