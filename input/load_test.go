package input

import (
	"strings"
	"testing"

	"filmstrip/geom"
	"filmstrip/internal/diag"
	"filmstrip/shape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleStream = `{
	"Header": {
		"FrameSize": {"XMax": 200, "YMax": 200},
		"FrameRate": 24,
		"FrameCount": 1
	},
	"Tags": [
		{
			"Kind": 0,
			"DefineShape": {
				"CharacterID": 1,
				"InitialFillStyles": [{"Kind": 0, "Solid": {"R": 255, "A": 255}}],
				"Records": [
					{"Kind": 0, "RightFill": 1, "MoveTo": {"X": 0, "Y": 0}},
					{"Kind": 1, "Delta": {"X": 100, "Y": 0}},
					{"Kind": 1, "Delta": {"X": -50, "Y": 87}},
					{"Kind": 1, "Delta": {"X": -50, "Y": -87}}
				]
			}
		},
		{
			"Kind": 6,
			"PlaceObject": {
				"Depth": 1,
				"CharacterID": 1,
				"IsMove": false,
				"Matrix": {"ScaleX": 65536, "ScaleY": 65536}
			}
		},
		{"Kind": 8},
		{"Kind": 14}
	]
}`

func TestDecodeSolidTriangle(t *testing.T) {
	sink := diag.NewSink()
	m, err := Decode(strings.NewReader(triangleStream), sink)
	require.NoError(t, err)

	c, ok := m.Dict.Get(1)
	require.True(t, ok)
	require.Len(t, c.Shape.Fills, 1)
	assert.Equal(t, shape.FillSolid, c.Shape.Fills[0].Style.Kind)

	depths := m.Root.Depths()
	require.Len(t, depths, 1)
	obj := m.Root.Layers[depths[0]].At(0)
	require.NotNil(t, obj)
	assert.Equal(t, geom.CharacterID(1), obj.Character)
}

func TestDecodeStopsAtEndTag(t *testing.T) {
	stream := `{
		"Header": {"FrameSize": {"XMax": 10, "YMax": 10}, "FrameRate": 24, "FrameCount": 5},
		"Tags": [{"Kind": 14}, {"Kind": 8}]
	}`
	sink := diag.NewSink()
	m, err := Decode(strings.NewReader(stream), sink)
	require.NoError(t, err)
	assert.Equal(t, geom.Frame(5), m.Root.FrameCount)
	assert.Equal(t, 0, len(m.Root.Depths()))
}

func TestDecodeNestedSpriteSharesDictionary(t *testing.T) {
	stream := `{
		"Header": {"FrameSize": {"XMax": 10, "YMax": 10}, "FrameRate": 24, "FrameCount": 1},
		"Tags": [
			{
				"Kind": 1,
				"DefineSprite": {
					"CharacterID": 2,
					"FrameCount": 1,
					"Tags": [{"Kind": 8}]
				}
			}
		]
	}`
	sink := diag.NewSink()
	m, err := Decode(strings.NewReader(stream), sink)
	require.NoError(t, err)

	c, ok := m.Dict.Get(2)
	require.True(t, ok)
	require.NotNil(t, c.Sprite)
}

func TestDecodeMalformedJSONIsFatal(t *testing.T) {
	sink := diag.NewSink()
	_, err := Decode(strings.NewReader("{not json"), sink)
	require.Error(t, err)
}
