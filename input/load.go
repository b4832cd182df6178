package input

import (
	"encoding/json"
	"fmt"
	"io"

	"filmstrip/button"
	"filmstrip/dict"
	"filmstrip/geom"
	"filmstrip/internal/diag"
	"filmstrip/movie"
	"filmstrip/shape"
	"filmstrip/timeline"
)

// Decode parses one input file's tag stream into a ready-to-render
// movie.Movie. Fatal parse failures (spec.md §7) are returned as plain
// errors; unsupported or malformed constructs are routed through sink
// instead.
func Decode(r io.Reader, sink *diag.Sink) (*movie.Movie, error) {
	var stream Stream
	if err := json.NewDecoder(r).Decode(&stream); err != nil {
		return nil, fmt.Errorf("input: decoding tag stream: %w", err)
	}

	d := dict.New()
	root, err := buildTimeline(d, stream.Tags, stream.Header.FrameCount, sink)
	if err != nil {
		return nil, err
	}

	return &movie.Movie{
		Header: movie.Header{
			FrameSize:  stream.Header.FrameSize,
			FrameRate:  stream.Header.FrameRate,
			FrameCount: stream.Header.FrameCount,
			Background: stream.Header.Background,
		},
		Dict: d,
		Root: root,
	}, nil
}

// buildTimeline replays one ordered tag stream into a Timeline, defining
// dictionary entries as it goes. It recurses for DefineSprite, since a
// sprite's tag stream drives its own Builder over the same shared
// Dictionary (spec.md §4.2's dictionary is flat and global across nested
// timelines).
func buildTimeline(d *dict.Dictionary, tags []Tag, frameCount geom.Frame, sink *diag.Sink) (*timeline.Timeline, error) {
	b := timeline.NewBuilder(sink, d)

	for _, tag := range tags {
		switch tag.Kind {
		case TagDefineShape:
			t := tag.DefineShape
			norm := shape.Normalize(shape.DefineShape{
				Center:            t.Center,
				InitialFillStyles: t.InitialFillStyles,
				InitialLineStyles: t.InitialLineStyles,
				Records:           toShapeRecords(t.Records),
			}, sink)
			if err := d.Define(t.CharacterID, dict.Character{Kind: dict.KindShape, Shape: norm}); err != nil {
				return nil, err
			}

		case TagDefineSprite:
			t := tag.DefineSprite
			sprite, err := buildTimeline(d, t.Tags, t.FrameCount, sink)
			if err != nil {
				return nil, err
			}
			if err := d.Define(t.CharacterID, dict.Character{Kind: dict.KindSprite, Sprite: sprite}); err != nil {
				return nil, err
			}

		case TagDefineBitmap:
			t := tag.DefineBitmap
			if err := d.Define(t.CharacterID, dict.Character{Kind: dict.KindBitmap, Bitmap: t.Bitmap}); err != nil {
				return nil, err
			}

		case TagDefineSound:
			t := tag.DefineSound
			if err := d.Define(t.CharacterID, dict.Character{Kind: dict.KindSound, Sound: t.Sound}); err != nil {
				return nil, err
			}

		case TagDefineDynamicText:
			t := tag.DefineDynamicText
			if err := d.Define(t.CharacterID, dict.Character{Kind: dict.KindDynamicText, DynamicText: t.Text}); err != nil {
				return nil, err
			}

		case TagDefineButton:
			t := tag.DefineButton
			btn := button.Assemble(t.Def, sink)
			if err := d.Define(t.CharacterID, dict.Character{Kind: dict.KindButton, Button: btn}); err != nil {
				return nil, err
			}

		case TagPlaceObject:
			if err := b.PlaceObject(*tag.PlaceObject); err != nil {
				return nil, err
			}

		case TagRemoveObject:
			if err := b.RemoveObject(*tag.RemoveObject); err != nil {
				return nil, err
			}

		case TagShowFrame:
			b.ShowFrame()

		case TagDoAction:
			b.DoAction(*tag.DoAction)

		case TagFrameLabel:
			b.FrameLabel(*tag.FrameLabel)

		case TagStartSound:
			b.StartSound(*tag.StartSound)

		case TagSoundStreamHead:
			if err := b.SoundStreamHead(*tag.SoundStreamHead); err != nil {
				return nil, err
			}

		case TagSoundStreamBlock:
			b.SoundStreamBlock(*tag.SoundStreamBlock)

		case TagEnd:
			return b.Finish(frameCount), nil
		}
	}

	return b.Finish(frameCount), nil
}

func toShapeRecords(records []ShapeRecord) []shape.Record {
	out := make([]shape.Record, len(records))
	for i, r := range records {
		out[i] = r.toDomain()
	}
	return out
}
