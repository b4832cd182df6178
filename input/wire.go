// Package input is the CLI's own wire format: a JSON encoding of the
// "already-parsed tag stream" spec.md §1 assumes as the core's input (the
// low-level tag parser itself is out of scope). Stream and Tag are the
// closed tagged unions that carry one file's movie header and ordered tag
// records, in the same style as dict.Character and script.Op.
package input

import (
	"filmstrip/button"
	"filmstrip/dict"
	"filmstrip/geom"
	"filmstrip/shape"
	"filmstrip/timeline"
)

// Header mirrors movie.Header on the wire: FrameRate is already the f64
// spec.md §6 calls for (epsilons/256 from the source's 8.8 fixed point).
type Header struct {
	FrameSize  geom.Rect
	FrameRate  float64
	FrameCount geom.Frame
	Background *geom.RGBA
}

// Stream is the root of one input file.
type Stream struct {
	Header Header
	Tags   []Tag
}

// ShapeRecordKind tags which field of a ShapeRecord is populated, mirroring
// shape.Record's StyleChangeRecord/EdgeRecord split for JSON (an interface
// field can't unmarshal on its own).
type ShapeRecordKind int

const (
	ShapeRecordStyleChange ShapeRecordKind = iota
	ShapeRecordEdge
)

// ShapeRecord is one wire element of a DefineShape's record stream.
type ShapeRecord struct {
	Kind ShapeRecordKind

	MoveTo        *geom.Point
	LeftFill      *shape.StyleIndex
	RightFill     *shape.StyleIndex
	LineStyle     *shape.StyleIndex
	NewFillStyles []shape.FillStyle
	NewLineStyles []shape.LineStyle

	Delta        geom.Point
	ControlDelta *geom.Point
}

func (r ShapeRecord) toDomain() shape.Record {
	if r.Kind == ShapeRecordEdge {
		return shape.EdgeRecord{Delta: r.Delta, ControlDelta: r.ControlDelta}
	}
	return shape.StyleChangeRecord{
		MoveTo:        r.MoveTo,
		LeftFill:      r.LeftFill,
		RightFill:     r.RightFill,
		LineStyle:     r.LineStyle,
		NewFillStyles: r.NewFillStyles,
		NewLineStyles: r.NewLineStyles,
	}
}

// DefineShape is the wire form of shape.DefineShape plus its CharacterID.
type DefineShape struct {
	CharacterID       geom.CharacterID
	Center            geom.Point
	InitialFillStyles []shape.FillStyle
	InitialLineStyles []shape.LineStyle
	Records           []ShapeRecord
}

// DefineSprite holds a nested tag stream with its own frame count; sprite
// characters are dictionary entries whose Sprite is built by recursing
// through buildTimeline (spec.md §4.2).
type DefineSprite struct {
	CharacterID geom.CharacterID
	FrameCount  geom.Frame
	Tags        []Tag
}

// DefineBitmap, DefineSound, and DefineDynamicText wire the three leaf
// dictionary kinds that carry no nested tag stream of their own.
type DefineBitmap struct {
	CharacterID geom.CharacterID
	Bitmap      dict.Bitmap
}

type DefineSound struct {
	CharacterID geom.CharacterID
	Sound       dict.Sound
}

type DefineDynamicText struct {
	CharacterID geom.CharacterID
	Text        dict.DynamicText
}

// DefineButton wires a button.DefineButton record plus its CharacterID.
type DefineButton struct {
	CharacterID geom.CharacterID
	Def         button.DefineButton
}

// TagKind tags which field of a Tag is populated.
type TagKind int

const (
	TagDefineShape TagKind = iota
	TagDefineSprite
	TagDefineBitmap
	TagDefineSound
	TagDefineDynamicText
	TagDefineButton
	TagPlaceObject
	TagRemoveObject
	TagShowFrame
	TagDoAction
	TagFrameLabel
	TagStartSound
	TagSoundStreamHead
	TagSoundStreamBlock
	TagEnd
)

// Tag is one record of a tag stream: a closed tagged union over every
// record kind the timeline Builder and Dictionary consume.
type Tag struct {
	Kind TagKind

	DefineShape       *DefineShape
	DefineSprite      *DefineSprite
	DefineBitmap      *DefineBitmap
	DefineSound       *DefineSound
	DefineDynamicText *DefineDynamicText
	DefineButton      *DefineButton

	PlaceObject      *timeline.PlaceObjectEvent
	RemoveObject     *timeline.RemoveObjectEvent
	DoAction         *timeline.DoActionEvent
	FrameLabel       *timeline.FrameLabelEvent
	StartSound       *timeline.StartSoundEvent
	SoundStreamHead  *timeline.SoundStreamHeadEvent
	SoundStreamBlock *timeline.SoundStreamBlockEvent
}
