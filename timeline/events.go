package timeline

import (
	"filmstrip/geom"
	"filmstrip/script"
)

// PlaceObjectEvent carries the fields a source PlaceObject tag may set.
// Nil pointers mean "not present in this event" (spec.md §4.4). The
// booleans record presence of fields the core intentionally does not act
// on — class_name, filters, blend_mode, a visibility override, a
// background_color override, and nested clip actions — each of which
// only ever contributes a one-line "unsupported" diagnostic.
type PlaceObjectEvent struct {
	Depth geom.Depth

	CharacterID *geom.CharacterID
	IsMove      bool // is_update/is_move: replace character wholesale rather than assert it matches

	Matrix         *geom.Matrix
	Name           *string
	ColorTransform *geom.ColorTransformWithAlpha
	Ratio          *uint16

	// ClipDepth is a SPEC_FULL.md supplement (original_source/src/display_object/movie_clip.rs):
	// unlike the other unsupported fields, it is threaded through to the
	// Object, and the scripted-mode data object carries it. Static-mode
	// output never reads it, so the Builder also logs it as unsupported.
	ClipDepth *geom.Depth

	HasClassName       bool
	HasFilters         bool
	HasBlendMode       bool
	HasVisibility      bool
	HasBackgroundColor bool
	HasClipActions     bool
}

// RemoveObjectEvent removes the object at Depth as of the current frame.
type RemoveObjectEvent struct {
	Depth geom.Depth
}

// DoActionEvent is one frame's raw action bytecode, compiled via the
// script package before being appended to the timeline.
type DoActionEvent struct {
	Actions []script.Action
}

// FrameLabelEvent names the current frame.
type FrameLabelEvent struct {
	Name   string
	Anchor bool
}

// SoundStreamHeadEvent starts this timeline's single streaming-audio
// track.
type SoundStreamHeadEvent struct {
	Format AudioFormat
}

// SoundStreamBlockEvent carries one block of streaming-audio payload. For
// AudioMP3, Payload is the tag's raw bytes including the 2-byte sample
// count and 2-byte seek-samples prefix; the Builder strips both before
// appending to the stream buffer (spec.md §4.4).
type SoundStreamBlockEvent struct {
	Payload []byte
}
