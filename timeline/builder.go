package timeline

import (
	"fmt"

	"filmstrip/geom"
	"filmstrip/internal/diag"
	"filmstrip/script"
)

// CharacterLookup lets the Builder validate a StartSound's dictionary
// reference without importing the dict package (which itself depends on
// timeline, for Sprite and Button characters). dict.Dictionary implements
// this interface.
type CharacterLookup interface {
	Exists(id geom.CharacterID) bool
}

// Builder is the stateful accumulator described in spec.md §4.4: a linear
// event feed over a single timeline (the movie root, or a sprite) drives
// it one call at a time.
type Builder struct {
	frame    geom.Frame
	timeline *Timeline
	sink     *diag.Sink
	lookup   CharacterLookup

	sawSoundStreamHead bool
}

// NewBuilder starts a fresh Builder at frame 0.
func NewBuilder(sink *diag.Sink, lookup CharacterLookup) *Builder {
	return &Builder{timeline: New(), sink: sink, lookup: lookup}
}

func (b *Builder) layer(d geom.Depth) *Layer {
	l, ok := b.timeline.Layers[d]
	if !ok {
		l = &Layer{}
		b.timeline.Layers[d] = l
	}
	return l
}

func (b *Builder) unsupported(format string, args ...any) {
	b.sink.Log(diag.Timeline, diag.Unsupported, format, args...)
}

// PlaceObject applies spec.md §4.4's carry-forward placement semantics. It
// returns an error only for the structural violation of placing a
// non-move character id that does not match the depth's existing
// character (spec.md §7).
func (b *Builder) PlaceObject(ev PlaceObjectEvent) error {
	layer := b.layer(ev.Depth)

	obj, hasEntry := layer.EntryAt(b.frame)
	if !hasEntry {
		if prev := layer.LastBefore(b.frame); prev != nil {
			clone := prev.Clone()
			obj = &clone
		}
	}

	if obj == nil {
		if ev.CharacterID == nil {
			b.unsupported("PlaceObject at depth %d frame %d has no prior object and no character id, dropping", ev.Depth, b.frame)
			return nil
		}
		obj = &Object{Character: *ev.CharacterID}
	} else if ev.CharacterID != nil {
		if ev.IsMove {
			obj.Character = *ev.CharacterID
		} else if obj.Character != *ev.CharacterID {
			return fmt.Errorf("timeline: PlaceObject at depth %d frame %d: character %d does not match existing character %d on a non-move placement", ev.Depth, b.frame, *ev.CharacterID, obj.Character)
		}
	}

	if ev.Matrix != nil {
		obj.Matrix = *ev.Matrix
	}
	if ev.Name != nil {
		name := *ev.Name
		obj.Name = &name
	}
	if ev.ColorTransform != nil {
		obj.ColorTransform = *ev.ColorTransform
	}
	if ev.Ratio != nil {
		ratio := *ev.Ratio
		obj.Ratio = &ratio
	}
	if ev.ClipDepth != nil {
		clipDepth := *ev.ClipDepth
		obj.ClipDepth = &clipDepth
		b.unsupported("PlaceObject at depth %d frame %d: clip_depth is unsupported in static output", ev.Depth, b.frame)
	}

	if ev.HasClassName {
		b.unsupported("PlaceObject at depth %d frame %d: class_name is unsupported", ev.Depth, b.frame)
	}
	if ev.HasFilters {
		b.unsupported("PlaceObject at depth %d frame %d: filters are unsupported", ev.Depth, b.frame)
	}
	if ev.HasBlendMode {
		b.unsupported("PlaceObject at depth %d frame %d: blend_mode is unsupported", ev.Depth, b.frame)
	}
	if ev.HasVisibility {
		b.unsupported("PlaceObject at depth %d frame %d: visibility override is unsupported", ev.Depth, b.frame)
	}
	if ev.HasBackgroundColor {
		b.unsupported("PlaceObject at depth %d frame %d: background_color override is unsupported", ev.Depth, b.frame)
	}
	if ev.HasClipActions {
		b.unsupported("PlaceObject at depth %d frame %d: clip actions are unsupported", ev.Depth, b.frame)
	}

	layer.Set(b.frame, obj)
	return nil
}

// RemoveObject clears the object at Depth for the remainder of the
// timeline, starting at the current frame.
func (b *Builder) RemoveObject(ev RemoveObjectEvent) error {
	layer, ok := b.timeline.Layers[ev.Depth]
	if !ok {
		return fmt.Errorf("timeline: RemoveObject at depth %d frame %d: depth has no active layer", ev.Depth, b.frame)
	}
	layer.Set(b.frame, nil)
	return nil
}

// DoAction compiles the frame's action bytecode and appends it to the
// current frame's script list.
func (b *Builder) DoAction(ev DoActionEvent) {
	compiled := script.Compile(ev.Actions, b.sink)
	b.timeline.Actions[b.frame] = append(b.timeline.Actions[b.frame], compiled)
}

// FrameLabel names the current frame.
func (b *Builder) FrameLabel(ev FrameLabelEvent) {
	b.timeline.Labels[ev.Name] = Label{Frame: b.frame, Anchor: ev.Anchor}
}

// StartSound queues a one-shot sound at the current frame, validating the
// dictionary reference (a SPEC_FULL.md supplement over spec.md §4.4).
func (b *Builder) StartSound(ev StartSoundEvent) {
	if b.lookup != nil && !b.lookup.Exists(ev.SoundID) {
		b.sink.Log(diag.Timeline, diag.Warning, "StartSound at frame %d references undefined character %d", b.frame, ev.SoundID)
	}
	if ev.HasEnvelope {
		b.unsupported("StartSound at frame %d: envelope is unsupported", b.frame)
	}
	if ev.HasInPoint {
		b.unsupported("StartSound at frame %d: in_point is unsupported", b.frame)
	}
	if ev.HasOutPoint {
		b.unsupported("StartSound at frame %d: out_point is unsupported", b.frame)
	}
	if ev.HasSyncStop {
		b.unsupported("StartSound at frame %d: sync_stop is unsupported", b.frame)
	}
	b.timeline.Sounds[b.frame] = append(b.timeline.Sounds[b.frame], ev)
}

// SoundStreamHead starts the timeline's single streaming-audio track. A
// second call is an error (spec.md §9).
func (b *Builder) SoundStreamHead(ev SoundStreamHeadEvent) error {
	if b.sawSoundStreamHead {
		return fmt.Errorf("timeline: a second SoundStreamHead at frame %d is not permitted", b.frame)
	}
	b.sawSoundStreamHead = true
	b.timeline.SoundStream = &SoundStream{Start: b.frame, Format: ev.Format}
	return nil
}

// SoundStreamBlock appends one block of streaming-audio payload to the
// active stream, stripping the MP3 framing prefix per spec.md §4.4.
func (b *Builder) SoundStreamBlock(ev SoundStreamBlockEvent) {
	if b.timeline.SoundStream == nil {
		b.unsupported("SoundStreamBlock at frame %d with no active SoundStreamHead, dropping", b.frame)
		return
	}
	payload := ev.Payload
	if b.timeline.SoundStream.Format == AudioMP3 {
		const mp3HeaderLen = 4 // 2-byte sample count + 2-byte seek-samples prefix
		if len(payload) < mp3HeaderLen {
			b.unsupported("SoundStreamBlock at frame %d: MP3 block shorter than its header, dropping", b.frame)
			return
		}
		payload = payload[mp3HeaderLen:]
	}
	b.timeline.SoundStream.Payload = append(b.timeline.SoundStream.Payload, payload...)
}

// ShowFrame advances the current frame.
func (b *Builder) ShowFrame() {
	b.frame = b.frame.Add(1)
}

// Finish diagnoses (without failing) a mismatch between the accumulated
// frame count and the stream's declared count, then sets FrameCount to the
// declared value.
func (b *Builder) Finish(expectedFrameCount geom.Frame) *Timeline {
	if b.frame != expectedFrameCount {
		b.sink.Log(diag.Timeline, diag.Warning, "accumulated %d frames but the stream declared %d, using the declared count", b.frame, expectedFrameCount)
	}
	b.timeline.FrameCount = expectedFrameCount
	return b.timeline
}
