package timeline

import (
	"sort"

	"filmstrip/geom"
	"filmstrip/script"
)

// Layer is a sparse Frame → *Object time series: absence of a key means
// "no change since the last key". A nil value at a key means "removed at
// this frame" (spec.md §3). Queries return the value stored at the
// greatest key ≤ the queried frame (spec.md §4.4's layer query semantics).
type Layer struct {
	frames []geom.Frame
	values []*Object
}

// Set records the object (nil for "removed") at frame. Callers are
// expected to drive frames in non-decreasing order (the Builder does);
// setting the same frame again replaces that entry in place rather than
// appending a duplicate key.
func (l *Layer) Set(frame geom.Frame, obj *Object) {
	if n := len(l.frames); n > 0 && l.frames[n-1] == frame {
		l.values[n-1] = obj
		return
	}
	l.frames = append(l.frames, frame)
	l.values = append(l.values, obj)
}

// EntryAt reports the value explicitly recorded at frame, if any — it does
// not fall back to a prior key.
func (l *Layer) EntryAt(frame geom.Frame) (*Object, bool) {
	if n := len(l.frames); n > 0 && l.frames[n-1] == frame {
		return l.values[n-1], true
	}
	return nil, false
}

// LastBefore returns the value at the greatest recorded key strictly less
// than frame, or nil if there is none.
func (l *Layer) LastBefore(frame geom.Frame) *Object {
	i := sort.Search(len(l.frames), func(i int) bool { return l.frames[i] >= frame })
	if i == 0 {
		return nil
	}
	return l.values[i-1]
}

// At returns the value at the greatest recorded key ≤ frame (frame
// monotonicity, spec.md §8), or nil if frame precedes every key.
func (l *Layer) At(frame geom.Frame) *Object {
	i := sort.Search(len(l.frames), func(i int) bool { return l.frames[i] > frame })
	if i == 0 {
		return nil
	}
	return l.values[i-1]
}

// Frames returns the ascending list of frames at which this layer records
// a change.
func (l *Layer) Frames() []geom.Frame {
	return l.frames
}

// ValueAtIndex returns the value recorded at Frames()[i].
func (l *Layer) ValueAtIndex(i int) *Object {
	return l.values[i]
}

// Label is a named frame, with the source's under-documented "anchor" flag
// preserved without being acted on (spec.md §9 open questions).
type Label struct {
	Frame  geom.Frame
	Anchor bool
}

// AudioFormat is the codec of a streaming-audio track.
type AudioFormat int

const (
	AudioUnknown AudioFormat = iota
	AudioMP3
	AudioADPCM
	AudioPCM
)

// SoundStream is the single streaming-audio track a Timeline may carry
// (spec.md §3). At most one per Timeline; a second SoundStreamHead is an
// error (spec.md §9).
type SoundStream struct {
	Start   geom.Frame
	Format  AudioFormat
	Payload []byte
}

// StartSoundEvent is one queued one-shot sound at a frame. Envelope,
// in/out points, and sync-stop are recorded only as diagnostic triggers
// (spec.md §4.4); SoundID is validated against the dictionary as a
// supplement to the distilled spec (original_source/src/avm1/globals/sound.rs).
type StartSoundEvent struct {
	SoundID      geom.CharacterID
	HasEnvelope  bool
	HasInPoint   bool
	HasOutPoint  bool
	HasSyncStop  bool
}

// Timeline is the accumulated per-depth, per-frame object model plus
// per-frame actions, labels, sounds, and at most one sound stream
// (spec.md §3).
type Timeline struct {
	Layers      map[geom.Depth]*Layer
	Actions     map[geom.Frame][]script.CompiledScript
	Labels      map[string]Label
	Sounds      map[geom.Frame][]StartSoundEvent
	SoundStream *SoundStream
	FrameCount  geom.Frame
}

// New returns an empty Timeline ready to be driven by a Builder.
func New() *Timeline {
	return &Timeline{
		Layers:  map[geom.Depth]*Layer{},
		Actions: map[geom.Frame][]script.CompiledScript{},
		Labels:  map[string]Label{},
		Sounds:  map[geom.Frame][]StartSoundEvent{},
	}
}

// Depths returns the timeline's depths in ascending order (spec.md §5:
// "Each Timeline layer is processed in ascending depth").
func (t *Timeline) Depths() []geom.Depth {
	out := make([]geom.Depth, 0, len(t.Layers))
	for d := range t.Layers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ActionFrames returns the frames carrying DoAction scripts, ascending.
func (t *Timeline) ActionFrames() []geom.Frame {
	out := make([]geom.Frame, 0, len(t.Actions))
	for f := range t.Actions {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

