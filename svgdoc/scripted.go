package svgdoc

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"filmstrip/button"
	"filmstrip/dict"
	"filmstrip/geom"
	"filmstrip/internal/diag"
	"filmstrip/script"
	"filmstrip/svgxml"
	"filmstrip/timeline"
)

// runtimeScript is the fixed, data-driven companion interpreter: an opaque
// asset the core only guarantees a data object's shape to (spec.md §9).
//
//go:embed runtime.js
var runtimeScript string

type sceneData struct {
	FrameRate  float64                  `json:"frameRate"`
	Root       timelineData             `json:"root"`
	Dictionary map[string]characterData `json:"dictionary"`
}

// timelineData is the full wire form of a Timeline (spec.md §3): the
// per-depth object layers, frame labels, per-frame compiled scripts,
// per-frame one-shot sounds, and the single streaming-audio track, if any.
type timelineData struct {
	FrameCount  int                               `json:"frameCount"`
	Layers      map[string][]objectEntry          `json:"layers"`
	Labels      map[string]labelEntry             `json:"labels"`
	Actions     map[string][]compiledScriptEntry  `json:"actions"`
	Sounds      map[string][]startSoundEntry      `json:"sounds"`
	SoundStream *soundStreamEntry                 `json:"soundStream,omitempty"`
}

// placementEntry is a character placement: which character, its matrix,
// and the two optional supplementary fields (spec.md §3's Object).
type placementEntry struct {
	Character *int       `json:"character"`
	Matrix    [6]float64 `json:"matrix"`
	Ratio     *int       `json:"ratio,omitempty"`
	ClipDepth *int       `json:"clipDepth,omitempty"`
}

// objectEntry is one frame-indexed entry of a timeline layer.
type objectEntry struct {
	Frame int `json:"frame"`
	placementEntry
}

type labelEntry struct {
	Frame  int  `json:"frame"`
	Anchor bool `json:"anchor"`
}

// compiledScriptEntry is the wire form of script.CompiledScript: operands
// are rendered through Value.String() rather than duplicated as typed
// fields, since the runtime only ever needs to display or log them, never
// re-execute them (spec.md §1's Non-goals: "executing scripts at build
// time").
type compiledScriptEntry struct {
	Ops []opEntry `json:"ops"`
}

type opEntry struct {
	Kind     string   `json:"kind"`
	Frame    int      `json:"frame,omitempty"`
	Label    string   `json:"label,omitempty"`
	Url      string   `json:"url,omitempty"`
	Target   string   `json:"target,omitempty"`
	Name     string   `json:"name,omitempty"`
	Value    string   `json:"value,omitempty"`
	Callee   string   `json:"callee,omitempty"`
	Receiver string   `json:"receiver,omitempty"`
	Args     []string `json:"args,omitempty"`
}

type startSoundEntry struct {
	SoundID     int  `json:"soundId"`
	HasEnvelope bool `json:"hasEnvelope,omitempty"`
	HasInPoint  bool `json:"hasInPoint,omitempty"`
	HasOutPoint bool `json:"hasOutPoint,omitempty"`
	HasSyncStop bool `json:"hasSyncStop,omitempty"`
}

type soundStreamEntry struct {
	Start   int    `json:"start"`
	Format  string `json:"format"`
	Payload []byte `json:"payload"`
}

// soundData is the wire form of dict.Sound.
type soundData struct {
	Format     string `json:"format"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
	Data       []byte `json:"data"`
}

// buttonData is the wire form of button.Button: per-state placement maps
// plus the compiled event-handler dispatch table (spec.md §4.7's "per-state
// object maps and event-handler scripts").
type buttonData struct {
	Up       map[string]placementEntry `json:"up"`
	Over     map[string]placementEntry `json:"over"`
	Down     map[string]placementEntry `json:"down"`
	HitTest  map[string]placementEntry `json:"hitTest"`
	Handlers []handlerEntry            `json:"handlers"`
}

type handlerEntry struct {
	Triggers []eventEntry        `json:"triggers"`
	Body     compiledScriptEntry `json:"body"`
}

type eventEntry struct {
	Kind    string `json:"kind"`
	KeyCode int    `json:"keyCode,omitempty"`
}

type characterData struct {
	Kind   string        `json:"kind"`
	Sprite *timelineData `json:"sprite,omitempty"`
	Sound  *soundData    `json:"sound,omitempty"`
	Button *buttonData   `json:"button,omitempty"`
}

// scriptNode builds the scripted-mode <script> element: the embedded data
// object the timeline/dictionary reduce to, followed by the companion
// runtime that reads it (spec.md §4.6's "Scripted SVG" output mode).
func (a *assembler) scriptNode(frameRate float64, d *dict.Dictionary, root *timeline.Timeline) *svgxml.Node {
	data := sceneData{
		FrameRate:  frameRate,
		Root:       buildTimelineData(root),
		Dictionary: map[string]characterData{},
	}
	for _, id := range d.Ids() {
		c, _ := d.Get(id)
		data.Dictionary[fmt.Sprintf("%d", id)] = characterDataFor(c)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		a.sink.Log(diag.Document, diag.Warning, "marshaling scripted data object: %v", err)
		payload = []byte("{}")
	}

	script := svgxml.New("script").Attr("type", "application/ecmascript")
	script.SetText(fmt.Sprintf(
		"%s\nwindow.__filmstripData = %s;\nwindow.__filmstripRuntime && window.__filmstripRuntime.start(window.__filmstripData);\n",
		runtimeScript, string(payload),
	))
	return script
}

func buildTimelineData(tl *timeline.Timeline) timelineData {
	layers := map[string][]objectEntry{}
	for _, depth := range tl.Depths() {
		layer := tl.Layers[depth]
		var entries []objectEntry
		for i, f := range layer.Frames() {
			entries = append(entries, objectEntryFor(int(f), layer.ValueAtIndex(i)))
		}
		layers[fmt.Sprintf("%d", depth)] = entries
	}

	labels := map[string]labelEntry{}
	for name, l := range tl.Labels {
		labels[name] = labelEntry{Frame: int(l.Frame), Anchor: l.Anchor}
	}

	actions := map[string][]compiledScriptEntry{}
	for _, f := range tl.ActionFrames() {
		scripts := tl.Actions[f]
		entries := make([]compiledScriptEntry, len(scripts))
		for i, cs := range scripts {
			entries[i] = compiledScriptEntryFor(cs)
		}
		actions[fmt.Sprintf("%d", f)] = entries
	}

	sounds := map[string][]startSoundEntry{}
	for f, events := range tl.Sounds {
		entries := make([]startSoundEntry, len(events))
		for i, ev := range events {
			entries[i] = startSoundEntry{
				SoundID:     int(ev.SoundID),
				HasEnvelope: ev.HasEnvelope,
				HasInPoint:  ev.HasInPoint,
				HasOutPoint: ev.HasOutPoint,
				HasSyncStop: ev.HasSyncStop,
			}
		}
		sounds[fmt.Sprintf("%d", f)] = entries
	}

	var soundStream *soundStreamEntry
	if tl.SoundStream != nil {
		soundStream = &soundStreamEntry{
			Start:   int(tl.SoundStream.Start),
			Format:  audioFormatName(tl.SoundStream.Format),
			Payload: tl.SoundStream.Payload,
		}
	}

	return timelineData{
		FrameCount:  int(tl.FrameCount),
		Layers:      layers,
		Labels:      labels,
		Actions:     actions,
		Sounds:      sounds,
		SoundStream: soundStream,
	}
}

func objectEntryFor(frame int, obj *timeline.Object) objectEntry {
	return objectEntry{Frame: frame, placementEntry: placementFor(obj)}
}

func placementFor(obj *timeline.Object) placementEntry {
	var e placementEntry
	if obj == nil {
		return e
	}
	id := int(obj.Character)
	e.Character = &id
	e.Matrix = [6]float64{
		obj.Matrix.ScaleX.Float64(), obj.Matrix.RotateSkew0.Float64(),
		obj.Matrix.RotateSkew1.Float64(), obj.Matrix.ScaleY.Float64(),
		float64(obj.Matrix.TranslateX), float64(obj.Matrix.TranslateY),
	}
	if obj.Ratio != nil {
		r := int(*obj.Ratio)
		e.Ratio = &r
	}
	if obj.ClipDepth != nil {
		cd := int(*obj.ClipDepth)
		e.ClipDepth = &cd
	}
	return e
}

func characterDataFor(c dict.Character) characterData {
	switch c.Kind {
	case dict.KindSprite:
		if c.Sprite != nil {
			td := buildTimelineData(c.Sprite)
			return characterData{Kind: "sprite", Sprite: &td}
		}
	case dict.KindSound:
		sd := soundDataFor(c.Sound)
		return characterData{Kind: "sound", Sound: &sd}
	case dict.KindButton:
		bd := buttonDataFor(c.Button)
		return characterData{Kind: "button", Button: &bd}
	}
	return characterData{Kind: kindName(c.Kind)}
}

func soundDataFor(s dict.Sound) soundData {
	return soundData{
		Format:     audioFormatName(s.Format),
		SampleRate: int(s.SampleRate),
		Channels:   int(s.Channels),
		Data:       s.Data,
	}
}

func buttonDataFor(b button.Button) buttonData {
	handlers := make([]handlerEntry, len(b.Handlers))
	for i, h := range b.Handlers {
		handlers[i] = handlerEntryFor(h)
	}
	return buttonData{
		Up:       placementsByDepth(b.Objects.Up),
		Over:     placementsByDepth(b.Objects.Over),
		Down:     placementsByDepth(b.Objects.Down),
		HitTest:  placementsByDepth(b.Objects.HitTest),
		Handlers: handlers,
	}
}

func placementsByDepth(objs map[geom.Depth]timeline.Object) map[string]placementEntry {
	out := make(map[string]placementEntry, len(objs))
	for depth, obj := range objs {
		o := obj
		out[fmt.Sprintf("%d", depth)] = placementFor(&o)
	}
	return out
}

func handlerEntryFor(h button.EventHandler) handlerEntry {
	triggers := make([]eventEntry, len(h.Triggers))
	for i, t := range h.Triggers {
		triggers[i] = eventEntry{Kind: eventKindName(t.Kind), KeyCode: int(t.KeyCode)}
	}
	return handlerEntry{Triggers: triggers, Body: compiledScriptEntryFor(h.Body)}
}

func eventKindName(k button.EventKind) string {
	switch k {
	case button.HoverIn:
		return "hoverIn"
	case button.HoverOut:
		return "hoverOut"
	case button.Down:
		return "down"
	case button.Up:
		return "up"
	case button.DragOut:
		return "dragOut"
	case button.DragIn:
		return "dragIn"
	case button.UpOut:
		return "upOut"
	case button.DownIn:
		return "downIn"
	case button.DownOut:
		return "downOut"
	case button.KeyPress:
		return "keyPress"
	default:
		return "unknown"
	}
}

func compiledScriptEntryFor(cs script.CompiledScript) compiledScriptEntry {
	ops := make([]opEntry, len(cs.Ops))
	for i, op := range cs.Ops {
		ops[i] = opEntryFor(op)
	}
	return compiledScriptEntry{Ops: ops}
}

func opEntryFor(op script.Op) opEntry {
	e := opEntry{Kind: opKindName(op.Kind)}
	switch op.Kind {
	case script.OpGotoFrame:
		e.Frame = int(op.Frame)
	case script.OpGotoLabel:
		e.Label = op.Label
	case script.OpGetUrl:
		e.Url = op.Url
		e.Target = op.Target
	case script.OpGetVar:
		e.Name = op.Name
	case script.OpSetVar:
		e.Name = op.Name
		e.Value = op.Value.String()
	case script.OpCall:
		e.Callee = op.Callee.String()
		e.Args = valuesToStrings(op.Args)
	case script.OpCallMethod:
		e.Receiver = op.Receiver.String()
		e.Name = op.Name
		e.Args = valuesToStrings(op.Args)
	}
	return e
}

func valuesToStrings(values []script.Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func audioFormatName(f timeline.AudioFormat) string {
	switch f {
	case timeline.AudioMP3:
		return "mp3"
	case timeline.AudioADPCM:
		return "adpcm"
	case timeline.AudioPCM:
		return "pcm"
	default:
		return "unknown"
	}
}

func opKindName(k script.OpKind) string {
	switch k {
	case script.OpPlay:
		return "play"
	case script.OpStop:
		return "stop"
	case script.OpGotoFrame:
		return "gotoFrame"
	case script.OpGotoLabel:
		return "gotoLabel"
	case script.OpGetUrl:
		return "getUrl"
	case script.OpGetVar:
		return "getVar"
	case script.OpSetVar:
		return "setVar"
	case script.OpCall:
		return "call"
	case script.OpCallMethod:
		return "callMethod"
	default:
		return "unknown"
	}
}

func kindName(k dict.Kind) string {
	switch k {
	case dict.KindShape:
		return "shape"
	case dict.KindBitmap:
		return "bitmap"
	case dict.KindSound:
		return "sound"
	case dict.KindSprite:
		return "sprite"
	case dict.KindButton:
		return "button"
	case dict.KindDynamicText:
		return "dynamicText"
	default:
		return "unknown"
	}
}
