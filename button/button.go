// Package button assembles a DefineButton record's character states and
// conditional event handlers (spec.md §4.5).
package button

import (
	"filmstrip/geom"
	"filmstrip/internal/diag"
	"filmstrip/script"
	"filmstrip/timeline"
)

// EventKind is one of the nine mouse-transition events or a key press
// (spec.md §3).
type EventKind int

const (
	HoverIn EventKind = iota
	HoverOut
	Down
	Up
	DragOut
	DragIn
	UpOut
	DownIn
	DownOut
	KeyPress
)

// Event is a trigger condition for an EventHandler. KeyCode is only
// meaningful when Kind is KeyPress.
type Event struct {
	Kind    EventKind
	KeyCode uint8
}

// transitionBits maps the nine mouse-transition bits, low to high, to the
// event they signal (spec.md §3's fixed mapping).
var transitionBits = [9]EventKind{
	HoverIn, HoverOut, Down, Up, DragOut, DragIn, UpOut, DownIn, DownOut,
}

// EventHandler is one conditional-action block: the set of events that
// fire it and its compiled body.
type EventHandler struct {
	Triggers []Event
	Body     script.CompiledScript
}

// PerState holds one value per button visual state.
type PerState[T any] struct {
	Up      T
	Over    T
	Down    T
	HitTest T
}

// Button is the assembled output: per-state depth→Object maps plus the
// list of event handlers (spec.md §3).
type Button struct {
	Objects  PerState[map[geom.Depth]timeline.Object]
	Handlers []EventHandler
}

// CharacterRecord places one character into one or more of the button's
// four visual states.
type CharacterRecord struct {
	CharacterID geom.CharacterID
	Depth       geom.Depth

	Matrix         geom.Matrix
	ColorTransform geom.ColorTransformWithAlpha

	StateUp, StateOver, StateDown, StateHitTest bool

	HasFilters   bool
	HasBlendMode bool
}

// ConditionalAction is one button action block: a 9-bit mouse-transition
// mask, an optional 7-bit key-press code (0 = none), and the parsed actions.
type ConditionalAction struct {
	TransitionMask uint16
	KeyCode        uint8
	Actions        []script.Action
}

// DefineButton is the parsed input to Assemble.
type DefineButton struct {
	Characters []CharacterRecord
	Conditions []ConditionalAction
}

// Assemble builds a Button per spec.md §4.5.
func Assemble(def DefineButton, sink *diag.Sink) Button {
	var btn Button
	btn.Objects.Up = map[geom.Depth]timeline.Object{}
	btn.Objects.Over = map[geom.Depth]timeline.Object{}
	btn.Objects.Down = map[geom.Depth]timeline.Object{}
	btn.Objects.HitTest = map[geom.Depth]timeline.Object{}

	for _, rec := range def.Characters {
		if rec.HasFilters {
			sink.Log(diag.Button, diag.Unsupported, "character %d at depth %d: filters are unsupported", rec.CharacterID, rec.Depth)
		}
		if rec.HasBlendMode {
			sink.Log(diag.Button, diag.Unsupported, "character %d at depth %d: blend_mode is unsupported", rec.CharacterID, rec.Depth)
		}

		obj := timeline.Object{
			Character:      rec.CharacterID,
			Matrix:         rec.Matrix,
			ColorTransform: rec.ColorTransform,
		}

		if rec.StateUp {
			btn.Objects.Up[rec.Depth] = obj
		}
		if rec.StateOver {
			btn.Objects.Over[rec.Depth] = obj
		}
		if rec.StateDown {
			btn.Objects.Down[rec.Depth] = obj
		}
		if rec.StateHitTest {
			btn.Objects.HitTest[rec.Depth] = obj
		}
	}

	for _, cond := range def.Conditions {
		var triggers []Event
		for bit, kind := range transitionBits {
			if cond.TransitionMask&(1<<uint(bit)) != 0 {
				triggers = append(triggers, Event{Kind: kind})
			}
		}
		if cond.KeyCode != 0 {
			triggers = append(triggers, Event{Kind: KeyPress, KeyCode: cond.KeyCode})
		}

		btn.Handlers = append(btn.Handlers, EventHandler{
			Triggers: triggers,
			Body:     script.Compile(cond.Actions, sink),
		})
	}

	return btn
}
