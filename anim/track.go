// Package anim turns per-frame object snapshots into the run-length
// compressed key-times/values sequences spec.md §4.6 describes, and
// renders them as SVG static attributes or discrete-mode animations.
package anim

import (
	"fmt"
	"strconv"
	"strings"
)

// ResultKind tags which of the three cases an Animation resolved to
// (spec.md §4.6's "three-case rule").
type ResultKind int

const (
	// ResultNone: no recorded changes, the attribute is omitted entirely.
	ResultNone ResultKind = iota
	// ResultStatic: exactly one change, at frame 0; a plain attribute.
	ResultStatic
	// ResultDiscrete: a keyTimes/values discrete-mode animation.
	ResultDiscrete
)

// Result is what an Animation resolves to once its track is complete.
type Result struct {
	Kind ResultKind

	// StaticValue is set when Kind == ResultStatic.
	StaticValue string

	// KeyTimes and Values are ';'-joined per-frame strings when
	// Kind == ResultDiscrete.
	KeyTimes string
	Values   string
}

// Animation is the generic key-times/values tracker spec.md §4.6 specifies
// for every independently-animated attribute (character href, scale,
// skewY, rotate, translate, color matrix). T must be comparable so Add can
// detect "value unchanged".
type Animation[T comparable] struct {
	frameCount int
	duration   string // movie_duration, pre-formatted for dur="..."
	initial    T
	current    T
	format     func(T) string

	keyTimes []float64
	values   []T
}

// New constructs an Animation. format renders a single T value as the
// string an SVG attribute or values="" entry expects; duration is the
// pre-formatted dur="" string (movie_duration in seconds).
func New[T comparable](frameCount int, duration string, initial T, format func(T) string) *Animation[T] {
	return &Animation[T]{
		frameCount: frameCount,
		duration:   duration,
		initial:    initial,
		current:    initial,
		format:     format,
	}
}

// Add records value at frame, per spec.md §4.6:
//   - if value equals the current value, nothing happens (idempotence,
//     spec.md §8);
//   - otherwise, if this is the first recorded change and frame > 0, the
//     initial value is first injected at frame 0 to anchor the animation
//     (spec.md §8's "first-change anchoring");
//   - then (frame/frameCount, value) is appended and becomes current.
func (a *Animation[T]) Add(frame int, value T) {
	if value == a.current {
		return
	}
	if len(a.keyTimes) == 0 && frame > 0 {
		a.keyTimes = append(a.keyTimes, 0)
		a.values = append(a.values, a.initial)
	}
	a.keyTimes = append(a.keyTimes, a.keyTime(frame))
	a.values = append(a.values, value)
	a.current = value
}

func (a *Animation[T]) keyTime(frame int) float64 {
	if a.frameCount == 0 {
		return 0
	}
	return float64(frame) / float64(a.frameCount)
}

// Resolve applies spec.md §4.6's three-case rule.
func (a *Animation[T]) Resolve() Result {
	switch len(a.keyTimes) {
	case 0:
		return Result{Kind: ResultNone}
	case 1:
		return Result{Kind: ResultStatic, StaticValue: a.format(a.values[0])}
	default:
		times := make([]string, len(a.keyTimes))
		for i, t := range a.keyTimes {
			times[i] = strconv.FormatFloat(t, 'g', -1, 64)
		}
		vals := make([]string, len(a.values))
		for i, v := range a.values {
			vals[i] = a.format(v)
		}
		return Result{
			Kind:     ResultDiscrete,
			KeyTimes: strings.Join(times, ";"),
			Values:   strings.Join(vals, ";"),
		}
	}
}

// Dur returns the pre-formatted movie duration string, for callers
// building the <animate>/<animateTransform> element from a ResultDiscrete.
func (a *Animation[T]) Dur() string { return a.duration }

// FormatFloats renders a fixed list of floats comma-joined, the convention
// SVG uses for compound values like translate's "x,y" (spec.md §8 scenario
// 4: values="0,0;100,0").
func FormatFloats(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// FormatDuration renders seconds as the SVG dur="Ns" string.
func FormatDuration(seconds float64) string {
	return fmt.Sprintf("%ss", strconv.FormatFloat(seconds, 'g', -1, 64))
}
