// Package diag collects the one-line diagnostics the pipeline emits for
// recoverable problems: unsupported tags or fields, too-dynamic scripts,
// out-of-range style indices, malformed frame counts. None of these abort a
// build (spec.md §7); the pipeline instead keeps every Entry it logs and
// hands the list back to the caller once the document is built.
//
// The shape here is modeled on RetroCodeRamen-Nitro-Core-DX's
// internal/debug.Logger: a Component tag, a Level, and a free-form message,
// collected into an ordered list. That logger buffers through a channel
// because its emulator runs its CPU/PPU/APU on separate goroutines; this
// pipeline is specified as strictly single-threaded and synchronous
// (spec.md §5), so Sink is a plain slice with no locking.
package diag

import "fmt"

// Level is the severity of a diagnostic.
type Level int

const (
	// Warning covers recoverable structural oddities: an out-of-range
	// style index, a StartSound naming an undefined character, a frame
	// count that differs from the declared one.
	Warning Level = iota
	// Unsupported covers a recognized but unimplemented tag or field.
	Unsupported
	// TooDynamic covers a script construct the compiler can't lower.
	TooDynamic
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Unsupported:
		return "unsupported"
	case TooDynamic:
		return "too-dynamic"
	default:
		return "diag"
	}
}

// Component names the subsystem a diagnostic came from.
type Component string

const (
	Shape    Component = "shape"
	Script   Component = "script"
	Timeline Component = "timeline"
	Button   Component = "button"
	Dict     Component = "dict"
	Anim     Component = "anim"
	Document Component = "document"
)

// Entry is a single diagnostic message.
type Entry struct {
	Component Component
	Level     Level
	Message   string
}

// Format renders an Entry as the one-line message spec.md §6 calls for.
func (e Entry) Format() string {
	return fmt.Sprintf("[%s] %s: %s", e.Component, e.Level, e.Message)
}

// Sink accumulates diagnostics over the course of a single Build call.
type Sink struct {
	entries []Entry
}

// NewSink returns an empty Sink.
func NewSink() *Sink { return &Sink{} }

// Log appends a formatted diagnostic.
func (s *Sink) Log(component Component, level Level, format string, args ...any) {
	s.entries = append(s.entries, Entry{
		Component: component,
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
	})
}

// Entries returns every diagnostic logged so far, in emission order.
func (s *Sink) Entries() []Entry {
	return s.entries
}

// Len reports how many diagnostics have been logged.
func (s *Sink) Len() int { return len(s.entries) }
