// Package movie is the top-level orchestration: a parsed movie header plus
// its dictionary and root timeline, reduced to a single SVG document
// (spec.md §6).
package movie

import (
	"filmstrip/dict"
	"filmstrip/geom"
	"filmstrip/internal/diag"
	"filmstrip/svgdoc"
	"filmstrip/timeline"
)

// Header is the movie-level metadata the upstream parser hands the core
// (spec.md §6).
type Header struct {
	FrameSize  geom.Rect
	FrameRate  float64 // already converted from 8.8 fixed point: epsilons/256
	FrameCount geom.Frame

	// Background is a SPEC_FULL.md supplement
	// (original_source/src/header.rs's Header.background_color); nil
	// means the source left it unset, falling back to black (spec.md §6).
	Background *geom.RGBA
}

// Config is the single build-time flag spec.md §6 calls for.
type Config struct {
	UseJS bool
}

// Movie is a fully-built dictionary and root timeline, ready to emit.
type Movie struct {
	Header Header
	Dict   *dict.Dictionary
	Root   *timeline.Timeline
}

// Build renders the movie to its SVG document text.
func (m *Movie) Build(cfg Config, sink *diag.Sink) (string, error) {
	return svgdoc.Assemble(
		m.Header.FrameSize,
		m.Header.FrameRate,
		m.Header.FrameCount,
		m.Header.Background,
		cfg.UseJS,
		m.Dict,
		m.Root,
		sink,
	)
}
