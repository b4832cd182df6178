// Package timeline accumulates a per-depth, per-frame object model from a
// linear placement/removal/action event feed over a single timeline — the
// movie root or a sprite (spec.md §4.4).
package timeline

import "filmstrip/geom"

// Object is a snapshot of a placed character at a single (depth, frame)
// cell: cloneable, with no shared mutable state (spec.md §3).
type Object struct {
	Character      geom.CharacterID
	Matrix         geom.Matrix
	Name           *string
	ColorTransform geom.ColorTransformWithAlpha
	Ratio          *uint16

	// ClipDepth is a SPEC_FULL.md supplement: in scripted mode it is
	// threaded through to the embedded runtime's data object; the bundled
	// runtime.js does not read it (original_source/src/display_object/movie_clip.rs).
	ClipDepth *geom.Depth
}

// Clone returns a deep copy: Name and Ratio are independently owned
// pointers so mutating the clone never affects the original.
func (o Object) Clone() Object {
	c := o
	if o.Name != nil {
		name := *o.Name
		c.Name = &name
	}
	if o.Ratio != nil {
		ratio := *o.Ratio
		c.Ratio = &ratio
	}
	if o.ClipDepth != nil {
		clipDepth := *o.ClipDepth
		c.ClipDepth = &clipDepth
	}
	return c
}
