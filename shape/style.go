// Package shape turns a DefineShape record's style-change/edge stream into
// a Shape: per-fill and per-stroke StyledPath lists whose edges are
// contiguous and consistently oriented (spec.md §4.1).
package shape

import "filmstrip/geom"

// SpreadMode is a gradient's behavior past its 0..1 ramp. Carried through
// from original_source/ (src/shape.rs), which the distilled spec.md leaves
// implicit.
type SpreadMode int

const (
	SpreadPad SpreadMode = iota
	SpreadReflect
	SpreadRepeat
)

// InterpolationMode is the color space a gradient ramps through.
type InterpolationMode int

const (
	InterpolationRGB InterpolationMode = iota
	InterpolationLinearRGB
)

// GradientStop is one ramp stop: a ratio in [0,255] and a color.
type GradientStop struct {
	Ratio uint8
	Color geom.RGBA
}

// Gradient is a linear or radial color ramp in its own coordinate space.
type Gradient struct {
	Matrix        geom.Matrix
	Spread        SpreadMode
	Interpolation InterpolationMode
	Stops         []GradientStop
}

// FillStyleKind tags the variant a FillStyle holds.
type FillStyleKind int

const (
	FillSolid FillStyleKind = iota
	FillLinearGradient
	FillRadialGradient
	FillBitmap
)

// FillStyle is one of {solid RGBA, linear gradient, radial gradient, bitmap
// reference} (spec.md §3).
type FillStyle struct {
	Kind FillStyleKind

	Solid geom.RGBA // FillSolid

	Gradient Gradient // FillLinearGradient, FillRadialGradient

	Bitmap      geom.CharacterID // FillBitmap
	BitmapClip  bool             // clipped (non-repeating) bitmap fill
	BitmapSmooth bool
}

// CapStyle is a stroke's line-cap treatment. Stored but unused by the
// emitter per spec.md §3.
type CapStyle int

const (
	CapRound CapStyle = iota
	CapNone
	CapSquare
)

// JoinStyle is a stroke's line-join treatment. Stored but unused by the
// emitter per spec.md §3.
type JoinStyle int

const (
	JoinRound JoinStyle = iota
	JoinBevel
	JoinMiter
)

// LineStyle is a stroke: width, fill, a closed-path hint, and caps/joins
// that the emitter carries but never reads.
type LineStyle struct {
	Width uint16
	Fill  FillStyle
	Close bool

	StartCap, EndCap CapStyle
	Join             JoinStyle
	MiterLimit       uint16
}

// StyledPath pairs a style (FillStyle or LineStyle) with the ordered edge
// list drawn in that style. S is generic because the normalizer produces
// both fill paths and stroke paths through the same untangling algorithm.
type StyledPath[S any] struct {
	Style S
	Edges []geom.Edge
}

// Closed reports whether p renders as a closed subpath: its first edge's
// From equals its last edge's To (spec.md §4.1's closure detection).
func (p StyledPath[S]) Closed() bool {
	if len(p.Edges) == 0 {
		return false
	}
	return p.Edges[0].From == p.Edges[len(p.Edges)-1].To
}

// Shape is the normalized output of DefineShape: per-fill and per-stroke
// StyledPath lists, each internally contiguous.
type Shape struct {
	Center  geom.Point
	Fills   []StyledPath[FillStyle]
	Strokes []StyledPath[LineStyle]
}
