// Package geom holds the primitive value types the rest of the pipeline is
// built from: points and edges in the source's sub-pixel coordinate system,
// the affine matrix and color transform the format uses to place and tint
// characters, and the small integer key types (CharacterID, Depth, Frame)
// that index the dictionary and the timeline.
//
// Everything here is a value type. None of it owns a buffer or holds a
// reference to parser state; it is safe to copy and compare with ==.
package geom

import "math"

// CharacterID is the dictionary key. Zero is never assigned by a define tag
// in practice, but the type does not special-case it.
type CharacterID uint16

// Depth is a rendering stack index; lower depths sit farther back.
type Depth uint16

// Frame is a zero-based timeline tick.
type Frame uint16

// Add returns f+n, matching the spec's "Ordered, addable" requirement for
// Frame. Callers are responsible for any overflow policy; the format caps
// frame counts well under 65536 in practice.
func (f Frame) Add(n Frame) Frame { return f + n }

// Point is a signed coordinate in the source's sub-pixel unit system (20
// units per display pixel).
type Point struct {
	X, Y int32
}

// Add returns p+q component-wise.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q component-wise.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Rect is an axis-aligned bounding box in sub-pixel units, used for both
// the movie's frame size and a dynamic-text character's layout bounds.
type Rect struct {
	XMin, YMin, XMax, YMax int32
}

// Edge is a straight or quadratic segment from one point to another. A nil
// Control means a straight line; otherwise the segment is a quadratic curve
// through Control.
type Edge struct {
	From, To Point
	Control  *Point
}

// Flip swaps From and To, preserving the control point. Used when a styled
// path's "natural" direction runs opposite to how the source authored it.
func (e Edge) Flip() Edge {
	return Edge{From: e.To, To: e.From, Control: e.Control}
}

// RGBA is a solid 8-bit-per-channel color.
type RGBA struct {
	R, G, B, A uint8
}

// Opaque returns an RGBA with full alpha.
func Opaque(r, g, b uint8) RGBA { return RGBA{r, g, b, 0xff} }

// Fixed16_16 is a signed 16.16 fixed-point number, the encoding the format
// uses for matrix scale and skew components. The integer representation is
// load-bearing: callers must not widen it implicitly before converting.
type Fixed16_16 int32

// Float64 divides by 2^16.
func (f Fixed16_16) Float64() float64 { return float64(f) / 65536.0 }

// FixedFromFloat64 rounds a float64 into 16.16 fixed point.
func FixedFromFloat64(v float64) Fixed16_16 { return Fixed16_16(math.Round(v * 65536.0)) }

// Fixed8_8 is a signed 8.8 fixed-point number, used for color transform
// multipliers and for the movie header's frame rate.
type Fixed8_8 int16

// Float64 divides by 2^8.
func (f Fixed8_8) Float64() float64 { return float64(f) / 256.0 }

// Matrix is the format's affine transform: a 2x2 linear part stored as
// 16.16 fixed point, plus an integer translate.
//
//	[ ScaleX       RotateSkew1 ]   [x]   [TranslateX]
//	[ RotateSkew0  ScaleY      ] * [y] + [TranslateY]
type Matrix struct {
	ScaleX, ScaleY           Fixed16_16
	RotateSkew0, RotateSkew1 Fixed16_16
	TranslateX, TranslateY   int32
}

// IdentityMatrix is the identity affine transform.
var IdentityMatrix = Matrix{
	ScaleX: FixedFromFloat64(1), ScaleY: FixedFromFloat64(1),
}

// ColorTransformWithAlpha is four 8.8 fixed-point multipliers and four
// signed 16-bit additive terms, one per RGBA channel.
type ColorTransformWithAlpha struct {
	RMul, GMul, BMul, AMul Fixed8_8
	RAdd, GAdd, BAdd, AAdd int16
}

// IdentityColorTransform leaves a color unchanged.
var IdentityColorTransform = ColorTransformWithAlpha{
	RMul: 256, GMul: 256, BMul: 256, AMul: 256,
}

// Decomposed holds a Matrix split into the independent components an SVG
// "translate rotate skewY scale" transform chain can express.
type Decomposed struct {
	ScaleX, ScaleY float64
	SkewYDeg       float64
	RotateDeg      float64
	TranslateX     int32
	TranslateY     int32
}

// Decompose splits a Matrix's linear part into scale/skew/rotate, per
// spec.md §4.6: given [[a b][c d]],
//
//	rotate = atan2(b, a)
//	skewY  = atan2(d, c) - pi/2 - rotate
//	scaleX = sqrt(a^2 + b^2)
//	scaleY = sqrt(c^2 + d^2) * cos(skewY)
//
// where a=ScaleX, b=RotateSkew1, c=RotateSkew0, d=ScaleY in the matrix
// layout above. Angles come back in degrees. Degenerate matrices do not
// fail: with a=b=0 the rotate angle and scaleX are 0, and with c=d=0
// scaleY is 0 and skewY is -90 degrees minus the rotate angle. Recompose
// only inverts Decompose for a^2+b^2>0 and c^2+d^2>0.
func Decompose(m Matrix) Decomposed {
	a := m.ScaleX.Float64()
	b := m.RotateSkew1.Float64()
	c := m.RotateSkew0.Float64()
	d := m.ScaleY.Float64()

	rotate := math.Atan2(b, a)
	skewY := math.Atan2(d, c) - math.Pi/2 - rotate
	scaleX := math.Sqrt(a*a + b*b)
	scaleY := math.Sqrt(c*c+d*d) * math.Cos(skewY)

	return Decomposed{
		ScaleX: scaleX, ScaleY: scaleY,
		SkewYDeg:  skewY * 180 / math.Pi,
		RotateDeg: rotate * 180 / math.Pi,

		TranslateX: m.TranslateX,
		TranslateY: m.TranslateY,
	}
}

// LinearPart is the [[A B][C D]] linear component of a matrix in plain
// float64, i.e. without the 16.16 fixed-point quantization Matrix itself
// carries. Recompose returns one of these rather than a Matrix because the
// round-trip property (spec.md §8) is stated to 1e-9, well below the
// ~1.5e-5 resolution a 16.16 encoding can represent.
type LinearPart struct {
	A, B, C, D float64
}

// Recompose rebuilds the linear part a Decomposed value describes by
// replaying the SVG transform sequence
// "translate(tx,ty) rotate(rotate) skewY(skewY) scale(sx,sy)". It exists
// primarily to let tests check Decompose's round-trip property; the pipeline
// itself never needs to go back from SVG to the source matrix.
func Recompose(d Decomposed) LinearPart {
	rot := d.RotateDeg * math.Pi / 180
	skew := d.SkewYDeg * math.Pi / 180

	// This is the algebraic inverse of Decompose: since Decompose sets
	// scaleX = sqrt(a^2+b^2) and rotate = atan2(b,a), we always have
	// a = scaleX*cos(rotate), b = scaleX*sin(rotate) exactly. Solving the
	// skewY equation for (c,d) the same way gives the two expressions
	// below; together they make Decompose/Recompose round-trip to machine
	// precision for any non-degenerate matrix (spec.md §8).
	a := d.ScaleX * math.Cos(rot)
	b := d.ScaleX * math.Sin(rot)
	c := -d.ScaleY * math.Sin(skew+rot) / math.Cos(skew)
	dd := d.ScaleY * math.Cos(skew+rot) / math.Cos(skew)

	return LinearPart{A: a, B: b, C: c, D: dd}
}
