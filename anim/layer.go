package anim

import (
	"fmt"

	"filmstrip/geom"
	"filmstrip/svgxml"
	"filmstrip/timeline"
)

type scalePair struct{ x, y float64 }
type translation struct{ x, y int32 }

func formatScale(v scalePair) string      { return FormatFloats(v.x, v.y) }
func formatAngle(v float64) string        { return FormatFloats(v) }
func formatHref(v string) string          { return v }
func formatTranslate(v translation) string { return FormatFloats(float64(v.x), float64(v.y)) }

// hrefFor returns the <use> target for a layer snapshot: "#c_{id}" for a
// present object, or the sentinel "#" for "nothing" (spec.md §4.6).
func hrefFor(obj *timeline.Object) string {
	if obj == nil {
		return "#"
	}
	return fmt.Sprintf("#c_%d", obj.Character)
}

// colorMatrixValues renders a ColorTransformWithAlpha as the 20-number
// feColorMatrix "values" matrix (4 rows of [R G B A offset], offsets
// normalized to the 0..1 range feColorMatrix expects).
func colorMatrixValues(ct geom.ColorTransformWithAlpha) string {
	r, g, b, a := ct.RMul.Float64(), ct.GMul.Float64(), ct.BMul.Float64(), ct.AMul.Float64()
	ra, ga, ba, aa := float64(ct.RAdd)/255, float64(ct.GAdd)/255, float64(ct.BAdd)/255, float64(ct.AAdd)/255
	return fmt.Sprintf(
		"%s 0 0 0 %s 0 %s 0 0 %s 0 0 %s 0 %s 0 0 0 %s %s",
		f(r), f(ra), f(g), f(ga), f(b), f(ba), f(a), f(aa),
	)
}

func f(v float64) string { return FormatFloats(v) }

// RenderedLayer is one depth's complete animated subtree: the nested
// transform groups wrapping a <use> element, plus the <defs> filter entry
// backing a recorded color transform change (nil if none was recorded).
type RenderedLayer struct {
	Group  *svgxml.Node
	Filter *svgxml.Node
}

// RenderLayer walks a Layer's frames in ascending order, feeding each
// snapshot into five independent Animation tracks (character href, scale,
// skewY, rotate, translate) plus an optional color-matrix track, then
// nests the transform tracks scale → skewY → rotate → translate,
// innermost to outermost (spec.md §4.6).
func RenderLayer(layer *timeline.Layer, frameCount geom.Frame, durationSeconds float64, filterID string) RenderedLayer {
	dur := FormatDuration(durationSeconds)
	fc := int(frameCount)

	hrefTrack := New(fc, dur, hrefFor(nil), formatHref)
	scaleTrack := New(fc, dur, scalePair{1, 1}, formatScale)
	skewTrack := New(fc, dur, 0.0, formatAngle)
	rotateTrack := New(fc, dur, 0.0, formatAngle)
	translateTrack := New(fc, dur, translation{0, 0}, formatTranslate)
	colorTrack := New(fc, dur, geom.IdentityColorTransform, func(geom.ColorTransformWithAlpha) string { return "" })

	frames := layer.Frames()
	for i, frame := range frames {
		obj := layer.ValueAtIndex(i)
		hrefTrack.Add(int(frame), hrefFor(obj))
		if obj == nil {
			continue
		}
		d := geom.Decompose(obj.Matrix)
		scaleTrack.Add(int(frame), scalePair{d.ScaleX, d.ScaleY})
		skewTrack.Add(int(frame), d.SkewYDeg)
		rotateTrack.Add(int(frame), d.RotateDeg)
		translateTrack.Add(int(frame), translation{d.TranslateX, d.TranslateY})
		colorTrack.Add(int(frame), obj.ColorTransform)
	}

	use := svgxml.New("use")
	switch r := hrefTrack.Resolve(); r.Kind {
	case ResultStatic:
		use.Attr("xlink:href", r.StaticValue)
	case ResultDiscrete:
		use.Attr("xlink:href", "#")
		use.Add(animateNode("xlink:href", r, dur))
	}

	node := wrapTransform(use, "scale", scaleTrack.Resolve(), dur)
	node = wrapTransform(node, "skewY", skewTrack.Resolve(), dur)
	node = wrapTransform(node, "rotate", rotateTrack.Resolve(), dur)
	node = wrapTransform(node, "translate", translateTrack.Resolve(), dur)

	var filter *svgxml.Node
	if r := colorTrack.Resolve(); r.Kind != ResultNone {
		use.Attr("filter", fmt.Sprintf("url(#%s)", filterID))
		filter = svgxml.New("filter").Attr("id", filterID)
		feColorMatrix := svgxml.New("feColorMatrix").Attr("type", "matrix")
		switch r.Kind {
		case ResultStatic:
			feColorMatrix.Attr("values", colorMatrixValues(colorTrack.values[0]))
		case ResultDiscrete:
			feColorMatrix.Attr("values", colorMatrixValues(colorTrack.initial))
			anim := svgxml.New("animate").
				Attr("attributeName", "values").
				Attr("calcMode", "discrete").
				Attr("repeatCount", "indefinite").
				Attr("dur", dur).
				Attr("keyTimes", r.KeyTimes)
			vals := make([]string, len(colorTrack.values))
			for i, v := range colorTrack.values {
				vals[i] = colorMatrixValues(v)
			}
			anim.Attr("values", joinSemicolon(vals))
			feColorMatrix.Add(anim)
		}
		filter.Add(feColorMatrix)
	}

	return RenderedLayer{Group: node, Filter: filter}
}

func joinSemicolon(vs []string) string {
	out := ""
	for i, v := range vs {
		if i > 0 {
			out += ";"
		}
		out += v
	}
	return out
}

// wrapTransform wraps child in a transform group for one decomposed
// component, per spec.md §4.6's three-case rule: omitted, a static
// transform="kind(...)" attribute, or a wrapping <g> with a discrete-mode
// <animateTransform>.
func wrapTransform(child *svgxml.Node, kind string, r Result, dur string) *svgxml.Node {
	switch r.Kind {
	case ResultNone:
		return child
	case ResultStatic:
		g := svgxml.New("g").Attr("transform", fmt.Sprintf("%s(%s)", kind, r.StaticValue))
		g.Add(child)
		return g
	default:
		g := svgxml.New("g")
		anim := svgxml.New("animateTransform").
			Attr("attributeName", "transform").
			Attr("type", kind).
			Attr("calcMode", "discrete").
			Attr("repeatCount", "indefinite").
			Attr("dur", dur).
			Attr("keyTimes", r.KeyTimes).
			Attr("values", r.Values)
		g.Add(anim)
		g.Add(child)
		return g
	}
}

func animateNode(attributeName string, r Result, dur string) *svgxml.Node {
	return svgxml.New("animate").
		Attr("attributeName", attributeName).
		Attr("calcMode", "discrete").
		Attr("repeatCount", "indefinite").
		Attr("dur", dur).
		Attr("keyTimes", r.KeyTimes).
		Attr("values", r.Values)
}
