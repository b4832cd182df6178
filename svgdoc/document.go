// Package svgdoc ties the dictionary, the root timeline, and (in scripted
// mode) the embedded companion runtime into a single SVG document
// (spec.md §4.7).
package svgdoc

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"filmstrip/anim"
	"filmstrip/button"
	"filmstrip/dict"
	"filmstrip/geom"
	"filmstrip/internal/diag"
	"filmstrip/shape"
	"filmstrip/svgxml"
	"filmstrip/timeline"
)

// assembler holds the per-document state the builder described in
// spec.md §4.7 accumulates while walking the dictionary: the growing
// <defs> children list, the gradient id counter, and which bitmap
// patterns have already been emitted.
type assembler struct {
	dict *dict.Dictionary
	sink *diag.Sink

	defsChildren []*svgxml.Node

	gradCounter     int
	filterCounter   int
	emittedPatterns map[geom.CharacterID]bool
}

// Assemble builds the complete SVG document text for a movie.
//
// frameSize is the view box in sub-pixel units; frameRate is already
// converted to frames/second (spec.md §6: "epsilons/256"); background is
// nil when the source left it unset, in which case the document falls
// back to a black background (spec.md §6).
func Assemble(
	frameSize geom.Rect,
	frameRate float64,
	frameCount geom.Frame,
	background *geom.RGBA,
	useJS bool,
	d *dict.Dictionary,
	root *timeline.Timeline,
	sink *diag.Sink,
) (string, error) {
	a := &assembler{dict: d, sink: sink, emittedPatterns: map[geom.CharacterID]bool{}}

	width := frameSize.XMax - frameSize.XMin
	height := frameSize.YMax - frameSize.YMin

	clip := svgxml.New("clipPath").Attr("id", "viewBox_clip")
	clip.Add(svgxml.New("rect").
		Attr("x", itoa(frameSize.XMin)).
		Attr("y", itoa(frameSize.YMin)).
		Attr("width", itoa(width)).
		Attr("height", itoa(height)))
	a.defsChildren = append(a.defsChildren, clip)

	for _, id := range d.Ids() {
		c, _ := d.Get(id)
		if node := a.renderCharacter(id, c, frameRate); node != nil {
			a.defsChildren = append(a.defsChildren, node...)
		}
	}

	defs := svgxml.New("defs")
	for _, c := range a.defsChildren {
		defs.Add(c)
	}

	bg := colorHex(geom.RGBA{A: 0xff})
	if background != nil {
		bg = colorHex(*background)
	}
	bgRect := svgxml.New("rect").
		Attr("width", "100%").Attr("height", "100%").Attr("fill", bg)

	svg := svgxml.New("svg").
		Attr("xmlns", "http://www.w3.org/2000/svg").
		Attr("xmlns:xlink", "http://www.w3.org/1999/xlink").
		Attr("viewBox", fmt.Sprintf("%d %d %d %d", frameSize.XMin, frameSize.YMin, width, height)).
		Attr("style", "background: "+styleColor(background))

	svg.Add(defs)
	svg.Add(bgRect)

	if useJS {
		body := svgxml.New("g").Attr("id", "body")
		svg.Add(body)
		svg.Add(a.scriptNode(frameRate, d, root))
	} else {
		animatedGroup := a.renderTimelineGroup(root, frameRate)
		animatedGroup.Attr("clip-path", "url(#viewBox_clip)")
		svg.Add(animatedGroup)
	}

	var buf strings.Builder
	buf.WriteString(xml.Header)
	out, err := xml.MarshalIndent(svg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("svgdoc: marshaling document: %w", err)
	}
	buf.Write(out)
	return buf.String(), nil
}

// renderTimelineGroup walks a timeline's depths in ascending order,
// rendering each layer and collecting any color-matrix filters it needs
// into the shared defs list (spec.md §5: "ascending depth").
func (a *assembler) renderTimelineGroup(tl *timeline.Timeline, frameRate float64) *svgxml.Node {
	duration := 0.0
	if frameRate > 0 {
		duration = float64(tl.FrameCount) / frameRate
	}

	group := svgxml.New("g")
	for _, depth := range tl.Depths() {
		layer := tl.Layers[depth]
		filterID := fmt.Sprintf("f_%d", a.nextFilterID())
		rendered := anim.RenderLayer(layer, tl.FrameCount, duration, filterID)
		if rendered.Filter != nil {
			a.defsChildren = append(a.defsChildren, rendered.Filter)
		}
		group.Add(rendered.Group)
	}
	return group
}

func (a *assembler) nextFilterID() int {
	a.filterCounter++
	return a.filterCounter
}

func (a *assembler) nextGradID() string {
	a.gradCounter++
	return fmt.Sprintf("grad_%d", a.gradCounter)
}

// renderCharacter emits the <defs> entries for one dictionary character
// (spec.md §4.7).
func (a *assembler) renderCharacter(id geom.CharacterID, c dict.Character, frameRate float64) []*svgxml.Node {
	switch c.Kind {
	case dict.KindShape:
		return []*svgxml.Node{a.shapeNode(id, c.Shape)}
	case dict.KindBitmap:
		return []*svgxml.Node{a.bitmapNode(id, c.Bitmap)}
	case dict.KindSprite:
		g := a.renderTimelineGroup(c.Sprite, frameRate)
		g.Attr("id", fmt.Sprintf("c_%d", id))
		return []*svgxml.Node{g}
	case dict.KindButton:
		return a.buttonNodes(id, c.Button)
	case dict.KindDynamicText:
		return []*svgxml.Node{a.textNode(id, c.DynamicText)}
	case dict.KindSound:
		return nil
	default:
		return nil
	}
}

func (a *assembler) shapeNode(id geom.CharacterID, s shape.Shape) *svgxml.Node {
	g := svgxml.New("g").Attr("id", fmt.Sprintf("c_%d", id))
	for _, fp := range s.Fills {
		d := shape.PathData(fp)
		if d == "" {
			continue
		}
		g.Add(svgxml.New("path").Attr("d", d).Attr("fill", a.fillAttr(fp.Style)))
	}
	for _, sp := range s.Strokes {
		d := shape.PathData(sp)
		if d == "" {
			continue
		}
		path := svgxml.New("path").
			Attr("d", d).
			Attr("fill", "none").
			Attr("stroke", a.fillAttr(sp.Style.Fill)).
			Attr("stroke-width", strconv.Itoa(int(sp.Style.Width)))
		g.Add(path)
	}
	return g
}

func (a *assembler) fillAttr(f shape.FillStyle) string {
	switch f.Kind {
	case shape.FillSolid:
		return colorHex(f.Solid)
	case shape.FillLinearGradient:
		return a.gradientRef("linearGradient", f.Gradient)
	case shape.FillRadialGradient:
		return a.gradientRef("radialGradient", f.Gradient)
	case shape.FillBitmap:
		id := fmt.Sprintf("pat_%d", f.Bitmap)
		if !a.emittedPatterns[f.Bitmap] {
			a.emittedPatterns[f.Bitmap] = true
			pattern := svgxml.New("pattern").
				Attr("id", id).
				Attr("patternUnits", "userSpaceOnUse").
				Attr("width", "1").Attr("height", "1")
			pattern.Add(svgxml.New("use").Attr("xlink:href", fmt.Sprintf("#c_%d", f.Bitmap)))
			a.defsChildren = append(a.defsChildren, pattern)
		}
		return fmt.Sprintf("url(#%s)", id)
	default:
		// Best-effort substitute for an unrecognized fill kind
		// (spec.md §7).
		return "#ff99cc"
	}
}

func (a *assembler) gradientRef(tag string, g shape.Gradient) string {
	id := a.nextGradID()
	node := svgxml.New(tag).
		Attr("id", id).
		Attr("gradientUnits", "userSpaceOnUse").
		Attr("gradientTransform", matrixAttr(g.Matrix)).
		Attr("spreadMethod", spreadMethod(g.Spread))
	for _, stop := range g.Stops {
		node.Add(svgxml.New("stop").
			Attr("offset", strconv.FormatFloat(float64(stop.Ratio)/255.0, 'g', -1, 64)).
			Attr("stop-color", colorHex(stop.Color)))
	}
	a.defsChildren = append(a.defsChildren, node)
	return fmt.Sprintf("url(#%s)", id)
}

func spreadMethod(s shape.SpreadMode) string {
	switch s {
	case shape.SpreadReflect:
		return "reflect"
	case shape.SpreadRepeat:
		return "repeat"
	default:
		return "pad"
	}
}

func (a *assembler) bitmapNode(id geom.CharacterID, b dict.Bitmap) *svgxml.Node {
	dataURL := fmt.Sprintf("data:%s;base64,%s", b.MimeType, base64.StdEncoding.EncodeToString(b.Data))
	return svgxml.New("image").
		Attr("id", fmt.Sprintf("c_%d", id)).
		Attr("xlink:href", dataURL).
		Attr("width", strconv.Itoa(b.Width)).
		Attr("height", strconv.Itoa(b.Height))
}

func (a *assembler) textNode(id geom.CharacterID, t dict.DynamicText) *svgxml.Node {
	return svgxml.New("text").
		Attr("id", fmt.Sprintf("c_%d", id)).
		Attr("x", itoa(t.Bounds.XMin)).
		Attr("y", itoa(t.Bounds.YMin)).
		Attr("fill", colorHex(t.Color)).
		SetText(t.Text)
}

func (a *assembler) buttonNodes(id geom.CharacterID, b button.Button) []*svgxml.Node {
	return []*svgxml.Node{
		a.buttonStateGroup(fmt.Sprintf("c_%d", id), b.Objects.Up),
		a.buttonStateGroup(fmt.Sprintf("c_%d_over", id), b.Objects.Over),
		a.buttonStateGroup(fmt.Sprintf("c_%d_down", id), b.Objects.Down),
		a.buttonStateGroup(fmt.Sprintf("c_%d_hit_test", id), b.Objects.HitTest),
	}
}

func (a *assembler) buttonStateGroup(id string, objs map[geom.Depth]timeline.Object) *svgxml.Node {
	g := svgxml.New("g").Attr("id", id)
	depths := make([]geom.Depth, 0, len(objs))
	for d := range objs {
		depths = append(depths, d)
	}
	sort.Slice(depths, func(i, j int) bool { return depths[i] < depths[j] })
	for _, d := range depths {
		obj := objs[d]
		g.Add(svgxml.New("use").
			Attr("xlink:href", fmt.Sprintf("#c_%d", obj.Character)).
			Attr("transform", matrixAttr(obj.Matrix)))
	}
	return g
}

// matrixAttr renders a Matrix as an SVG matrix(a,b,c,d,e,f) transform,
// exactly, with no decomposition — used for one-shot (non-animated)
// placements such as button states and gradient coordinate spaces. The
// decomposed scale/skewY/rotate/translate chain (spec.md §4.6) is reserved
// for animated timeline layers, where it is required to produce
// independently-animatable tracks.
func matrixAttr(m geom.Matrix) string {
	return fmt.Sprintf("matrix(%s,%s,%s,%s,%s,%s)",
		ff(m.ScaleX.Float64()), ff(m.RotateSkew0.Float64()),
		ff(m.RotateSkew1.Float64()), ff(m.ScaleY.Float64()),
		ff(float64(m.TranslateX)), ff(float64(m.TranslateY)))
}

func ff(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func itoa(v int32) string { return strconv.FormatInt(int64(v), 10) }

func colorHex(c geom.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func styleColor(background *geom.RGBA) string {
	if background == nil {
		return "black"
	}
	return colorHex(*background)
}
