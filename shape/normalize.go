package shape

import (
	"filmstrip/geom"
	"filmstrip/internal/diag"
)

// normalizer is the pen/style state machine described in spec.md §4.1.
type normalizer struct {
	fillStyles []FillStyle
	lineStyles []LineStyle

	pos                geom.Point
	fill0, fill1, line StyleIndex

	path []geom.Edge

	fillEdges map[StyleIndex][]geom.Edge
	lineEdges map[StyleIndex][]geom.Edge
	fillOrder []StyleIndex
	lineOrder []StyleIndex

	sink *diag.Sink
}

// Normalize turns a DefineShape's style-change/edge record stream into a
// Shape whose fill and stroke paths are contiguous and consistently
// oriented (spec.md §4.1).
func Normalize(def DefineShape, sink *diag.Sink) Shape {
	n := &normalizer{
		fillStyles: append([]FillStyle{}, def.InitialFillStyles...),
		lineStyles: append([]LineStyle{}, def.InitialLineStyles...),
		fillEdges:  map[StyleIndex][]geom.Edge{},
		lineEdges:  map[StyleIndex][]geom.Edge{},
		sink:       sink,
	}

	for _, rec := range def.Records {
		switch r := rec.(type) {
		case StyleChangeRecord:
			n.styleChange(r)
		case EdgeRecord:
			n.edge(r)
		}
	}
	n.flush()

	shape := Shape{Center: def.Center}
	for _, idx := range n.fillOrder {
		shape.Fills = append(shape.Fills, StyledPath[FillStyle]{
			Style: n.fillStyles[idx-1],
			Edges: untangle(n.fillEdges[idx]),
		})
	}
	for _, idx := range n.lineOrder {
		shape.Strokes = append(shape.Strokes, StyledPath[LineStyle]{
			Style: n.lineStyles[idx-1],
			Edges: untangle(n.lineEdges[idx]),
		})
	}
	return shape
}

func (n *normalizer) styleChange(r StyleChangeRecord) {
	// new_styles is processed before index updates in the same record, so
	// new indices may refer to just-appended styles (spec.md §4.1).
	if len(r.NewFillStyles) > 0 {
		n.fillStyles = append(n.fillStyles, r.NewFillStyles...)
	}
	if len(r.NewLineStyles) > 0 {
		n.lineStyles = append(n.lineStyles, r.NewLineStyles...)
	}

	touchesStyle := r.LeftFill != nil || r.RightFill != nil || r.LineStyle != nil
	if touchesStyle {
		n.flush()
	}

	if r.LeftFill != nil {
		n.fill0 = n.resolveFillIndex(*r.LeftFill)
	}
	if r.RightFill != nil {
		n.fill1 = n.resolveFillIndex(*r.RightFill)
	}
	if r.LineStyle != nil {
		n.line = n.resolveLineIndex(*r.LineStyle)
	}
	if r.MoveTo != nil {
		n.pos = *r.MoveTo
	}
}

func (n *normalizer) resolveFillIndex(idx StyleIndex) StyleIndex {
	if idx == 0 {
		return 0
	}
	if int(idx) > len(n.fillStyles) {
		n.sink.Log(diag.Shape, diag.Warning, "fill style index %d out of range (table has %d), treating as no style", idx, len(n.fillStyles))
		return 0
	}
	return idx
}

func (n *normalizer) resolveLineIndex(idx StyleIndex) StyleIndex {
	if idx == 0 {
		return 0
	}
	if int(idx) > len(n.lineStyles) {
		n.sink.Log(diag.Shape, diag.Warning, "line style index %d out of range (table has %d), treating as no style", idx, len(n.lineStyles))
		return 0
	}
	return idx
}

func (n *normalizer) edge(r EdgeRecord) {
	from := n.pos
	to := from.Add(r.Delta)
	var control *geom.Point
	if r.ControlDelta != nil {
		c := from.Add(*r.ControlDelta)
		control = &c
	}
	n.pos = to
	n.path = append(n.path, geom.Edge{From: from, To: to, Control: control})
}

// flush appends the in-progress path to whichever of fill0/fill1/line are
// currently active, then clears it. fill1 is the natural direction; fill0
// is appended reversed with each edge flipped so both sides of a shared
// edge set share an outward-facing orientation (spec.md §4.1, §8's "fill
// orientation" property).
func (n *normalizer) flush() {
	if len(n.path) == 0 {
		return
	}
	if n.fill0 != 0 {
		if _, seen := n.fillEdges[n.fill0]; !seen {
			n.fillOrder = append(n.fillOrder, n.fill0)
		}
		n.fillEdges[n.fill0] = append(n.fillEdges[n.fill0], reverseFlip(n.path)...)
	}
	if n.fill1 != 0 {
		if _, seen := n.fillEdges[n.fill1]; !seen {
			n.fillOrder = append(n.fillOrder, n.fill1)
		}
		n.fillEdges[n.fill1] = append(n.fillEdges[n.fill1], n.path...)
	}
	if n.line != 0 {
		if _, seen := n.lineEdges[n.line]; !seen {
			n.lineOrder = append(n.lineOrder, n.line)
		}
		n.lineEdges[n.line] = append(n.lineEdges[n.line], n.path...)
	}
	n.path = nil
}

func reverseFlip(edges []geom.Edge) []geom.Edge {
	out := make([]geom.Edge, len(edges))
	for i, e := range edges {
		out[len(edges)-1-i] = e.Flip()
	}
	return out
}

// untangle reorders a styled path's edges so that contiguous subpaths are
// grouped and unreachable components are appended at the end, each
// starting a fresh subpath (spec.md §4.1).
func untangle(edges []geom.Edge) []geom.Edge {
	n := len(edges)
	if n == 0 {
		return nil
	}

	fromIndex := make(map[geom.Point][]int)
	for i, e := range edges {
		fromIndex[e.From] = append(fromIndex[e.From], i)
	}

	used := make([]bool, n)
	result := make([]geom.Edge, 0, n)

	cursor := 0
	firstUnused := func() int {
		for cursor < n && used[cursor] {
			cursor++
		}
		if cursor >= n {
			return -1
		}
		return cursor
	}

	// pickNext finds an unused edge starting at pt, preferring the
	// smallest index greater than current (spec.md §4.1's tie-break),
	// falling back to any unused edge at pt.
	pickNext := func(pt geom.Point, current int) (int, bool) {
		best := -1
		for _, idx := range fromIndex[pt] {
			if used[idx] || idx <= current {
				continue
			}
			if best == -1 || idx < best {
				best = idx
			}
		}
		if best != -1 {
			return best, true
		}
		for _, idx := range fromIndex[pt] {
			if !used[idx] {
				return idx, true
			}
		}
		return -1, false
	}

	idx := firstUnused()
	for idx != -1 {
		used[idx] = true
		result = append(result, edges[idx])

		if next, ok := pickNext(edges[idx].To, idx); ok {
			idx = next
			continue
		}
		idx = firstUnused()
	}

	return result
}
