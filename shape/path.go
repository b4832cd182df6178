package shape

import (
	"fmt"
	"strings"
)

// PathData renders a StyledPath's edges as an SVG path "d" attribute:
// "M" to the first point, then "L"/"Q" per edge, "Z" if the path closes
// (spec.md §8 scenario 2).
func PathData[S any](p StyledPath[S]) string {
	if len(p.Edges) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M%d,%d", p.Edges[0].From.X, p.Edges[0].From.Y)

	prevTo := p.Edges[0].From
	for _, e := range p.Edges {
		if e.From != prevTo {
			fmt.Fprintf(&b, " M%d,%d", e.From.X, e.From.Y)
		}
		if e.Control != nil {
			fmt.Fprintf(&b, " Q%d,%d %d,%d", e.Control.X, e.Control.Y, e.To.X, e.To.Y)
		} else {
			fmt.Fprintf(&b, " L%d,%d", e.To.X, e.To.Y)
		}
		prevTo = e.To
	}

	if p.Closed() {
		b.WriteString(" Z")
	}
	return b.String()
}
