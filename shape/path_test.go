package shape

import (
	"testing"

	"filmstrip/geom"

	"github.com/stretchr/testify/assert"
)

// TestPathDataSolidTriangle is spec.md §8 scenario 2's exact expected path
// data: d="M0,0 L100,0 L50,87 Z".
func TestPathDataSolidTriangle(t *testing.T) {
	p := StyledPath[FillStyle]{
		Style: FillStyle{Kind: FillSolid, Solid: geom.Opaque(255, 0, 0)},
		Edges: []geom.Edge{
			{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 100, Y: 0}},
			{From: geom.Point{X: 100, Y: 0}, To: geom.Point{X: 50, Y: 87}},
			{From: geom.Point{X: 50, Y: 87}, To: geom.Point{X: 0, Y: 0}},
		},
	}
	assert.Equal(t, "M0,0 L100,0 L50,87 Z", PathData(p))
}

func TestPathDataEmpty(t *testing.T) {
	assert.Equal(t, "", PathData(StyledPath[FillStyle]{}))
}
